package images

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// ResolveQueries fills ImageURL for slides that ask for an image and carry a
// query but no URL yet. A failed or empty search leaves the slide without an
// image. The input slice is not modified.
func ResolveQueries(ctx context.Context, searcher Searcher, slides []models.Slide, concurrency int) ([]models.Slide, error) {
	out := make([]models.Slide, len(slides))
	copy(out, slides)
	if searcher == nil {
		return out, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range out {
		s := &out[i]
		if !s.NeedsImage || s.ImageQuery == "" || s.ImageURL != "" {
			continue
		}
		g.Go(func() error {
			u, err := searcher.Search(gctx, s.ImageQuery)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("Failed to find image for %q: %v", s.ImageQuery, err)
				return nil
			}
			s.ImageURL = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}
