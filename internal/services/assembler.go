package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/html"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/pdf"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/pptx"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/raster"
)

// Documents holds every output produced from one deck. PDF is nil when no
// PDF could be produced.
type Documents struct {
	PPTX   []byte
	PDF    []byte
	HTML   []byte
	Layout *layout.Deck
	Images images.Lookup
}

// AssemblerOptions tunes the Assembler
type AssemblerOptions struct {
	// Concurrency bounds image searches and fetches
	Concurrency int
	// ResolveMissingImages searches for slides that carry an imageQuery but
	// no imageUrl before fetching
	ResolveMissingImages bool
	// NativeFallback draws the PDF with gopdf when no printer is set or the
	// printer fails
	NativeFallback bool
}

// Assembler lays a deck out once and renders it to every output format
type Assembler struct {
	loader   images.Loader
	searcher images.Searcher
	printer  pdf.Printer
	opts     AssemblerOptions
}

// NewAssembler creates an assembler. searcher and printer may be nil.
func NewAssembler(loader images.Loader, searcher images.Searcher, printer pdf.Printer, opts AssemblerOptions) *Assembler {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Assembler{
		loader:   loader,
		searcher: searcher,
		printer:  printer,
		opts:     opts,
	}
}

// prepare fills defaults, resolves pending image queries and fetches every
// image once into a request scoped cache
func (a *Assembler) prepare(ctx context.Context, in *models.Deck) (*models.Deck, *images.Cache, error) {
	if in == nil {
		return nil, nil, fmt.Errorf("%w: deck is required", models.ErrInvalidInput)
	}
	deck := &models.Deck{Meta: in.Meta.WithDefaults(), Slides: in.Slides}

	if a.opts.ResolveMissingImages && a.searcher != nil {
		slides, err := images.ResolveQueries(ctx, a.searcher, deck.Slides, a.opts.Concurrency)
		if err != nil {
			return nil, nil, err
		}
		deck.Slides = slides
	}

	for i, s := range deck.Slides {
		if !s.Type.Known() {
			log.Printf("Slide %d has unknown type %q, it will be blank", i+1, s.Type)
		}
	}

	cache := images.NewCache(a.loader)
	if err := cache.Prefetch(ctx, deck.ImageURLs(), a.opts.Concurrency); err != nil {
		return nil, nil, err
	}
	return deck, cache, nil
}

// Assemble renders deck to PPTX, HTML and PDF. The two documents are
// rendered concurrently from one layout. A PPTX failure fails the call;
// a PDF failure only leaves Documents.PDF nil.
func (a *Assembler) Assemble(ctx context.Context, in *models.Deck) (*Documents, error) {
	deck, cache, err := a.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	docs := &Documents{Layout: layout.LayoutDeck(deck, cache), Images: cache}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := pptx.Render(docs.Layout, cache)
		if err != nil {
			return fmt.Errorf("failed to render pptx: %w", err)
		}
		docs.PPTX = data
		return nil
	})
	g.Go(func() error {
		doc, err := html.Render(docs.Layout, cache)
		if err != nil {
			log.Printf("Failed to render html preview: %v", err)
			return nil
		}
		docs.HTML = doc
		docs.PDF = a.renderPDF(gctx, docs.Layout, doc, cache)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if docs.PDF != nil {
		if n, err := pdf.PageCount(docs.PDF); err != nil {
			log.Printf("Failed to verify pdf: %v", err)
		} else if n != len(docs.Layout.Slides) {
			log.Printf("PDF has %d pages for %d slides", n, len(docs.Layout.Slides))
		}
	}

	log.Printf("Assembled deck %q: %d slides, %d images, pptx=%d bytes, pdf=%d bytes",
		deck.Meta.Topic, len(deck.Slides), cache.Len(), len(docs.PPTX), len(docs.PDF))
	return docs, nil
}

func (a *Assembler) renderPDF(ctx context.Context, deck *layout.Deck, doc []byte, cache images.Lookup) []byte {
	if a.printer != nil {
		data, err := a.printer.Print(ctx, doc)
		if err == nil {
			return data
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("Failed to print pdf: %v", err)
	}
	if !a.opts.NativeFallback {
		return nil
	}

	data, err := pdf.Native(deck, cache)
	if err != nil {
		log.Printf("Failed to draw native pdf: %v", err)
		return nil
	}
	return data
}

// Thumbnail renders slide index of deck as a PNG width pixels wide
func (a *Assembler) Thumbnail(ctx context.Context, in *models.Deck, index, width int) ([]byte, error) {
	if in == nil || index < 0 || index >= len(in.Slides) {
		return nil, fmt.Errorf("%w: slide index %d out of range", models.ErrInvalidInput, index)
	}

	// earlier slides decide the creative image side, so lay out the whole deck
	deck, cache, err := a.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	ld := layout.LayoutDeck(deck, cache)
	return raster.EncodePNG(ld.Slides[index], cache, width)
}

// Preview lays deck out and renders HTML without fetching anything. Images
// are linked by their original URL.
func Preview(in *models.Deck) (*layout.Deck, []byte, error) {
	if in == nil {
		return nil, nil, fmt.Errorf("%w: deck is required", models.ErrInvalidInput)
	}
	deck := &models.Deck{Meta: in.Meta.WithDefaults(), Slides: in.Slides}
	ld := layout.LayoutDeck(deck, images.Remote{})
	doc, err := html.Render(ld, images.Remote{})
	if err != nil {
		return nil, nil, err
	}
	return ld, doc, nil
}
