package images

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Lookup gives renderers read access to fetched images
type Lookup interface {
	Get(url string) (*Image, bool)
	Has(url string) bool
}

// Map is a fixed set of images keyed by URL
type Map map[string]*Image

func (m Map) Get(url string) (*Image, bool) {
	img, ok := m[url]
	return img, ok && img != nil
}

func (m Map) Has(url string) bool {
	_, ok := m.Get(url)
	return ok
}

// Loader fetches one image
type Loader interface {
	Fetch(ctx context.Context, url string) (*Image, error)
}

type entry struct {
	done chan struct{}
	img  *Image
	err  error
}

// Cache holds the images of one request. The first caller for a URL fetches
// it; concurrent and later callers reuse that result, failures included.
type Cache struct {
	mu      sync.Mutex
	loader  Loader
	entries map[string]*entry
}

// NewCache creates an empty cache backed by loader
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]*entry),
	}
}

// Load returns the image for url, fetching it at most once
func (c *Cache) Load(ctx context.Context, url string) (*Image, error) {
	c.mu.Lock()
	e, ok := c.entries[url]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[url] = e
	}
	c.mu.Unlock()

	if !ok {
		e.img, e.err = c.loader.Fetch(ctx, url)
		close(e.done)
		return e.img, e.err
	}

	select {
	case <-e.done:
		return e.img, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get returns a fetched image without blocking
func (c *Cache) Get(url string) (*Image, bool) {
	c.mu.Lock()
	e, ok := c.entries[url]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	select {
	case <-e.done:
		return e.img, e.err == nil && e.img != nil
	default:
		return nil, false
	}
}

// Has reports whether url was fetched successfully
func (c *Cache) Has(url string) bool {
	_, ok := c.Get(url)
	return ok
}

// Len returns the number of successfully fetched images
func (c *Cache) Len() int {
	c.mu.Lock()
	urls := make([]string, 0, len(c.entries))
	for u := range c.entries {
		urls = append(urls, u)
	}
	c.mu.Unlock()

	n := 0
	for _, u := range urls {
		if c.Has(u) {
			n++
		}
	}
	return n
}

// Prefetch loads every url with at most concurrency fetches in flight.
// A failed image is logged and skipped; only cancellation is returned.
func (c *Cache) Prefetch(ctx context.Context, urls []string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, url := range urls {
		url := url
		g.Go(func() error {
			if _, err := c.Load(gctx, url); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("Failed to fetch image %s: %v", url, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Remote treats every http(s) URL as available without fetching it. It lets
// previews lay out image regions and link the original URLs.
type Remote struct{}

func (Remote) Get(url string) (*Image, bool) { return nil, false }

func (Remote) Has(url string) bool {
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}
