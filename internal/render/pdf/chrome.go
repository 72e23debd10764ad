// Package pdf produces PDF previews of laid out decks, either by printing
// the HTML rendering in headless Chrome or by drawing pages natively.
package pdf

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/AghoghoOgbotor18/AIPPT/internal/layout"
)

// Printer turns an HTML document into PDF bytes
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
}

// ChromeOptions configures the headless browser
type ChromeOptions struct {
	ExecPath string
	Timeout  time.Duration
}

// ChromePrinter prints through a fresh headless Chrome per document
type ChromePrinter struct {
	opts ChromeOptions
}

func NewChromePrinter(opts ChromeOptions) *ChromePrinter {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &ChromePrinter{opts: opts}
}

func (c *ChromePrinter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	return opts
}

// Print loads html from a temporary file and prints it with the slide size
// as the paper size.
func (c *ChromePrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "deck-preview-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "deck.html")
	if err := os.WriteFile(path, html, 0600); err != nil {
		return nil, fmt.Errorf("failed to write preview html: %w", err)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.opts.Timeout)
	defer cancel()

	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithPaperWidth(layout.SlideWidth).
		WithPaperHeight(layout.SlideHeight).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0)

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	return buf, nil
}
