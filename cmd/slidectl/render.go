package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/raster"
	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

type renderOptions struct {
	configPath  string
	output      string
	pdfPath     string
	htmlPath    string
	thumbsDir   string
	thumbWidth  int
	nativePDF   bool
	resolveImgs bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <deck.json>",
		Short: "Render a deck JSON file to PPTX, PDF, HTML and thumbnails",
		Long: `Render a deck saved from the editor ({"meta": {...}, "slides": [...]})
without running the server.

The PPTX is always written. PDF, HTML and PNG thumbnails are written when
their flags are set. Images are fetched once and shared by every output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: $CONFIG_PATH or config.yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PPTX output path (default: <deck>.pptx)")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write the PDF preview to this path")
	cmd.Flags().StringVar(&opts.htmlPath, "html", "", "Write the HTML preview to this path")
	cmd.Flags().StringVar(&opts.thumbsDir, "thumbs", "", "Write one PNG per slide into this directory")
	cmd.Flags().IntVar(&opts.thumbWidth, "thumb-width", raster.DefaultWidth, "Thumbnail width in pixels")
	cmd.Flags().BoolVar(&opts.nativePDF, "native-pdf", false, "Draw the PDF without Chrome")
	cmd.Flags().BoolVar(&opts.resolveImgs, "resolve-images", false, "Search Unsplash for slides with an imageQuery but no imageUrl")

	return cmd
}

func loadDeck(path string) (*models.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	var deck models.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse deck %s: %w", path, err)
	}
	return &deck, nil
}

func runRender(cmd *cobra.Command, deckPath string, opts renderOptions) error {
	var cfg *config.Config
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	} else {
		cfg = config.LoadConfig()
	}
	if opts.nativePDF {
		cfg.Render.ChromeEnabled = false
		cfg.Render.NativePDFFallback = true
	}
	cfg.Render.ResolveMissingImages = opts.resolveImgs

	deck, err := loadDeck(deckPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var searcher images.Searcher
	if opts.resolveImgs {
		searcher = services.SearcherFromConfig(cfg.Images)
	}
	docs, err := services.AssemblerFromConfig(cfg, searcher).Assemble(ctx, deck)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ".pptx"
	}
	if err := writeFile(output, docs.PPTX); err != nil {
		return err
	}
	fmt.Fprintf(out, "pptx: %s (%d slides)\n", output, len(docs.Layout.Slides))

	if opts.pdfPath != "" {
		if docs.PDF == nil {
			return fmt.Errorf("pdf could not be produced, see log; try --native-pdf")
		}
		if err := writeFile(opts.pdfPath, docs.PDF); err != nil {
			return err
		}
		fmt.Fprintf(out, "pdf: %s\n", opts.pdfPath)
	}

	if opts.htmlPath != "" {
		if err := writeFile(opts.htmlPath, docs.HTML); err != nil {
			return err
		}
		fmt.Fprintf(out, "html: %s\n", opts.htmlPath)
	}

	if opts.thumbsDir != "" {
		for i, s := range docs.Layout.Slides {
			data, err := raster.EncodePNG(s, docs.Images, opts.thumbWidth)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			if err := writeFile(filepath.Join(opts.thumbsDir, fmt.Sprintf("slide-%02d.png", i+1)), data); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "thumbs: %s (%d files)\n", opts.thumbsDir, len(docs.Layout.Slides))
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
