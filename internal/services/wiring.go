package services

import (
	"log"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/pdf"
)

// SearcherFromConfig returns the Unsplash searcher, or nil when no access
// key is configured
func SearcherFromConfig(cfg config.ImagesConfig) images.Searcher {
	if cfg.UnsplashAccessKey == "" {
		log.Printf("Unsplash access key not set, image queries will not be resolved")
		return nil
	}
	client, err := images.NewUnsplashClient(images.UnsplashConfig{
		AccessKey:         cfg.UnsplashAccessKey,
		BaseURL:           cfg.UnsplashBaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Timeout:           cfg.FetchTimeout,
	})
	if err != nil {
		log.Printf("Failed to create Unsplash client: %v", err)
		return nil
	}
	return client
}

// PrinterFromConfig returns the Chrome printer, or nil when disabled
func PrinterFromConfig(cfg config.RenderConfig) pdf.Printer {
	if !cfg.ChromeEnabled {
		return nil
	}
	return pdf.NewChromePrinter(pdf.ChromeOptions{
		ExecPath: cfg.ChromePath,
		Timeout:  cfg.PDFTimeout,
	})
}

// AssemblerFromConfig builds an assembler with a network fetcher
func AssemblerFromConfig(cfg *config.Config, searcher images.Searcher) *Assembler {
	return NewAssembler(
		images.NewFetcher(cfg.Images.FetchTimeout, cfg.Images.MaxBytes),
		searcher,
		PrinterFromConfig(cfg.Render),
		AssemblerOptions{
			Concurrency:          cfg.Images.Concurrency,
			ResolveMissingImages: cfg.Render.ResolveMissingImages,
			NativeFallback:       cfg.Render.NativePDFFallback,
		},
	)
}
