package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"time"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/content"
	"github.com/AghoghoOgbotor18/AIPPT/internal/db"
	"github.com/AghoghoOgbotor18/AIPPT/internal/handlers"
	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Select the language model; generation fails per request without one
	adapter, err := content.SelectAdapter(cfg.LLM)
	if err != nil {
		log.Printf("Warning: content generation unavailable: %v", err)
	} else {
		log.Printf("Content generation via %s", adapter.Name())
	}
	generator := content.NewGenerator(adapter)

	// Initialize storage
	var decks *services.DeckStore
	var artifacts *services.ArtifactStore
	if cfg.Storage.Enabled {
		database, err := db.Open(cfg.Storage.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.Close()

		decks = services.NewDeckStore(database)
		artifacts, err = services.NewArtifactStore(cfg.Storage.DataPath)
		if err != nil {
			log.Fatalf("Failed to initialize artifact store: %v", err)
		}
	}

	// Initialize services
	searcher := services.SearcherFromConfig(cfg.Images)
	assembler := services.AssemblerFromConfig(cfg, searcher)
	deckService := services.NewDeckService(generator, searcher, assembler, decks, artifacts, cfg.Images.Concurrency)

	// Initialize handlers
	deckHandler := handlers.NewDeckHandler(deckService)
	historyHandler := handlers.NewHistoryHandler(deckService)
	previewHandler := handlers.NewPreviewHandler(cfg.Server.AllowedOrigins, cfg.Server.MaxBodyBytes)

	// Setup routes
	router := handlers.SetupRoutes(cfg.Server, deckHandler, historyHandler, previewHandler)

	// Configure server
	server := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Configure TLS if enabled
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{
			MinVersion: getTLSVersion(cfg.TLS.MinVersion),
		}

		log.Printf("Starting HTTPS server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("TLS Certificate: %s", cfg.TLS.CertFile)
		log.Printf("TLS Min Version: %s", cfg.TLS.MinVersion)

		log.Fatal(server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile))
	} else {
		log.Printf("Starting HTTP server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Warning: HTTP mode is not recommended for production")

		log.Fatal(server.ListenAndServe())
	}
}

// getTLSVersion converts string version to tls.Version constant
func getTLSVersion(version string) uint16 {
	switch version {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
