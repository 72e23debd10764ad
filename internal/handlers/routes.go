package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
)

// SetupRoutes wires every endpoint. CORS wraps the whole router so
// preflight requests are answered before route matching.
func SetupRoutes(cfg config.ServerConfig, deckHandler *DeckHandler, historyHandler *HistoryHandler, previewHandler *PreviewHandler) http.Handler {
	router := mux.NewRouter()

	// The websocket outlives any request timeout
	router.HandleFunc("/api/preview/ws", previewHandler.ServeWS).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limitBody(cfg.MaxBodyBytes), withTimeout(cfg.RequestTimeout))

	api.HandleFunc("/health", Health).Methods("GET")

	api.HandleFunc("/generate-slides", deckHandler.GenerateSlides).Methods("POST")
	api.HandleFunc("/generate-ppt-from-json", deckHandler.GenerateDocuments).Methods("POST")
	api.HandleFunc("/slides/thumbnail", deckHandler.Thumbnail).Methods("POST")

	api.HandleFunc("/decks", historyHandler.ListDecks).Methods("GET")
	api.HandleFunc("/decks/{id}", historyHandler.GetDeck).Methods("GET")
	api.HandleFunc("/decks/{id}", historyHandler.DeleteDeck).Methods("DELETE")
	api.HandleFunc("/decks/{id}/files/{format}", historyHandler.DownloadFile).Methods("GET")

	return cors(cfg.AllowedOrigins, router)
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

// cors answers preflight requests and tags responses for allowed origins
func cors(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(allowed, origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitBody(max int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if max > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withTimeout bounds the request context; generation and rendering abort
// when it expires
func withTimeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
