package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

var downloadTypes = map[string]string{
	services.FormatPPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	services.FormatPDF:  "application/pdf",
}

// HistoryHandler serves stored decks and their files
type HistoryHandler struct {
	decks *services.DeckService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(decks *services.DeckService) *HistoryHandler {
	return &HistoryHandler{
		decks: decks,
	}
}

// ListDecks returns stored deck summaries, newest first
// GET /api/decks?limit=20
func (h *HistoryHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number", err)
			return
		}
		limit = n
	}

	records, err := h.decks.ListDecks(limit)
	if err != nil {
		log.Printf("Failed to list decks: %v", err)
		writeError(w, statusFor(err), "Failed to list decks", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"decks":   records,
	})
}

// GetDeck returns one stored deck with its content
// GET /api/decks/{id}
func (h *HistoryHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.decks.GetDeck(id)
	if err != nil {
		writeError(w, statusFor(err), "Deck not available", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deck":    record,
	})
}

// DeleteDeck removes a stored deck and its files
// DELETE /api/decks/{id}
func (h *HistoryHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.decks.DeleteDeck(id); err != nil {
		writeError(w, statusFor(err), "Failed to delete deck", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadFile streams a stored pptx or pdf
// GET /api/decks/{id}/files/{format}
func (h *HistoryHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, format := vars["id"], vars["format"]

	contentType, ok := downloadTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest, "format must be pptx or pdf", nil)
		return
	}

	path, err := h.decks.ArtifactPath(id, format)
	if err != nil {
		writeError(w, statusFor(err), "File not available", err)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("Failed to open stored file %s: %v", path, err)
		writeError(w, http.StatusNotFound, "File not available", err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "File not available", err)
		return
	}

	name := "deck." + format
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(w, r, name, info.ModTime(), file)
}
