package handlers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

// DeckHandler handles the generation endpoints
type DeckHandler struct {
	decks *services.DeckService
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(decks *services.DeckService) *DeckHandler {
	return &DeckHandler{
		decks: decks,
	}
}

// GenerateSlides drafts an editable deck for a topic
// POST /api/generate-slides
func (h *DeckHandler) GenerateSlides(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSlidesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	response, err := h.decks.GenerateSlides(r.Context(), req)
	if errors.Is(err, models.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "topic is required", err)
		return
	}
	if err != nil {
		log.Printf("Failed to generate slides: %v", err)
		writeError(w, http.StatusInternalServerError, "Error generating slides", err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GenerateDocuments renders an edited deck to PPTX and PDF
// POST /api/generate-ppt-from-json
func (h *DeckHandler) GenerateDocuments(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateDocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	docs, deckID, err := h.decks.GenerateDocuments(r.Context(), req)
	if err != nil {
		log.Printf("Failed to generate documents: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate PPT", err)
		return
	}

	response := models.GenerateDocumentResponse{
		Success:  true,
		DeckID:   deckID,
		PPTXFile: base64.StdEncoding.EncodeToString(docs.PPTX),
	}
	if docs.PDF != nil {
		encoded := base64.StdEncoding.EncodeToString(docs.PDF)
		response.PDFFile = &encoded
	}

	writeJSON(w, http.StatusOK, response)
}

// Thumbnail renders one slide of the posted deck as PNG
// POST /api/slides/thumbnail?index=0&width=640
func (h *DeckHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index query parameter is required", err)
		return
	}
	width := 0
	if v := r.URL.Query().Get("width"); v != "" {
		if width, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "width must be a number", err)
			return
		}
	}

	var deck models.Deck
	if !decodeBody(w, r, &deck) {
		return
	}

	data, err := h.decks.Thumbnail(r.Context(), &deck, index, width)
	if err != nil {
		log.Printf("Failed to render thumbnail: %v", err)
		writeError(w, statusFor(err), "Failed to render thumbnail", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// Health reports that the server is up
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
