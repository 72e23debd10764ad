package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AghoghoOgbotor18/AIPPT/internal/config"
	"github.com/AghoghoOgbotor18/AIPPT/internal/db"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/services"
)

type noImages struct{}

func (noImages) Fetch(ctx context.Context, url string) (*images.Image, error) {
	return nil, models.ErrImageUnavailable
}

type fakeGenerator struct {
	slides []models.Slide
	err    error
}

func (g fakeGenerator) Generate(ctx context.Context, req models.GenerateSlidesRequest) ([]models.Slide, error) {
	return g.slides, g.err
}

var sampleSlides = []models.Slide{
	{Type: models.SlideTitle, Title: "Gophers"},
	{Type: models.SlideContent, Title: "Why", Points: []models.Point{{Text: "Fast", Explanation: "builds"}}},
	{Type: models.SlideThankYou},
}

func newServer(t *testing.T, gen services.SlideGenerator, storage bool) http.Handler {
	t.Helper()
	assembler := services.NewAssembler(noImages{}, nil, nil, services.AssemblerOptions{})

	var decks *services.DeckStore
	var artifacts *services.ArtifactStore
	if storage {
		dir := t.TempDir()
		database, err := db.Open(filepath.Join(dir, "decks.db"))
		require.NoError(t, err)
		t.Cleanup(func() { database.Close() })
		decks = services.NewDeckStore(database)
		artifacts, err = services.NewArtifactStore(dir)
		require.NoError(t, err)
	}
	svc := services.NewDeckService(gen, nil, assembler, decks, artifacts, 2)

	cfg := config.ServerConfig{
		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   1 << 20,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return SetupRoutes(cfg, NewDeckHandler(svc), NewHistoryHandler(svc), NewPreviewHandler(cfg.AllowedOrigins, cfg.MaxBodyBytes))
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(t, fakeGenerator{}, false), "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestGenerateSlides(t *testing.T) {
	h := newServer(t, fakeGenerator{slides: sampleSlides}, false)

	rec := do(t, h, "POST", "/api/generate-slides", models.GenerateSlidesRequest{Topic: "Gophers", Theme: "navy"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateSlidesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "navy", resp.Meta.Theme)
	assert.Equal(t, models.DefaultSlideCount, resp.Meta.SlideCount)
	assert.Len(t, resp.Slides, 3)
	assert.Empty(t, resp.DeckID)
}

func TestGenerateSlidesErrors(t *testing.T) {
	h := newServer(t, fakeGenerator{err: models.ErrInvalidAIResponse}, false)

	rec := do(t, h, "POST", "/api/generate-slides", models.GenerateSlidesRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "topic is required", decodeError(t, rec).Message)

	rec = do(t, h, "POST", "/api/generate-slides", "{oops")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeError(t, rec).Success)

	rec = do(t, h, "POST", "/api/generate-slides", models.GenerateSlidesRequest{Topic: "Go"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "Error generating slides", resp.Message)
	assert.Equal(t, "Invalid JSON response from AI. Please try again.", resp.Error)
}

func TestGenerateDocuments(t *testing.T) {
	h := newServer(t, fakeGenerator{}, false)

	rec := do(t, h, "POST", "/api/generate-ppt-from-json", models.GenerateDocumentRequest{
		Meta:   models.Meta{Topic: "Gophers"},
		Slides: sampleSlides,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	assert.Contains(t, raw, "pdfFile")
	assert.Nil(t, raw["pdfFile"])

	pptx, err := base64.StdEncoding.DecodeString(raw["pptxFile"].(string))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pptx, []byte("PK")))
}

func TestGenerateDocuments_EditedBullets(t *testing.T) {
	h := newServer(t, fakeGenerator{}, true)

	body := `{"meta":{"topic":"Gophers","theme":"navy"},"slides":[
		{"type":"title","title":"Gophers"},
		{"type":"intro","title":"Hello","points":["added bullet",{"text":"Kept","explanation":"as is"}]},
		{"type":"conclusion","title":"Wrap","points":["one more"]},
		{"type":"thank-you"}
	]}`
	rec := do(t, h, "POST", "/api/generate-ppt-from-json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var docs models.GenerateDocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.NotEmpty(t, docs.DeckID)

	rec = do(t, h, "GET", "/api/decks/"+docs.DeckID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Deck models.DeckRecord `json:"deck"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Deck.Deck)
	slides := got.Deck.Deck.Slides
	require.Len(t, slides, 4)
	assert.Equal(t, []models.Point{{Text: "added bullet"}, {Text: "Kept", Explanation: "as is"}}, slides[1].Points)
	assert.Equal(t, []models.Point{{Text: "one more"}}, slides[2].Points)
}

func TestHistoryFlow(t *testing.T) {
	h := newServer(t, fakeGenerator{slides: sampleSlides}, true)

	rec := do(t, h, "POST", "/api/generate-slides", models.GenerateSlidesRequest{Topic: "Gophers"})
	require.Equal(t, http.StatusOK, rec.Code)
	var slides models.GenerateSlidesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slides))
	require.NotEmpty(t, slides.DeckID)

	rec = do(t, h, "POST", "/api/generate-ppt-from-json", models.GenerateDocumentRequest{
		DeckID: slides.DeckID, Meta: slides.Meta, Slides: slides.Slides,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var docs models.GenerateDocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Equal(t, slides.DeckID, docs.DeckID)

	rec = do(t, h, "GET", "/api/decks?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Success bool                 `json:"success"`
		Decks   []*models.DeckRecord `json:"decks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Decks, 1)
	assert.Equal(t, []string{"pptx"}, list.Decks[0].Files)

	rec = do(t, h, "GET", "/api/decks/"+slides.DeckID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"topic":"Gophers"`)

	rec = do(t, h, "GET", "/api/decks/"+slides.DeckID+"/files/pptx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, downloadTypes["pptx"], rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))

	rec = do(t, h, "GET", "/api/decks/"+slides.DeckID+"/files/pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, "GET", "/api/decks/"+slides.DeckID+"/files/docx", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, "DELETE", "/api/decks/"+slides.DeckID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, "GET", "/api/decks/"+slides.DeckID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryWithoutStorage(t *testing.T) {
	rec := do(t, newServer(t, fakeGenerator{}, false), "GET", "/api/decks", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.False(t, decodeError(t, rec).Success)
}

func TestThumbnail(t *testing.T) {
	h := newServer(t, fakeGenerator{}, false)
	deck := models.Deck{Meta: models.Meta{Topic: "T"}, Slides: sampleSlides}

	rec := do(t, h, "POST", "/api/slides/thumbnail?index=1&width=320", deck)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, h, "POST", "/api/slides/thumbnail?index=9", deck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, "POST", "/api/slides/thumbnail", deck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newServer(t, fakeGenerator{}, false)

	req := httptest.NewRequest("OPTIONS", "/api/generate-slides", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBodyLimit(t *testing.T) {
	h := newServer(t, fakeGenerator{}, false)

	big := `{"topic":"` + strings.Repeat("a", 2<<20) + `"}`
	rec := do(t, h, "POST", "/api/generate-slides", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPreviewWebsocket(t *testing.T) {
	srv := httptest.NewServer(newServer(t, fakeGenerator{}, false))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/preview/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	deck := models.Deck{
		Meta:   models.Meta{Topic: "Live"},
		Slides: append([]models.Slide{{Type: models.SlideContent, Title: "Img", ImageURL: "https://img.test/a.png"}}, sampleSlides...),
	}
	require.NoError(t, conn.WriteJSON(deck))

	var frame PreviewFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.True(t, frame.Success)
	assert.Len(t, frame.Slides, 4)
	assert.Contains(t, frame.HTML, `src="https://img.test/a.png"`)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	var failed models.ErrorResponse
	require.NoError(t, conn.ReadJSON(&failed))
	assert.False(t, failed.Success)
	assert.Equal(t, "Invalid JSON", failed.Message)
}

func TestPreviewRejectsOrigin(t *testing.T) {
	srv := httptest.NewServer(newServer(t, fakeGenerator{}, false))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/preview/ws"
	header := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
