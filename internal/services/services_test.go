package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AghoghoOgbotor18/AIPPT/internal/db"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/render/pdf"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

const (
	goodURL = "https://img.test/good.png"
	badURL  = "https://img.test/bad.png"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls map[string]int
	png   []byte
}

func newFakeLoader(t *testing.T) *fakeLoader {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9))))
	return &fakeLoader{calls: make(map[string]int), png: buf.Bytes()}
}

func (f *fakeLoader) Fetch(ctx context.Context, url string) (*images.Image, error) {
	f.mu.Lock()
	f.calls[url]++
	f.mu.Unlock()
	if url == badURL {
		return nil, models.ErrImageUnavailable
	}
	return images.Decode(url, f.png)
}

func (f *fakeLoader) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

type fakePrinter struct {
	err error
}

func (p fakePrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeSearcher map[string]string

func (f fakeSearcher) Search(ctx context.Context, q string) (string, error) {
	return f[q], nil
}

type fakeGenerator struct {
	req    models.GenerateSlidesRequest
	slides []models.Slide
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, req models.GenerateSlidesRequest) ([]models.Slide, error) {
	g.req = req
	return g.slides, g.err
}

func sampleDeck() *models.Deck {
	return &models.Deck{
		Meta: models.Meta{Topic: "Gophers", SlideStyle: style.Creative},
		Slides: []models.Slide{
			{Type: models.SlideTitle, Title: "Gophers", ImageURL: goodURL},
			{Type: models.SlideContent, Title: "A", Points: []models.Point{{Text: "x", Explanation: "y"}}, ImageURL: goodURL},
			{Type: models.SlideContent, Title: "B", ImageURL: badURL},
			{Type: "summary"},
			{Type: models.SlideThankYou},
		},
	}
}

func slideCount(t *testing.T, data []byte) int {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	n := 0
	for _, f := range zr.File {
		if matched, _ := filepath.Match("ppt/slides/slide*.xml", f.Name); matched {
			n++
		}
	}
	return n
}

func TestAssembleFetchesEachImageOnce(t *testing.T) {
	loader := newFakeLoader(t)
	a := NewAssembler(loader, nil, fakePrinter{}, AssemblerOptions{})

	docs, err := a.Assemble(context.Background(), sampleDeck())
	require.NoError(t, err)

	assert.Equal(t, 1, loader.count(goodURL))
	assert.Equal(t, 1, loader.count(badURL))
	assert.Equal(t, 5, slideCount(t, docs.PPTX))
	assert.Equal(t, []byte("%PDF-fake"), docs.PDF)
	assert.NotEmpty(t, docs.HTML)
	require.Len(t, docs.Layout.Slides, 5)
	assert.Empty(t, docs.Layout.Slides[3].Elements)
}

func TestAssembleFailedImageDegradesSlide(t *testing.T) {
	a := NewAssembler(newFakeLoader(t), nil, fakePrinter{}, AssemblerOptions{})

	docs, err := a.Assemble(context.Background(), sampleDeck())
	require.NoError(t, err)

	for _, el := range docs.Layout.Slides[2].Elements {
		assert.Nil(t, el.Image)
	}
}

func TestAssemblePDFFallback(t *testing.T) {
	broken := fakePrinter{err: errors.New("no chrome")}

	a := NewAssembler(newFakeLoader(t), nil, broken, AssemblerOptions{NativeFallback: true})
	docs, err := a.Assemble(context.Background(), sampleDeck())
	require.NoError(t, err)
	n, err := pdf.PageCount(docs.PDF)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	a = NewAssembler(newFakeLoader(t), nil, broken, AssemblerOptions{})
	docs, err = a.Assemble(context.Background(), sampleDeck())
	require.NoError(t, err)
	assert.Nil(t, docs.PDF)
	assert.NotEmpty(t, docs.PPTX)
}

func TestAssembleResolvesQueries(t *testing.T) {
	loader := newFakeLoader(t)
	searcher := fakeSearcher{"gopher": goodURL}
	a := NewAssembler(loader, searcher, nil, AssemblerOptions{ResolveMissingImages: true})

	deck := &models.Deck{Slides: []models.Slide{
		{Type: models.SlideContent, Title: "A", NeedsImage: true, ImageQuery: "gopher"},
	}}
	docs, err := a.Assemble(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, 1, loader.count(goodURL))
	assert.Nil(t, docs.PDF)
	assert.Empty(t, deck.Slides[0].ImageURL, "input deck is not modified")
}

func TestAssembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAssembler(newFakeLoader(t), nil, fakePrinter{}, AssemblerOptions{})
	_, err := a.Assemble(ctx, sampleDeck())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssembleNilDeck(t *testing.T) {
	a := NewAssembler(newFakeLoader(t), nil, nil, AssemblerOptions{})
	_, err := a.Assemble(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestThumbnail(t *testing.T) {
	a := NewAssembler(newFakeLoader(t), nil, nil, AssemblerOptions{})

	data, err := a.Thumbnail(context.Background(), sampleDeck(), 1, 320)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)

	_, err = a.Thumbnail(context.Background(), sampleDeck(), 5, 320)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = a.Thumbnail(context.Background(), sampleDeck(), -1, 320)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPreviewLinksRemoteImages(t *testing.T) {
	ld, doc, err := Preview(sampleDeck())
	require.NoError(t, err)
	assert.Len(t, ld.Slides, 5)
	assert.Contains(t, string(doc), `src="https://img.test/good.png"`)
}

func openStores(t *testing.T) (*DeckStore, *ArtifactStore) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Open(filepath.Join(dir, "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	artifacts, err := NewArtifactStore(dir)
	require.NoError(t, err)
	return NewDeckStore(database), artifacts
}

func TestDeckStore(t *testing.T) {
	decks, _ := openStores(t)

	id, err := decks.Save(sampleDeck())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := decks.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Gophers", record.Topic)
	assert.Equal(t, 5, record.SlideCount)
	require.NotNil(t, record.Deck)
	assert.Equal(t, sampleDeck().Slides, record.Deck.Slides)

	updated := sampleDeck()
	updated.Meta.Topic = "Gophers 2"
	updated.Slides = updated.Slides[:2]
	require.NoError(t, decks.Update(id, updated))

	record, err = decks.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Gophers 2", record.Topic)
	assert.Equal(t, 2, record.SlideCount)

	second, err := decks.Save(&models.Deck{Meta: models.Meta{Topic: "Other"}})
	require.NoError(t, err)

	list, err := decks.List(0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Deck)

	require.NoError(t, decks.Delete(second))
	_, err = decks.Get(second)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, decks.Delete(second), models.ErrNotFound)
	assert.ErrorIs(t, decks.Update(second, updated), models.ErrNotFound)

	_, err = decks.Save(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestArtifactStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArtifactStore(dir)
	require.NoError(t, err)

	id := "6f1c1f52-2f0e-4a8e-9c53-1d3b8b1d7a11"
	rel, err := store.Put(id, FormatPPTX, []byte("pptx"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("decks", id, "deck.pptx"), rel)
	_, err = store.Put(id, FormatPDF, []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, []string{FormatPDF, FormatPPTX}, store.Formats(id))

	path, err := store.Open(id, FormatPPTX)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pptx", string(data))

	reloaded, err := NewArtifactStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{FormatPDF, FormatPPTX}, reloaded.Formats(id))

	require.NoError(t, store.Remove(id, FormatPDF))
	_, err = store.Open(id, FormatPDF)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, store.Delete(id))
	_, err = store.Open(id, FormatPPTX)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = os.Stat(filepath.Join(dir, "decks", id))
	assert.True(t, os.IsNotExist(err))
}

func TestArtifactStoreConcurrentPut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArtifactStore(dir)
	require.NoError(t, err)

	id := "6f1c1f52-2f0e-4a8e-9c53-1d3b8b1d7a11"
	payloads := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		payload := bytes.Repeat([]byte{byte('a' + i)}, 64<<10)
		payloads[string(payload)] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Put(id, FormatPPTX, payload)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	path, err := store.Open(id, FormatPPTX)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, payloads[string(data)], "file holds a mix of writes")
	assert.NoFileExists(t, path+".tmp")
	assert.Equal(t, []string{FormatPPTX}, store.Formats(id))
}

func TestArtifactStoreRejectsBadInput(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put("../escape", FormatPPTX, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = store.Put("6f1c1f52-2f0e-4a8e-9c53-1d3b8b1d7a11", "docx", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.ErrorIs(t, store.Delete(""), models.ErrInvalidInput)
}

func TestArtifactStoreCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artifacts.json"), []byte("{not json"), 0644))

	store, err := NewArtifactStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Formats("anything"))
}

func newService(t *testing.T, gen SlideGenerator, storage bool) *DeckService {
	t.Helper()
	a := NewAssembler(newFakeLoader(t), nil, fakePrinter{}, AssemblerOptions{})
	if !storage {
		return NewDeckService(gen, nil, a, nil, nil, 2)
	}
	decks, artifacts := openStores(t)
	return NewDeckService(gen, nil, a, decks, artifacts, 2)
}

func TestGenerateSlidesDefaults(t *testing.T) {
	gen := &fakeGenerator{slides: []models.Slide{{Type: models.SlideTitle, Title: "Go"}}}
	svc := newService(t, gen, false)

	resp, err := svc.GenerateSlides(context.Background(), models.GenerateSlidesRequest{Topic: "  Go  "})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.DeckID)
	assert.Equal(t, "Go", gen.req.Topic)
	assert.Equal(t, models.DefaultSlideCount, gen.req.SlideCount)
	assert.Equal(t, models.DefaultSlideStyle, gen.req.SlideStyle)
	assert.Equal(t, models.DefaultFontStyle, resp.Meta.FontStyle)
	assert.Equal(t, float64(models.DefaultTitleFontSize), resp.Meta.TitleFontSize)
	assert.Len(t, resp.Slides, 1)
}

func TestGenerateSlidesValidation(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, false)

	_, err := svc.GenerateSlides(context.Background(), models.GenerateSlidesRequest{Topic: " "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGenerateSlidesModelFailure(t *testing.T) {
	svc := newService(t, &fakeGenerator{err: models.ErrInvalidAIResponse}, false)

	_, err := svc.GenerateSlides(context.Background(), models.GenerateSlidesRequest{Topic: "Go"})
	assert.ErrorIs(t, err, models.ErrInvalidAIResponse)
}

func TestGenerateWithStorage(t *testing.T) {
	gen := &fakeGenerator{slides: sampleDeck().Slides}
	svc := newService(t, gen, true)

	resp, err := svc.GenerateSlides(context.Background(), models.GenerateSlidesRequest{Topic: "Gophers"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.DeckID)

	_, id, err := svc.GenerateDocuments(context.Background(), models.GenerateDocumentRequest{
		DeckID: resp.DeckID, Meta: resp.Meta, Slides: resp.Slides[:2],
	})
	require.NoError(t, err)
	assert.Equal(t, resp.DeckID, id)

	record, err := svc.GetDeck(id)
	require.NoError(t, err)
	assert.Equal(t, 2, record.SlideCount)
	assert.Equal(t, []string{FormatPDF, FormatPPTX}, record.Files)

	_, err = svc.ArtifactPath(id, FormatPPTX)
	require.NoError(t, err)

	_, fresh, err := svc.GenerateDocuments(context.Background(), models.GenerateDocumentRequest{
		DeckID: "0b0f5f6e-0000-4000-8000-000000000000", Meta: resp.Meta, Slides: resp.Slides,
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.DeckID, fresh)

	list, err := svc.ListDecks(10)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteDeck(id))
	_, err = svc.GetDeck(id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestHistoryWithoutStorage(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, false)

	_, err := svc.ListDecks(10)
	assert.ErrorIs(t, err, models.ErrStorageDisabled)
	_, err = svc.GetDeck("x")
	assert.ErrorIs(t, err, models.ErrStorageDisabled)
	assert.ErrorIs(t, svc.DeleteDeck("x"), models.ErrStorageDisabled)
	_, err = svc.ArtifactPath("x", FormatPDF)
	assert.ErrorIs(t, err, models.ErrStorageDisabled)
}
