package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AghoghoOgbotor18/AIPPT/internal/content"
	"github.com/AghoghoOgbotor18/AIPPT/internal/images"
	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// SlideGenerator produces slide records for a request
type SlideGenerator interface {
	Generate(ctx context.Context, req models.GenerateSlidesRequest) ([]models.Slide, error)
}

var _ SlideGenerator = (*content.Generator)(nil)

// DeckService runs the two generation steps and the optional deck history
type DeckService struct {
	generator   SlideGenerator
	searcher    images.Searcher
	assembler   *Assembler
	decks       *DeckStore
	artifacts   *ArtifactStore
	concurrency int
}

// NewDeckService creates a deck service. searcher may be nil; decks and
// artifacts are nil when storage is disabled.
func NewDeckService(generator SlideGenerator, searcher images.Searcher, assembler *Assembler, decks *DeckStore, artifacts *ArtifactStore, concurrency int) *DeckService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &DeckService{
		generator:   generator,
		searcher:    searcher,
		assembler:   assembler,
		decks:       decks,
		artifacts:   artifacts,
		concurrency: concurrency,
	}
}

// StorageEnabled reports whether decks are persisted
func (s *DeckService) StorageEnabled() bool {
	return s.decks != nil
}

// GenerateSlides asks the model for slides on req.Topic and resolves their
// image queries
func (s *DeckService) GenerateSlides(ctx context.Context, req models.GenerateSlidesRequest) (*models.GenerateSlidesResponse, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", models.ErrInvalidInput)
	}
	if req.SlideCount <= 0 {
		req.SlideCount = models.DefaultSlideCount
	}
	meta := req.Meta().WithDefaults()
	req.TitleFontSize = meta.TitleFontSize
	req.TextFontSize = meta.TextFontSize
	req.FontStyle = meta.FontStyle
	req.SlideStyle = meta.SlideStyle

	slides, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	slides, err = images.ResolveQueries(ctx, s.searcher, slides, s.concurrency)
	if err != nil {
		return nil, err
	}

	resp := &models.GenerateSlidesResponse{
		Success: true,
		Meta:    meta,
		Slides:  slides,
	}

	if s.decks != nil {
		id, err := s.decks.Save(&models.Deck{Meta: meta, Slides: slides})
		if err != nil {
			log.Printf("Failed to store generated deck: %v", err)
		} else {
			resp.DeckID = id
		}
	}
	return resp, nil
}

// GenerateDocuments renders the edited deck. With storage enabled the deck
// and its files are stored under req.DeckID, or a new id when it is empty
// or unknown.
func (s *DeckService) GenerateDocuments(ctx context.Context, req models.GenerateDocumentRequest) (*Documents, string, error) {
	deck := &models.Deck{Meta: req.Meta, Slides: req.Slides}

	docs, err := s.assembler.Assemble(ctx, deck)
	if err != nil {
		return nil, "", err
	}

	if s.decks == nil {
		return docs, "", nil
	}
	id, err := s.store(req.DeckID, deck, docs)
	if err != nil {
		log.Printf("Failed to store documents: %v", err)
		return docs, "", nil
	}
	return docs, id, nil
}

func (s *DeckService) store(id string, deck *models.Deck, docs *Documents) (string, error) {
	if id != "" {
		err := s.decks.Update(id, deck)
		if errors.Is(err, models.ErrNotFound) {
			log.Printf("Deck %s not found, storing as new", id)
			id = ""
		} else if err != nil {
			return "", err
		}
	}
	if id == "" {
		var err error
		if id, err = s.decks.Save(deck); err != nil {
			return "", err
		}
	}

	if _, err := s.artifacts.Put(id, FormatPPTX, docs.PPTX); err != nil {
		return "", err
	}
	if docs.PDF != nil {
		if _, err := s.artifacts.Put(id, FormatPDF, docs.PDF); err != nil {
			return "", err
		}
	} else if err := s.artifacts.Remove(id, FormatPDF); err != nil {
		return "", err
	}
	return id, nil
}

// Thumbnail renders one slide of deck as PNG
func (s *DeckService) Thumbnail(ctx context.Context, deck *models.Deck, index, width int) ([]byte, error) {
	return s.assembler.Thumbnail(ctx, deck, index, width)
}

// ListDecks returns stored deck summaries with their available formats
func (s *DeckService) ListDecks(limit int) ([]*models.DeckRecord, error) {
	if s.decks == nil {
		return nil, models.ErrStorageDisabled
	}
	records, err := s.decks.List(limit)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		r.Files = s.artifacts.Formats(r.ID)
	}
	return records, nil
}

// GetDeck returns a stored deck
func (s *DeckService) GetDeck(id string) (*models.DeckRecord, error) {
	if s.decks == nil {
		return nil, models.ErrStorageDisabled
	}
	record, err := s.decks.Get(id)
	if err != nil {
		return nil, err
	}
	record.Files = s.artifacts.Formats(id)
	return record, nil
}

// DeleteDeck removes a stored deck and its files
func (s *DeckService) DeleteDeck(id string) error {
	if s.decks == nil {
		return models.ErrStorageDisabled
	}
	if err := s.decks.Delete(id); err != nil {
		return err
	}
	if err := s.artifacts.Delete(id); err != nil {
		log.Printf("Failed to delete files of deck %s: %v", id, err)
	}
	return nil
}

// ArtifactPath returns the on-disk path of a stored file
func (s *DeckService) ArtifactPath(id, format string) (string, error) {
	if s.decks == nil {
		return "", models.ErrStorageDisabled
	}
	return s.artifacts.Open(id, format)
}
