package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// Artifact formats kept on disk
const (
	FormatPPTX = "pptx"
	FormatPDF  = "pdf"
)

var formatFiles = map[string]string{
	FormatPPTX: "deck.pptx",
	FormatPDF:  "deck.pdf",
}

// ArtifactStore keeps generated files under dataPath/decks/{id} with an
// index in artifacts.json
type ArtifactStore struct {
	mu       sync.RWMutex
	filePath string
	dataPath string
	data     *models.ArtifactsFile
}

// NewArtifactStore creates an artifact store and loads its index
func NewArtifactStore(dataPath string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &ArtifactStore{
		filePath: filepath.Join(dataPath, "artifacts.json"),
		dataPath: dataPath,
		data: &models.ArtifactsFile{
			Decks: make(map[string]*models.ArtifactRecord),
		},
	}

	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	return store, nil
}

// Load reads artifacts.json. A missing or unreadable index starts empty.
func (s *ArtifactStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		log.Printf("Artifacts index not found, starting empty: %s", s.filePath)
		return nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read artifacts index: %w", err)
	}

	var file models.ArtifactsFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Failed to parse artifacts.json, using empty index: %v", err)
		return nil
	}
	if file.Decks == nil {
		file.Decks = make(map[string]*models.ArtifactRecord)
	}

	s.data = &file
	log.Printf("Loaded artifacts for %d decks from %s", len(s.data.Decks), s.filePath)
	return nil
}

// save atomically writes artifacts.json.
// Must be called with lock held.
func (s *ArtifactStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifacts: %w", err)
	}
	return writeAtomic(s.filePath, data)
}

// writeAtomic writes data to path via a temp file, fsync and rename, so
// readers see either the old or the new content
func writeAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Put writes the file for format and records it in the index. It returns
// the path relative to the data directory.
func (s *ArtifactStore) Put(deckID, format string, data []byte) (string, error) {
	if err := checkID(deckID); err != nil {
		return "", err
	}
	name, ok := formatFiles[format]
	if !ok {
		return "", fmt.Errorf("%w: unknown format %q", models.ErrInvalidInput, format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dirPath := filepath.Join(s.dataPath, "decks", deckID)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeAtomic(filepath.Join(dirPath, name), data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", format, err)
	}
	relativePath := filepath.Join("decks", deckID, name)

	record, exists := s.data.Decks[deckID]
	if !exists {
		record = &models.ArtifactRecord{DeckID: deckID}
		s.data.Decks[deckID] = record
	}
	if record.Files == nil {
		record.Files = make(map[string]string)
	}
	record.Files[format] = relativePath
	record.UpdatedAt = time.Now().UTC()

	if err := s.save(); err != nil {
		return "", fmt.Errorf("failed to save after storing %s: %w", format, err)
	}

	log.Printf("Stored artifact: deck=%s, format=%s, path=%s", deckID, format, relativePath)
	return relativePath, nil
}

// Remove drops format from a deck's record, so a stale file is not served
// after a regeneration that failed to produce it.
func (s *ArtifactStore) Remove(deckID, format string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.data.Decks[deckID]
	if !exists {
		return nil
	}
	if _, ok := record.Files[format]; !ok {
		return nil
	}
	delete(record.Files, format)
	if name, ok := formatFiles[format]; ok {
		os.Remove(filepath.Join(s.dataPath, "decks", deckID, name))
	}
	return s.save()
}

// Open returns the absolute path of a stored file
func (s *ArtifactStore) Open(deckID, format string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.data.Decks[deckID]
	if !exists {
		return "", fmt.Errorf("artifacts for deck %s: %w", deckID, models.ErrNotFound)
	}
	rel, ok := record.Files[format]
	if !ok {
		return "", fmt.Errorf("%s for deck %s: %w", format, deckID, models.ErrNotFound)
	}
	return filepath.Join(s.dataPath, rel), nil
}

// Formats lists the formats stored for a deck, sorted
func (s *ArtifactStore) Formats(deckID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.data.Decks[deckID]
	if !exists {
		return nil
	}
	formats := make([]string, 0, len(record.Files))
	for f := range record.Files {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Delete removes every file of a deck and its index entry
func (s *ArtifactStore) Delete(deckID string) error {
	if err := checkID(deckID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(s.dataPath, "decks", deckID)); err != nil {
		return fmt.Errorf("failed to remove deck files: %w", err)
	}
	if _, exists := s.data.Decks[deckID]; !exists {
		return nil
	}
	delete(s.data.Decks, deckID)

	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save after delete: %w", err)
	}
	log.Printf("Deleted artifacts for deck %s", deckID)
	return nil
}

// checkID rejects ids that are not uuids so they cannot name paths outside
// the data directory
func checkID(deckID string) error {
	if _, err := uuid.Parse(deckID); err != nil {
		return fmt.Errorf("%w: bad deck id %q", models.ErrInvalidInput, deckID)
	}
	return nil
}
