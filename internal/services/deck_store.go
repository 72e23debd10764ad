package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// DeckStore keeps generated decks in sqlite so they survive a reload
type DeckStore struct {
	database *sql.DB
	now      func() time.Time
}

// NewDeckStore creates a deck store over an opened database
func NewDeckStore(database *sql.DB) *DeckStore {
	return &DeckStore{
		database: database,
		now:      time.Now,
	}
}

// Save stores a new deck and returns its id
func (ds *DeckStore) Save(deck *models.Deck) (string, error) {
	if deck == nil {
		return "", fmt.Errorf("%w: deck is required", models.ErrInvalidInput)
	}

	payload, err := json.Marshal(deck)
	if err != nil {
		return "", fmt.Errorf("failed to marshal deck: %w", err)
	}

	id := uuid.NewString()
	now := ds.now().UTC()

	query := `INSERT INTO decks
		(id, topic, slide_style, slide_count, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = ds.database.Exec(query, id, deck.Meta.Topic, deck.Meta.SlideStyle, len(deck.Slides), string(payload), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert deck: %w", err)
	}

	log.Printf("Deck saved: id=%s, topic=%q, slides=%d", id, deck.Meta.Topic, len(deck.Slides))
	return id, nil
}

// Update replaces the stored content of deck id
func (ds *DeckStore) Update(id string, deck *models.Deck) error {
	if deck == nil {
		return fmt.Errorf("%w: deck is required", models.ErrInvalidInput)
	}

	payload, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	query := `UPDATE decks
		SET topic = ?, slide_style = ?, slide_count = ?, payload = ?, updated_at = ?
		WHERE id = ?`

	result, err := ds.database.Exec(query, deck.Meta.Topic, deck.Meta.SlideStyle, len(deck.Slides), string(payload), ds.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}

	log.Printf("Deck updated: id=%s", id)
	return nil
}

// Get returns the deck with its content
func (ds *DeckStore) Get(id string) (*models.DeckRecord, error) {
	query := `SELECT id, topic, slide_style, slide_count, payload, created_at, updated_at
		FROM decks WHERE id = ?`

	var record models.DeckRecord
	var payload string

	err := ds.database.QueryRow(query, id).Scan(
		&record.ID,
		&record.Topic,
		&record.SlideStyle,
		&record.SlideCount,
		&payload,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query deck: %w", err)
	}

	var deck models.Deck
	if err := json.Unmarshal([]byte(payload), &deck); err != nil {
		return nil, fmt.Errorf("failed to decode stored deck %s: %w", id, err)
	}
	record.Deck = &deck

	return &record, nil
}

// List returns deck summaries, newest first. Content is not loaded.
func (ds *DeckStore) List(limit int) ([]*models.DeckRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `SELECT id, topic, slide_style, slide_count, created_at, updated_at
		FROM decks ORDER BY created_at DESC, id LIMIT ?`

	rows, err := ds.database.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	records := []*models.DeckRecord{}
	for rows.Next() {
		var record models.DeckRecord

		err := rows.Scan(
			&record.ID,
			&record.Topic,
			&record.SlideStyle,
			&record.SlideCount,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// Delete removes deck id
func (ds *DeckStore) Delete(id string) error {
	query := `DELETE FROM decks WHERE id = ?`
	result, err := ds.database.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("deck %s: %w", id, models.ErrNotFound)
	}

	log.Printf("Deck deleted: %s", id)
	return nil
}
