package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the sqlite database at dbPath, creating its directory and
// schema when missing.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("Database initialized at: %s", dbPath)
	return database, nil
}

// createTables creates the deck history schema
func createTables(database *sql.DB) error {
	createDecksTable := `
	CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL DEFAULT '',
		slide_style TEXT NOT NULL DEFAULT '',
		slide_count INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := database.Exec(createDecksTable); err != nil {
		return fmt.Errorf("failed to create decks table: %w", err)
	}

	// History listing is newest first
	createIndex := `CREATE INDEX IF NOT EXISTS idx_decks_created_at ON decks(created_at);`
	if _, err := database.Exec(createIndex); err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	return nil
}
