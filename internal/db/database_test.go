package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "decks.db")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='decks'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "decks", name)

	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_decks_created_at'`).Scan(&name)
	require.NoError(t, err)
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
