package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/palindromes/internal/database"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"flag text", []string{"-text", "Able was I ere I saw Elba"}, `"Able was I ere I saw Elba" is a palindrome (EN)`},
		{"trailing args", []string{"-lang", "es", "Dábale", "arroz", "a", "la", "zorra", "el", "abad"}, `"Dábale arroz a la zorra el abad" is a palindrome (ES)`},
		{"accents only fold for ES", []string{"-lang", "EN", "ába"}, `"ába" is not a palindrome (EN)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewCheckCommand()
			cmd.out = &out

			require.NoError(t, cmd.ParseFlags(tt.args))
			require.NoError(t, cmd.Run())
			assert.Equal(t, tt.expected+"\n", out.String())
		})
	}
}

func TestCheckCommand_InvalidLanguage(t *testing.T) {
	cmd := NewCheckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-lang", "FR", "abba"}))

	err := cmd.Run()
	assert.ErrorIs(t, err, palindrome.ErrInvalidLanguage)
}

func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palindrome.db")
	db, err := database.NewDatabase(database.DefaultConfig(path))
	require.NoError(t, err)

	repo := detections.NewRepository(db.DB)
	ctx := context.Background()
	_, err = repo.Insert(ctx, "Able was I ere I saw Elba", palindrome.English, true)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "This is not a palindrome", palindrome.English, false)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	return path
}

func TestExportCommand(t *testing.T) {
	dbPath := seedDatabase(t)

	t.Run("markdown to stdout", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewExportCommand()
		cmd.out = &out

		require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath}))
		require.NoError(t, cmd.Run())

		assert.Contains(t, out.String(), "total: 2")
		assert.Contains(t, out.String(), "Able was I ere I saw Elba")
	})

	t.Run("json to file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "detections.json")
		cmd := NewExportCommand()

		require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath, "-format", "json", "-out", outPath}))
		require.NoError(t, cmd.Run())

		content, err := os.ReadFile(outPath)
		require.NoError(t, err)

		var doc struct {
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(content, &doc))
		assert.Equal(t, 2, doc.Total)
	})

	t.Run("missing database", func(t *testing.T) {
		cmd := NewExportCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-db", filepath.Join(t.TempDir(), "missing.db")}))

		assert.Error(t, cmd.Run())
	})
}
