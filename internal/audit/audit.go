package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// archivedRequest is the on-disk envelope written for every archived payload.
type archivedRequest struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	ReceivedAt time.Time `json:"received_at"`
	Payload    any       `json:"payload"`
}

// Archiver keeps a copy of raw request payloads as JSON files, grouped into
// one directory per day: <dir>/2006-01-02/<uuid>.json.
type Archiver struct {
	Dir string
	now func() time.Time
}

func NewArchiver(dir string) *Archiver {
	return &Archiver{Dir: dir, now: time.Now}
}

// Archive writes payload to a new file and returns its path relative to Dir.
func (a *Archiver) Archive(kind string, payload any) (string, error) {
	receivedAt := a.now().UTC()
	dayDir := filepath.Join(a.Dir, receivedAt.Format(dayLayout))
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	record := archivedRequest{
		ID:         uuid.New().String(),
		Kind:       kind,
		ReceivedAt: receivedAt,
		Payload:    payload,
	}

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal archived request: %w", err)
	}

	filename := record.ID + ".json"
	if err := os.WriteFile(filepath.Join(dayDir, filename), jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	return filepath.Join(receivedAt.Format(dayLayout), filename), nil
}

// Prune removes day directories whose whole day lies before now minus retention.
// Entries that are not day directories are left alone. A missing Dir is not an error.
func (a *Archiver) Prune(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(a.Dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read archive directory: %w", err)
	}

	cutoff := a.now().UTC().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		day, err := time.Parse(dayLayout, entry.Name())
		if err != nil {
			continue
		}
		if !day.Add(24 * time.Hour).Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(a.Dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove archive day %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
