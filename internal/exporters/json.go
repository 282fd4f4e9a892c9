package exporters

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

type jsonDetection struct {
	ID           uint                `json:"id"`
	Text         string              `json:"text"`
	Language     palindrome.Language `json:"language"`
	IsPalindrome bool                `json:"is_palindrome"`
	Timestamp    time.Time           `json:"timestamp"`
}

type jsonDocument struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Total       int             `json:"total"`
	Detections  []jsonDetection `json:"detections"`
}

type JSONExporter struct {
	ExportDir string
	now       func() time.Time
}

func NewJSONExporter(exportDir string) *JSONExporter {
	return &JSONExporter{
		ExportDir: exportDir,
		now:       time.Now,
	}
}

func (exporter *JSONExporter) Write(w io.Writer, detections []entities.Detection) error {
	doc := jsonDocument{
		GeneratedAt: exporter.now().UTC(),
		Total:       len(detections),
		Detections:  make([]jsonDetection, 0, len(detections)),
	}
	for _, d := range detections {
		doc.Detections = append(doc.Detections, jsonDetection{
			ID:           d.ID,
			Text:         d.Text,
			Language:     d.Language,
			IsPalindrome: d.IsPalindrome,
			Timestamp:    d.Timestamp.UTC(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write json export: %w", err)
	}
	return nil
}

func (exporter *JSONExporter) Export(detections []entities.Detection) (ExportResult, error) {
	return writeExportFile(exporter.ExportDir, FormatJSON, exporter.now(), detections, exporter.Write)
}
