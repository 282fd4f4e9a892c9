package exporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/palindromes/internal/entities"
)

// Format names an export file format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

type DetectionExporter interface {
	// Write renders detections to w.
	Write(w io.Writer, detections []entities.Detection) error
	// Export writes detections to a new timestamped file in the export directory.
	Export(detections []entities.Detection) (ExportResult, error)
}

type ExportResult struct {
	DetectionsProcessed int    `json:"detections_processed"`
	Palindromes         int    `json:"palindromes"`
	Path                string `json:"path"`
}

// ParseFormat accepts "markdown", "md" and "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// NewExporter returns the exporter for format writing into exportDir.
func NewExporter(format Format, exportDir string) (DetectionExporter, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownExporter(exportDir), nil
	case FormatJSON:
		return NewJSONExporter(exportDir), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// writeExportFile creates <dir>/detections-<timestamp><ext> and renders into it.
func writeExportFile(dir string, format Format, now time.Time, detections []entities.Detection, render func(io.Writer, []entities.Detection) error) (ExportResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	outputPath := filepath.Join(dir, "detections-"+now.UTC().Format("20060102-150405")+format.extension())
	file, err := os.Create(outputPath)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := render(file, detections); err != nil {
		return ExportResult{}, err
	}

	result := ExportResult{
		DetectionsProcessed: len(detections),
		Path:                outputPath,
	}
	for _, d := range detections {
		if d.IsPalindrome {
			result.Palindromes++
		}
	}
	return result, nil
}
