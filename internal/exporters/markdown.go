package exporters

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

type MarkdownExporter struct {
	ExportDir string
	now       func() time.Time
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir: exportDir,
		now:       time.Now,
	}
}

// GenerateMarkdown renders detections as a single document with YAML
// frontmatter and one section per language.
func GenerateMarkdown(detections []entities.Detection, generatedAt time.Time) string {
	var builder strings.Builder

	palindromes := 0
	byLanguage := make(map[palindrome.Language][]entities.Detection)
	for _, d := range detections {
		byLanguage[d.Language] = append(byLanguage[d.Language], d)
		if d.IsPalindrome {
			palindromes++
		}
	}

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: palindrome_detections\n")
	fmt.Fprintf(&builder, "created_at: %s\n", generatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&builder, "total: %d\n", len(detections))
	fmt.Fprintf(&builder, "palindromes: %d\n", palindromes)
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Detections\n\n")

	if len(detections) == 0 {
		fmt.Fprintf(&builder, "_No detections stored._\n")
		return builder.String()
	}

	for _, lang := range palindrome.Languages() {
		group := byLanguage[lang]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&builder, "## %s\n\n", lang)
		for _, d := range group {
			mark := " "
			if d.IsPalindrome {
				mark = "x"
			}
			fmt.Fprintf(&builder, "- [%s] #%d %s: %s\n", mark, d.ID,
				d.Timestamp.UTC().Format("2006-01-02 15:04:05"),
				strings.ReplaceAll(d.Text, "\n", " "))
		}
		fmt.Fprintf(&builder, "\n")
	}

	return builder.String()
}

func (exporter *MarkdownExporter) Write(w io.Writer, detections []entities.Detection) error {
	if _, err := io.WriteString(w, GenerateMarkdown(detections, exporter.now())); err != nil {
		return fmt.Errorf("failed to write markdown export: %w", err)
	}
	return nil
}

func (exporter *MarkdownExporter) Export(detections []entities.Detection) (ExportResult, error) {
	return writeExportFile(exporter.ExportDir, FormatMarkdown, exporter.now(), detections, exporter.Write)
}
