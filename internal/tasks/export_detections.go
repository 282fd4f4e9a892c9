package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/exporters"
)

const TypeExportDetections = "export_detections"

// DetectionLister reads every stored detection.
type DetectionLister interface {
	ListAll(ctx context.Context) ([]entities.Detection, error)
}

// ExportRecorder is notified of every export attempt.
type ExportRecorder interface {
	LogExport(description string, err error)
}

// ExportDetectionsTask dumps all detections to a file in the export directory.
// An empty Format falls back to the processor's default format.
type ExportDetectionsTask struct {
	Format string `json:"format,omitempty"`
}

func (t ExportDetectionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        TypeExportDetections,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportOptions configures where and how exports are written.
type ExportOptions struct {
	Dir           string
	DefaultFormat exporters.Format
}

func ExportDetectionsProcessor(lister DetectionLister, recorder ExportRecorder, opts ExportOptions) backlite.QueueProcessor[ExportDetectionsTask] {
	return func(ctx context.Context, task ExportDetectionsTask) error {
		if lister == nil {
			return fmt.Errorf("detection lister not configured")
		}

		result, err := runExport(ctx, lister, opts, task.Format)
		if recorder != nil {
			if err != nil {
				recorder.LogExport("Detections export failed", err)
			} else {
				recorder.LogExport(fmt.Sprintf("Exported %d detections to %s", result.DetectionsProcessed, result.Path), nil)
			}
		}
		if err != nil {
			return err
		}

		log.Printf("[TASK] Exported %d detections (%d palindromes) to %s",
			result.DetectionsProcessed, result.Palindromes, result.Path)
		return nil
	}
}

func runExport(ctx context.Context, lister DetectionLister, opts ExportOptions, format string) (exporters.ExportResult, error) {
	exportFormat := opts.DefaultFormat
	if format != "" {
		parsed, err := exporters.ParseFormat(format)
		if err != nil {
			return exporters.ExportResult{}, err
		}
		exportFormat = parsed
	}
	if exportFormat == "" {
		exportFormat = exporters.FormatMarkdown
	}

	exporter, err := exporters.NewExporter(exportFormat, opts.Dir)
	if err != nil {
		return exporters.ExportResult{}, err
	}

	detections, err := lister.ListAll(ctx)
	if err != nil {
		return exporters.ExportResult{}, fmt.Errorf("list detections: %w", err)
	}

	result, err := exporter.Export(detections)
	if err != nil {
		return exporters.ExportResult{}, fmt.Errorf("export detections: %w", err)
	}
	return result, nil
}

func NewExportDetectionsQueue(lister DetectionLister, recorder ExportRecorder, opts ExportOptions) backlite.Queue {
	return backlite.NewQueue(ExportDetectionsProcessor(lister, recorder, opts))
}
