package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/palindromes/internal/exporters"
)

// TypeInfo describes a task type that can be triggered manually.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Types lists every task type the service registers.
func Types() []TypeInfo {
	return []TypeInfo{
		{Type: TypeExportDetections, Description: "Export all stored detections to a file"},
		{Type: TypeCleanupAuditEvents, Description: "Delete audit events older than the retention period"},
	}
}

// RunParams carries the optional knobs of a manually triggered task.
type RunParams struct {
	Format        string `json:"format,omitempty" form:"format"`
	RetentionDays int    `json:"retention_days,omitempty" form:"retention_days"`
}

// NewTask builds the task for taskType. Unknown types and export formats are
// rejected before anything is enqueued.
func NewTask(taskType string, params RunParams) (backlite.Task, error) {
	switch taskType {
	case TypeExportDetections:
		if params.Format != "" {
			if _, err := exporters.ParseFormat(params.Format); err != nil {
				return nil, err
			}
		}
		return ExportDetectionsTask{Format: params.Format}, nil
	case TypeCleanupAuditEvents:
		return CleanupAuditEventsTask{RetentionDays: params.RetentionDays}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}
