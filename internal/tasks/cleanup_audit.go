package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const (
	TypeCleanupAuditEvents = "cleanup_audit_events"

	defaultAuditRetentionDays = 30
)

// AuditEventCleaner deletes audit events older than a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// ArchivePruner removes archived request payloads older than a retention window.
type ArchivePruner interface {
	Prune(retention time.Duration) (int, error)
}

// CleanupAuditEventsTask applies the audit retention window to both the event
// table and the request archive. Zero RetentionDays means the default of 30.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) retention() (int, time.Duration) {
	days := t.RetentionDays
	if days <= 0 {
		days = defaultAuditRetentionDays
	}
	return days, time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        TypeCleanupAuditEvents,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor deletes expired audit events and, when pruner is
// set, expired archive directories. A pruning failure is logged, not returned.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, pruner ArchivePruner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		days, retention := task.retention()

		deleted, err := cleaner.DeleteOldEvents(ctx, retention)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}
		log.Printf("[TASK] Removed %d audit events older than %d days", deleted, days)

		if pruner == nil {
			return nil
		}
		removed, err := pruner.Prune(retention)
		if err != nil {
			log.Printf("[TASK] Failed to prune request archive: %v", err)
			return nil
		}
		log.Printf("[TASK] Removed %d request archive days older than %d days", removed, days)
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, pruner ArchivePruner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, pruner))
}
