package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/mrlokans/palindromes/internal/database/audit"
	"github.com/mrlokans/palindromes/internal/entities"
)

const entityTypeDetection = "detection"

// RequestInfo identifies the client behind an audited operation.
type RequestInfo struct {
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// CreatedAt is taken at call time so events keep their call order.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogDetect records a palindrome check and the detection it produced.
func (s *Service) LogDetect(record *entities.Detection, req RequestInfo) {
	id := record.ID
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDetect,
		Action:      "detect",
		Description: fmt.Sprintf("Checked %d characters in %s", len([]rune(record.Text)), record.Language),
		EntityType:  entityTypeDetection,
		EntityID:    &id,
		IPAddress:   req.IPAddress,
		UserAgent:   truncate(req.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"language":      record.Language,
		"is_palindrome": record.IsPalindrome,
	}
	if mdBytes, err := json.Marshal(metadata); err == nil {
		event.Metadata = string(mdBytes)
	}

	s.LogAsync(event)
}

// LogDelete records a delete-by-id request. A request for a missing id is
// recorded as failed.
func (s *Service) LogDelete(id uint, deleted bool, req RequestInfo) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      "detection_delete",
		Description: fmt.Sprintf("Deleted detection %d", id),
		EntityType:  entityTypeDetection,
		EntityID:    &id,
		IPAddress:   req.IPAddress,
		UserAgent:   truncate(req.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if !deleted {
		event.Status = entities.AuditStatusFailed
		event.Description = fmt.Sprintf("Detection %d not found", id)
	}
	if !storableID(id) {
		event.EntityID = nil
	}

	s.LogAsync(event)
}

// LogExport records an export of the stored detections.
func (s *Service) LogExport(description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "detections_export",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, eventType, limit, offset)
}

// GetDetectionHistory returns the audit trail of one detection.
func (s *Service) GetDetectionHistory(ctx context.Context, id uint) ([]entities.AuditEvent, error) {
	if !storableID(id) {
		return []entities.AuditEvent{}, nil
	}
	return s.repo.GetEventsForEntity(ctx, entityTypeDetection, id)
}

// storableID reports whether id fits a signed 64-bit SQLite integer column.
func storableID(id uint) bool {
	return uint64(id) <= math.MaxInt64
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
