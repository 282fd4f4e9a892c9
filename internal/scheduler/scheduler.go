package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/palindromes/internal/tasks"
)

const (
	JobExportDetections   = "export_detections"
	JobCleanupAuditEvents = "cleanup_audit_events"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands tasks to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// Config selects which periodic jobs run and when.
// An empty schedule disables the job.
type Config struct {
	ExportSchedule     string
	ExportFormat       string
	AuditSchedule      string
	AuditRetentionDays int
}

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Scheduler enqueues periodic export and audit cleanup tasks.
type Scheduler struct {
	queue  Enqueuer
	config Config

	cron      *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func New(queue Enqueuer, cfg Config) *Scheduler {
	return &Scheduler{
		queue:   queue,
		config:  cfg,
		cron:    cron.New(cron.WithParser(cronParser)),
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers the configured jobs and starts the cron loop.
// The scheduler stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := map[string]string{
		JobExportDetections:   s.config.ExportSchedule,
		JobCleanupAuditEvents: s.config.AuditSchedule,
	}
	for name, schedule := range jobs {
		if schedule == "" {
			log.Printf("[SCHEDULER] %s: disabled", name)
			continue
		}
		if err := ValidateCronSchedule(schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", schedule, name, err)
		}
		jobName := name
		entryID, err := s.cron.AddFunc(schedule, func() {
			if _, err := s.RunNow(jobName); err != nil {
				log.Printf("[SCHEDULER] %s: %v", jobName, err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", name, err)
		}
		s.entries[name] = entryID
	}

	if len(s.entries) == 0 {
		return nil
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("[SCHEDULER] started with %d jobs", len(s.entries))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and stops the cron loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	s.isRunning = false

	log.Printf("[SCHEDULER] stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when job fires next, or nil if it is not scheduled.
func (s *Scheduler) NextRun(job string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[job]
	if !ok || !s.isRunning {
		return nil
	}
	next := s.cron.Entry(id).Next
	return &next
}

// RunNow enqueues job immediately and returns the task ID.
func (s *Scheduler) RunNow(job string) (string, error) {
	var task backlite.Task
	switch job {
	case JobExportDetections:
		task = tasks.ExportDetectionsTask{Format: s.config.ExportFormat}
	case JobCleanupAuditEvents:
		task = tasks.CleanupAuditEventsTask{RetentionDays: s.config.AuditRetentionDays}
	default:
		return "", fmt.Errorf("unknown job: %s", job)
	}

	id, err := s.queue.Enqueue(task)
	if err != nil {
		return "", err
	}
	log.Printf("[SCHEDULER] %s: enqueued task %s", job, id)
	return id, nil
}
