package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrlokans/palindromes/internal/tasks"
)

type fakeQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (f *fakeQueue) Enqueue(task backlite.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.tasks = append(f.tasks, task)
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&fakeQueue{}, Config{
		ExportSchedule: "0 * * * *",
		AuditSchedule:  "0 3 * * *",
	})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun(JobExportDetections))
	assert.NotNil(t, s.NextRun(JobCleanupAuditEvents))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun(JobExportDetections))
}

func TestScheduler_DisabledJobs(t *testing.T) {
	s := New(&fakeQueue{}, Config{AuditSchedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Nil(t, s.NextRun(JobExportDetections))
	assert.NotNil(t, s.NextRun(JobCleanupAuditEvents))
}

func TestScheduler_NothingScheduled(t *testing.T) {
	s := New(&fakeQueue{}, Config{})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(&fakeQueue{}, Config{ExportSchedule: "nope"})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.False(t, s.IsRunning())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := New(&fakeQueue{}, Config{AuditSchedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	queue := &fakeQueue{}
	s := New(queue, Config{ExportFormat: "json", AuditRetentionDays: 14})

	id, err := s.RunNow(JobExportDetections)
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)

	_, err = s.RunNow(JobCleanupAuditEvents)
	require.NoError(t, err)

	require.Len(t, queue.tasks, 2)
	assert.Equal(t, tasks.ExportDetectionsTask{Format: "json"}, queue.tasks[0])
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 14}, queue.tasks[1])

	_, err = s.RunNow("sync_readwise")
	assert.Error(t, err)
}

func TestScheduler_RunNowQueueError(t *testing.T) {
	s := New(&fakeQueue{err: errors.New("queue closed")}, Config{})

	_, err := s.RunNow(JobExportDetections)
	assert.EqualError(t, err, "queue closed")
}
