package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/exporters"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (f *fakeCleaner) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, f.err
}

type fakeLister struct {
	detections []entities.Detection
	err        error
}

func (f *fakeLister) ListAll(ctx context.Context) ([]entities.Detection, error) {
	return f.detections, f.err
}

type recordedExport struct {
	description string
	err         error
}

type fakeRecorder struct {
	calls []recordedExport
}

func (f *fakeRecorder) LogExport(description string, err error) {
	f.calls = append(f.calls, recordedExport{description: description, err: err})
}

type fakePruner struct {
	retention time.Duration
	err       error
}

func (f *fakePruner) Prune(retention time.Duration) (int, error) {
	f.retention = retention
	return 1, f.err
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()

	assert.Equal(t, TypeCleanupAuditEvents, cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 4}
		err := CleanupAuditEventsProcessor(cleaner, nil)(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("defaults retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		err := CleanupAuditEventsProcessor(cleaner, nil)(context.Background(), CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("wraps cleaner error", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("locked")}
		err := CleanupAuditEventsProcessor(cleaner, nil)(context.Background(), CleanupAuditEventsTask{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})

	t.Run("fails without cleaner", func(t *testing.T) {
		err := CleanupAuditEventsProcessor(nil, nil)(context.Background(), CleanupAuditEventsTask{})
		assert.Error(t, err)
	})

	t.Run("prunes archive with the same retention", func(t *testing.T) {
		pruner := &fakePruner{}
		err := CleanupAuditEventsProcessor(&fakeCleaner{}, pruner)(context.Background(), CleanupAuditEventsTask{RetentionDays: 2})
		require.NoError(t, err)
		assert.Equal(t, 48*time.Hour, pruner.retention)
	})

	t.Run("prune failure does not fail the task", func(t *testing.T) {
		pruner := &fakePruner{err: errors.New("permission denied")}
		err := CleanupAuditEventsProcessor(&fakeCleaner{}, pruner)(context.Background(), CleanupAuditEventsTask{})
		assert.NoError(t, err)
	})

	t.Run("cleaner failure skips pruning", func(t *testing.T) {
		pruner := &fakePruner{}
		err := CleanupAuditEventsProcessor(&fakeCleaner{err: errors.New("locked")}, pruner)(context.Background(), CleanupAuditEventsTask{})
		require.Error(t, err)
		assert.Zero(t, pruner.retention)
	})
}

func TestExportDetectionsTaskConfig(t *testing.T) {
	cfg := ExportDetectionsTask{}.Config()

	assert.Equal(t, TypeExportDetections, cfg.Name)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
}

func TestExportDetectionsProcessor(t *testing.T) {
	lister := &fakeLister{detections: []entities.Detection{
		{ID: 1, Text: "racecar", Language: palindrome.English, IsPalindrome: true, Timestamp: time.Now()},
		{ID: 2, Text: "hello", Language: palindrome.English, IsPalindrome: false, Timestamp: time.Now()},
	}}

	t.Run("writes default format and records success", func(t *testing.T) {
		dir := t.TempDir()
		recorder := &fakeRecorder{}
		process := ExportDetectionsProcessor(lister, recorder, ExportOptions{Dir: dir, DefaultFormat: exporters.FormatJSON})

		require.NoError(t, process(context.Background(), ExportDetectionsTask{}))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, ".json", filepath.Ext(files[0].Name()))

		require.Len(t, recorder.calls, 1)
		assert.NoError(t, recorder.calls[0].err)
		assert.True(t, strings.HasPrefix(recorder.calls[0].description, "Exported 2 detections"))
	})

	t.Run("task format overrides default", func(t *testing.T) {
		dir := t.TempDir()
		process := ExportDetectionsProcessor(lister, nil, ExportOptions{Dir: dir, DefaultFormat: exporters.FormatJSON})

		require.NoError(t, process(context.Background(), ExportDetectionsTask{Format: "markdown"}))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, ".md", filepath.Ext(files[0].Name()))
	})

	t.Run("invalid format fails and is recorded", func(t *testing.T) {
		recorder := &fakeRecorder{}
		process := ExportDetectionsProcessor(lister, recorder, ExportOptions{Dir: t.TempDir()})

		err := process(context.Background(), ExportDetectionsTask{Format: "xml"})
		require.Error(t, err)
		require.Len(t, recorder.calls, 1)
		assert.Error(t, recorder.calls[0].err)
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		failing := &fakeLister{err: errors.New("database is locked")}
		process := ExportDetectionsProcessor(failing, nil, ExportOptions{Dir: t.TempDir()})

		err := process(context.Background(), ExportDetectionsTask{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})
}

func TestNewTask(t *testing.T) {
	task, err := NewTask(TypeExportDetections, RunParams{Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, ExportDetectionsTask{Format: "json"}, task)

	task, err = NewTask(TypeCleanupAuditEvents, RunParams{RetentionDays: 5})
	require.NoError(t, err)
	assert.Equal(t, CleanupAuditEventsTask{RetentionDays: 5}, task)

	task, err = NewTask(TypeExportDetections, RunParams{})
	require.NoError(t, err)
	assert.Equal(t, ExportDetectionsTask{}, task)

	_, err = NewTask(TypeExportDetections, RunParams{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported export format")

	_, err = NewTask("rebuild_index", RunParams{})
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	types := Types()
	require.Len(t, types, 2)
	assert.Equal(t, TypeExportDetections, types[0].Type)
	assert.Equal(t, TypeCleanupAuditEvents, types[1].Type)
}
