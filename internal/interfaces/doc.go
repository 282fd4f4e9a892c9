// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - DetectionStore: insert, list, get and delete detections (internal/http/detections.go)
//   - DetectionCounter: total count for /health (internal/http/health.go)
//   - StatsStore: per-language totals for /api/stats (internal/http/stats.go)
//   - DetectionLister: full dump for the export task (internal/tasks/export_detections.go)
//
// All four are implemented by detections.Repository.
//
// ## Checker
//
//   - PalindromeChecker: the predicate used by the detect handler (internal/http/detections.go)
//
// palindrome.Checker is the implementation. metrics.InstrumentChecker wraps any
// Checker and counts results without changing them.
//
// ## Audit Interfaces
//
//   - DetectionAuditor: non-blocking records of detect and delete (internal/http/detections.go)
//   - AuditReader: paginated event listing and per-detection history (internal/http/audit.go)
//   - RequestArchiver: raw copies of detect requests (internal/http/detections.go)
//   - ExportRecorder, AuditEventCleaner: used by background tasks (internal/tasks/)
//
// ## Export Interfaces
//
//   - DetectionExporter: render detections to a writer or to a timestamped file
//     (internal/exporters/generic.go)
//
// ## Background Work
//
//   - TaskQueue: enqueue and inspect tasks over HTTP (internal/http/tasks.go)
//   - Enqueuer: what the cron scheduler needs from the queue (internal/scheduler/scheduler.go)
//
// # Adding a New Export Format
//
//  1. Implement DetectionExporter in internal/exporters/
//
//     type CSVExporter struct {
//         ExportDir string
//     }
//
//     func (e *CSVExporter) Write(w io.Writer, detections []entities.Detection) error
//     func (e *CSVExporter) Export(detections []entities.Detection) (ExportResult, error)
//
//  2. Add a Format constant and a case in ParseFormat and NewExporter
//
//  3. Add a compile-time check in checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
