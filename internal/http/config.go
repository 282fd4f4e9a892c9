package http

import (
	"github.com/mrlokans/palindromes/internal/database"
	"github.com/mrlokans/palindromes/internal/demo"
	"github.com/mrlokans/palindromes/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Detections DetectionStore
	Checker    PalindromeChecker
	Database   *database.Database

	// Optional: counts for /health and /api/stats
	Counter DetectionCounter
	Stats   StatsStore

	// Optional: audit trail and raw request archive
	Auditor  DetectionAuditor
	Audit    AuditReader
	Archiver RequestArchiver

	// Optional: background task queue
	TaskQueue TaskQueue

	// Optional: request metrics and GET /metrics, outside APIPrefix
	Metrics *metrics.Metrics

	// Optional: blocks writes when enabled
	ReadOnly *demo.Middleware

	// APIPrefix is prepended to every route, e.g. "/api/v1". Empty by default.
	APIPrefix string

	// Application info
	Info ServiceInfo
}
