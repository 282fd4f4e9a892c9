package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/palindromes/internal/audit"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/exporters"
	"github.com/mrlokans/palindromes/internal/http"
	"github.com/mrlokans/palindromes/internal/metrics"
	"github.com/mrlokans/palindromes/internal/palindrome"
	"github.com/mrlokans/palindromes/internal/scheduler"
	"github.com/mrlokans/palindromes/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// DetectionStore implementations
var _ http.DetectionStore = (*detections.Repository)(nil)
var _ http.DetectionCounter = (*detections.Repository)(nil)
var _ http.StatsStore = (*detections.Repository)(nil)
var _ tasks.DetectionLister = (*detections.Repository)(nil)

// =============================================================================
// Checker
// =============================================================================

var _ http.PalindromeChecker = palindrome.Checker{}
var _ metrics.Checker = palindrome.Checker{}

// =============================================================================
// Audit
// =============================================================================

var _ http.DetectionAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.RequestArchiver = (*audit.Archiver)(nil)
var _ tasks.ExportRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Export Pipeline
// =============================================================================

var _ exporters.DetectionExporter = (*exporters.MarkdownExporter)(nil)
var _ exporters.DetectionExporter = (*exporters.JSONExporter)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ tasks.ArchivePruner = (*audit.Archiver)(nil)
