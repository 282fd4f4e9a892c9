// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pool sizing, migrations
//	├── detections/      # Detection store: insert, list, get, delete, stats
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over the shared *gorm.DB:
//
//	db, err := database.NewDatabase(database.DefaultConfig("./palindrome.db"))
//
//	detectionsRepo := detections.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	record, err := detectionsRepo.Insert(ctx, "abba", palindrome.English, true)
//	record, found, err := detectionsRepo.Get(ctx, record.ID)
//
// # Interface Implementations
//
//   - detections.Repository: implements http.DetectionStore, http.StatsStore
//     and tasks.DetectionLister
//   - audit.Repository: backs audit.Service, which implements http.DetectionAuditor
//
// # Timestamps
//
// SQLite stores times as text, so every timestamp is written in UTC; gorm's
// NowFunc is set accordingly.
package database
