package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvironmentDevelopment = "development"

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Export
		Tasks
		Demo
		Metrics
	}

	HTTP struct {
		Port               int32
		Host               string
		APIPrefix          string   // Mounted before every route, e.g. "/api/v1"
		CORSAllowedOrigins []string // Empty disables CORS handling
	}
	Global struct {
		AppName                  string
		Description              string
		Environment              string
		Debug                    bool // true when Environment is "development"
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path            string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}
	Audit struct {
		Dir             string
		RetentionDays   int    // Days to keep audit events (default: 30)
		ArchiveRequests bool   // Keep a JSON copy of every detect request under Dir
		CleanupSchedule string // Cron format, empty disables scheduled cleanup
	}
	Export struct {
		Dir      string
		Format   string // markdown or json
		Enabled  bool
		Schedule string // Cron format: "0 2 * * *" = daily at 02:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Demo struct {
		Enabled bool // Read-only mode: every write endpoint answers 403
	}
	Metrics struct {
		Enabled bool
	}
)

// getDatabasePath prefers DATABASE_PATH and falls back to a sqlite DATABASE_URL.
func getDatabasePath(v *viper.Viper) string {
	if path := v.GetString("DATABASE_PATH"); path != "" {
		return path
	}
	if url := v.GetString("DATABASE_URL"); url != "" {
		return strings.TrimPrefix(url, sqliteURLPrefix)
	}
	return DefaultDatabasePath
}

// getReadOnly accepts both READ_ONLY and the legacy DEMO_MODE switch.
func getReadOnly(v *viper.Viper) bool {
	return v.GetBool("READ_ONLY") || v.GetBool("DEMO_MODE")
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("api_prefix", "")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("app_name", "Palindrome Detection API")
	v.SetDefault("description", "API for detecting and managing palindromes in English and Spanish")
	v.SetDefault("environment", "production")

	// Database defaults
	v.SetDefault("database_path", "")
	v.SetDefault("database_url", "")
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", "1h")

	// Audit defaults
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_archive_requests", false)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	// Export defaults
	v.SetDefault("export_dir", "./exports")
	v.SetDefault("export_format", "markdown")
	v.SetDefault("export_enabled", false)
	v.SetDefault("export_schedule", "0 2 * * *") // Daily at 02:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("read_only", false)
	v.SetDefault("demo_mode", false)
	v.SetDefault("metrics_enabled", true)

	environment := strings.ToLower(v.GetString("ENVIRONMENT"))

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			APIPrefix:          v.GetString("API_PREFIX"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			AppName:                  v.GetString("APP_NAME"),
			Description:              v.GetString("DESCRIPTION"),
			Environment:              environment,
			Debug:                    environment == EnvironmentDevelopment,
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:            getDatabasePath(v),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Audit: Audit{
			Dir:             v.GetString("AUDIT_DIR"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			ArchiveRequests: v.GetBool("AUDIT_ARCHIVE_REQUESTS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Export: Export{
			Dir:      v.GetString("EXPORT_DIR"),
			Format:   v.GetString("EXPORT_FORMAT"),
			Enabled:  v.GetBool("EXPORT_ENABLED"),
			Schedule: v.GetString("EXPORT_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Demo: Demo{
			Enabled: getReadOnly(v),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
