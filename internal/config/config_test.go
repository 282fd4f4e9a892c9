package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Empty(t, cfg.HTTP.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "Palindrome Detection API", cfg.Global.AppName)
	assert.Equal(t, "production", cfg.Global.Environment)
	assert.False(t, cfg.Global.Debug)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.Equal(t, "markdown", cfg.Export.Format)
	assert.False(t, cfg.Export.Enabled)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.False(t, cfg.Demo.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_PREFIX", "/api/v1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("ENVIRONMENT", "Development")
	t.Setenv("TASK_WORKERS", "4")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/api/v1", cfg.HTTP.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "development", cfg.Global.Environment)
	assert.True(t, cfg.Global.Debug)
	assert.Equal(t, 4, cfg.Tasks.Workers)
}

func TestNewConfig_DatabasePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		url      string
		expected string
	}{
		{"default", "", "", DefaultDatabasePath},
		{"explicit path", "/data/p.db", "", "/data/p.db"},
		{"sqlite url", "", "sqlite:///../palindrome.db", "../palindrome.db"},
		{"path wins over url", "/data/p.db", "sqlite:///other.db", "/data/p.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_PATH", tt.path)
			t.Setenv("DATABASE_URL", tt.url)

			assert.Equal(t, tt.expected, NewConfig().Database.Path)
		})
	}
}

func TestNewConfig_ReadOnly(t *testing.T) {
	t.Run("READ_ONLY", func(t *testing.T) {
		t.Setenv("READ_ONLY", "true")
		assert.True(t, NewConfig().Demo.Enabled)
	})

	t.Run("legacy DEMO_MODE", func(t *testing.T) {
		t.Setenv("DEMO_MODE", "1")
		assert.True(t, NewConfig().Demo.Enabled)
	})
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"*"}, splitList("*"))
}
