package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SUMMARY_TIMEZONE", "CORS_ALLOWED_ORIGINS", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Summary.Timezone)
	assert.Equal(t, 24*time.Hour, cfg.Summary.CacheTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SUMMARY_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("SUMMARY_CACHE_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_RUN_MIGRATIONS", "false")
	t.Setenv("DB_SLOW_QUERY_THRESHOLD", "1s")
	t.Setenv("RATE_LIMIT_LOGIN_MAX", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Summary.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Database.RunMigrations)
	assert.Equal(t, time.Second, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, 5, cfg.RateLimit.LoginMax)

	loc, err := cfg.Summary.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Server.Port = 0
	cfg.Summary.Timezone = "Mars/Olympus"
	cfg.Server.Environment = "production"
	cfg.JWT.Secret = "change-me-in-production"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "SUMMARY_TIMEZONE")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadThresholds(t *testing.T) {
	t.Run("empty path keeps the defaults", func(t *testing.T) {
		table, err := LoadThresholds("")
		require.NoError(t, err)
		assert.Equal(t, aggregation.DefaultThresholdTable(), table)
	})

	t.Run("overrides are merged per granularity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thresholds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("monthly:\n  housing: 0.35\n  childcare: 0\nweekly:\n  food: 0.05\n"), 0o600))

		table, err := LoadThresholds(path)
		require.NoError(t, err)
		assert.Equal(t, 0.35, table.Monthly[entity.CategoryHousing])
		assert.Equal(t, 0.0, table.Monthly[entity.CategoryChildcare])
		assert.Equal(t, 0.15, table.Monthly[entity.CategoryFood])
		assert.Equal(t, 0.05, table.Weekly[entity.CategoryFood])
		assert.Equal(t, 0.3, table.Yearly[entity.CategoryHousing])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadThresholds(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseThresholds_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"income category", "monthly:\n  salary: 0.5\n"},
		{"share above one", "monthly:\n  housing: 1.5\n"},
		{"negative share", "yearly:\n  taxes: -0.1\n"},
		{"unknown granularity", "daily:\n  food: 0.1\n"},
		{"not a number", "monthly:\n  food: lots\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThresholds([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	table, err := ParseThresholds(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Monthly)
}
