package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDriverNeedsNoPassword(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Database.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.JWT.Secret)
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	t.Run("port", func(t *testing.T) {
		t.Setenv("APP_PORT", "eighty")
		_, err := Load()
		assert.ErrorContains(t, err, "APP_PORT")
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := Load()
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User: "payroll", Password: "secret", Host: "db", Port: 5433, Name: "core", SSLMode: "require",
	}}
	assert.Equal(t, "postgres://payroll:secret@db:5433/core?sslmode=require", cfg.DatabaseURL())
}
