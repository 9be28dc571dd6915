package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SCAN_DELAY", "")

	cfg := Load()

	assert.Equal(t, "loadboard", cfg.ServiceName)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 2*time.Second, cfg.ScanDelay)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("SCAN_DELAY", "150ms")
	t.Setenv("POSTGRES_USER", "lb")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "board")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 150*time.Millisecond, cfg.ScanDelay)
	assert.Equal(t, "postgres://lb:secret@db:5433/board?sslmode=disable", cfg.PostgresURL())
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
