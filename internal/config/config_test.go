package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

storage:
  type: "local"
  local_path: "./test-data"
  flush_interval_seconds: 30

redis:
  addr: "redis.internal:6379"
  enabled: true

events:
  sink: "redis"
  stream: "test:events"

simulation:
  tick_interval_millis: 250
  max_batch: 5

pricing:
  per_message_usd: 0.25

seed_demo_data: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./test-data", cfg.Storage.LocalPath)
	assert.Equal(t, 30, cfg.Storage.FlushIntervalSeconds)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis", cfg.Events.Sink)
	assert.Equal(t, "test:events", cfg.Events.Stream)
	assert.Equal(t, 250, cfg.Simulation.TickIntervalMillis)
	assert.Equal(t, 5, cfg.Simulation.MaxBatch)
	assert.Equal(t, 0.25, cfg.Pricing.PerMessageUSD)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 0\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "none", cfg.Storage.Type)
	assert.Equal(t, "log", cfg.Events.Sink)
	assert.Equal(t, "flutterbye:business_events", cfg.Events.Stream)
	assert.Equal(t, 2000, cfg.Simulation.TickIntervalMillis)
	assert.Equal(t, 10, cfg.Simulation.MaxBatch)
	assert.Equal(t, 0.25, cfg.Pricing.PerMessageUSD)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 9090\n"), 0644)
	require.NoError(t, err)

	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_ADDR", "override:6379")
	t.Setenv("DATABASE_URL", "postgres://test")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "override:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "postgres://test", cfg.Database.URL)
	assert.True(t, cfg.Database.Enabled)
}
