package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMustLoadPath(t *testing.T) {
	path := writeConfig(t, `
env: prod
admin_id: 42
http:
  address: ":9090"
  allowed_origins: ["https://santa.example"]
database:
  driver: postgres
  dsn: "postgres://santa@db/santa"
storage:
  type: s3
  bucket: gifts
game:
  rejoin_policy: reset
  proof_mode: photo
  broadcast_delay: 1s
  language: ru
reminders:
  enabled: true
  interval: 6h
`)

	cfg := MustLoadPath(path)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://santa.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, StorageS3, cfg.Storage.Type)
	assert.Equal(t, "gifts", cfg.Storage.Bucket)
	assert.Equal(t, "reset", cfg.Game.RejoinPolicy)
	assert.Equal(t, "photo", cfg.Game.ProofMode)
	assert.Equal(t, time.Second, cfg.Game.BroadcastDelay)
	assert.Equal(t, "ru", cfg.Game.Language)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Reminders.Interval)
}

func TestMustLoadPathDefaults(t *testing.T) {
	cfg := MustLoadPath(writeConfig(t, "admin_id: 7\n"))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "santa.db", cfg.Database.Path)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.Equal(t, "keep", cfg.Game.RejoinPolicy)
	assert.Equal(t, "any", cfg.Game.ProofMode)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.BroadcastDelay)
	assert.Equal(t, "en", cfg.Game.Language)
	assert.False(t, cfg.Reminders.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Reminders.Interval)
}

func TestMustLoadPathEnvOverride(t *testing.T) {
	t.Setenv("SANTA_ADMIN_ID", "555")
	t.Setenv("GAME_PROOF_MODE", "code")

	cfg := MustLoadPath(writeConfig(t, "admin_id: 7\n"))
	assert.Equal(t, int64(555), cfg.AdminID)
	assert.Equal(t, "code", cfg.Game.ProofMode)
}

func TestMustLoadPathPanics(t *testing.T) {
	assert.PanicsWithValue(t, "admin_id is required", func() {
		MustLoadPath(writeConfig(t, "env: local\n"))
	})
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
