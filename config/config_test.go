package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "channels", cfg.Redis.Channel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://chat:secret@db:5432/chat")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "8")
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "250ms")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://chat:secret@db:5432/chat", cfg.Database.URL)
	assert.Equal(t, 8, cfg.Database.MaxOpenConns)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.ConnectTimeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadRejectsEmptyPool(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadReportsMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=\"postgres://unterminated\n"), 0o600))
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := Load()
	assert.ErrorContains(t, err, "load .env")
}
