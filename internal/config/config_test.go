package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errcatalog/internal/config"
	"github.com/dmitrymomot/errcatalog/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Empty(t, cfg.Dir)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, logger.FormatText, cfg.Log.LogFormat())
	assert.Equal(t, slog.LevelInfo, cfg.Log.LogLevel())
	assert.False(t, cfg.Log.Quality)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ERRCATALOG_DEFAULT_LOCALE", "fr")
	t.Setenv("ERRCATALOG_S3_BUCKET", "translations")
	t.Setenv("ERRCATALOG_S3_PREFIX", "errors/")
	t.Setenv("ERRCATALOG_S3_FORCE_PATH_STYLE", "true")
	t.Setenv("ERRCATALOG_HTTP_ADDR", ":9090")
	t.Setenv("ERRCATALOG_LOG_FORMAT", "json")
	t.Setenv("ERRCATALOG_LOG_LEVEL", "debug")
	t.Setenv("ERRCATALOG_LOG_QUALITY", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.DefaultLocale)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "errors/", cfg.S3.Prefix)
	assert.True(t, cfg.S3.ForcePathStyle)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, logger.FormatJSON, cfg.Log.LogFormat())
	assert.Equal(t, slog.LevelDebug, cfg.Log.LogLevel())
	assert.True(t, cfg.Log.Quality)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ERRCATALOG_DIR=/srv/errors\nERRCATALOG_HTTP_ADDR=:7070\n"), 0o600))
	// godotenv sets variables process-wide; register them for cleanup.
	t.Setenv("ERRCATALOG_DIR", "")
	os.Unsetenv("ERRCATALOG_DIR")
	t.Setenv("ERRCATALOG_HTTP_ADDR", ":6060")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/errors", cfg.Dir)
	assert.Equal(t, ":6060", cfg.HTTP.Addr, "environment wins over the env file")
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("ERRCATALOG_HTTP_READ_TIMEOUT", "soon")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "malformed locale", env: map[string]string{"ERRCATALOG_DEFAULT_LOCALE": "not a locale!"}},
		{name: "two sources", env: map[string]string{"ERRCATALOG_DIR": "/srv", "ERRCATALOG_S3_BUCKET": "b"}},
		{name: "log format", env: map[string]string{"ERRCATALOG_LOG_FORMAT": "xml"}},
		{name: "log level", env: map[string]string{"ERRCATALOG_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
