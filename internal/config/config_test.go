package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GOPOLY_ADDR", "GOPOLY_LOG_LEVEL", "GOPOLY_LOG_FORMAT", "GOPOLY_STRICT"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "x", cfg.Poly.Variable)
	assert.False(t, cfg.Poly.Strict)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "gopoly.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9999"
	cfg.Poly.Variable = "t"
	cfg.Poly.Strict = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "gopoly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "gopoly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("overrides apply without a config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOPOLY_ADDR", ":7000")
		t.Setenv("GOPOLY_LOG_LEVEL", "warn")
		t.Setenv("GOPOLY_LOG_FORMAT", "text")
		t.Setenv("GOPOLY_STRICT", "true")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.True(t, cfg.Poly.Strict)
	})

	t.Run("invalid strict flag is an error", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOPOLY_STRICT", "maybe")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOPOLY_STRICT")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server address"},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"bad duration", func(c *Config) { c.Server.IdleTimeout = "soon" }, "idle_timeout"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "invalid logging level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid logging format"},
		{"empty variable", func(c *Config) { c.Poly.Variable = "" }, "poly.variable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestServerTimeouts(t *testing.T) {
	s := DefaultConfig().Server
	assert.Equal(t, 5*time.Second, s.GetReadHeaderTimeout())
	assert.Equal(t, 10*time.Second, s.GetShutdownTimeout())

	s.ReadTimeout = "garbage"
	assert.Equal(t, 15*time.Second, s.GetReadTimeout())
	s.WriteTimeout = "2s"
	assert.Equal(t, 2*time.Second, s.GetWriteTimeout())
	assert.Equal(t, 60*time.Second, s.GetIdleTimeout())
}
