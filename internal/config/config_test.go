package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/multivar/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, config.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "multivar.yaml", `
kernel:
  step: 0.001
  workers: 2
cache:
  backend: redis
  redis_addr: cache:6379
  ttl: 30s
journal:
  backend: sqlite
  path: /tmp/journal.db
log:
  level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.001, cfg.Kernel.Step)
	assert.Equal(t, 2, cfg.Kernel.Workers)
	assert.Equal(t, config.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, config.BackendSQLite, cfg.Journal.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 200, cfg.Limits.MaxResolution)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "multivar.json", `{"http": {"addr": ":9090"}, "limits": {"max_steps": 50}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 50, cfg.Limits.MaxSteps)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "multivar.yaml", "http:\n  addr: ':9090'\nkernel:\n  step: 0.001\n")
	t.Setenv("MULTIVAR_HTTP_ADDR", ":7070")
	t.Setenv("MULTIVAR_KERNEL_PATH_STEPS", "40")
	t.Setenv("MULTIVAR_CACHE_TTL", "1m")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, 0.001, cfg.Kernel.Step)
	assert.Equal(t, 40, cfg.Kernel.PathSteps)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.yaml", "cache: [unclosed"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "backend.yaml", "cache:\n  backend: memcached\n"))
	assert.ErrorContains(t, err, "cache.backend")

	t.Setenv("MULTIVAR_LOG_LEVEL", "loud")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "log.level")
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Backend = config.BackendSQLite
	cfg.Journal.Path = " "
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Limits.MaxLevels = 0
	assert.Error(t, cfg.Validate())
}
