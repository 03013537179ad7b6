package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/multivar/internal/config"
	"github.com/aretw0/multivar/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_Defaults(t *testing.T) {
	app := newApp(t, config.Default())

	_, err := app.Service.Dispatch(context.Background(), "evaluate", map[string]any{"expr": "x+y", "at": "1,2"})
	require.NoError(t, err)

	history, err := app.Service.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestNewApp_KernelSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Kernel.Step = 1e-3
	cfg.Kernel.PathSteps = 40
	cfg.Kernel.Workers = 2

	app := newApp(t, cfg)
	settings := app.Service.Kernel().Settings()
	assert.Equal(t, 1e-3, settings.Step)
	assert.Equal(t, 40, settings.PathSteps)
	assert.Equal(t, 2, settings.Workers)
}

func TestNewApp_SQLiteAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.RedisAddr = mr.Addr()
	cfg.Journal.Backend = config.BackendSQLite
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")

	app := newApp(t, cfg)
	params := map[string]any{"expr": "x^2+y^2", "at": "1,1"}
	_, err := app.Service.Dispatch(context.Background(), "gradient", params)
	require.NoError(t, err)
	_, err = app.Service.Dispatch(context.Background(), "gradient", params)
	require.NoError(t, err)

	assert.NotEmpty(t, mr.Keys())

	history, err := app.Service.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Cached)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.RedisAddr = addr

	_, err := NewApp(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestNewApp_NoBackends(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.BackendNone
	cfg.Journal.Backend = config.BackendNone

	app := newApp(t, cfg)
	history, err := app.Service.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestResolveOutput(t *testing.T) {
	var buf bytes.Buffer

	got, err := ResolveOutput("auto", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, got)

	got, err = ResolveOutput("md", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputMarkdown, got)

	_, err = ResolveOutput("xml", &buf)
	assert.Error(t, err)
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, OutputJSON, "evaluate", map[string]float64{"value": 3}))
	assert.JSONEq(t, `{"value": 3}`, buf.String())
}

func TestRunWorksheet(t *testing.T) {
	app := newApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tasks:
  - op: evaluate
    params: {expr: "x*y", at: [2, 3]}
  - op: normalize
    params: {vector: [0, 5]}
`), 0o600))

	var buf bytes.Buffer
	require.NoError(t, RunWorksheet(context.Background(), app, path, &buf, OutputJSON))

	var results []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "1-evaluate", results[0]["task"])
	assert.Equal(t, map[string]any{"value": 6.0}, results[0]["value"])
}

func TestRunWorksheet_ReportsFailures(t *testing.T) {
	app := newApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  - op: divergence\n"), 0o600))

	var buf bytes.Buffer
	err := RunWorksheet(context.Background(), app, path, &buf, OutputMarkdown)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "1-divergence (divergence) failed")
}
