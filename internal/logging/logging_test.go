package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("FACETQ_CONFIG_PATH", "")
	config.Load()
	t.Cleanup(func() { ShutdownGlobal() })
	return tmp
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("FACETQ_LOGGING_ENABLED", "true")
	t.Setenv("FACETQ_LOGGING_LEVEL", "warn")
	t.Setenv("FACETQ_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	assert.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("FACETQ_DEBUG", "true")
	t.Setenv("FACETQ_QUIET", "true")
	t.Setenv("FACETQ_LOGGING_LEVEL", "info")
	config.Load()
	assert.Equal(t, "debug", FromGlobalConfig().Level, "debug wins")

	t.Setenv("FACETQ_DEBUG", "")
	config.Load()
	assert.Equal(t, "error", FromGlobalConfig().Level, "quiet raises level")

	t.Setenv("FACETQ_QUIET", "")
	t.Setenv("FACETQ_LOGGING_LEVEL", "warn")
	config.Load()
	assert.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "state", "facetq", "logs"), dir)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitDisabled(t *testing.T) {
	setupTest(t)

	logger, err := Init(DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, noopLogger{}, logger)
	logger.Info("dropped")
	assert.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	cfg.Command = "facetq query"

	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "facetq_"))
	assert.Contains(t, name, fmt.Sprintf("_PID%d_", os.Getpid()))
	assert.True(t, strings.HasSuffix(name, "_facetq_query.log"))

	info, err := os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir

	logger, err := Init(cfg)
	require.NoError(t, err)

	logger.Debug("below level")
	logger.With("component", "storage").Info("snapshot loaded", "items", 8, "backend", "file")
	require.NoError(t, logger.Shutdown())
	require.NoError(t, logger.Shutdown(), "shutdown is idempotent")

	path := logger.(*fileLogger).file.path
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "snapshot loaded", entry["msg"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])
	assert.Equal(t, "storage", entry["component"])
	assert.Equal(t, float64(8), entry["items"])
	assert.Equal(t, "file", entry["backend"])
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("facetq_20250101_12000%d_PID999_test.log", i)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, nil, 0600))
		// Higher i is older.
		old := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	foreign := filepath.Join(dir, "other_20250101.log")
	require.NoError(t, os.WriteFile(foreign, nil, 0600))

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	cfg.MaxFiles = 3
	logger, err := Init(cfg)
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	var ours []string
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "facetq_") {
			ours = append(ours, e.Name())
		}
	}
	assert.Len(t, ours, 3, "new file plus the two newest old files")
	assert.NotContains(t, ours, "facetq_20250101_120003_PID999_test.log")
	assert.NotContains(t, ours, "facetq_20250101_120002_PID999_test.log")
	assert.FileExists(t, foreign, "files of other programs are untouched")
}

func TestRotationDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "facetq_a.log"), nil, 0600))
	require.NoError(t, rotate(dir, -1))
	assert.FileExists(t, filepath.Join(dir, "facetq_a.log"))
	assert.Error(t, rotate(filepath.Join(dir, "missing"), 1))
}

func TestGlobalLogger(t *testing.T) {
	setupTest(t)
	assert.IsType(t, noopLogger{}, GetGlobal())
	assert.Empty(t, CurrentLogFile())

	t.Setenv("FACETQ_LOGGING_ENABLED", "true")
	config.Load()
	require.NoError(t, InitGlobal())

	path := CurrentLogFile()
	require.NotEmpty(t, path)
	Info("global message", "n", 1)
	With("component", "cmd").Warn("scoped")
	require.NoError(t, ShutdownGlobal())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "global message", lines[0]["msg"])
	assert.Equal(t, "cmd", lines[1]["component"])
	assert.Empty(t, CurrentLogFile())
}

func TestLevelParsing(t *testing.T) {
	tests := map[string]clog.Level{
		"debug":   clog.DebugLevel,
		"INFO":    clog.InfoLevel,
		"warn":    clog.WarnLevel,
		"warning": clog.WarnLevel,
		"error":   clog.ErrorLevel,
		"bogus":   clog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
