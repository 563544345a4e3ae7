package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("Warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_DETAILED", "true")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "DEBUG", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.DetailedLogging)
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "json", Output: &buf}))

	Info(context.Background(), "Report analysis completed", "months", 2)
	Debug(context.Background(), "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Report analysis completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(2), entry["months"])
}

func TestErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "text", Output: &buf}))

	ErrorWithErr(context.Background(), "Failed to load report", errors.New("boom"), "path", "r.htm")
	out := buf.String()
	assert.Contains(t, out, "Failed to load report")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "path=r.htm")
}

func TestRowDroppedNeedsDetailedLogging(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", Output: &buf}))
	RowDropped(context.Background(), "extract", 4, "excluded_type")
	assert.Empty(t, buf.String())

	require.NoError(t, InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", DetailedLogging: true, Output: &buf}))
	assert.True(t, IsDebugEnabled())
	RowDropped(context.Background(), "extract", 4, "excluded_type")
	out := buf.String()
	assert.Contains(t, out, "type=ROW_DROPPED")
	assert.Contains(t, out, "row=4")
	assert.Contains(t, out, "reason=excluded_type")

	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "text"}))
}

func TestZapFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "zap", Output: &buf}))
	defer func() {
		Shutdown()
		zapLogger = nil
		_ = InitWithConfig(LogConfig{Level: "INFO", Format: "text"})
	}()

	Warn(context.Background(), "Config file not found, using defaults", "path", "config.yaml")
	Shutdown()

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Config file not found, using defaults", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "config.yaml", entry["path"])
}

func TestOperationTimer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", Output: &buf}))

	timer := StartOperation(context.Background(), "analyzer.pipeline", "source", "r.htm")
	assert.NotNil(t, timer.GetContext())
	timer.EndWithError(errors.New("bad"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), "source=r.htm")

	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "text"}))
}
