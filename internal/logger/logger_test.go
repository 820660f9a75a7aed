package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	td.Require(t).CmpNoError(json.Unmarshal(buf.Bytes(), &m), buf.String())
	return m
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg Config
		cfg.ApplyDefaults()
		td.Cmp(t, cfg, Config{Level: "info", Format: FormatConsole, Output: "stderr"})
		td.CmpNoError(t, cfg.Validate())
	})

	t.Run("invalid_level", func(t *testing.T) {
		cfg := Config{Level: "loud", Format: FormatJSON}
		td.CmpContains(t, cfg.Validate(), "logging.level")
	})

	t.Run("invalid_format", func(t *testing.T) {
		cfg := Config{Level: "debug", Format: "xml"}
		td.CmpContains(t, cfg.Validate(), "logging.format")
	})

	t.Run("invalid_output", func(t *testing.T) {
		cfg := Config{Level: "debug", Format: FormatJSON, Output: "syslog"}
		td.CmpContains(t, cfg.Validate(), "logging.output")
	})
}

func TestLogger(t *testing.T) {
	t.Run("json_output", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		l := NewWithWriter(Config{Level: "debug", Format: FormatJSON}, "conveyor", &buf)

		// Act
		l.WithComponent("cli").Info("started", map[string]any{"capacity": 3})

		// Assert
		td.Cmp(t, decode(t, &buf), map[string]any{
			"level":     "info",
			"service":   "conveyor",
			"component": "cli",
			"capacity":  3.0,
			"message":   "started",
		})
	})

	t.Run("level_filter", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		l := NewWithWriter(Config{Level: "warn", Format: FormatJSON}, "conveyor", &buf)

		// Act
		l.Debug("hidden")
		l.Info("hidden too")

		// Assert
		td.CmpEmpty(t, buf.String())
	})

	t.Run("error_field", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		l := NewWithWriter(Config{Format: FormatJSON}, "conveyor", &buf)

		// Act
		l.Error("run failed", errors.New("boom"))

		// Assert
		td.Cmp(t, decode(t, &buf), td.SuperMapOf(map[string]any{"level": "error", "error": "boom", "message": "run failed"}, nil))
	})

	t.Run("invalid_level_falls_back_to_info", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		l := NewWithWriter(Config{Level: "loud", Format: FormatJSON}, "conveyor", &buf)

		// Act
		l.Debug("hidden")
		l.Info("shown")

		// Assert
		td.Cmp(t, decode(t, &buf), td.SuperMapOf(map[string]any{"message": "shown"}, nil))
	})

	t.Run("console_output", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		l := NewWithWriter(Config{Format: FormatConsole, NoColor: true}, "conveyor", &buf)

		// Act
		l.Info("hello")

		// Assert
		td.Cmp(t, buf.String(), td.All(td.Contains("INF"), td.Contains("hello"), td.Contains("service=conveyor")))
	})

	t.Run("zerolog_is_shared", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(Config{Format: FormatJSON}, "conveyor", &buf)

		zl := l.Zerolog()
		zl.Info().Msg("direct")

		td.Cmp(t, decode(t, &buf), td.SuperMapOf(map[string]any{"service": "conveyor", "message": "direct"}, nil))
	})
}
