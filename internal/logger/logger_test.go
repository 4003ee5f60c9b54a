package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("filters below configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(Config{Level: "warn"}, &buf)

		l.Info().Msg("hidden")
		if buf.Len() != 0 {
			t.Errorf("Expected info to be filtered, got %q", buf.String())
		}

		l.Warn().Str("component", "test").Msg("shown")
		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
		}
		if entry["message"] != "shown" || entry["component"] != "test" || entry["level"] != "warn" {
			t.Errorf("Unexpected log entry: %v", entry)
		}
	})

	t.Run("falls back to info on unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(Config{Level: "chatty"}, &buf)

		l.Debug().Msg("hidden")
		l.Info().Msg("shown")
		if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
			t.Errorf("Expected exactly one line, got %q", buf.String())
		}
	})
}
