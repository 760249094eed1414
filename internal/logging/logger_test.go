package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(nil, LevelTrace, "mapping decision")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label in output, got: %s", buf.String())
	}
}

func TestNewTraceLogger_InfoLevelReturnsNil(t *testing.T) {
	tl := NewTraceLogger(t.TempDir(), "info")
	if tl != nil {
		t.Error("expected nil TraceLogger at info level")
	}

	// Nil receiver must be safe.
	tl.Log(map[string]any{"stage": "embed"})
	tl.Stage("embed", time.Millisecond, nil)
	tl.Close()
}

func TestTraceLogger_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	if tl == nil {
		t.Fatal("expected TraceLogger at debug level")
	}
	defer tl.Close()

	tl.Log(map[string]any{"stage": "map", "edges": 3})
	tl.Stage("embed", 5*time.Millisecond, map[string]any{"nodes": 12})

	data, err := os.ReadFile(filepath.Join(dir, "trace.jsonl"))
	if err != nil {
		t.Fatalf("reading trace file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first["stage"] != "map" {
		t.Errorf("expected stage 'map', got %v", first["stage"])
	}
	if _, ok := first["time"]; !ok {
		t.Error("expected automatic time field")
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not valid JSON: %v", err)
	}
	if second["stage"] != "embed" {
		t.Errorf("expected stage 'embed', got %v", second["stage"])
	}
	if _, ok := second["elapsed_ms"]; !ok {
		t.Error("expected elapsed_ms field from Stage")
	}
}

func TestTraceLogger_DoesNotMutateCallerMap(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	if tl == nil {
		t.Fatal("expected TraceLogger at debug level")
	}
	defer tl.Close()

	event := map[string]any{"stage": "communities"}
	tl.Log(event)

	if _, ok := event["time"]; ok {
		t.Error("Log mutated the caller's map")
	}
}

func TestTraceLogger_CloseIsIdempotent(t *testing.T) {
	tl := NewTraceLogger(t.TempDir(), "trace")
	if tl == nil {
		t.Fatal("expected TraceLogger at trace level")
	}

	tl.Close()
	tl.Close()
	tl.Log(map[string]any{"stage": "late"}) // no-op after close
}
