package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(DEBUG, TextFormat)
	l.SetOutput(&buf)

	l.Info("server started", map[string]interface{}{"port": "8080"})

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("Expected level in output, got: %s", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("Expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "port") {
		t.Errorf("Expected field in output, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(DEBUG, JSONFormat)
	l.SetOutput(&buf)

	l.Warn("cache miss", map[string]interface{}{"key": "forecast"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected valid JSON output, got error: %v (output: %s)", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("Expected level WARN, got %v", entry["level"])
	}
	if entry["message"] != "cache miss" {
		t.Errorf("Expected message 'cache miss', got %v", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(ERROR, TextFormat)
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below ERROR level, got: %s", buf.String())
	}

	l.Error("visible", nil)
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected error output, got: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(INFO, TextFormat).WithComponent("geocode")
	l.SetOutput(&buf)

	l.Info("searching")
	if !strings.Contains(buf.String(), "geocode") {
		t.Errorf("Expected component in output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{"Warn", WARN, true},
		{"error", ERROR, true},
		{"bogus", INFO, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseLevel(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
