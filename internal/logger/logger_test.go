package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogInfo)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed: %s", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "INFO: shown 2") {
		t.Errorf("Expected info line, got %q", out)
	}
	if !strings.Contains(out, "ERROR: failed: boom") {
		t.Errorf("Expected error line, got %q", out)
	}

	l.SetLogLevel(LogDebug)
	l.Debugf("now visible")
	if !strings.Contains(buf.String(), "DEBUG: now visible") {
		t.Error("Expected debug line after lowering the level")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogDebug, false},
		{"INFO", LogInfo, false},
		{"Error", LogError, false},
		{"trace", LogInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMemLogger(t *testing.T) {
	var l MemLogger
	l.Infof("tool %s", "length")
	if !l.Contains("INFO: tool length") {
		t.Errorf("Expected recorded line, got %v", l.Lines())
	}
	var _ ILogger = &l
	var _ ILogger = NullLogger{}
}
