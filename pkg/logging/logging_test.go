package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestInfoIncludesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Info("Sweeper", "promoted %d runs", 3)

	out := buf.String()
	if !strings.Contains(out, "promoted 3 runs") {
		t.Errorf("expected formatted message in output, got %q", out)
	}
	if !strings.Contains(out, "subsystem=Sweeper") {
		t.Errorf("expected subsystem attribute in output, got %q", out)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Debug("Watcher", "should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output for suppressed debug entry, got %q", buf.String())
	}
}

func TestDebugEmittedAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Debug("Watcher", "tagging %s", "ns/run")

	if !strings.Contains(buf.String(), "tagging ns/run") {
		t.Errorf("expected debug entry, got %q", buf.String())
	}
}

func TestErrorAttachesError(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Error("Store", errors.New("boom"), "patch failed")

	out := buf.String()
	if !strings.Contains(out, "patch failed") || !strings.Contains(out, "boom") {
		t.Errorf("expected message and error in output, got %q", out)
	}
}
