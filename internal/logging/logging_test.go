package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "DEBUG", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: " error ", want: LevelError},
		{input: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogLevelConstants(t *testing.T) {
	levels := []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i] >= levels[i+1] {
			t.Errorf("Log levels should be in ascending order: %v >= %v", levels[i], levels[i+1])
		}
	}
}

// Tests below mutate the package-level level and the std logger output,
// so they do not run in parallel.

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestSetLevelFiltersMessages(t *testing.T) {
	buf := captureOutput(t)
	previous := GetLevel()
	t.Cleanup(func() { SetLevel(previous) })

	SetLevel(LevelWarn)
	Debug("hidden debug")
	Info("hidden info")
	Warn("visible %s", "warning")
	Error("visible error %d", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn should be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] visible warning") {
		t.Errorf("missing warning line, got:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] visible error 7") {
		t.Errorf("missing error line, got:\n%s", out)
	}
}

func TestIsDebugEnabledFollowsLevel(t *testing.T) {
	previous := GetLevel()
	t.Cleanup(func() { SetLevel(previous) })

	SetLevel(LevelDebug)
	if !IsDebugEnabled() {
		t.Error("IsDebugEnabled() = false at debug level")
	}
	SetLevel(LevelInfo)
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled() = true at info level")
	}
}

func TestPrintfIgnoresLevel(t *testing.T) {
	buf := captureOutput(t)
	previous := GetLevel()
	t.Cleanup(func() { SetLevel(previous) })

	SetLevel(LevelError)
	Printf("always %s", "printed")

	if !strings.Contains(buf.String(), "always printed") {
		t.Errorf("Printf output missing, got %q", buf.String())
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.expected {
				t.Errorf("LogLevel.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
