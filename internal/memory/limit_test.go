package memory

import (
	"math"
	"os"
	"runtime/debug"
	"testing"
)

// restoreLimit puts the soft memory limit back after a test changes it.
func restoreLimit(t *testing.T) {
	t.Helper()
	previous := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(previous) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GOMEMLIMIT", "MEMORY_LIMIT", "MEMORY_RATIO"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigureFromEnvNoVariables(t *testing.T) {
	clearEnv(t)
	restoreLimit(t)

	result := ConfigureFromEnv()
	if result.Configured || result.Source != "none" {
		t.Errorf("result = %+v, want unconfigured with source none", result)
	}
}

func TestConfigureFromEnvMemoryLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		ratio     string
		wantLimit int64
		wantRatio float64
	}{
		{"plain bytes", "1073741824", "", 1073741824, DefaultMemoryRatio},
		{"with unit", "512MiB", "", 512 << 20, DefaultMemoryRatio},
		{"custom ratio", "1GiB", "0.5", 1 << 30, 0.5},
		{"ratio of one", "1GiB", "1", 1 << 30, 1},
		{"ratio too large", "1GiB", "1.5", 1 << 30, DefaultMemoryRatio},
		{"ratio zero", "1GiB", "0", 1 << 30, DefaultMemoryRatio},
		{"ratio not a number", "1GiB", "half", 1 << 30, DefaultMemoryRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			restoreLimit(t)
			t.Setenv("MEMORY_LIMIT", tt.limit)
			if tt.ratio != "" {
				t.Setenv("MEMORY_RATIO", tt.ratio)
			}

			result := ConfigureFromEnv()
			if !result.Configured || result.Source != "MEMORY_LIMIT" {
				t.Fatalf("result = %+v, want configured from MEMORY_LIMIT", result)
			}
			if result.ContainerLimit != tt.wantLimit {
				t.Errorf("ContainerLimit = %d, want %d", result.ContainerLimit, tt.wantLimit)
			}
			if result.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %v, want %v", result.Ratio, tt.wantRatio)
			}
			want := int64(float64(tt.wantLimit) * tt.wantRatio)
			if result.GoMemLimit != want {
				t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, want)
			}
			if got := debug.SetMemoryLimit(-1); got != want {
				t.Errorf("runtime limit = %d, want %d", got, want)
			}
		})
	}
}

func TestConfigureFromEnvInvalidLimit(t *testing.T) {
	for _, limit := range []string{"lots", "-5", "0"} {
		t.Run(limit, func(t *testing.T) {
			clearEnv(t)
			restoreLimit(t)
			t.Setenv("MEMORY_LIMIT", limit)

			before := debug.SetMemoryLimit(-1)
			result := ConfigureFromEnv()
			if result.Configured {
				t.Errorf("result = %+v, want unconfigured", result)
			}
			if got := debug.SetMemoryLimit(-1); got != before {
				t.Errorf("runtime limit changed to %d", got)
			}
		})
	}
}

func TestConfigureFromEnvGOMEMLIMITWins(t *testing.T) {
	clearEnv(t)
	restoreLimit(t)
	debug.SetMemoryLimit(256 << 20)
	t.Setenv("GOMEMLIMIT", "256MiB")
	t.Setenv("MEMORY_LIMIT", "1GiB")

	result := ConfigureFromEnv()
	if result.Source != "GOMEMLIMIT" {
		t.Errorf("Source = %q, want GOMEMLIMIT", result.Source)
	}
	if result.GoMemLimit != 256<<20 {
		t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, 256<<20)
	}
	if got := debug.SetMemoryLimit(-1); got == math.MaxInt64 {
		t.Error("runtime limit unset")
	}
}
