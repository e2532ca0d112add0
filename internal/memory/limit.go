package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"multi-image-viewer/internal/logging"

	"github.com/dustin/go-humanize"
)

// DefaultMemoryRatio is the share of the container limit given to the Go
// heap. The rest covers decode buffers outside the heap and goroutine stacks.
const DefaultMemoryRatio = 0.85

// ConfigResult holds the result of memory configuration
type ConfigResult struct {
	// Configured indicates whether a limit is in effect
	Configured bool

	// Source is "GOMEMLIMIT", "MEMORY_LIMIT" or "none"
	Source string

	// ContainerLimit is the parsed MEMORY_LIMIT in bytes (0 if not set)
	ContainerLimit int64

	// GoMemLimit is the effective soft limit in bytes (0 if not set)
	GoMemLimit int64

	// Ratio is the share of ContainerLimit used (0 if not applicable)
	Ratio float64
}

// ConfigureFromEnv applies MEMORY_LIMIT and MEMORY_RATIO unless GOMEMLIMIT
// is already set. Call it early in main, before large allocations.
func ConfigureFromEnv() ConfigResult {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := ConfigResult{Source: "GOMEMLIMIT"}
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.GoMemLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", env)
		return result
	}

	limitEnv := os.Getenv("MEMORY_LIMIT")
	if limitEnv == "" {
		logging.Debug("MEMORY_LIMIT not set, leaving GOMEMLIMIT unset")
		return ConfigResult{Source: "none"}
	}

	parsed, err := humanize.ParseBytes(limitEnv)
	if err != nil || parsed == 0 || parsed > math.MaxInt64 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", limitEnv)
		return ConfigResult{Source: "none"}
	}
	containerLimit := int64(parsed)

	ratio := parseRatio(os.Getenv("MEMORY_RATIO"))
	goMemLimit := int64(float64(containerLimit) * ratio)
	debug.SetMemoryLimit(goMemLimit)

	logging.Info("Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		humanize.IBytes(uint64(goMemLimit)), ratio*100, humanize.IBytes(uint64(containerLimit)))

	return ConfigResult{
		Configured:     true,
		Source:         "MEMORY_LIMIT",
		ContainerLimit: containerLimit,
		GoMemLimit:     goMemLimit,
		Ratio:          ratio,
	}
}

// parseRatio returns s as a ratio in (0, 1], or DefaultMemoryRatio.
func parseRatio(s string) float64 {
	if s == "" {
		return DefaultMemoryRatio
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || ratio <= 0 || ratio > 1 {
		logging.Warn("MEMORY_RATIO %q is not in (0, 1], using %.2f", s, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	return ratio
}
