package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns the number of workers for a task type. It follows
// GOMAXPROCS, which tracks container CPU limits.
//
// The multiplier adjusts for task characteristics:
//   - 1.0 for CPU-bound tasks such as image decoding
//   - 2.0 for I/O-bound tasks
//
// limit caps the result; 0 means no cap. PREVIEW_WORKERS overrides the
// computed value but is still capped.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("PREVIEW_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	workers := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}
	return workers
}

// ForCPU returns the worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}
