// Package memory sets the Go soft memory limit from the container limit.
//
// Preview generation decodes full-size images, so a viewer running under a
// container memory limit should let the garbage collector work harder
// before the kernel kills the process. ConfigureFromEnv reads the limit
// passed in through the environment and sets GOMEMLIMIT to a share of it.
//
// Environment variables:
//   - GOMEMLIMIT: standard Go variable; when set it wins and is only reported
//   - MEMORY_LIMIT: container limit in bytes, or with a unit ("512MiB", "2 GB")
//   - MEMORY_RATIO: share of MEMORY_LIMIT for the Go heap (default 0.85)
package memory
