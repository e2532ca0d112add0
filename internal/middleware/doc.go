// Package middleware provides the HTTP middleware chain of the viewer:
// W3C extended access logging, Prometheus request metrics and gzip
// compression of HTML and JSON responses.
//
// Image and preview responses are already compressed and are never
// gzipped again.
package middleware
