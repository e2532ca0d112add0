package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"multi-image-viewer/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// =============================================================================
// Response recorder
// =============================================================================

func TestStatusRecorderWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newStatusRecorder(w)

	if rw.statusCode != http.StatusOK {
		t.Errorf("Expected default status code 200, got %d", rw.statusCode)
	}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", rw.statusCode)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("Underlying recorder got %d, want 404", w.Code)
	}
}

func TestStatusRecorderWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newStatusRecorder(w)

	_, _ = rw.Write([]byte("hello "))
	_, _ = rw.Write([]byte("world"))

	if rw.bytesWritten != 11 {
		t.Errorf("bytesWritten = %d, want 11", rw.bytesWritten)
	}
	if !rw.wroteHeader {
		t.Error("Expected wroteHeader after Write")
	}
}

// =============================================================================
// Logging
// =============================================================================

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(io.Discard) })
	return &buf
}

func TestLoggerMiddleware(t *testing.T) {
	buf := captureLog(t)

	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/next?x=1", nil)
	req.Header.Set("User-Agent", "Test Agent")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{"POST", "/api/next", "x=1", " 418 ", " 5 ", `"Test Agent"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestLoggerSkipsImagesAndHealth(t *testing.T) {
	buf := captureLog(t)

	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for _, path := range []string{"/api/image/0/00123", "/api/preview/1/00123", "/health", "/livez"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		config LoggingConfig
		want   bool
	}{
		{"api call", "/api/state", DefaultLoggingConfig(), false},
		{"image", "/api/image/0/1", DefaultLoggingConfig(), true},
		{"image logged", "/api/image/0/1", LoggingConfig{LogImages: true}, false},
		{"health", "/readyz", DefaultLoggingConfig(), true},
		{"health logged", "/readyz", LoggingConfig{LogHealthChecks: true}, false},
		{"configured prefix", "/version", LoggingConfig{SkipPaths: []string{"/ver"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSkip(tt.path, tt.config); got != tt.want {
				t.Errorf("shouldSkip(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSanitizeLogField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\nb\rc", "a b c"},
		{"null\x00byte", "nullbyte"},
		{"\x1b[31mred", "[31mred"},
		{"tab\tkept", "tab\tkept"},
	}
	for _, tt := range tests {
		if got := sanitizeLogField(tt.in); got != tt.want {
			t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatW3C(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.RemoteAddr = "127.0.0.1:51234"
	rw := newStatusRecorder(httptest.NewRecorder())
	rw.statusCode = 200
	rw.bytesWritten = 42

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got := formatW3C(req, rw, 15*time.Millisecond, now)
	want := "2026-03-04 05:06:07 127.0.0.1 GET /api/state - 200 42 15 - -"
	if got != want {
		t.Errorf("formatW3C() =\n%q\nwant\n%q", got, want)
	}
}

// =============================================================================
// Compression
// =============================================================================

func TestCompressionMiddleware(t *testing.T) {
	large := strings.Repeat(`{"key":"00123"}`, 200)

	tests := []struct {
		name         string
		contentType  string
		body         string
		acceptGzip   bool
		wantEncoding string
	}{
		{"large JSON", "application/json", large, true, "gzip"},
		{"large HTML with charset", "text/html; charset=utf-8", large, true, "gzip"},
		{"small JSON", "application/json", `{"ok":true}`, true, ""},
		{"JPEG preview", "image/jpeg", large, true, ""},
		{"client without gzip", "application/json", large, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Compression(DefaultCompressionConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, tt.body)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip, deflate")
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("status = %d, want 201", w.Code)
			}
			if got := w.Header().Get("Content-Encoding"); got != tt.wantEncoding {
				t.Fatalf("Content-Encoding = %q, want %q", got, tt.wantEncoding)
			}

			body := w.Body.Bytes()
			if tt.wantEncoding == "gzip" {
				gr, err := gzip.NewReader(bytes.NewReader(body))
				if err != nil {
					t.Fatalf("gzip.NewReader: %v", err)
				}
				body, err = io.ReadAll(gr)
				if err != nil {
					t.Fatalf("read gzip body: %v", err)
				}
			}
			if string(body) != tt.body {
				t.Errorf("body length = %d, want %d", len(body), len(tt.body))
			}
		})
	}
}

func TestCompressionMultipleWrites(t *testing.T) {
	handler := Compression(DefaultCompressionConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		for i := 0; i < 100; i++ {
			_, _ = io.WriteString(w, "0123456789abcdef\n")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	gr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	body, _ := io.ReadAll(gr)
	if len(body) != 1700 {
		t.Errorf("decompressed length = %d, want 1700", len(body))
	}
}

// =============================================================================
// Metrics
// =============================================================================

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Metrics(DefaultMetricsConfig()))
	r.HandleFunc("/api/image/{slot}/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/image/{slot}/{key}", "404")
	before := testutil.ToFloat64(counter)

	for _, key := range []string{"00123", "00456", "00789"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/image/0/"+key, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("counter delta = %v, want 3", got)
	}
}

func TestMetricsMiddlewareSkipPaths(t *testing.T) {
	called := false
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "200")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if !called {
		t.Error("skipped path did not reach the handler")
	}
	if got := testutil.ToFloat64(counter) - before; got != 0 {
		t.Errorf("skipped path recorded %v requests", got)
	}
}

func TestRouteTemplateUnmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	if got := routeTemplate(req); got != "unmatched" {
		t.Errorf("routeTemplate() = %q, want unmatched", got)
	}
}
