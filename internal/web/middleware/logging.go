// Package middleware provides HTTP middleware for the upload server.
package middleware

import (
	"net/http"
	"time"

	"github.com/skuflow/skuflow/internal/logging"
)

// Logger emits one structured log entry per request: method, path, status,
// duration_ms, client ip, and user agent. Duration here spans the whole
// processing run for /api/process uploads, so it doubles as a cheap latency
// signal for large exports. Entries carry the chi request ID so they
// correlate with the handler-level "processed upload" and error logs.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		logger := logging.FromContext(r.Context())

		// Determine client IP (prefer X-Real-IP set by RealIP middleware)
		ip := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", duration.Milliseconds(),
			"ip", ip,
			"user_agent", r.UserAgent(),
		)
	})
}

// responseWriter captures the status code; handlers that stream the xlsx
// attachment never call WriteHeader explicitly, so Write defaults it to 200.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying ResponseWriter so chi's Compress middleware
// can reach it.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
