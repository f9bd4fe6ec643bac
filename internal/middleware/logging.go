// Package middleware provides HTTP middleware for the Pixyo API server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter so the logger can see the
// status code after the handler runs. Only the first status sticks.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) mark(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.mark(code)
	rw.ResponseWriter.WriteHeader(code)
}

// Write marks an implicit 200 when the handler never called WriteHeader.
func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.mark(http.StatusOK)
	return rw.ResponseWriter.Write(b)
}

// Logger is a structured logging middleware that records method, path,
// status code, duration, and the requesting user (when a session is
// loaded) for every HTTP request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start).String(),
			"remote", r.RemoteAddr,
		}
		if sess := SessionFromCtx(r.Context()); sess != nil {
			attrs = append(attrs, "user", sess.UserID.String())
		}
		slog.Info("http request", attrs...)
	})
}
