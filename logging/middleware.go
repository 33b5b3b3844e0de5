package logging

import (
	"log/slog"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware logs one line per request with method, path, status and duration.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = WithComponent(logger, ComponentHTTP)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			} else if rec.status >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String(FieldMethod, r.Method),
				slog.String(FieldPath, r.URL.Path),
				slog.Int(FieldStatusCode, rec.status),
				slog.Int64(FieldDuration, time.Since(start).Milliseconds()),
			)
		})
	}
}
