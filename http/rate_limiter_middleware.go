package http

import (
	"log/slog"
	"net"
	"net/http"

	"mortgage-planner/logging"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	logger *slog.Logger,
	next http.Handler,
) http.Handler {

	logger = logging.WithComponent(logger, logging.ComponentRateLimit)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip := clientIP(r)

		if !limiter.Allow(ip) {
			logger.WarnContext(r.Context(), "rate limit exceeded",
				logging.FieldClientIP, ip, logging.FieldPath, r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
