package http

import (
	"log/slog"
	"net/http"

	"mortgage-planner/logging"
)

// NewRouter wires every endpoint. Calculation endpoints share the rate limiter.
func NewRouter(
	mortgageHandler *MortgageHandler,
	comparisonHandler *TermComparisonHandler,
	limiter *RateLimiter,
	logger *slog.Logger,
) http.Handler {

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, logger, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/mortgage/calculate", limited(mortgageHandler.Calculate))
	mux.Handle("/mortgage/compare-terms", limited(comparisonHandler.CompareTerms))
	mux.Handle("/mortgage/calculations", limited(mortgageHandler.History))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return logging.Middleware(logger)(mux)
}
