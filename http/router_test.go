package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mortgage-planner/logging"
)

func TestRouter(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)
	router := NewRouter(newTestMortgageHandler(), newTestComparisonHandler(), limiter, logging.Discard())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/mortgage/calculate", calculateBody))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mortgage/calculations", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	// el limitador es compartido entre los endpoints de cálculo
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mortgage/calculations", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
