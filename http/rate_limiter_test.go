package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mortgage-planner/logging"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(capacity int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	return newRateLimiter(capacity, window, clock.now), clock
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)

	for i := range 3 {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("fourth request should be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("other clients keep their own bucket")
	}

	clock.t = clock.t.Add(time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Errorf("bucket should refill after the window")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)

	limiter.Allow("10.0.0.1")
	clock.t = clock.t.Add(30 * time.Minute)
	limiter.Allow("10.0.0.2")
	clock.t = clock.t.Add(31 * time.Minute)

	if removed := limiter.cleanup(); removed != 1 {
		t.Errorf("expected 1 idle client removed, got %d", removed)
	}
	if _, ok := limiter.clients["10.0.0.2"]; !ok {
		t.Errorf("recent client must be kept")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimitMiddleware(limiter, logging.Discard(), next)

	req := httptest.NewRequest(http.MethodGet, "/mortgage/calculations", nil)
	req.RemoteAddr = "192.168.1.10:5555"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:41000"
	if ip := clientIP(req); ip != "203.0.113.7" {
		t.Errorf("expected 203.0.113.7, got %s", ip)
	}

	req.RemoteAddr = "no-port"
	if ip := clientIP(req); ip != "no-port" {
		t.Errorf("expected the raw address, got %s", ip)
	}
}
