package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/service"
)

func newTestComparisonHandler() *TermComparisonHandler {
	return NewTermComparisonHandler(service.NewTermComparisonService(logging.Discard()), logging.Discard())
}

func TestCompareTermsHandler_OK(t *testing.T) {
	handler := newTestComparisonHandler()

	body := `{
		"mortgage": {"loan": {"purchase_price": 500000, "down_payment_fraction": 0.2, "annual_interest_rate": 0.06, "term_years": 30, "start_date": "2024-01-01T00:00:00Z"}},
		"terms_years": [15, 30],
		"preference": "minimize_interest"
	}`
	w := httptest.NewRecorder()
	handler.CompareTerms(w, jsonRequest(http.MethodPost, "/mortgage/compare-terms", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.TermComparisonResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.RecommendedTermYears != 15 {
		t.Errorf("expected 15 years, got %.0f", result.RecommendedTermYears)
	}
	if len(result.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(result.Candidates))
	}
}

func TestCompareTermsHandler_NoEligibleTerms(t *testing.T) {
	handler := newTestComparisonHandler()

	body := `{
		"mortgage": {"loan": {"purchase_price": 500000, "annual_interest_rate": 0.06, "term_years": 30, "start_date": "2024-01-01T00:00:00Z"}},
		"max_monthly_payment": 100
	}`
	w := httptest.NewRecorder()
	handler.CompareTerms(w, jsonRequest(http.MethodPost, "/mortgage/compare-terms", body))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestCompareTermsHandler_InvalidPreference(t *testing.T) {
	handler := newTestComparisonHandler()

	body := `{
		"mortgage": {"loan": {"purchase_price": 500000, "annual_interest_rate": 0.06, "term_years": 30, "start_date": "2024-01-01T00:00:00Z"}},
		"preference": "cheapest"
	}`
	w := httptest.NewRecorder()
	handler.CompareTerms(w, jsonRequest(http.MethodPost, "/mortgage/compare-terms", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
