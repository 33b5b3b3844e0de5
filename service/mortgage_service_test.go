package service

import (
	"context"
	"errors"
	"testing"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
)

type MockCalculationRepository struct {
	Saved      []domain.CalculationRecord
	LastLimit  int
	ForceError bool
}

func (m *MockCalculationRepository) Save(ctx context.Context, record domain.CalculationRecord) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockCalculationRepository) List(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	m.LastLimit = limit
	if m.ForceError {
		return nil, errors.New("list error")
	}
	return m.Saved, nil
}

type MockCache struct {
	Values   map[string]string
	SetCalls int
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := m.Values[key]
	return v, ok
}

func (m *MockCache) Set(ctx context.Context, key, value string) error {
	if m.Values == nil {
		m.Values = map[string]string{}
	}
	m.Values[key] = value
	m.SetCalls++
	return nil
}

func newTestService() (*MortgageService, *MockCalculationRepository, *MockCache) {
	repo := &MockCalculationRepository{}
	cache := &MockCache{}
	return NewMortgageService(repo, cache, logging.Discard()), repo, cache
}

func TestCalculate_Summary(t *testing.T) {
	service, repo, _ := newTestService()

	report, err := service.Calculate(context.Background(), domain.MortgageInput{Loan: baseParams()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ID == "" {
		t.Errorf("expected a calculation id")
	}
	if report.Summary.PeriodicPayment != 5322.42 {
		t.Errorf("expected payment 5322.42, got %.2f", report.Summary.PeriodicPayment)
	}
	if report.Summary.LoanAmount != 800_000 {
		t.Errorf("expected loan amount 800000, got %.2f", report.Summary.LoanAmount)
	}
	if report.Summary.NumberOfPayments != 360 {
		t.Errorf("expected 360 payments, got %d", report.Summary.NumberOfPayments)
	}
	if len(report.Monthly) != 361 || len(report.Yearly) != 31 {
		t.Errorf("unexpected table sizes: %d monthly, %d yearly", len(report.Monthly), len(report.Yearly))
	}
	if report.TaxAdjusted != nil {
		t.Errorf("tax overlay must be absent without tax params")
	}

	if len(repo.Saved) != 1 {
		t.Fatalf("expected repository Save to be called once, got %d", len(repo.Saved))
	}
	if repo.Saved[0].ID != report.ID || repo.Saved[0].PeriodicPayment != 5322.42 {
		t.Errorf("unexpected saved record %+v", repo.Saved[0])
	}
}

func TestCalculate_WithTaxOverlay(t *testing.T) {
	service, _, _ := newTestService()

	params := scenarioParams()
	params.AnnualAppreciation = 0.07
	input := domain.MortgageInput{Loan: params, Tax: &domain.TaxParams{AGI: 250_000}}

	report, err := service.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.TaxAdjusted) != len(report.Yearly) {
		t.Fatalf("expected one tax-adjusted row per year")
	}
	if report.Summary.FinalValue != 7_612_255.04 {
		t.Errorf("expected final value 7612255.04, got %.2f", report.Summary.FinalValue)
	}
	last := report.YearlyChart.Series[len(report.YearlyChart.Series)-1]
	if last.Name != "Net" {
		t.Errorf("expected the yearly chart to carry the net line, got %s", last.Name)
	}
}

func TestCalculate_CacheHit(t *testing.T) {
	service, repo, cache := newTestService()
	input := domain.MortgageInput{Loan: baseParams()}

	first, err := service.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the cached report, got a new id")
	}
	if cache.SetCalls != 1 {
		t.Errorf("expected one cache write, got %d", cache.SetCalls)
	}
	if len(repo.Saved) != 1 {
		t.Errorf("a cache hit must not persist again, got %d saves", len(repo.Saved))
	}
}

func TestCalculate_UnreadableCacheEntry(t *testing.T) {
	service, repo, cache := newTestService()
	input := domain.MortgageInput{Loan: baseParams()}

	key, err := cacheKey(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Values = map[string]string{key: "{not json"}

	if _, err := service.Calculate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Saved) != 1 {
		t.Errorf("expected the report to be recomputed")
	}
}

func TestCalculate_SaveFailureIsNotCritical(t *testing.T) {
	service, repo, _ := newTestService()
	repo.ForceError = true

	report, err := service.Calculate(context.Background(), domain.MortgageInput{Loan: baseParams()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Summary.PeriodicPayment <= 0 {
		t.Errorf("expected a report despite the save failure")
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	service, repo, cache := newTestService()

	params := baseParams()
	params.TermYears = 0

	_, err := service.Calculate(context.Background(), domain.MortgageInput{Loan: params})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.Saved) != 0 {
		t.Errorf("repository Save should NOT be called")
	}
	if cache.SetCalls != 0 {
		t.Errorf("invalid input must not be cached")
	}
}

func TestBuildReport_TermShorterThanAPeriod(t *testing.T) {
	params := baseParams()
	params.TermYears = 5e-324

	_, err := BuildReport(domain.MortgageInput{Loan: params})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalculate_InvalidTaxParams(t *testing.T) {
	service, repo, _ := newTestService()

	input := domain.MortgageInput{Loan: baseParams(), Tax: &domain.TaxParams{AGI: -5}}
	_, err := service.Calculate(context.Background(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.Saved) != 0 {
		t.Errorf("repository Save should NOT be called")
	}
}

func TestHistory_Limits(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, DefaultHistoryLimit},
		{"negative", -3, DefaultHistoryLimit},
		{"custom", 5, 5},
		{"capped", 1_000, MaxHistoryLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, repo, _ := newTestService()
			if _, err := service.History(context.Background(), tc.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.LastLimit != tc.want {
				t.Errorf("expected limit %d, got %d", tc.want, repo.LastLimit)
			}
		})
	}
}

func TestHistory_RepositoryError(t *testing.T) {
	service, repo, _ := newTestService()
	repo.ForceError = true

	if _, err := service.History(context.Background(), 10); err == nil {
		t.Errorf("expected an error from the repository")
	}
}

func TestCacheKey_Stable(t *testing.T) {
	a, err := cacheKey(domain.MortgageInput{Loan: baseParams()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := cacheKey(domain.MortgageInput{Loan: baseParams()})
	if a != b {
		t.Errorf("same input must hash to the same key")
	}

	other := baseParams()
	other.TermYears = 15
	c, _ := cacheKey(domain.MortgageInput{Loan: other})
	if a == c {
		t.Errorf("different inputs must not share a key")
	}
}
