package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type MortgageService struct {
	repo   repository.CalculationRepository
	cache  repository.CacheRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewMortgageService creates a new MortgageService with the given repository and cache.
func NewMortgageService(repo repository.CalculationRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *MortgageService {
	return &MortgageService{
		repo:   repo,
		cache:  cache,
		logger: logging.WithComponent(logger, logging.ComponentMortgage),
		now:    time.Now,
	}
}

// Calculate builds the full amortization report for input: summary,
// monthly schedule, yearly table, tax-adjusted table when input.Tax is set,
// and chart series.
func (s *MortgageService) Calculate(
	ctx context.Context,
	input domain.MortgageInput,
) (domain.MortgageReport, error) {

	key, keyErr := cacheKey(input)
	if keyErr != nil {
		s.logger.WarnContext(ctx, "failed to build cache key",
			logging.FieldOperation, logging.OpCacheGet, logging.FieldError, keyErr)
	} else if report, ok := s.cached(ctx, key); ok {
		return report, nil
	}

	report, err := BuildReport(input)
	if err != nil {
		return domain.MortgageReport{}, err
	}
	report.ID = uuid.NewString()

	record := domain.CalculationRecord{
		ID:               report.ID,
		CreatedAt:        s.now(),
		Input:            input,
		LoanAmount:       report.Summary.LoanAmount,
		PeriodicPayment:  report.Summary.PeriodicPayment,
		TotalInterest:    report.Summary.TotalInterestPaid,
		NumberOfPayments: report.Summary.NumberOfPayments,
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "failed to save calculation",
			logging.FieldOperation, logging.OpSave, logging.FieldCalcID, report.ID, logging.FieldError, err)
	}

	if keyErr == nil {
		s.store(ctx, key, report)
	}

	s.logger.DebugContext(ctx, "mortgage calculated",
		logging.FieldOperation, logging.OpCalculate,
		logging.FieldCalcID, report.ID,
		logging.FieldPayments, report.Summary.NumberOfPayments)

	return report, nil
}

// History returns the most recent calculations, newest first.
func (s *MortgageService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list calculations",
			logging.FieldOperation, logging.OpHistory, logging.FieldError, err)
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return records, nil
}

func (s *MortgageService) cached(ctx context.Context, key string) (domain.MortgageReport, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.MortgageReport{}, false
	}

	var report domain.MortgageReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cached report",
			logging.FieldCacheKey, key, logging.FieldError, err)
		return domain.MortgageReport{}, false
	}
	return report, true
}

func (s *MortgageService) store(ctx context.Context, key string, report domain.MortgageReport) {
	raw, err := json.Marshal(report)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode report for cache",
			logging.FieldCacheKey, key, logging.FieldError, err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache report",
			logging.FieldOperation, logging.OpCacheSet, logging.FieldCacheKey, key, logging.FieldError, err)
	}
}

// cacheKey hashes the canonical JSON encoding of the input.
func cacheKey(input domain.MortgageInput) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mortgage:report:%016x", xxhash.Sum64(raw)), nil
}

// BuildReport runs the engine, the yearly aggregation and, when input.Tax is
// set, the tax overlay. Parameters are fully validated before any schedule
// is produced.
func BuildReport(input domain.MortgageInput) (domain.MortgageReport, error) {
	loan, err := NewPropertyLoan(input.Loan)
	if err != nil {
		return domain.MortgageReport{}, err
	}

	var overlay *TaxAdjustedLoan
	if input.Tax != nil {
		overlay, err = NewTaxAdjustedLoan(loan, *input.Tax)
		if err != nil {
			return domain.MortgageReport{}, err
		}
	}

	monthly := loan.MonthlySchedule()
	yearly := AggregateYearly(monthly)

	summary := domain.MortgageSummary{
		LoanAmount:        roundToCents(loan.LoanAmount()),
		PeriodicPayment:   roundToCents(loan.PeriodicPayment()),
		TotalInterestPaid: roundToCents(sumInterest(monthly)),
		NumberOfPayments:  countPayments(monthly),
		PayoffDate:        monthly[len(monthly)-1].Date,
	}

	report := domain.MortgageReport{
		Summary:      summary,
		Monthly:      monthly,
		Yearly:       yearly,
		MonthlyChart: monthlyChart(monthly),
		YearlyChart:  yearlyChart(yearly),
	}

	if overlay != nil {
		report.TaxAdjusted = overlay.Apply(yearly)
		report.YearlyChart = taxAdjustedChart(report.TaxAdjusted)
		report.Summary.FinalValue = roundToCents(overlay.FinalValue())
		report.Summary.AnticipatedProfit = roundToCents(overlay.AnticipatedProfit())
	}

	return report, nil
}

func sumInterest(statuses []domain.PeriodStatus) float64 {
	total := 0.0
	for _, s := range statuses {
		total += s.Interest
	}
	return total
}

func countPayments(statuses []domain.PeriodStatus) int {
	n := 0
	for _, s := range statuses {
		if s.Principal > 0 {
			n++
		}
	}
	return n
}
