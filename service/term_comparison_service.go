package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
)

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"

	maxConcurrentTerms = 4
)

type TermComparisonService struct {
	logger *slog.Logger
}

func NewTermComparisonService(logger *slog.Logger) *TermComparisonService {
	return &TermComparisonService{
		logger: logging.WithComponent(logger, logging.ComponentComparison),
	}
}

// CompareTerms evalúa el mismo préstamo con distintos plazos y recomienda el óptimo
func (s *TermComparisonService) CompareTerms(
	ctx context.Context,
	input domain.TermComparisonInput,
) (domain.TermComparisonResult, error) {

	terms := input.TermsYears
	if len(terms) == 0 {
		terms = DefaultComparedTermsYears
	}

	// Validaciones
	if len(terms) > MaxComparedTerms {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: número de plazos excede el máximo de %d", ErrInvalidInput, MaxComparedTerms)
	}
	for _, term := range terms {
		if math.IsNaN(term) || term*MonthsPerYear < 1 || term > MaxTermYears {
			return domain.TermComparisonResult{}, fmt.Errorf("%w: plazo %.2f fuera de rango", ErrInvalidInput, term)
		}
	}
	if math.IsNaN(input.MaxMonthlyPayment) || input.MaxMonthlyPayment < 0 {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: pago mensual máximo inválido", ErrInvalidInput)
	}

	preference := input.Preference
	if preference == "" {
		preference = PreferenceBalanced
	}
	preferences := map[string]bool{
		PreferenceMinimizeInterest: true,
		PreferenceMinimizePayment:  true,
		PreferenceBalanced:         true,
	}
	if !preferences[preference] {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: preferencia inválida", ErrInvalidInput)
	}

	// Cada plazo es un cálculo independiente
	results := make([]*domain.TermCandidate, len(terms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTerms)
	for i, term := range terms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidate, err := evaluateTerm(input.Mortgage, term)
			if errors.Is(err, ErrInvalidInput) {
				return err
			}
			if err != nil {
				s.logger.WarnContext(gctx, "skipping term",
					logging.FieldOperation, logging.OpCompare,
					logging.FieldTermYears, term, logging.FieldError, err)
				return nil
			}
			results[i] = &candidate
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.TermComparisonResult{}, err
	}

	candidates := []domain.TermCandidate{}
	for _, c := range results {
		if c == nil {
			continue
		}
		// Filtrar por pago mensual máximo
		if input.MaxMonthlyPayment > 0 && c.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}
		candidates = append(candidates, *c)
	}

	if len(candidates) == 0 {
		return domain.TermComparisonResult{}, ErrNoEligibleTerms
	}

	scoreCandidates(candidates, preference)

	// Ordenar por score descendente; a igual score, el plazo más corto
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].TermYears < candidates[j].TermYears
	})

	return domain.TermComparisonResult{
		RecommendedTermYears: candidates[0].TermYears,
		Candidates:           candidates,
	}, nil
}

func evaluateTerm(base domain.MortgageInput, termYears float64) (domain.TermCandidate, error) {
	params := base.Loan
	params.TermYears = termYears

	loan, err := NewPropertyLoan(params)
	if err != nil {
		return domain.TermCandidate{}, err
	}

	monthly := loan.MonthlySchedule()
	candidate := domain.TermCandidate{
		TermYears:        termYears,
		MonthlyPayment:   roundToCents(loan.PeriodicPayment()),
		TotalInterest:    roundToCents(sumInterest(monthly)),
		NumberOfPayments: countPayments(monthly),
	}

	if base.Tax != nil {
		overlay, err := NewTaxAdjustedLoan(loan, *base.Tax)
		if err != nil {
			return domain.TermCandidate{}, err
		}
		net := 0.0
		for _, row := range overlay.Apply(AggregateYearly(monthly)) {
			net += row.Total
		}
		candidate.TotalNetCost = roundToCents(net)
	}

	return candidate, nil
}

// scoreCandidates normaliza interés, cuota y plazo a 0-10 entre los candidatos
// y los pondera según la preferencia.
func scoreCandidates(candidates []domain.TermCandidate, preference string) {
	minInterest, maxInterest := math.Inf(1), math.Inf(-1)
	minPayment, maxPayment := math.Inf(1), math.Inf(-1)
	minTerm, maxTerm := math.Inf(1), math.Inf(-1)
	for _, c := range candidates {
		minInterest, maxInterest = math.Min(minInterest, c.TotalInterest), math.Max(maxInterest, c.TotalInterest)
		minPayment, maxPayment = math.Min(minPayment, c.MonthlyPayment), math.Max(maxPayment, c.MonthlyPayment)
		minTerm, maxTerm = math.Min(minTerm, c.TermYears), math.Max(maxTerm, c.TermYears)
	}

	for i := range candidates {
		c := &candidates[i]
		interestScore := normalizedScore(c.TotalInterest, minInterest, maxInterest)
		paymentScore := normalizedScore(c.MonthlyPayment, minPayment, maxPayment)
		termScore := normalizedScore(c.TermYears, minTerm, maxTerm)

		var score float64
		switch preference {
		case PreferenceMinimizeInterest:
			score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
		case PreferenceMinimizePayment:
			score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
		default:
			score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
		}
		c.Score = roundToCents(score)
		c.Reason = reasonFor(preference)
	}
}

// normalizedScore es 10 para el valor mínimo y 0 para el máximo.
func normalizedScore(value, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - (value-lo)/(hi-lo))
}

func reasonFor(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Plazo optimizado para minimizar el costo total de intereses"
	case PreferenceMinimizePayment:
		return "Plazo optimizado para minimizar el pago mensual"
	case PreferenceBalanced:
		return "Balance óptimo entre pago mensual y costo total"
	}
	return "Recomendación basada en los parámetros proporcionados"
}
