package repository

import (
	"context"

	"mortgage-planner/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}
