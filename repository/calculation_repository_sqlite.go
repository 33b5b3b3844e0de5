package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mortgage-planner/domain"

	_ "modernc.org/sqlite"
)

// Fixed-width so that created_at sorts lexically.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteCalculationRepository persists calculation records in SQLite.
type SQLiteCalculationRepository struct {
	db *sql.DB
}

func NewSQLiteCalculationRepository(dbPath string) (*SQLiteCalculationRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteCalculationRepository{db: db}, nil
}

func (r *SQLiteCalculationRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteCalculationRepository) Save(ctx context.Context, record domain.CalculationRecord) error {
	input, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("encode calculation input: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO calculations
			(id, created_at, input_json, loan_amount, periodic_payment, total_interest, number_of_payments)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CreatedAt.UTC().Format(createdAtLayout),
		string(input),
		record.LoanAmount,
		record.PeriodicPayment,
		record.TotalInterest,
		record.NumberOfPayments,
	)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (r *SQLiteCalculationRepository) List(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = -1 // sin límite
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, input_json, loan_amount, periodic_payment, total_interest, number_of_payments
		FROM calculations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	records := []domain.CalculationRecord{}
	for rows.Next() {
		var (
			rec       domain.CalculationRecord
			createdAt string
			input     string
		)
		if err := rows.Scan(
			&rec.ID,
			&createdAt,
			&input,
			&rec.LoanAmount,
			&rec.PeriodicPayment,
			&rec.TotalInterest,
			&rec.NumberOfPayments,
		); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}

		rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(input), &rec.Input); err != nil {
			return nil, fmt.Errorf("decode calculation input %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return records, nil
}
