package domain

import "time"

type MortgageInput struct {
	Loan PropertyLoanParams `json:"loan"`
	Tax  *TaxParams         `json:"tax,omitempty"` // nil disables the tax overlay
}

type SeriesKind string

const (
	SeriesBar  SeriesKind = "bar"
	SeriesLine SeriesKind = "line"
)

type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	Name   string     `json:"name"`
	Kind   SeriesKind `json:"kind"`
	Points []Point    `json:"points"`
}

type Chart struct {
	BarMode string   `json:"bar_mode"`
	Series  []Series `json:"series"`
}

type MortgageSummary struct {
	LoanAmount        float64   `json:"loan_amount"`
	PeriodicPayment   float64   `json:"periodic_payment"`
	TotalInterestPaid float64   `json:"total_interest_paid"`
	NumberOfPayments  int       `json:"number_of_payments"`
	PayoffDate        time.Time `json:"payoff_date"`
	FinalValue        float64   `json:"final_value,omitempty"`
	AnticipatedProfit float64   `json:"anticipated_profit,omitempty"`
}

type MortgageReport struct {
	ID           string                 `json:"id"`
	Summary      MortgageSummary        `json:"summary"`
	Monthly      []PeriodStatus         `json:"monthly"`
	Yearly       []YearlyRow            `json:"yearly"`
	TaxAdjusted  []TaxAdjustedYearlyRow `json:"tax_adjusted,omitempty"`
	MonthlyChart Chart                  `json:"monthly_chart"`
	YearlyChart  Chart                  `json:"yearly_chart"`
}

// CalculationRecord is what gets persisted for every successful calculation.
type CalculationRecord struct {
	ID               string        `json:"id"`
	CreatedAt        time.Time     `json:"created_at"`
	Input            MortgageInput `json:"input"`
	LoanAmount       float64       `json:"loan_amount"`
	PeriodicPayment  float64       `json:"periodic_payment"`
	TotalInterest    float64       `json:"total_interest"`
	NumberOfPayments int           `json:"number_of_payments"`
}
