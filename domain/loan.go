package domain

import "time"

// PaymentInterval is the calendar distance between two payment dates.
// The zero value means one calendar month.
type PaymentInterval struct {
	Years  int `json:"years,omitempty"`
	Months int `json:"months,omitempty"`
	Days   int `json:"days,omitempty"`
}

func (p PaymentInterval) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0
}

type PropertyLoanParams struct {
	PurchasePrice                  float64         `json:"purchase_price"`
	DownPaymentFraction            float64         `json:"down_payment_fraction"`
	AnnualInterestRate             float64         `json:"annual_interest_rate"`
	TermYears                      float64         `json:"term_years"`
	PropertyTaxesYearly            float64         `json:"property_taxes_yearly"`
	AnnualAppreciation             float64         `json:"annual_appreciation"`
	IncludeAppreciationAsReduction bool            `json:"include_appreciation_as_reduction"`
	PaymentInterval                PaymentInterval `json:"payment_interval"`
	StartDate                      time.Time       `json:"start_date"`
}

type TaxParams struct {
	AGI                                 float64 `json:"agi"`
	ItemizedDeductionsExcludingProperty float64 `json:"itemized_deductions_excluding_property"`
}

// PeriodStatus is the state of the loan after one payment period.
type PeriodStatus struct {
	Date      time.Time `json:"date"`
	Balance   float64   `json:"balance"`
	Interest  float64   `json:"interest"`
	Principal float64   `json:"principal"`
	Taxes     float64   `json:"taxes"`
}

// YearlyRow aggregates every PeriodStatus of one calendar year.
// Balance is the maximum balance seen in the year, which for an amortizing
// loan is the balance of the first period of that year.
type YearlyRow struct {
	Year      int     `json:"year"`
	Balance   float64 `json:"balance"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Taxes     float64 `json:"taxes"`
}

type TaxAdjustedYearlyRow struct {
	YearlyRow
	AGI                     float64 `json:"agi"`
	TotalItemizedDeductions float64 `json:"total_itemized_deductions"`
	StandardDeduction       float64 `json:"standard_deduction"`
	MaximumDeduction        float64 `json:"maximum_deduction"`
	AGIReduced              float64 `json:"agi_reduced"`
	EstimatedTaxSavings     float64 `json:"estimated_tax_savings"`
	// Nil unless appreciation is counted as a reduction.
	EstimatedAppreciationEffectiveMortgageDecrease *float64 `json:"estimated_appreciation_effective_mortgage_decrease,omitempty"`
	Total                                          float64  `json:"total"`
}
