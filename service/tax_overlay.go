package service

import (
	"fmt"
	"math"

	"mortgage-planner/domain"
)

// TaxAdjustedLoan decorates a PropertyLoan with an income-tax overlay:
// itemized vs standard deduction, estimated tax savings and, optionally,
// appreciation counted as a reduction of the monthly cost.
type TaxAdjustedLoan struct {
	loan *PropertyLoan
	tax  domain.TaxParams
}

func NewTaxAdjustedLoan(loan *PropertyLoan, tax domain.TaxParams) (*TaxAdjustedLoan, error) {
	if loan == nil {
		return nil, fmt.Errorf("%w: préstamo requerido", ErrInvalidInput)
	}
	if err := validateTaxParams(tax); err != nil {
		return nil, err
	}
	return &TaxAdjustedLoan{loan: loan, tax: tax}, nil
}

func validateTaxParams(tax domain.TaxParams) error {
	if math.IsNaN(tax.AGI) || math.IsInf(tax.AGI, 0) || tax.AGI < 0 {
		return fmt.Errorf("%w: ingreso bruto ajustado inválido", ErrInvalidInput)
	}
	d := tax.ItemizedDeductionsExcludingProperty
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: deducciones detalladas inválidas", ErrInvalidInput)
	}
	return nil
}

func (t *TaxAdjustedLoan) Loan() *PropertyLoan { return t.loan }

func (t *TaxAdjustedLoan) Tax() domain.TaxParams { return t.tax }

// FinalValue compounds appreciation once per year of term; a fractional
// term is used as the exponent as-is.
func (t *TaxAdjustedLoan) FinalValue() float64 {
	p := t.loan.Params()
	return p.PurchasePrice * math.Pow(1+p.AnnualAppreciation, p.TermYears)
}

func (t *TaxAdjustedLoan) AnticipatedProfit() float64 {
	return t.FinalValue() - t.loan.Params().PurchasePrice
}

// AppreciationEffectiveMortgageDecrease spreads the anticipated profit over
// every month of the term.
func (t *TaxAdjustedLoan) AppreciationEffectiveMortgageDecrease() float64 {
	return t.AnticipatedProfit() / (t.loan.Params().TermYears * MonthsPerYear)
}

// Apply derives the tax columns for each yearly row. Rows are independent.
func (t *TaxAdjustedLoan) Apply(rows []domain.YearlyRow) []domain.TaxAdjustedYearlyRow {
	var appreciation *float64
	if t.loan.Params().IncludeAppreciationAsReduction {
		v := -t.AppreciationEffectiveMortgageDecrease()
		appreciation = &v
	}

	out := make([]domain.TaxAdjustedYearlyRow, 0, len(rows))
	for _, row := range rows {
		adj := domain.TaxAdjustedYearlyRow{
			YearlyRow:               row,
			AGI:                     t.tax.AGI,
			TotalItemizedDeductions: row.Interest + t.tax.ItemizedDeductionsExcludingProperty,
			StandardDeduction:       StandardDeduction,
		}
		adj.MaximumDeduction = math.Max(adj.TotalItemizedDeductions, adj.StandardDeduction)
		adj.AGIReduced = adj.AGI - adj.MaximumDeduction
		adj.EstimatedTaxSavings = -EstimatedMarginalTaxRate * adj.MaximumDeduction
		if appreciation != nil {
			v := *appreciation
			adj.EstimatedAppreciationEffectiveMortgageDecrease = &v
		}
		adj.Total = rowTotal(adj)
		out = append(out, adj)
	}
	return out
}

func rowTotal(row domain.TaxAdjustedYearlyRow) float64 {
	total := 0.0
	for _, col := range taxAdjustedColumns {
		if v, ok := col.value(row); ok {
			total += v
		}
	}
	return total
}

func (t *TaxAdjustedLoan) YearlyTable() []domain.TaxAdjustedYearlyRow {
	return t.Apply(t.loan.YearlyTable())
}

// YearlyChart is the base yearly chart plus the tax columns and a "Net" line.
func (t *TaxAdjustedLoan) YearlyChart() domain.Chart {
	return taxAdjustedChart(t.YearlyTable())
}
