package service

import (
	"testing"
	"time"

	"mortgage-planner/domain"
)

func scenarioParams() domain.PropertyLoanParams {
	return domain.PropertyLoanParams{
		PurchasePrice:       1_000_000,
		DownPaymentFraction: 0.2,
		AnnualInterestRate:  0.07,
		TermYears:           30,
		PropertyTaxesYearly: 12_500,
		StartDate:           testStart,
	}
}

func TestAggregateYearly_Empty(t *testing.T) {
	rows := AggregateYearly(nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestAggregateYearly_Rules(t *testing.T) {
	day := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }
	statuses := []domain.PeriodStatus{
		{Date: day(2023, time.November), Balance: 300, Interest: 3, Principal: 100, Taxes: 1},
		{Date: day(2023, time.December), Balance: 200, Interest: 2, Principal: 100, Taxes: 1},
		{Date: day(2024, time.January), Balance: 100, Interest: 1, Principal: 100, Taxes: 1},
		{Date: day(2024, time.February), Balance: 0, Interest: 0, Principal: 0, Taxes: 1},
	}

	rows := AggregateYearly(statuses)
	want := []domain.YearlyRow{
		{Year: 2023, Balance: 300, Interest: 5, Principal: 200, Taxes: 2},
		{Year: 2024, Balance: 100, Interest: 1, Principal: 100, Taxes: 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestAggregateYearly_Scenario(t *testing.T) {
	loan := mustLoan(t, scenarioParams())
	monthly := loan.MonthlySchedule()
	rows := AggregateYearly(monthly)

	if len(rows) != 31 {
		t.Fatalf("expected 31 yearly rows (2024-2054), got %d", len(rows))
	}

	first := rows[0]
	if first.Year != 2024 {
		t.Errorf("expected first year 2024, got %d", first.Year)
	}
	if first.Balance != 800_000 {
		t.Errorf("expected max balance 800000, got %.2f", first.Balance)
	}
	if !almostEqual(first.Interest, 55_742.56, 0.01) {
		t.Errorf("expected interest ≈ 55742.56, got %.4f", first.Interest)
	}
	if !almostEqual(first.Principal, 8_126.48, 0.01) {
		t.Errorf("expected principal ≈ 8126.48, got %.4f", first.Principal)
	}
	if !almostEqual(first.Taxes, 12_500, 1e-6) {
		t.Errorf("expected taxes 12500, got %.4f", first.Taxes)
	}

	// el último año solo contiene el estado terminal
	last := rows[len(rows)-1]
	if last.Year != 2054 || last.Balance != 0 || last.Interest != 0 || last.Principal != 0 {
		t.Errorf("unexpected terminal row %+v", last)
	}

	interest, principal := 0.0, 0.0
	for i, r := range rows {
		if i > 0 && r.Year <= rows[i-1].Year {
			t.Fatalf("years must be strictly ascending")
		}
		interest += r.Interest
		principal += r.Principal
	}
	if !almostEqual(interest, sumInterest(monthly), 1e-6) {
		t.Errorf("yearly interest %.4f does not match monthly %.4f", interest, sumInterest(monthly))
	}
	if !almostEqual(principal, loan.LoanAmount(), BalanceTolerance) {
		t.Errorf("yearly principal %.4f does not retire the loan", principal)
	}
}

func TestAggregateYearly_BalanceIsFirstOfYear(t *testing.T) {
	loan := mustLoan(t, scenarioParams())
	monthly := loan.MonthlySchedule()

	firstOfYear := map[int]float64{}
	for _, s := range monthly {
		if _, ok := firstOfYear[s.Date.Year()]; !ok {
			firstOfYear[s.Date.Year()] = s.Balance
		}
	}
	for _, r := range AggregateYearly(monthly) {
		if r.Balance != firstOfYear[r.Year] {
			t.Errorf("year %d: expected balance %.2f, got %.2f", r.Year, firstOfYear[r.Year], r.Balance)
		}
	}
}
