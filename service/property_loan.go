package service

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"mortgage-planner/domain"
)

// PropertyLoan is a fixed-rate, fixed-payment, fully amortizing mortgage.
// It is immutable after construction; every method is a pure function of
// the parameters it was built with.
type PropertyLoan struct {
	params        domain.PropertyLoanParams
	loanAmount    float64
	ratePerPeriod float64
	payment       float64
	interval      domain.PaymentInterval
}

// NewPropertyLoan validates params and precomputes the periodic payment.
// It fails with ErrInvalidInput for out-of-range parameters and with
// ErrNonAmortizingLoan when the first payment would not reduce the balance.
func NewPropertyLoan(params domain.PropertyLoanParams) (*PropertyLoan, error) {
	if err := validateLoanParams(params); err != nil {
		return nil, err
	}

	loanAmount := LoanAmount(params.PurchasePrice, params.DownPaymentFraction)
	payment, err := PeriodicPayment(loanAmount, params.AnnualInterestRate, params.TermYears)
	if err != nil {
		return nil, err
	}

	interval := params.PaymentInterval
	if interval.IsZero() {
		interval = domain.PaymentInterval{Months: 1}
	}

	l := &PropertyLoan{
		params:        params,
		loanAmount:    loanAmount,
		ratePerPeriod: params.AnnualInterestRate / MonthsPerYear,
		payment:       payment,
		interval:      interval,
	}

	if err := l.checkAmortizes(); err != nil {
		return nil, err
	}

	return l, nil
}

// checkAmortizes rejects loans whose first payment retires no principal, or
// so little that the float64 balance would stall before reaching zero.
func (l *PropertyLoan) checkAmortizes() error {
	first := l.InitialStatus()
	if first.Balance > 0 && first.Principal <= first.Balance*MinFirstPrincipalFraction {
		return fmt.Errorf("%w: la cuota (%.2f) no supera el interés del primer periodo (%.2f)",
			ErrNonAmortizingLoan, l.payment, first.Interest)
	}
	return nil
}

// LoanAmount is the financed part of the purchase price.
func LoanAmount(purchasePrice, downPaymentFraction float64) float64 {
	return purchasePrice * (1 - downPaymentFraction)
}

// PeriodicPayment returns the level monthly payment that retires loanAmount
// over termYears at annualRate.
func PeriodicPayment(loanAmount, annualRate, termYears float64) (float64, error) {
	if annualRate < 0 {
		return 0, fmt.Errorf("%w: tasa negativa", ErrInvalidInput)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("%w: plazo debe ser mayor que cero", ErrInvalidInput)
	}
	if loanAmount < 0 {
		return 0, fmt.Errorf("%w: monto del préstamo negativo", ErrInvalidInput)
	}

	r := annualRate / MonthsPerYear
	n := termYears * MonthsPerYear

	growth := math.Pow(1+r, n)
	var payment float64
	// r tan pequeño que (1+r)^n == 1: se comporta como tasa cero
	if r == 0 || growth == 1 {
		payment = loanAmount / n
	} else {
		payment = loanAmount * r * growth / (growth - 1)
	}

	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, fmt.Errorf("%w: la cuota no es un número finito", ErrInvalidInput)
	}
	return payment, nil
}

func (l *PropertyLoan) Params() domain.PropertyLoanParams { return l.params }

func (l *PropertyLoan) LoanAmount() float64 { return l.loanAmount }

func (l *PropertyLoan) PeriodicPayment() float64 { return l.payment }

func (l *PropertyLoan) PropertyTaxesMonthly() float64 {
	return l.params.PropertyTaxesYearly / MonthsPerYear
}

func (l *PropertyLoan) periodInterest(balance float64) float64 {
	return balance * l.ratePerPeriod
}

// periodPrincipal never exceeds the outstanding balance, so a fractional
// term ends with a smaller final payment.
func (l *PropertyLoan) periodPrincipal(interest, balance float64) float64 {
	if balance <= 0 {
		return 0
	}
	return math.Min(l.payment-interest, balance)
}

// InitialStatus is the first period of the loan, dated at the start date.
func (l *PropertyLoan) InitialStatus() domain.PeriodStatus {
	interest := l.periodInterest(l.loanAmount)
	return domain.PeriodStatus{
		Date:      l.params.StartDate,
		Balance:   l.loanAmount,
		Interest:  interest,
		Principal: l.periodPrincipal(interest, l.loanAmount),
		Taxes:     l.PropertyTaxesMonthly(),
	}
}

// NextStatus applies one payment to prev. A residue below BalanceTolerance
// settles to zero only when it is also smaller than the payment just made,
// so loans worth less than the tolerance still amortize in full.
func (l *PropertyLoan) NextStatus(prev domain.PeriodStatus) domain.PeriodStatus {
	balance := prev.Balance - prev.Principal
	if balance < 0 || (balance < BalanceTolerance && balance < prev.Principal) {
		balance = 0
	}
	interest := l.periodInterest(balance)
	return domain.PeriodStatus{
		Date:      addInterval(prev.Date, l.interval),
		Balance:   balance,
		Interest:  interest,
		Principal: l.periodPrincipal(interest, balance),
		Taxes:     prev.Taxes,
	}
}

// Schedule yields every period from the initial status up to and including
// the first status whose balance is zero. Each range over the sequence
// recomputes it from the start.
func (l *PropertyLoan) Schedule() iter.Seq[domain.PeriodStatus] {
	return func(yield func(domain.PeriodStatus) bool) {
		status := l.InitialStatus()
		for {
			if !yield(status) {
				return
			}
			if status.Balance <= 0 {
				return
			}
			status = l.NextStatus(status)
		}
	}
}

func (l *PropertyLoan) MonthlySchedule() []domain.PeriodStatus {
	return slices.Collect(l.Schedule())
}

// NumberOfPayments counts the periods that retire principal. The terminal
// zero-balance status is not a payment.
func (l *PropertyLoan) NumberOfPayments() int {
	return countPayments(l.MonthlySchedule())
}

func (l *PropertyLoan) TotalInterestPaid() float64 {
	return sumInterest(l.MonthlySchedule())
}

func (l *PropertyLoan) YearlyTable() []domain.YearlyRow {
	return AggregateYearly(l.MonthlySchedule())
}

func (l *PropertyLoan) MonthlyChart() domain.Chart {
	return monthlyChart(l.MonthlySchedule())
}

func (l *PropertyLoan) YearlyChart() domain.Chart {
	return yearlyChart(l.YearlyTable())
}

func validateLoanParams(p domain.PropertyLoanParams) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"purchase_price", p.PurchasePrice},
		{"down_payment_fraction", p.DownPaymentFraction},
		{"annual_interest_rate", p.AnnualInterestRate},
		{"term_years", p.TermYears},
		{"property_taxes_yearly", p.PropertyTaxesYearly},
		{"annual_appreciation", p.AnnualAppreciation},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s no es un número finito", ErrInvalidInput, f.name)
		}
	}

	if p.PurchasePrice < 0 {
		return fmt.Errorf("%w: precio de compra negativo", ErrInvalidInput)
	}
	if p.PurchasePrice > MaxPurchasePrice {
		return fmt.Errorf("%w: precio de compra excede el máximo permitido de $%.2f", ErrInvalidInput, MaxPurchasePrice)
	}
	if p.DownPaymentFraction < 0 || p.DownPaymentFraction > 1 {
		return fmt.Errorf("%w: el enganche debe estar entre 0 y 1", ErrInvalidInput)
	}
	if p.AnnualInterestRate < 0 {
		return fmt.Errorf("%w: tasa negativa", ErrInvalidInput)
	}
	if p.AnnualInterestRate > MaxInterestRate {
		return fmt.Errorf("%w: tasa de interés excede el máximo permitido de %.2f", ErrInvalidInput, MaxInterestRate)
	}
	if p.TermYears*MonthsPerYear < 1 {
		return fmt.Errorf("%w: el plazo debe cubrir al menos un periodo", ErrInvalidInput)
	}
	if p.TermYears > MaxTermYears {
		return fmt.Errorf("%w: plazo excede el máximo permitido de %.0f años", ErrInvalidInput, MaxTermYears)
	}
	if p.PropertyTaxesYearly < 0 {
		return fmt.Errorf("%w: impuesto predial negativo", ErrInvalidInput)
	}
	if p.AnnualAppreciation < -MaxAppreciation || p.AnnualAppreciation > MaxAppreciation {
		return fmt.Errorf("%w: plusvalía anual fuera de rango [-1, 1]", ErrInvalidInput)
	}
	if p.PaymentInterval.Years < 0 || p.PaymentInterval.Months < 0 || p.PaymentInterval.Days < 0 {
		return fmt.Errorf("%w: intervalo de pago negativo", ErrInvalidInput)
	}
	if p.PaymentInterval.Years > MaxIntervalYears ||
		p.PaymentInterval.Months > MaxIntervalYears*MonthsPerYear ||
		p.PaymentInterval.Days > MaxIntervalYears*DaysPerYear {
		return fmt.Errorf("%w: intervalo de pago excede %d años", ErrInvalidInput, MaxIntervalYears)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: fecha de inicio requerida", ErrInvalidInput)
	}
	return nil
}
