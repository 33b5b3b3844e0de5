package service

import (
	"strconv"

	"mortgage-planner/domain"
)

const (
	barModeRelative = "relative"
	netSeriesName   = "Net"
	chartDateLayout = "2006-01-02"
)

// paymentColumn is one stacked component of a payment chart. value reports
// false when the column is absent from the row.
type paymentColumn[R any] struct {
	title string
	value func(R) (float64, bool)
}

func present(v float64) (float64, bool) { return v, true }

var monthlyColumns = []paymentColumn[domain.PeriodStatus]{
	{"Interest", func(s domain.PeriodStatus) (float64, bool) { return present(s.Interest) }},
	{"Principal", func(s domain.PeriodStatus) (float64, bool) { return present(s.Principal) }},
	{"Taxes", func(s domain.PeriodStatus) (float64, bool) { return present(s.Taxes) }},
}

var yearlyColumns = []paymentColumn[domain.YearlyRow]{
	{"Interest", func(r domain.YearlyRow) (float64, bool) { return present(r.Interest) }},
	{"Principal", func(r domain.YearlyRow) (float64, bool) { return present(r.Principal) }},
	{"Taxes", func(r domain.YearlyRow) (float64, bool) { return present(r.Taxes) }},
}

// taxAdjustedColumns also defines which columns add up to the row total.
var taxAdjustedColumns = []paymentColumn[domain.TaxAdjustedYearlyRow]{
	{"Interest", func(r domain.TaxAdjustedYearlyRow) (float64, bool) { return present(r.Interest) }},
	{"Principal", func(r domain.TaxAdjustedYearlyRow) (float64, bool) { return present(r.Principal) }},
	{"Taxes", func(r domain.TaxAdjustedYearlyRow) (float64, bool) { return present(r.Taxes) }},
	{"Estimated Tax Savings", func(r domain.TaxAdjustedYearlyRow) (float64, bool) { return present(r.EstimatedTaxSavings) }},
	{"Appreciation Reduction", func(r domain.TaxAdjustedYearlyRow) (float64, bool) {
		if r.EstimatedAppreciationEffectiveMortgageDecrease == nil {
			return 0, false
		}
		return *r.EstimatedAppreciationEffectiveMortgageDecrease, true
	}},
}

func buildChart[R any](rows []R, x func(R) string, columns []paymentColumn[R]) domain.Chart {
	chart := domain.Chart{BarMode: barModeRelative, Series: []domain.Series{}}
	for _, col := range columns {
		points := make([]domain.Point, 0, len(rows))
		for _, row := range rows {
			if v, ok := col.value(row); ok {
				points = append(points, domain.Point{X: x(row), Y: v})
			}
		}
		if len(points) == 0 {
			continue
		}
		chart.Series = append(chart.Series, domain.Series{
			Name:   col.title,
			Kind:   domain.SeriesBar,
			Points: points,
		})
	}
	return chart
}

func statusX(s domain.PeriodStatus) string { return s.Date.Format(chartDateLayout) }

func yearX(year int) string { return strconv.Itoa(year) }

func monthlyChart(statuses []domain.PeriodStatus) domain.Chart {
	return buildChart(statuses, statusX, monthlyColumns)
}

func yearlyChart(rows []domain.YearlyRow) domain.Chart {
	return buildChart(rows, func(r domain.YearlyRow) string { return yearX(r.Year) }, yearlyColumns)
}

// taxAdjustedChart stacks every present component and overlays the yearly
// total as a "Net" line.
func taxAdjustedChart(rows []domain.TaxAdjustedYearlyRow) domain.Chart {
	x := func(r domain.TaxAdjustedYearlyRow) string { return yearX(r.Year) }
	chart := buildChart(rows, x, taxAdjustedColumns)

	net := make([]domain.Point, 0, len(rows))
	for _, r := range rows {
		net = append(net, domain.Point{X: x(r), Y: r.Total})
	}
	chart.Series = append(chart.Series, domain.Series{
		Name:   netSeriesName,
		Kind:   domain.SeriesLine,
		Points: net,
	})
	return chart
}
