package service

import (
	"slices"

	"mortgage-planner/domain"
)

type reducer func(values []float64) float64

func sumOf(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func maxOf(values []float64) float64 {
	return slices.Max(values)
}

// fieldAggregation declares how one PeriodStatus field rolls up into a
// YearlyRow.
type fieldAggregation struct {
	field  string
	value  func(domain.PeriodStatus) float64
	assign func(*domain.YearlyRow, float64)
	reduce reducer
}

// Balance uses max, not last: for a non-increasing series that is the
// balance at the first period of the year.
var yearlyAggregations = []fieldAggregation{
	{
		field:  "balance",
		value:  func(s domain.PeriodStatus) float64 { return s.Balance },
		assign: func(r *domain.YearlyRow, v float64) { r.Balance = v },
		reduce: maxOf,
	},
	{
		field:  "interest",
		value:  func(s domain.PeriodStatus) float64 { return s.Interest },
		assign: func(r *domain.YearlyRow, v float64) { r.Interest = v },
		reduce: sumOf,
	},
	{
		field:  "principal",
		value:  func(s domain.PeriodStatus) float64 { return s.Principal },
		assign: func(r *domain.YearlyRow, v float64) { r.Principal = v },
		reduce: sumOf,
	},
	{
		field:  "taxes",
		value:  func(s domain.PeriodStatus) float64 { return s.Taxes },
		assign: func(r *domain.YearlyRow, v float64) { r.Taxes = v },
		reduce: sumOf,
	},
}

// AggregateYearly groups statuses by calendar year and returns one row per
// year, ascending.
func AggregateYearly(statuses []domain.PeriodStatus) []domain.YearlyRow {
	groups := make(map[int][]domain.PeriodStatus)
	for _, s := range statuses {
		year := s.Date.Year()
		groups[year] = append(groups[year], s)
	}

	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	slices.Sort(years)

	rows := make([]domain.YearlyRow, 0, len(years))
	for _, year := range years {
		group := groups[year]
		row := domain.YearlyRow{Year: year}
		values := make([]float64, len(group))
		for _, agg := range yearlyAggregations {
			for i, s := range group {
				values[i] = agg.value(s)
			}
			agg.assign(&row, agg.reduce(values))
		}
		rows = append(rows, row)
	}

	return rows
}
