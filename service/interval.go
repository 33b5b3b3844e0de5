package service

import (
	"time"

	"mortgage-planner/domain"
)

// addInterval advances t by p. Months and years are added first and the day
// is clamped to the end of the target month, so Jan 31 plus one month is the
// last day of February rather than early March.
func addInterval(t time.Time, p domain.PaymentInterval) time.Time {
	year, month, day := t.Date()

	months := int(month) - 1 + p.Months + p.Years*MonthsPerYear
	year += months / MonthsPerYear
	month = time.Month(months%MonthsPerYear + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}

	hour, minute, sec := t.Clock()
	shifted := time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
	return shifted.AddDate(0, 0, p.Days)
}

func daysIn(year int, month time.Month) int {
	// el día 0 del mes siguiente es el último día de este mes
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
