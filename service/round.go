package service

import "github.com/shopspring/decimal"

// roundToCents redondea a 2 decimales (half away from zero)
func roundToCents(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
