// Package money holds currency and percentage primitives.
//
// Storage keeps full float64 precision; rounding happens only at
// presentation boundaries (receipts, CSV, JSON display fields).
package money

import (
	"fmt"
	"math"
)

// PercentageOf returns percent% of amount.
func PercentageOf(amount, percent float64) float64 {
	return amount * percent / 100
}

// RoundCurrency rounds to two decimal places, half away from zero.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrency renders an amount for display with two decimals.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("%.2f", RoundCurrency(amount))
}
