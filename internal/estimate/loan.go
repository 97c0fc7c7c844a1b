// Package estimate provides deterministic loan installment math. The reasoning
// model also estimates an EMI, but its arithmetic is advisory only; this
// package is the source of truth.
package estimate

import "math"

// Defaults for the synthetic loan estimate shown alongside a scan verdict.
const (
	DefaultAnnualRatePercent = 14.0
	DefaultTermMonths        = 12
)

// MonthlyInstallment computes the fixed monthly payment for an amortized loan
// and rounds it to the nearest whole currency unit. A zero principal returns 0
// without evaluating the formula.
func MonthlyInstallment(principal, annualRatePercent float64, termMonths int) float64 {
	if principal == 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return math.Round(principal / float64(termMonths))
	}

	r := annualRatePercent / (12 * 100)
	power := math.Pow(1+r, float64(termMonths))
	return math.Round(principal * r * power / (power - 1))
}
