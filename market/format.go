package market

import "github.com/shopspring/decimal"

// Precision is the number of decimal places used when volumes, prices and
// USD amounts are rendered.
const Precision = 9

// Fixed renders x with Precision decimal places.
func Fixed(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(Precision)
}

// FixedN renders x with n decimal places.
func FixedN(x float64, n int32) string {
	return decimal.NewFromFloat(x).StringFixed(n)
}
