// Package money centralises fixed-point monetary arithmetic. Amounts are
// decimal.Decimal values with a 2-digit scale; binary floats never enter
// ledger computations.
package money

import "github.com/shopspring/decimal"

// Scale is the number of decimal places carried by monetary amounts.
const Scale = 2

// Zero is the canonical 0.00 amount.
var Zero = decimal.Zero

// Round normalises an amount to the monetary scale.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Ratio divides num by den, returning zero when the denominator is zero.
// Ratios keep four decimal places so small quotients survive rounding.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, 4)
}

// Percent computes num/den*100 with the same zero-denominator rule as Ratio.
func Percent(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Mul(decimal.NewFromInt(100)).DivRound(den, Scale)
}
