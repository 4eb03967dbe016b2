package services

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a money amount to 2 decimal places, half away from zero.
// This is the only money rounding rule; API responses, the HTML view and
// both exports go through it.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// DisplayQuantity rounds a quantity up to the next whole unit. It is only
// used for presentation; cost arithmetic always uses the raw quantity.
func DisplayQuantity(q float64) float64 {
	return math.Ceil(q)
}

// markupFactor returns 1 + markup/100.
func markupFactor(markup float64) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(markup).Div(hundred))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
