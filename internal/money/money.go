// Package money provides decimal arithmetic for invoice amounts.
//
// All derived monetary values are rounded to 2 decimal places at the
// point of computation (half-up, the shopspring default). Line amounts
// are rounded individually and then summed; the sum is never rounded
// in place of its parts.
package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromFloat creates a decimal from a float without rounding
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// FromString parses a decimal from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round2 rounds to 2 decimal places (EUR cents)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes quantity * unitPrice, rounded to cents
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// LineVAT computes lineTotal * rate/100, rounded to cents
func LineVAT(lineTotal, vatRate decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return lineTotal.Mul(vatRate).Div(hundred).Round(2)
}

// LineTotalWithVAT computes lineTotal + lineVAT, rounded to cents
func LineTotalWithVAT(lineTotal, lineVAT decimal.Decimal) decimal.Decimal {
	return lineTotal.Add(lineVAT).Round(2)
}

// Sum sums a slice of decimals, rounded to cents
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result.Round(2)
}

// Format renders a decimal as a fixed 2-decimal string ("29.20")
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsNonNegative returns true if the decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
