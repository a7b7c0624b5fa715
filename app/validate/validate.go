// Package validate holds the input rules shared by the entity operations.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeName trims name and folds it to upper case. Category and product
// names are compared and stored in this form.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Present reports whether s holds something other than white space.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Item quantities are stored as decimal(10,2).
const QuantityScale = 2

var maxQuantity = decimal.New(1, 10-QuantityScale)

// PositiveQuantity reports whether q is greater than zero.
func PositiveQuantity(q decimal.Decimal) bool {
	return q.IsPositive()
}

// QuantityFits reports whether q is stored without rounding: at most two
// decimal places and below 100000000.
func QuantityFits(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale)) && q.Abs().LessThan(maxQuantity)
}
