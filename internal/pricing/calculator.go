// Package pricing computes the subtotal / discount / total triple for a cart
// snapshot. All arithmetic is exact decimal; the triple is a pure function of
// its inputs and safe to recompute on every mutation.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"salesdesk/internal/cart"
)

var hundred = decimal.NewFromInt(100)

// Totals is the pricing triple plus the percent actually applied.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
}

// Compute derives the triple from the lines and the free-text discount
// input. The total is clamped at zero: a discount above 100% is accepted as
// input but can never invert the sale into a negative amount.
func Compute(lines []cart.Line, discountInput string) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	percent := ParsePercent(discountInput)
	discount := subtotal.Mul(percent).Div(hundred)

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		Total:           total,
	}
}

// ParsePercent parses a percentage typed by the user. Both comma and dot are
// accepted as decimal separator; missing, malformed or negative input counts
// as zero so the live total stays renderable.
func ParsePercent(input string) decimal.Decimal {
	trimmed := strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if trimmed == "" {
		return decimal.Zero
	}
	percent, err := decimal.NewFromString(trimmed)
	if err != nil || percent.IsNegative() {
		return decimal.Zero
	}
	return percent
}
