package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"salesdesk/internal/cart"
)

func line(price float64, qty int) cart.Line {
	return cart.Line{
		ProductCode: int64(qty), // unique enough for these tests
		Quantity:    qty,
		UnitPrice:   decimal.NewFromFloat(price),
	}
}

func TestCompute_WorkedExample(t *testing.T) {
	lines := []cart.Line{line(10.00, 2), line(5.00, 3)}

	got := Compute(lines, "10")

	if !got.Subtotal.Equal(decimal.NewFromFloat(35.00)) {
		t.Fatalf("subtotal = %s, want 35.00", got.Subtotal)
	}
	if !got.DiscountAmount.Equal(decimal.NewFromFloat(3.50)) {
		t.Fatalf("discount = %s, want 3.50", got.DiscountAmount)
	}
	if !got.Total.Equal(decimal.NewFromFloat(31.50)) {
		t.Fatalf("total = %s, want 31.50", got.Total)
	}
}

func TestCompute_InvalidDiscountIsZero(t *testing.T) {
	lines := []cart.Line{line(10.00, 2)}

	for _, input := range []string{"abc", "", "  ", "10%"} {
		got := Compute(lines, input)
		if !got.Total.Equal(got.Subtotal) {
			t.Fatalf("input %q: total %s != subtotal %s", input, got.Total, got.Subtotal)
		}
	}
}

func TestCompute_CommaSeparator(t *testing.T) {
	lines := []cart.Line{line(100.00, 1)}

	got := Compute(lines, "12,5")
	if !got.DiscountAmount.Equal(decimal.NewFromFloat(12.5)) {
		t.Fatalf("discount = %s, want 12.5", got.DiscountAmount)
	}
}

func TestCompute_TotalClampedAtZero(t *testing.T) {
	lines := []cart.Line{line(10.00, 1)}

	got := Compute(lines, "150")
	if !got.Total.Equal(decimal.Zero) {
		t.Fatalf("total = %s, want 0", got.Total)
	}
	if got.Total.IsNegative() {
		t.Fatalf("total went negative: %s", got.Total)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	lines := []cart.Line{line(7.77, 3), line(0.10, 9)}

	first := Compute(lines, "33,3")
	second := Compute(lines, "33,3")

	if !first.Subtotal.Equal(second.Subtotal) ||
		!first.DiscountAmount.Equal(second.DiscountAmount) ||
		!first.Total.Equal(second.Total) {
		t.Fatalf("compute not idempotent: %+v vs %+v", first, second)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	got := Compute(nil, "10")
	if !got.Subtotal.Equal(decimal.Zero) || !got.Total.Equal(decimal.Zero) {
		t.Fatalf("empty cart should price to zero, got %+v", got)
	}
}

func TestParsePercent_NegativeIsZero(t *testing.T) {
	if got := ParsePercent("-5"); !got.Equal(decimal.Zero) {
		t.Fatalf("negative percent should parse as zero, got %s", got)
	}
}
