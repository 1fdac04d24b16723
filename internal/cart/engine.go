// Package cart owns the ordered line-item collection of one composition
// session. The engine never touches the network; it works purely on the
// catalog snapshot handed to it and its own lines.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

// ErrNonPositiveQuantity rejects a first insertion with quantity <= 0.
var ErrNonPositiveQuantity = errors.New("quantity must be positive")

// Line is one cart entry. Name, price and cost are snapshots taken from the
// product at add time.
type Line struct {
	ProductCode int64           `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// Engine holds the lines in the order products were first added. At most one
// line exists per product code, and every line has quantity > 0.
type Engine struct {
	lines []Line
}

func NewEngine() *Engine {
	return &Engine{}
}

// AddOrIncrement appends a new line for the product or, if one exists,
// increments its quantity. A non-positive delta on first insertion is
// rejected; on an existing line it flows through the same floor-at-removal
// rule as AdjustQuantity.
func (e *Engine) AddOrIncrement(p domain.Product, qtyDelta int) error {
	for idx := range e.lines {
		if e.lines[idx].ProductCode == p.Code {
			e.applyDelta(idx, qtyDelta)
			return nil
		}
	}
	if qtyDelta <= 0 {
		return ErrNonPositiveQuantity
	}
	e.lines = append(e.lines, Line{
		ProductCode: p.Code,
		ProductName: p.Name,
		Quantity:    qtyDelta,
		UnitPrice:   p.SalePrice,
		UnitCost:    p.UnitCost,
	})
	return nil
}

// AdjustQuantity adds delta to the line's quantity. A resulting quantity of
// zero or less removes the line; unknown codes are ignored.
func (e *Engine) AdjustQuantity(productCode int64, delta int) {
	for idx := range e.lines {
		if e.lines[idx].ProductCode == productCode {
			e.applyDelta(idx, delta)
			return
		}
	}
}

// SetQuantity replaces the line's quantity outright, the way the inline
// quantity field edits it. Zero or negative removes the line.
func (e *Engine) SetQuantity(productCode int64, quantity int) {
	for idx := range e.lines {
		if e.lines[idx].ProductCode == productCode {
			if quantity <= 0 {
				e.removeAt(idx)
			} else {
				e.lines[idx].Quantity = quantity
			}
			return
		}
	}
}

// Remove drops the line unconditionally.
func (e *Engine) Remove(productCode int64) {
	for idx := range e.lines {
		if e.lines[idx].ProductCode == productCode {
			e.removeAt(idx)
			return
		}
	}
}

// Snapshot returns an ordered copy of the current lines for pricing and
// submission.
func (e *Engine) Snapshot() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Len reports the number of lines.
func (e *Engine) Len() int {
	return len(e.lines)
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
}

func (e *Engine) applyDelta(idx, delta int) {
	next := e.lines[idx].Quantity + delta
	if next <= 0 {
		e.removeAt(idx)
		return
	}
	e.lines[idx].Quantity = next
}

func (e *Engine) removeAt(idx int) {
	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
}
