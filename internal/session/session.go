// Package session owns the mutable state of one sale composition: the cart,
// the discount input, the client and payment selections, and the submission
// workflow. The original UI held this at component scope; here it is an
// explicit object handed to the HTTP layer by handle.
package session

import (
	"context"
	"sync"
	"time"

	"salesdesk/internal/cart"
	"salesdesk/internal/catalog"
	"salesdesk/internal/checkout"
	"salesdesk/internal/domain"
	"salesdesk/internal/payment"
	"salesdesk/internal/pricing"
)

// Session is single-owner: one UI session mutates it, and its mutex only
// guards against the UI racing its own in-flight submission.
type Session struct {
	ID        string
	CreatedAt time.Time

	catalog  *catalog.Index
	refs     *catalog.ReferenceData
	workflow *checkout.Workflow

	mu            sync.Mutex
	engine        *cart.Engine
	discountInput string
	client        *domain.Client
	selection     payment.Selection
}

// View is the JSON snapshot returned to the UI after every mutation. The
// pricing triple is recomputed on each snapshot, so it always reflects the
// latest cart and discount state.
type View struct {
	ID               string                   `json:"id"`
	CreatedAt        time.Time                `json:"createdAt"`
	Client           *domain.Client           `json:"client,omitempty"`
	PaymentForm      *domain.PaymentForm      `json:"paymentForm,omitempty"`
	PaymentCondition *domain.PaymentCondition `json:"paymentCondition,omitempty"`
	Items            []cart.Line              `json:"items"`
	Totals           pricing.Totals           `json:"totals"`
	State            checkout.State           `json:"state"`
	DiscountInput    string                   `json:"discountInput"`
}

// AddItem looks the product up in the catalog snapshot and adds or
// increments its cart line.
func (s *Session) AddItem(productCode int64, quantity int) error {
	product, ok := s.catalog.Product(productCode)
	if !ok {
		return domain.ErrProductNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AddOrIncrement(product, quantity)
}

// AdjustItem applies a quantity delta; zero or below removes the line.
func (s *Session) AdjustItem(productCode int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.AdjustQuantity(productCode, delta)
}

// SetItemQuantity replaces a line's quantity outright.
func (s *Session) SetItemQuantity(productCode int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetQuantity(productCode, quantity)
}

// RemoveItem drops the line unconditionally.
func (s *Session) RemoveItem(productCode int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Remove(productCode)
}

// SetDiscount stores the free-text discount input as typed; parsing happens
// at computation time and never fails.
func (s *Session) SetDiscount(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountInput = input
}

// SelectClient picks the client by code from the reference snapshot.
func (s *Session) SelectClient(code int64) error {
	client, ok := s.refs.Client(code)
	if !ok {
		return domain.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = &client
	return nil
}

// SelectPayment picks the payment form and, when conditionCode is non-zero,
// the condition. Changing the form drops a condition that is not valid under
// the new form.
func (s *Session) SelectPayment(formCode, conditionCode int64) error {
	form, ok := s.refs.PaymentForm(formCode)
	if !ok {
		return domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectForm(form, s.refs.PaymentConditions())

	if conditionCode == 0 {
		return nil
	}
	condition, ok := s.refs.PaymentCondition(conditionCode)
	if !ok {
		return domain.ErrNotFound
	}
	return s.selection.SelectCondition(condition)
}

// Totals recomputes the pricing triple from the current cart and discount.
func (s *Session) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Compute(s.engine.Snapshot(), s.discountInput)
}

// Snapshot renders the session for the UI.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		Client:        s.client,
		Items:         s.engine.Snapshot(),
		Totals:        pricing.Compute(s.engine.Snapshot(), s.discountInput),
		State:         s.workflow.State(),
		DiscountInput: s.discountInput,
	}
	if form, ok := s.selection.Form(); ok {
		view.PaymentForm = &form
	}
	if condition, ok := s.selection.Condition(); ok {
		view.PaymentCondition = &condition
	}
	return view
}

// Submit snapshots the session and runs the submission workflow. On success
// the cart is cleared and the discount reset for the next sale.
func (s *Session) Submit(ctx context.Context) (*checkout.Receipt, error) {
	s.mu.Lock()
	draft := checkout.Draft{
		SessionID: s.ID,
		Client:    s.client,
		Lines:     s.engine.Snapshot(),
		Totals:    pricing.Compute(s.engine.Snapshot(), s.discountInput),
	}
	if form, ok := s.selection.Form(); ok {
		draft.Form = &form
	}
	if condition, ok := s.selection.Condition(); ok {
		draft.Condition = &condition
	}
	s.mu.Unlock()

	receipt, err := s.workflow.Submit(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.engine.Clear()
	s.discountInput = ""
	s.mu.Unlock()
	return receipt, nil
}
