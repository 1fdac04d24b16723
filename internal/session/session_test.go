package session

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"

	"salesdesk/internal/catalog"
	"salesdesk/internal/checkout"
	"salesdesk/internal/domain"
	"salesdesk/internal/journal"
)

// stubBackend serves both the reference loads and the submission calls.
type stubBackend struct {
	products   []domain.Product
	clients    []domain.Client
	forms      []domain.PaymentForm
	conditions []domain.PaymentCondition

	nextSaleCode int64
	saleErr      error
	itemErr      error
	sales        int
	items        int
}

func (b *stubBackend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return b.products, nil
}

func (b *stubBackend) ListClients(ctx context.Context) ([]domain.Client, error) {
	return b.clients, nil
}

func (b *stubBackend) ListPaymentForms(ctx context.Context) ([]domain.PaymentForm, error) {
	return b.forms, nil
}

func (b *stubBackend) ListPaymentConditions(ctx context.Context) ([]domain.PaymentCondition, error) {
	return b.conditions, nil
}

func (b *stubBackend) CreateSale(ctx context.Context, sale domain.Sale) (int64, error) {
	if b.saleErr != nil {
		return 0, b.saleErr
	}
	b.sales++
	return b.nextSaleCode, nil
}

func (b *stubBackend) CreateSaleItem(ctx context.Context, item domain.SaleItem) error {
	if b.itemErr != nil {
		return b.itemErr
	}
	b.items++
	return nil
}

func fixtureBackend() *stubBackend {
	return &stubBackend{
		products: []domain.Product{
			{Code: 1, Name: "Caderno", SalePrice: decimal.NewFromFloat(9.75), UnitCost: decimal.NewFromFloat(6.50)},
			{Code: 2, Name: "Caneta", SalePrice: decimal.NewFromFloat(1.98), UnitCost: decimal.NewFromFloat(1.10)},
		},
		clients: []domain.Client{{Code: 7, Name: "Maria"}},
		forms:   []domain.PaymentForm{{Code: 1, Name: "Dinheiro"}, {Code: 2, Name: "Cartão"}},
		conditions: []domain.PaymentCondition{
			{Code: 10, PaymentFormCode: 1, InstallmentCount: 1, Description: "À vista"},
			{Code: 11, PaymentFormCode: 2, InstallmentCount: 3, Description: "3x"},
		},
		nextSaleCode: 42,
	}
}

func fixtureStore(t *testing.T, backend *stubBackend) *Store {
	t.Helper()

	idx := catalog.NewIndex(backend)
	if err := idx.Load(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	refs := catalog.NewReferenceData(backend)
	if err := refs.Load(context.Background()); err != nil {
		t.Fatalf("load references: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	return NewStore(idx, refs, func() *checkout.Workflow {
		return checkout.New(backend, journal.NewMemory(), logger)
	})
}

func TestStore_CreateGetDelete(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())

	s := store.Create()
	if s.ID == "" {
		t.Fatal("expected a session id")
	}

	got, err := store.Get(s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Fatal("Get returned a different session")
	}

	store.Delete(s.ID)
	if _, err := store.Get(s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSession_AddItemUnknownProduct(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())
	s := store.Create()

	if err := s.AddItem(99, 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSession_SnapshotReflectsCartAndDiscount(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())
	s := store.Create()

	if err := s.AddItem(1, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := s.AddItem(2, 3); err != nil {
		t.Fatalf("add item: %v", err)
	}
	s.SetDiscount("10")

	view := s.Snapshot()
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}
	// 2*9.75 + 3*1.98 = 25.44; 10% off = 22.896
	if !view.Totals.Subtotal.Equal(decimal.NewFromFloat(25.44)) {
		t.Fatalf("subtotal = %s, want 25.44", view.Totals.Subtotal)
	}
	if !view.Totals.Total.Equal(decimal.NewFromFloat(22.896)) {
		t.Fatalf("total = %s, want 22.896", view.Totals.Total)
	}
	if view.State != checkout.StateIdle {
		t.Fatalf("state = %s, want idle", view.State)
	}
}

func TestSession_SelectPaymentSwitchDropsCondition(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())
	s := store.Create()

	if err := s.SelectPayment(1, 10); err != nil {
		t.Fatalf("select payment: %v", err)
	}
	if view := s.Snapshot(); view.PaymentCondition == nil || view.PaymentCondition.Code != 10 {
		t.Fatalf("expected condition 10, got %+v", view.PaymentCondition)
	}

	// Switching to another form invalidates the condition selection.
	if err := s.SelectPayment(2, 0); err != nil {
		t.Fatalf("select payment: %v", err)
	}
	view := s.Snapshot()
	if view.PaymentForm == nil || view.PaymentForm.Code != 2 {
		t.Fatalf("expected form 2, got %+v", view.PaymentForm)
	}
	if view.PaymentCondition != nil {
		t.Fatalf("expected condition cleared, got %+v", view.PaymentCondition)
	}
}

func TestSession_SelectPaymentRejectsForeignCondition(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())
	s := store.Create()

	if err := s.SelectPayment(1, 11); !errors.Is(err, domain.ErrConditionMismatch) {
		t.Fatalf("expected ErrConditionMismatch, got %v", err)
	}
}

func TestSession_SubmitClearsCart(t *testing.T) {
	backend := fixtureBackend()
	store := fixtureStore(t, backend)
	s := store.Create()

	if err := s.AddItem(1, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	s.SetDiscount("5")
	if err := s.SelectClient(7); err != nil {
		t.Fatalf("select client: %v", err)
	}
	if err := s.SelectPayment(1, 10); err != nil {
		t.Fatalf("select payment: %v", err)
	}

	receipt, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.SaleCode != 42 || receipt.Items != 1 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if backend.sales != 1 || backend.items != 1 {
		t.Fatalf("backend saw %d sales and %d items", backend.sales, backend.items)
	}

	view := s.Snapshot()
	if len(view.Items) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(view.Items))
	}
	if view.DiscountInput != "" {
		t.Fatalf("discount not reset: %q", view.DiscountInput)
	}
}

func TestSession_SubmitValidationKeepsCart(t *testing.T) {
	store := fixtureStore(t, fixtureBackend())
	s := store.Create()

	if err := s.AddItem(1, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	_, err := s.Submit(context.Background())
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// A failed attempt leaves the composition untouched.
	if view := s.Snapshot(); len(view.Items) != 1 {
		t.Fatalf("cart changed after failed submit: %d lines", len(view.Items))
	}
}
