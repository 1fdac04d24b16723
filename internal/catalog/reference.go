package catalog

import (
	"context"
	"errors"
	"sync"

	"salesdesk/internal/domain"
)

type referenceLister interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListPaymentForms(ctx context.Context) ([]domain.PaymentForm, error)
	ListPaymentConditions(ctx context.Context) ([]domain.PaymentCondition, error)
}

// ReferenceData is the snapshot of clients, payment forms and payment
// conditions. Each list is replaced all-or-nothing; a partial failure keeps
// the lists that did load and reports the ones that did not.
type ReferenceData struct {
	lister referenceLister

	mu         sync.RWMutex
	clients    []domain.Client
	forms      []domain.PaymentForm
	conditions []domain.PaymentCondition
	loaded     bool
}

func NewReferenceData(lister referenceLister) *ReferenceData {
	return &ReferenceData{lister: lister}
}

// Load fetches all three reference lists. Lists that load replace their
// snapshot; the returned error joins one domain.LoadError per failed list.
func (r *ReferenceData) Load(ctx context.Context) error {
	var errs []error

	clients, err := r.lister.ListClients(ctx)
	if err != nil {
		errs = append(errs, &domain.LoadError{Resource: "clients", Err: err})
	}
	forms, err := r.lister.ListPaymentForms(ctx)
	if err != nil {
		errs = append(errs, &domain.LoadError{Resource: "payment forms", Err: err})
	}
	conditions, err := r.lister.ListPaymentConditions(ctx)
	if err != nil {
		errs = append(errs, &domain.LoadError{Resource: "payment conditions", Err: err})
	}

	r.mu.Lock()
	if clients != nil {
		r.clients = clients
	}
	if forms != nil {
		r.forms = forms
	}
	if conditions != nil {
		r.conditions = conditions
	}
	if len(errs) == 0 {
		r.loaded = true
	}
	r.mu.Unlock()

	return errors.Join(errs...)
}

// Loaded reports whether a full load has succeeded at least once.
func (r *ReferenceData) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

func (r *ReferenceData) Clients() []domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, len(r.clients))
	copy(out, r.clients)
	return out
}

func (r *ReferenceData) Client(code int64) (domain.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.Code == code {
			return c, true
		}
	}
	return domain.Client{}, false
}

func (r *ReferenceData) PaymentForms() []domain.PaymentForm {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PaymentForm, len(r.forms))
	copy(out, r.forms)
	return out
}

func (r *ReferenceData) PaymentForm(code int64) (domain.PaymentForm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.forms {
		if f.Code == code {
			return f, true
		}
	}
	return domain.PaymentForm{}, false
}

func (r *ReferenceData) PaymentConditions() []domain.PaymentCondition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PaymentCondition, len(r.conditions))
	copy(out, r.conditions)
	return out
}

func (r *ReferenceData) PaymentCondition(code int64) (domain.PaymentCondition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.conditions {
		if c.Code == code {
			return c, true
		}
	}
	return domain.PaymentCondition{}, false
}
