// Package catalog holds the in-memory snapshots of the product catalog and
// the reference lists (clients, payment forms, payment conditions) used
// during sale composition. Snapshots are replaced whole or not at all: a
// failed load keeps the prior snapshot and reports a domain.LoadError so the
// caller can retry manually.
package catalog

import (
	"context"
	"sync"

	"salesdesk/internal/domain"
)

type productLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Index is the product catalog snapshot used for line-item lookup.
type Index struct {
	lister productLister

	mu       sync.RWMutex
	products []domain.Product
	byCode   map[int64]domain.Product
	loaded   bool
}

func NewIndex(lister productLister) *Index {
	return &Index{lister: lister}
}

// Load fetches the full product list and swaps it in atomically. On failure
// the previous snapshot (possibly empty) stays in place.
func (i *Index) Load(ctx context.Context) error {
	products, err := i.lister.ListProducts(ctx)
	if err != nil {
		return &domain.LoadError{Resource: "products", Err: err}
	}

	byCode := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}

	i.mu.Lock()
	i.products = products
	i.byCode = byCode
	i.loaded = true
	i.mu.Unlock()
	return nil
}

// Loaded reports whether at least one load has succeeded.
func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

// Product looks up one catalog entry by code.
func (i *Index) Product(code int64) (domain.Product, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	p, ok := i.byCode[code]
	return p, ok
}

// Products returns a copy of the snapshot in backend order.
func (i *Index) Products() []domain.Product {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]domain.Product, len(i.products))
	copy(out, i.products)
	return out
}
