// Package journal records submission attempts durably enough to resume a
// half-finished one. After the sale header is created the obtained sale code
// and the item payloads are written here, so a failed items step can be
// retried without re-creating the header, even across a process restart when
// the Postgres journal is configured.
package journal

import (
	"context"
	"time"

	"salesdesk/internal/domain"
)

type State string

const (
	// StatePendingItems: header persisted, items not yet all acknowledged.
	StatePendingItems State = "pending_items"
	// StateItemsFailed: an item call failed, leaving an orphaned header.
	StateItemsFailed State = "items_failed"
	// StateCompleted: every item acknowledged.
	StateCompleted State = "completed"
)

// Item is one sale item payload plus its acknowledgement flag.
type Item struct {
	Payload domain.SaleItem `json:"payload"`
	Acked   bool            `json:"acked"`
}

// Entry is the journal record for one submission, keyed by session id. Only
// one submission per session can be open at a time.
type Entry struct {
	SessionID string    `json:"sessionId"`
	SaleCode  int64     `json:"saleCode"`
	State     State     `json:"state"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Remaining returns the items not yet acknowledged.
func (e *Entry) Remaining() []Item {
	var out []Item
	for _, it := range e.Items {
		if !it.Acked {
			out = append(out, it)
		}
	}
	return out
}

// Ack marks the item for the given product code as acknowledged.
func (e *Entry) Ack(productCode int64) {
	for i := range e.Items {
		if e.Items[i].Payload.ProductCode == productCode {
			e.Items[i].Acked = true
			return
		}
	}
}

// Repository persists journal entries. Save upserts by session id; Open
// returns the session's non-completed entry or domain.ErrNotFound.
type Repository interface {
	Save(ctx context.Context, entry Entry) error
	Open(ctx context.Context, sessionID string) (*Entry, error)
	Delete(ctx context.Context, sessionID string) error
}
