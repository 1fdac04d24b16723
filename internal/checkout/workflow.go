// Package checkout runs the two-step sale submission protocol: create the
// sale header, then create its line items. The backend has no transaction
// spanning the two steps, so the workflow's whole job is to make the partial
// failure modes explicit and resumable instead of swallowing them.
package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/cart"
	"salesdesk/internal/domain"
	"salesdesk/internal/journal"
	"salesdesk/internal/pricing"
)

// State names the workflow position. The failure states are terminal for one
// invocation; a new Submit call is required to move on.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateSubmittingHeader State = "submitting_header"
	StateSubmittingItems  State = "submitting_items"
	StateSucceeded        State = "succeeded"
	StateValidationFailed State = "validation_failed"
	StateHeaderFailed     State = "header_failed"
	StateItemsFailed      State = "items_failed"
)

type submitter interface {
	CreateSale(ctx context.Context, sale domain.Sale) (int64, error)
	CreateSaleItem(ctx context.Context, item domain.SaleItem) error
}

type recorder interface {
	RecordSubmission(outcome string)
}

// Draft is the read-only snapshot of a composition session handed to Submit.
type Draft struct {
	SessionID string
	Client    *domain.Client
	Form      *domain.PaymentForm
	Condition *domain.PaymentCondition
	Lines     []cart.Line
	Totals    pricing.Totals
}

// Receipt reports a completed submission.
type Receipt struct {
	SaleCode int64 `json:"saleCode"`
	Items    int   `json:"items"`
}

// Workflow owns the state machine for one session's submissions. Only one
// Submit may be in flight at a time; a concurrent call is rejected with
// domain.ErrSubmissionInFlight rather than queued.
type Workflow struct {
	backend submitter
	journal journal.Repository
	logger  *log.Logger
	metrics recorder

	mu       sync.Mutex
	state    State
	inFlight bool
}

func New(backend submitter, j journal.Repository, logger *log.Logger) *Workflow {
	return &Workflow{
		backend: backend,
		journal: j,
		logger:  logger,
		state:   StateIdle,
	}
}

// WithMetrics attaches a submission-outcome recorder.
func (w *Workflow) WithMetrics(m recorder) *Workflow {
	w.metrics = m
	return w
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit runs the protocol for the draft. When a prior attempt for the same
// session already persisted a header, Submit resumes at the items step with
// the recorded sale code and never re-creates the header.
func (w *Workflow) Submit(ctx context.Context, draft Draft) (*Receipt, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	w.inFlight = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	// A non-completed journal entry means a header already exists for this
	// session; skip straight to the items step.
	if entry, err := w.journal.Open(ctx, draft.SessionID); err == nil {
		w.logger.Printf("resuming submission for session %s, sale %d", draft.SessionID, entry.SaleCode)
		return w.submitItems(ctx, entry)
	} else if !errors.Is(err, domain.ErrNotFound) {
		w.logger.Printf("journal lookup for session %s failed: %v", draft.SessionID, err)
	}

	w.setState(StateValidating)
	if err := validate(draft); err != nil {
		w.setState(StateValidationFailed)
		w.record("validation_failed")
		return nil, err
	}

	w.setState(StateSubmittingHeader)
	saleCode, err := w.backend.CreateSale(ctx, domain.Sale{
		ClientCode:           draft.Client.Code,
		ClientName:           draft.Client.Name,
		PaymentFormCode:      draft.Form.Code,
		PaymentConditionCode: draft.Condition.Code,
		ProductsValue:        draft.Totals.Subtotal,
		DiscountPercent:      draft.Totals.DiscountPercent,
		Total:                draft.Totals.Total,
	})
	if err != nil {
		w.setState(StateHeaderFailed)
		w.record("header_failed")
		return nil, &domain.HeaderError{Err: err}
	}

	entry := journal.Entry{
		SessionID: draft.SessionID,
		SaleCode:  saleCode,
		State:     journal.StatePendingItems,
		Items:     itemsForSale(saleCode, draft.Lines),
		CreatedAt: time.Now().UTC(),
	}
	w.persist(ctx, entry)

	return w.submitItems(ctx, &entry)
}

func (w *Workflow) submitItems(ctx context.Context, entry *journal.Entry) (*Receipt, error) {
	w.setState(StateSubmittingItems)

	for _, it := range entry.Remaining() {
		if err := w.backend.CreateSaleItem(ctx, it.Payload); err != nil {
			entry.State = journal.StateItemsFailed
			w.persist(ctx, *entry)
			w.setState(StateItemsFailed)
			w.record("items_failed")
			return nil, &domain.ItemsError{
				SaleCode:  entry.SaleCode,
				Submitted: len(entry.Items) - len(entry.Remaining()),
				Err:       err,
			}
		}
		entry.Ack(it.Payload.ProductCode)
		w.persist(ctx, *entry)
	}

	entry.State = journal.StateCompleted
	w.persist(ctx, *entry)
	w.setState(StateSucceeded)
	w.record("succeeded")
	return &Receipt{SaleCode: entry.SaleCode, Items: len(entry.Items)}, nil
}

func validate(draft Draft) error {
	var missing []string
	if draft.Client == nil {
		missing = append(missing, "client")
	}
	if draft.Form == nil {
		missing = append(missing, "payment form")
	}
	if draft.Condition == nil {
		missing = append(missing, "payment condition")
	}
	if len(draft.Lines) == 0 {
		missing = append(missing, "at least one item")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Missing: missing}
	}
	return nil
}

func itemsForSale(saleCode int64, lines []cart.Line) []journal.Item {
	items := make([]journal.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, journal.Item{Payload: domain.SaleItem{
			SaleCode:     saleCode,
			ProductCode:  line.ProductCode,
			ProductName:  line.ProductName,
			UnitCost:     line.UnitCost,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineDiscount: decimal.Zero,
			LineTotal:    line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}})
	}
	return items
}

func (w *Workflow) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// persist writes the journal best-effort: a journal failure must not abort a
// submission that the backend already accepted.
func (w *Workflow) persist(ctx context.Context, entry journal.Entry) {
	if err := w.journal.Save(ctx, entry); err != nil {
		w.logger.Printf("journal save for session %s (sale %d) failed: %v", entry.SessionID, entry.SaleCode, err)
	}
}

func (w *Workflow) record(outcome string) {
	if w.metrics != nil {
		w.metrics.RecordSubmission(outcome)
	}
}
