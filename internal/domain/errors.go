package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound indicates a product code has no catalog entry.
	ErrProductNotFound = errors.New("product not found")
	// ErrSubmissionInFlight rejects a second submit while one is outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrMissingSaleCode marks a 2xx header response that carried no usable
	// sale code, leaving no way to link items to the header.
	ErrMissingSaleCode = errors.New("header response carried no sale code")
	// ErrConditionMismatch rejects a payment condition that does not belong
	// to the selected payment form.
	ErrConditionMismatch = errors.New("payment condition does not belong to the selected form")
)

// LoadError reports a failed catalog or reference list fetch. The previous
// snapshot stays in place; the caller may retry manually.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError aggregates every missing submission requirement so the
// caller can fix them all in one pass.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing: " + strings.Join(e.Missing, ", ")
}

// HeaderError reports a failed sale header creation. Nothing was persisted,
// so retrying the whole submission is safe.
type HeaderError struct {
	Err error
}

func (e *HeaderError) Error() string { return fmt.Sprintf("create sale header: %v", e.Err) }

func (e *HeaderError) Unwrap() error { return e.Err }

// ItemsError reports a failed item creation after the header was persisted.
// The header identified by SaleCode is now orphaned; Submitted counts the
// items acknowledged before the failure. A retry must resume at the items
// step and never re-create the header.
type ItemsError struct {
	SaleCode  int64
	Submitted int
	Err       error
}

func (e *ItemsError) Error() string {
	return fmt.Sprintf("sale %d has an orphaned header: %d item(s) persisted before failure: %v",
		e.SaleCode, e.Submitted, e.Err)
}

func (e *ItemsError) Unwrap() error { return e.Err }
