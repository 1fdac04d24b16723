// Package payment implements the dependent payment-form / payment-condition
// choice. The valid condition set is derived from the selected form; a
// condition belonging to a different form can never persist silently.
package payment

import "salesdesk/internal/domain"

// ValidConditions filters the conditions valid under the selected form. A
// zero form code means no form is selected and yields an empty set.
func ValidConditions(all []domain.PaymentCondition, formCode int64) []domain.PaymentCondition {
	if formCode == 0 {
		return nil
	}
	var valid []domain.PaymentCondition
	for _, c := range all {
		if c.PaymentFormCode == formCode {
			valid = append(valid, c)
		}
	}
	return valid
}

// Selection tracks the current form/condition pair. Changing the form
// invalidates the chosen condition unless it is still valid under the new
// form, forcing a re-choice instead of carrying a stale condition forward.
type Selection struct {
	form      *domain.PaymentForm
	condition *domain.PaymentCondition
}

// SelectForm sets the payment form and re-validates the current condition
// against the full condition list.
func (s *Selection) SelectForm(form domain.PaymentForm, allConditions []domain.PaymentCondition) {
	s.form = &form
	if s.condition == nil {
		return
	}
	for _, c := range ValidConditions(allConditions, form.Code) {
		if c.Code == s.condition.Code {
			return
		}
	}
	s.condition = nil
}

// SelectCondition sets the condition; it must belong to the selected form.
func (s *Selection) SelectCondition(condition domain.PaymentCondition) error {
	if s.form == nil || condition.PaymentFormCode != s.form.Code {
		return domain.ErrConditionMismatch
	}
	s.condition = &condition
	return nil
}

// Clear resets both choices.
func (s *Selection) Clear() {
	s.form = nil
	s.condition = nil
}

// Form returns the selected form, if any.
func (s *Selection) Form() (domain.PaymentForm, bool) {
	if s.form == nil {
		return domain.PaymentForm{}, false
	}
	return *s.form, true
}

// Condition returns the selected condition, if any.
func (s *Selection) Condition() (domain.PaymentCondition, bool) {
	if s.condition == nil {
		return domain.PaymentCondition{}, false
	}
	return *s.condition, true
}
