package domain

// PaymentForm is a top-level payment method (cash, card, ...).
type PaymentForm struct {
	Code int64  `json:"code"`
	Name string `json:"name"`
}

// PaymentCondition is an installment schedule tied to one payment form. A
// condition is selectable only while its PaymentFormCode matches the selected
// form.
type PaymentCondition struct {
	Code                 int64  `json:"code"`
	PaymentFormCode      int64  `json:"paymentFormCode"`
	InstallmentCount     int    `json:"installmentCount"`
	FirstInstallmentDays int    `json:"firstInstallmentDays"`
	InstallmentInterval  int    `json:"installmentIntervalDays"`
	Description          string `json:"description"`
}
