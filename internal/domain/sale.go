package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the persisted sale header. The code is assigned by the backend on
// creation and is the only link between the header and its items.
type Sale struct {
	Code                 int64           `json:"code"`
	ClientCode           int64           `json:"clientCode"`
	ClientName           string          `json:"clientName"`
	PaymentFormCode      int64           `json:"paymentFormCode"`
	PaymentConditionCode int64           `json:"paymentConditionCode"`
	ProductsValue        decimal.Decimal `json:"productsValue"`
	DiscountPercent      decimal.Decimal `json:"discountPercent"`
	Total                decimal.Decimal `json:"total"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// SaleItem is one persisted line of a sale, created only after the header
// exists. LineTotal is the gross quantity × unit price; the percentage
// discount lives on the header, not the lines.
type SaleItem struct {
	SaleCode     int64           `json:"saleCode"`
	ProductCode  int64           `json:"productCode"`
	ProductName  string          `json:"productName"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}
