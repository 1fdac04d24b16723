package domain

import "github.com/shopspring/decimal"

// Product is one catalog entry as served by the stock backend. The snapshot
// loaded at session start is immutable for the whole composition session;
// price edits made elsewhere are not reflected until a reload.
type Product struct {
	Code      int64           `json:"code"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"salePrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}
