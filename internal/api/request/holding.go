package request

import "github.com/shopspring/decimal"

// Numeric fields are pointers so a missing field can be told apart from an
// explicit zero. They decode from JSON numbers or strings; either way the
// value is held as an exact decimal, never a binary float.

type CreateHoldingRequest struct {
	TokenName     string           `json:"tokenName"`
	TokenSymbol   string           `json:"tokenSymbol"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice"`
	Amount        *decimal.Decimal `json:"amount"`
}

// UpdateHoldingRequest carries the same fields as create: holdings are
// updated by full-field replace, not partial patch.
type UpdateHoldingRequest struct {
	TokenName     string           `json:"tokenName"`
	TokenSymbol   string           `json:"tokenSymbol"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice"`
	Amount        *decimal.Decimal `json:"amount"`
}
