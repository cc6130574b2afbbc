package request

import "github.com/shopspring/decimal"

type CreateExitPlanRequest struct {
	HoldingID      string           `json:"holdingId"`
	TargetPrice    *decimal.Decimal `json:"targetPrice"`
	SellPercentage *decimal.Decimal `json:"sellPercentage"`
	Notes          string           `json:"notes,omitempty"`
}

// UpdateExitPlanRequest replaces all mutable fields, including the executed
// flag.
type UpdateExitPlanRequest struct {
	TargetPrice    *decimal.Decimal `json:"targetPrice"`
	SellPercentage *decimal.Decimal `json:"sellPercentage"`
	Notes          string           `json:"notes"`
	IsExecuted     bool             `json:"isExecuted"`
}
