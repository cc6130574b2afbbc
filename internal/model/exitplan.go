package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitPlan represents a staged partial-sale target owned by a holding.
// The holding_id foreign key carries ON DELETE CASCADE, so a plan never
// outlives its holding.
type ExitPlan struct {
	ID             string          `json:"id"`
	HoldingID      string          `json:"holdingId"`
	TargetPrice    decimal.Decimal `json:"targetPrice"`
	SellPercentage decimal.Decimal `json:"sellPercentage"`
	Notes          string          `json:"notes"`
	IsExecuted     bool            `json:"isExecuted"`
	ExecutedAt     *time.Time      `json:"executedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SellAmount returns the tranche size: the fraction of the holding's current
// total amount this plan would sell.
func (p ExitPlan) SellAmount(h Holding) decimal.Decimal {
	return h.Amount.Mul(p.SellPercentage).Div(oneHundred)
}

// ValueAtTarget returns the proceeds of selling the tranche at the target price.
func (p ExitPlan) ValueAtTarget(h Holding) decimal.Decimal {
	return p.SellAmount(h).Mul(p.TargetPrice)
}

// PriceChangePercent returns how far the target price sits from the holding's
// current price, rounded to two decimal places. A non-positive current price
// is treated as zero change rather than a division failure.
func (p ExitPlan) PriceChangePercent(h Holding) decimal.Decimal {
	if h.CurrentPrice.Sign() <= 0 {
		return decimal.Zero
	}
	return p.TargetPrice.Sub(h.CurrentPrice).
		Div(h.CurrentPrice).
		Mul(oneHundred).
		Round(2)
}

// TargetReached reports whether the current price is at or above the target.
// This is a transient status derived on read; it is independent of IsExecuted,
// which only a user action can set.
func (p ExitPlan) TargetReached(h Holding) bool {
	return h.CurrentPrice.GreaterThanOrEqual(p.TargetPrice)
}

// ExitPlanView is an ExitPlan enriched with values derived against its parent
// holding. The derived fields are computed on read and never persisted.
type ExitPlanView struct {
	ExitPlan
	SellAmount         decimal.Decimal `json:"sellAmount"`
	ValueAtTarget      decimal.Decimal `json:"valueAtTarget"`
	PriceChangePercent decimal.Decimal `json:"priceChangePercent"`
	IsTargetReached    bool            `json:"isTargetReached"`
}

// NewExitPlanView computes the read-side view of an exit plan against its
// parent holding.
func NewExitPlanView(p ExitPlan, h Holding) ExitPlanView {
	return ExitPlanView{
		ExitPlan:           p,
		SellAmount:         p.SellAmount(h),
		ValueAtTarget:      p.ValueAtTarget(h),
		PriceChangePercent: p.PriceChangePercent(h),
		IsTargetReached:    p.TargetReached(h),
	}
}
