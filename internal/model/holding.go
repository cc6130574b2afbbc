package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Holding represents a token position from the database.
// All monetary quantities are arbitrary-precision decimals (DECIMAL(20,8) in
// the schema); they are never represented as binary floats.
type Holding struct {
	ID            string          `json:"id"`
	TokenName     string          `json:"tokenName"`
	TokenSymbol   string          `json:"tokenSymbol"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Invested returns the capital originally put into the position.
func (h Holding) Invested() decimal.Decimal {
	return h.PurchasePrice.Mul(h.Amount)
}

// CurrentValue returns the market value of the position at the current price.
func (h Holding) CurrentValue() decimal.Decimal {
	return h.CurrentPrice.Mul(h.Amount)
}

// ProfitLoss returns current value minus invested capital.
// A result >= 0 classifies the position as profitable.
func (h Holding) ProfitLoss() decimal.Decimal {
	return h.CurrentValue().Sub(h.Invested())
}

// ProfitLossPercent returns the profit/loss as a percentage of invested
// capital, rounded to two decimal places. Returns zero when nothing was
// invested so the result is never undefined or infinite.
func (h Holding) ProfitLossPercent() decimal.Decimal {
	invested := h.Invested()
	if invested.Sign() <= 0 {
		return decimal.Zero
	}
	return h.ProfitLoss().Div(invested).Mul(oneHundred).Round(2)
}

// HoldingView is a Holding enriched with its derived valuation fields.
// The derived fields are computed on read and never persisted.
type HoldingView struct {
	Holding
	Invested          decimal.Decimal `json:"invested"`
	CurrentValue      decimal.Decimal `json:"currentValue"`
	ProfitLoss        decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent decimal.Decimal `json:"profitLossPercent"`
}

// NewHoldingView computes the read-side view of a holding.
func NewHoldingView(h Holding) HoldingView {
	return HoldingView{
		Holding:           h,
		Invested:          h.Invested(),
		CurrentValue:      h.CurrentValue(),
		ProfitLoss:        h.ProfitLoss(),
		ProfitLossPercent: h.ProfitLossPercent(),
	}
}

// PortfolioSummary represents the aggregate state of all holdings. It has no
// lifecycle of its own: it is folded over the full holding collection on read.
type PortfolioSummary struct {
	TotalValue             decimal.Decimal `json:"totalValue"`
	TotalInvested          decimal.Decimal `json:"totalInvested"`
	TotalProfitLoss        decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercent decimal.Decimal `json:"totalProfitLossPercent"`
}

// NewPortfolioSummary folds the holdings into portfolio totals.
// The percentage is guarded the same way as the per-holding percentage.
func NewPortfolioSummary(holdings []Holding) PortfolioSummary {
	summary := PortfolioSummary{
		TotalValue:      decimal.Zero,
		TotalInvested:   decimal.Zero,
		TotalProfitLoss: decimal.Zero,
	}

	for _, h := range holdings {
		summary.TotalValue = summary.TotalValue.Add(h.CurrentValue())
		summary.TotalInvested = summary.TotalInvested.Add(h.Invested())
	}

	summary.TotalProfitLoss = summary.TotalValue.Sub(summary.TotalInvested)
	if summary.TotalInvested.Sign() > 0 {
		summary.TotalProfitLossPercent = summary.TotalProfitLoss.
			Div(summary.TotalInvested).
			Mul(oneHundred).
			Round(2)
	} else {
		summary.TotalProfitLossPercent = decimal.Zero
	}

	return summary
}
