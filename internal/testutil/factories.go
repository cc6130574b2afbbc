package testutil

import (
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/repository"
)

// createdAtSeq spaces factory timestamps apart so newest-first ordering is
// deterministic even when many rows are created within the same instant.
var createdAtSeq atomic.Int64

func nextCreatedAt() time.Time {
	n := createdAtSeq.Add(1)
	return time.Now().UTC().Add(time.Duration(n) * time.Millisecond)
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build(t, db)
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithTokenSymbol("BTC").
//	    WithPurchasePrice(decimal.NewFromInt(20000)).
//	    WithAmount(decimal.NewFromInt(2)).
//	    Build(t, db)
type HoldingBuilder struct {
	ID            string
	TokenName     string
	TokenSymbol   string
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		ID:            MakeID(),
		TokenName:     MakeTokenName("Bitcoin"),
		TokenSymbol:   MakeTokenSymbol("BTC"),
		PurchasePrice: decimal.NewFromInt(20000),
		CurrentPrice:  decimal.NewFromInt(30000),
		Amount:        decimal.NewFromInt(2),
		CreatedAt:     nextCreatedAt(),
	}
}

// WithID sets a custom ID.
func (b *HoldingBuilder) WithID(id string) *HoldingBuilder {
	b.ID = id
	return b
}

// WithTokenName sets a custom token name.
func (b *HoldingBuilder) WithTokenName(name string) *HoldingBuilder {
	b.TokenName = name
	return b
}

// WithTokenSymbol sets a custom token symbol.
func (b *HoldingBuilder) WithTokenSymbol(symbol string) *HoldingBuilder {
	b.TokenSymbol = symbol
	return b
}

// WithPurchasePrice sets a custom purchase price.
func (b *HoldingBuilder) WithPurchasePrice(price decimal.Decimal) *HoldingBuilder {
	b.PurchasePrice = price
	return b
}

// WithCurrentPrice sets a custom current price.
func (b *HoldingBuilder) WithCurrentPrice(price decimal.Decimal) *HoldingBuilder {
	b.CurrentPrice = price
	return b
}

// WithAmount sets a custom amount.
func (b *HoldingBuilder) WithAmount(amount decimal.Decimal) *HoldingBuilder {
	b.Amount = amount
	return b
}

// WithCreatedAt sets a custom creation timestamp.
func (b *HoldingBuilder) WithCreatedAt(createdAt time.Time) *HoldingBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build inserts the holding into the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	h := model.Holding{
		ID:            b.ID,
		TokenName:     b.TokenName,
		TokenSymbol:   b.TokenSymbol,
		PurchasePrice: b.PurchasePrice,
		CurrentPrice:  b.CurrentPrice,
		Amount:        b.Amount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}

	_, err := db.Exec(`
		INSERT INTO holding (id, token_name, token_symbol, purchase_price, current_price, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID,
		h.TokenName,
		h.TokenSymbol,
		h.PurchasePrice.String(),
		h.CurrentPrice.String(),
		h.Amount.String(),
		repository.FormatTime(h.CreatedAt),
		repository.FormatTime(h.UpdatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to insert test holding: %v", err)
	}

	return h
}

// CreateHolding inserts a holding with default prices and the given token name.
func CreateHolding(t *testing.T, db *sql.DB, tokenName string) model.Holding {
	t.Helper()
	return NewHolding().WithTokenName(tokenName).Build(t, db)
}

// ExitPlanBuilder provides a fluent interface for creating test exit plans.
//
// Example usage:
//
//	plan := testutil.NewExitPlan(holding.ID).
//	    WithTargetPrice(decimal.NewFromInt(35000)).
//	    WithSellPercentage(decimal.NewFromInt(25)).
//	    Build(t, db)
type ExitPlanBuilder struct {
	ID             string
	HoldingID      string
	TargetPrice    decimal.Decimal
	SellPercentage decimal.Decimal
	Notes          string
	IsExecuted     bool
	ExecutedAt     *time.Time
	CreatedAt      time.Time
}

// NewExitPlan creates an ExitPlanBuilder scoped to a holding, with sensible defaults.
func NewExitPlan(holdingID string) *ExitPlanBuilder {
	return &ExitPlanBuilder{
		ID:             MakeID(),
		HoldingID:      holdingID,
		TargetPrice:    decimal.NewFromInt(35000),
		SellPercentage: decimal.NewFromInt(25),
		CreatedAt:      nextCreatedAt(),
	}
}

// WithID sets a custom ID.
func (b *ExitPlanBuilder) WithID(id string) *ExitPlanBuilder {
	b.ID = id
	return b
}

// WithTargetPrice sets a custom target price.
func (b *ExitPlanBuilder) WithTargetPrice(price decimal.Decimal) *ExitPlanBuilder {
	b.TargetPrice = price
	return b
}

// WithSellPercentage sets a custom sell percentage.
func (b *ExitPlanBuilder) WithSellPercentage(pct decimal.Decimal) *ExitPlanBuilder {
	b.SellPercentage = pct
	return b
}

// WithNotes sets the optional notes text.
func (b *ExitPlanBuilder) WithNotes(notes string) *ExitPlanBuilder {
	b.Notes = notes
	return b
}

// Executed marks the plan as executed at the given time.
func (b *ExitPlanBuilder) Executed(at time.Time) *ExitPlanBuilder {
	b.IsExecuted = true
	b.ExecutedAt = &at
	return b
}

// Build inserts the exit plan into the database and returns it.
func (b *ExitPlanBuilder) Build(t *testing.T, db *sql.DB) model.ExitPlan {
	t.Helper()

	p := model.ExitPlan{
		ID:             b.ID,
		HoldingID:      b.HoldingID,
		TargetPrice:    b.TargetPrice,
		SellPercentage: b.SellPercentage,
		Notes:          b.Notes,
		IsExecuted:     b.IsExecuted,
		ExecutedAt:     b.ExecutedAt,
		CreatedAt:      b.CreatedAt,
	}

	var notes any
	if p.Notes != "" {
		notes = p.Notes
	}
	var executedAt any
	if p.ExecutedAt != nil {
		executedAt = repository.FormatTime(*p.ExecutedAt)
	}

	_, err := db.Exec(`
		INSERT INTO exit_plan (id, holding_id, target_price, sell_percentage, notes, is_executed, executed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.HoldingID,
		p.TargetPrice.String(),
		p.SellPercentage.String(),
		notes,
		p.IsExecuted,
		executedAt,
		repository.FormatTime(p.CreatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to insert test exit plan: %v", err)
	}

	return p
}

// CreateExitPlan inserts a pending exit plan for the holding with the given target price.
func CreateExitPlan(t *testing.T, db *sql.DB, holdingID string, targetPrice decimal.Decimal) model.ExitPlan {
	t.Helper()
	return NewExitPlan(holdingID).WithTargetPrice(targetPrice).Build(t, db)
}
