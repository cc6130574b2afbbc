package model_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
)

// TestExitPlan_DerivedValues tests the tranche math derived against the
// parent holding.
//
// WHY: Sell amount and value-at-target drive the user's exit decisions; the
// percentage-of-amount arithmetic must be exact for small-denomination
// tokens.
func TestExitPlan_DerivedValues(t *testing.T) {
	holding := model.Holding{
		PurchasePrice: decimal.NewFromInt(20000),
		CurrentPrice:  decimal.NewFromInt(30000),
		Amount:        decimal.NewFromInt(2),
	}

	t.Run("computes sell amount and value at target", func(t *testing.T) {
		plan := model.ExitPlan{
			TargetPrice:    decimal.NewFromInt(35000),
			SellPercentage: decimal.NewFromInt(25),
		}

		if got := plan.SellAmount(holding); !got.Equal(decimal.RequireFromString("0.5")) {
			t.Errorf("SellAmount() = %s, want 0.5", got)
		}
		if got := plan.ValueAtTarget(holding); !got.Equal(decimal.NewFromInt(17500)) {
			t.Errorf("ValueAtTarget() = %s, want 17500", got)
		}
	})

	t.Run("computes price change percentage rounded to two decimals", func(t *testing.T) {
		plan := model.ExitPlan{
			TargetPrice:    decimal.NewFromInt(35000),
			SellPercentage: decimal.NewFromInt(25),
		}

		// (35000-30000)/30000 * 100 = 16.666... -> 16.67
		if got := plan.PriceChangePercent(holding); !got.Equal(decimal.RequireFromString("16.67")) {
			t.Errorf("PriceChangePercent() = %s, want 16.67", got)
		}
	})

	t.Run("price change is negative for a target below current price", func(t *testing.T) {
		plan := model.ExitPlan{
			TargetPrice: decimal.NewFromInt(15000),
		}

		if got := plan.PriceChangePercent(holding); !got.Equal(decimal.NewFromInt(-50)) {
			t.Errorf("PriceChangePercent() = %s, want -50", got)
		}
	})

	t.Run("treats a non-positive current price as zero change", func(t *testing.T) {
		broke := model.Holding{
			CurrentPrice: decimal.Zero,
			Amount:       decimal.NewFromInt(1),
		}
		plan := model.ExitPlan{
			TargetPrice: decimal.NewFromInt(100),
		}

		if got := plan.PriceChangePercent(broke); !got.Equal(decimal.Zero) {
			t.Errorf("PriceChangePercent() = %s, want 0", got)
		}
	})

	t.Run("sell amount is exact for fractional percentages", func(t *testing.T) {
		fractional := model.Holding{
			Amount: decimal.RequireFromString("0.00000003"),
		}
		plan := model.ExitPlan{
			SellPercentage: decimal.NewFromInt(50),
		}

		if got := plan.SellAmount(fractional); !got.Equal(decimal.RequireFromString("0.000000015")) {
			t.Errorf("SellAmount() = %s, want 0.000000015", got)
		}
	})
}

// TestExitPlan_TargetReached tests the transient target status.
//
// WHY: Target-reached is derived from price alone and must never be
// conflated with the user-driven executed flag.
func TestExitPlan_TargetReached(t *testing.T) {
	t.Run("reached when current price is above target", func(t *testing.T) {
		h := model.Holding{CurrentPrice: decimal.NewFromInt(40000)}
		p := model.ExitPlan{TargetPrice: decimal.NewFromInt(35000)}

		if !p.TargetReached(h) {
			t.Error("Expected target to be reached")
		}
	})

	t.Run("reached when current price equals target", func(t *testing.T) {
		h := model.Holding{CurrentPrice: decimal.NewFromInt(35000)}
		p := model.ExitPlan{TargetPrice: decimal.NewFromInt(35000)}

		if !p.TargetReached(h) {
			t.Error("Expected target to be reached at the boundary")
		}
	})

	t.Run("not reached when current price is below target", func(t *testing.T) {
		h := model.Holding{CurrentPrice: decimal.NewFromInt(30000)}
		p := model.ExitPlan{TargetPrice: decimal.NewFromInt(35000)}

		if p.TargetReached(h) {
			t.Error("Expected target not to be reached")
		}
	})

	t.Run("independent of the executed flag", func(t *testing.T) {
		h := model.Holding{CurrentPrice: decimal.NewFromInt(30000)}
		p := model.ExitPlan{TargetPrice: decimal.NewFromInt(35000), IsExecuted: true}

		if p.TargetReached(h) {
			t.Error("Executed flag must not affect target-reached status")
		}

		view := model.NewExitPlanView(p, h)
		if view.IsTargetReached {
			t.Error("View must report target not reached regardless of execution")
		}
		if !view.IsExecuted {
			t.Error("View must still carry the executed flag")
		}
	})
}
