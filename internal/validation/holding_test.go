package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/validation"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func validCreateHolding() request.CreateHoldingRequest {
	return request.CreateHoldingRequest{
		TokenName:     "Bitcoin",
		TokenSymbol:   "BTC",
		PurchasePrice: decimalPtr(decimal.NewFromInt(20000)),
		CurrentPrice:  decimalPtr(decimal.NewFromInt(30000)),
		Amount:        decimalPtr(decimal.NewFromInt(2)),
	}
}

// fieldError extracts the per-field message map from a validation error.
func fieldError(t *testing.T, err error, field string) string {
	t.Helper()

	if err == nil {
		t.Fatal("Expected a validation error")
	}
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *validation.Error, got %T", err)
	}
	msg, ok := vErr.Fields[field]
	if !ok {
		t.Fatalf("Expected error for field %q, got %v", field, vErr.Fields)
	}
	return msg
}

// TestValidateCreateHolding tests holding create validation.
//
// WHY: Prices are deliberately permissive (any value may be recorded) while
// the amount may not be negative; missing fields must be reported per field.
func TestValidateCreateHolding(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateHolding(validCreateHolding()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects missing token name", func(t *testing.T) {
		req := validCreateHolding()
		req.TokenName = "  "

		err := validation.ValidateCreateHolding(req)
		fieldError(t, err, "tokenName")
	})

	t.Run("rejects token name over 100 characters", func(t *testing.T) {
		req := validCreateHolding()
		req.TokenName = strings.Repeat("a", 101)

		err := validation.ValidateCreateHolding(req)
		fieldError(t, err, "tokenName")
	})

	t.Run("rejects token symbol over 20 characters", func(t *testing.T) {
		req := validCreateHolding()
		req.TokenSymbol = strings.Repeat("B", 21)

		err := validation.ValidateCreateHolding(req)
		fieldError(t, err, "tokenSymbol")
	})

	t.Run("rejects missing numeric fields individually", func(t *testing.T) {
		req := request.CreateHoldingRequest{
			TokenName:   "Bitcoin",
			TokenSymbol: "BTC",
		}

		err := validation.ValidateCreateHolding(req)
		fieldError(t, err, "purchasePrice")
		fieldError(t, err, "currentPrice")
		fieldError(t, err, "amount")
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		req := validCreateHolding()
		req.Amount = decimalPtr(decimal.NewFromInt(-1))

		err := validation.ValidateCreateHolding(req)
		fieldError(t, err, "amount")
	})

	t.Run("accepts a zero amount", func(t *testing.T) {
		req := validCreateHolding()
		req.Amount = decimalPtr(decimal.Zero)

		if err := validation.ValidateCreateHolding(req); err != nil {
			t.Errorf("Expected no error for zero amount, got %v", err)
		}
	})

	t.Run("accepts zero and negative prices", func(t *testing.T) {
		req := validCreateHolding()
		req.PurchasePrice = decimalPtr(decimal.Zero)
		req.CurrentPrice = decimalPtr(decimal.NewFromInt(-5))

		if err := validation.ValidateCreateHolding(req); err != nil {
			t.Errorf("Expected prices to be permissive, got %v", err)
		}
	})
}

// TestValidateUpdateHolding tests that updates enforce the same rules as
// create.
func TestValidateUpdateHolding(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		req := request.UpdateHoldingRequest{
			TokenName:     "Bitcoin",
			TokenSymbol:   "BTC",
			PurchasePrice: decimalPtr(decimal.NewFromInt(20000)),
			CurrentPrice:  decimalPtr(decimal.NewFromInt(30000)),
			Amount:        decimalPtr(decimal.NewFromInt(2)),
		}

		if err := validation.ValidateUpdateHolding(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		err := validation.ValidateUpdateHolding(request.UpdateHoldingRequest{})
		fieldError(t, err, "tokenName")
		fieldError(t, err, "tokenSymbol")
		fieldError(t, err, "amount")
	})
}
