package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid request body", func(t *testing.T) {
		body := `{"tokenName":"Bitcoin","tokenSymbol":"BTC","purchasePrice":"20000","currentPrice":"30000","amount":"2"}`
		r := httptest.NewRequest("POST", "/api/holdings", strings.NewReader(body))

		req, err := parseJSON[request.CreateHoldingRequest](r)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if req.TokenName != "Bitcoin" {
			t.Errorf("TokenName = %q, want %q", req.TokenName, "Bitcoin")
		}
		if req.Amount == nil || !req.Amount.Equal(decimal.NewFromInt(2)) {
			t.Errorf("Amount = %v, want 2", req.Amount)
		}
	})

	t.Run("decodes numeric JSON values into decimals", func(t *testing.T) {
		body := `{"tokenName":"Ethereum","tokenSymbol":"ETH","purchasePrice":1800.5,"currentPrice":2100.25,"amount":3.5}`
		r := httptest.NewRequest("POST", "/api/holdings", strings.NewReader(body))

		req, err := parseJSON[request.CreateHoldingRequest](r)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if req.PurchasePrice == nil || !req.PurchasePrice.Equal(decimal.RequireFromString("1800.5")) {
			t.Errorf("PurchasePrice = %v, want 1800.5", req.PurchasePrice)
		}
	})

	t.Run("leaves absent fields nil", func(t *testing.T) {
		body := `{"tokenName":"Bitcoin"}`
		r := httptest.NewRequest("POST", "/api/holdings", strings.NewReader(body))

		req, err := parseJSON[request.CreateHoldingRequest](r)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if req.PurchasePrice != nil {
			t.Errorf("Expected nil PurchasePrice for absent field, got %v", req.PurchasePrice)
		}
		if req.Amount != nil {
			t.Errorf("Expected nil Amount for absent field, got %v", req.Amount)
		}
	})

	t.Run("returns an error for malformed JSON", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/holdings", strings.NewReader(`{"tokenName": `))

		_, err := parseJSON[request.CreateHoldingRequest](r)
		if err == nil {
			t.Error("Expected an error for malformed JSON")
		}
	})

	t.Run("returns an error for a non-numeric decimal", func(t *testing.T) {
		body := `{"tokenName":"Bitcoin","amount":"not-a-number"}`
		r := httptest.NewRequest("POST", "/api/holdings", strings.NewReader(body))

		_, err := parseJSON[request.CreateHoldingRequest](r)
		if err == nil {
			t.Error("Expected an error for a non-numeric decimal field")
		}
	})
}
