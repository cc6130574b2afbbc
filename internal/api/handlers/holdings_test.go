package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/handlers"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/testutil"
)

// TestHoldingHandler_Holdings tests the list endpoint.
//
// WHY: The list response is the JSON contract the frontend renders; field
// names and the derived valuation values must survive the full
// storage-to-JSON round trip.
func TestHoldingHandler_Holdings(t *testing.T) {
	t.Run("returns empty array when no holdings exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		rec := httptest.NewRecorder()

		handler.Holdings(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]\n" && body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	t.Run("returns holdings with derived fields in camelCase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		testutil.NewHolding().
			WithPurchasePrice(decimal.NewFromInt(20000)).
			WithCurrentPrice(decimal.NewFromInt(30000)).
			WithAmount(decimal.NewFromInt(2)).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
		rec := httptest.NewRecorder()

		handler.Holdings(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var got []map[string]json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(got))
		}

		for _, field := range []string{
			"id", "tokenName", "tokenSymbol", "purchasePrice", "currentPrice",
			"amount", "invested", "currentValue", "profitLoss", "profitLossPercent",
			"createdAt", "updatedAt",
		} {
			if _, ok := got[0][field]; !ok {
				t.Errorf("Expected field %q in response", field)
			}
		}

		var profitLoss decimal.Decimal
		if err := json.Unmarshal(got[0]["profitLoss"], &profitLoss); err != nil {
			t.Fatalf("Failed to decode profitLoss: %v", err)
		}
		if !profitLoss.Equal(decimal.NewFromInt(20000)) {
			t.Errorf("profitLoss = %s, want 20000", profitLoss)
		}
	})
}

// TestHoldingHandler_PortfolioSummary tests the aggregate endpoint.
func TestHoldingHandler_PortfolioSummary(t *testing.T) {
	t.Run("returns folded totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		testutil.NewHolding().
			WithPurchasePrice(decimal.NewFromInt(20000)).
			WithCurrentPrice(decimal.NewFromInt(30000)).
			WithAmount(decimal.NewFromInt(2)).
			Build(t, db)
		testutil.NewHolding().
			WithPurchasePrice(decimal.NewFromInt(1000)).
			WithCurrentPrice(decimal.NewFromInt(500)).
			WithAmount(decimal.NewFromInt(10)).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/holdings/summary", nil)
		rec := httptest.NewRecorder()

		handler.PortfolioSummary(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var summary model.PortfolioSummary
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if !summary.TotalInvested.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("totalInvested = %s, want 50000", summary.TotalInvested)
		}
		if !summary.TotalValue.Equal(decimal.NewFromInt(65000)) {
			t.Errorf("totalValue = %s, want 65000", summary.TotalValue)
		}
		if !summary.TotalProfitLoss.Equal(decimal.NewFromInt(15000)) {
			t.Errorf("totalProfitLoss = %s, want 15000", summary.TotalProfitLoss)
		}
		if !summary.TotalProfitLossPercent.Equal(decimal.NewFromInt(30)) {
			t.Errorf("totalProfitLossPercent = %s, want 30", summary.TotalProfitLossPercent)
		}
	})
}

// TestHoldingHandler_CreateHolding tests the create endpoint.
func TestHoldingHandler_CreateHolding(t *testing.T) {
	t.Run("creates a holding and returns 201 with the view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		body := map[string]any{
			"tokenName":     "Bitcoin",
			"tokenSymbol":   "BTC",
			"purchasePrice": "20000",
			"currentPrice":  "30000",
			"amount":        "2",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/holdings", body, nil)
		rec := httptest.NewRecorder()

		handler.CreateHolding(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var view model.HoldingView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if view.ID == "" {
			t.Error("Expected a generated ID in the response")
		}
		if !view.Invested.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("invested = %s, want 40000", view.Invested)
		}

		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("accepts numeric JSON values as well as strings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		body := map[string]any{
			"tokenName":     "Ethereum",
			"tokenSymbol":   "ETH",
			"purchasePrice": 1800.50,
			"currentPrice":  2100.25,
			"amount":        3.5,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/holdings", body, nil)
		rec := httptest.NewRecorder()

		handler.CreateHolding(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects missing required fields with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		body := map[string]any{
			"tokenName": "Bitcoin",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/holdings", body, nil)
		rec := httptest.NewRecorder()

		handler.CreateHolding(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rec.Code)
		}
		assertErrorMessage(t, rec, "validation failed")
		testutil.AssertRowCount(t, db, "holding", 0)
	})

	t.Run("rejects a negative amount with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		body := map[string]any{
			"tokenName":     "Bitcoin",
			"tokenSymbol":   "BTC",
			"purchasePrice": "20000",
			"currentPrice":  "30000",
			"amount":        "-1",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/holdings", body, nil)
		rec := httptest.NewRecorder()

		handler.CreateHolding(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rec.Code)
		}
		testutil.AssertRowCount(t, db, "holding", 0)
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/holdings",
			jsonBody(`{"tokenName": `))
		rec := httptest.NewRecorder()

		handler.CreateHolding(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rec.Code)
		}
	})
}

// TestHoldingHandler_UpdateHolding tests the update endpoint.
func TestHoldingHandler_UpdateHolding(t *testing.T) {
	t.Run("updates a holding and returns the refreshed view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		holding := testutil.CreateHolding(t, db, "Bitcoin")

		body := map[string]any{
			"tokenName":     "Bitcoin",
			"tokenSymbol":   "BTC",
			"purchasePrice": "20000",
			"currentPrice":  "45000",
			"amount":        "2",
		}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/holdings/"+holding.ID,
			body, map[string]string{"uuid": holding.ID})
		rec := httptest.NewRecorder()

		handler.UpdateHolding(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var view model.HoldingView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !view.CurrentPrice.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("currentPrice = %s, want 45000", view.CurrentPrice)
		}
		if !view.ProfitLoss.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("profitLoss = %s, want 50000", view.ProfitLoss)
		}
	})

	t.Run("returns 404 for a nonexistent holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		id := testutil.MakeID()
		body := map[string]any{
			"tokenName":     "Ghost",
			"tokenSymbol":   "GHO",
			"purchasePrice": "1",
			"currentPrice":  "1",
			"amount":        "1",
		}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/holdings/"+id,
			body, map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.UpdateHolding(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rec.Code)
		}
	})
}

// TestHoldingHandler_DeleteHolding tests the delete endpoint.
func TestHoldingHandler_DeleteHolding(t *testing.T) {
	t.Run("deletes the holding and its exit plans", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		holding := testutil.CreateHolding(t, db, "Bitcoin")
		testutil.CreateExitPlan(t, db, holding.ID, decimal.NewFromInt(35000))

		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/holdings/"+holding.ID, map[string]string{"uuid": holding.ID})
		rec := httptest.NewRecorder()

		handler.DeleteHolding(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp handlers.DeleteResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.Success {
			t.Error("Expected success: true")
		}

		testutil.AssertRowCount(t, db, "holding", 0)
		testutil.AssertRowCount(t, db, "exit_plan", 0)
	})

	t.Run("returns 404 for a nonexistent holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/holdings/"+id, map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.DeleteHolding(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rec.Code)
		}
	})
}
