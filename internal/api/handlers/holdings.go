package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/response"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/validation"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
)

// HoldingHandler handles HTTP requests for holding endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the holdingService.
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependency.
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// Holdings handles GET requests to retrieve all holdings, newest first.
// Each holding is enriched with its derived valuation fields.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of HoldingView
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) Holdings(w http.ResponseWriter, _ *http.Request) {
	holdings, err := h.holdingService.GetAllHoldings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// PortfolioSummary handles GET requests for the portfolio aggregate: totals
// folded over the full holding collection on read.
//
// Endpoint: GET /api/holdings/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) PortfolioSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.holdingService.GetPortfolioSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// CreateHolding handles POST requests to record a new holding.
//
// Endpoint: POST /api/holdings
// Request Body: CreateHoldingRequest (tokenName, tokenSymbol, purchasePrice, currentPrice, amount)
// Response: 201 Created with HoldingView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *HoldingHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding, err := h.holdingService.CreateHolding(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding handles PUT requests to replace all mutable fields of a
// holding. The updated_at timestamp is refreshed by the update.
//
// Endpoint: PUT /api/holdings/{uuid}
// Request Body: UpdateHoldingRequest (same fields as create; full replace)
// Response: 200 OK with HoldingView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if the update fails
func (h *HoldingHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateHolding(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding, err := h.holdingService.UpdateHolding(r.Context(), holdingID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// DeleteHolding handles DELETE requests to remove a holding. All exit plans
// referencing it are removed by the storage-level cascade.
//
// Endpoint: DELETE /api/holdings/{uuid}
// Response: 200 OK with {"success": true}
// Error: 404 Not Found if the holding does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	if err := h.holdingService.DeleteHolding(r.Context(), holdingID); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DeleteResponse{Success: true})
}
