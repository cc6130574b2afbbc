package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/response"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/service"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/validation"
)

// ExitPlanHandler handles HTTP requests for exit plan endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the exitPlanService.
type ExitPlanHandler struct {
	exitPlanService *service.ExitPlanService
}

// NewExitPlanHandler creates a new ExitPlanHandler with the provided service dependency.
func NewExitPlanHandler(exitPlanService *service.ExitPlanService) *ExitPlanHandler {
	return &ExitPlanHandler{
		exitPlanService: exitPlanService,
	}
}

// ExitPlansPerHolding handles GET requests to retrieve all exit plans for a
// holding, ascending by target price. Each plan is enriched with values
// derived against the parent holding. A holding with no plans (or one that
// no longer exists) yields an empty array.
//
// Endpoint: GET /api/exit-plans/{uuid}
// Response: 200 OK with array of ExitPlanView
// Error: 400 Bad Request if the holding ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *ExitPlanHandler) ExitPlansPerHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	plans, err := h.exitPlanService.GetExitPlansForHolding(holdingID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExitPlans.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plans)
}

// CreateExitPlan handles POST requests to create a new pending exit plan.
//
// Endpoint: POST /api/exit-plans
// Request Body: CreateExitPlanRequest (holdingId, targetPrice, sellPercentage, notes?)
// Response: 201 Created with ExitPlanView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the referenced holding does not exist
// Error: 500 Internal Server Error if creation fails
func (h *ExitPlanHandler) CreateExitPlan(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateExitPlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateExitPlan(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	plan, err := h.exitPlanService.CreateExitPlan(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create exit plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, plan)
}

// UpdateExitPlan handles PUT requests to replace all mutable fields of an
// exit plan. Marking the plan executed stamps executed_at; marking it pending
// clears it.
//
// Endpoint: PUT /api/exit-plans/{uuid}
// Request Body: UpdateExitPlanRequest (targetPrice, sellPercentage, notes, isExecuted)
// Response: 200 OK with ExitPlanView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the exit plan does not exist
// Error: 500 Internal Server Error if the update fails
func (h *ExitPlanHandler) UpdateExitPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateExitPlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExitPlan(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	plan, err := h.exitPlanService.UpdateExitPlan(r.Context(), planID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrExitPlanNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExitPlanNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update exit plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}

// ToggleExecuted handles POST requests to flip a plan between pending and
// executed. The flip happens as a single conditional update in storage.
//
// Endpoint: POST /api/exit-plans/{uuid}/toggle
// Response: 200 OK with ExitPlanView
// Error: 400 Bad Request if the plan ID is invalid (validated by middleware)
// Error: 404 Not Found if the exit plan does not exist
// Error: 500 Internal Server Error if the toggle fails
func (h *ExitPlanHandler) ToggleExecuted(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "uuid")

	plan, err := h.exitPlanService.ToggleExecuted(r.Context(), planID)
	if err != nil {
		if errors.Is(err, apperrors.ErrExitPlanNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExitPlanNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to toggle exit plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, plan)
}

// DeleteExitPlan handles DELETE requests to remove a single exit plan.
//
// Endpoint: DELETE /api/exit-plans/{uuid}
// Response: 200 OK with {"success": true}
// Error: 404 Not Found if the exit plan does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *ExitPlanHandler) DeleteExitPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "uuid")

	if err := h.exitPlanService.DeleteExitPlan(r.Context(), planID); err != nil {
		if errors.Is(err, apperrors.ErrExitPlanNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExitPlanNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete exit plan", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DeleteResponse{Success: true})
}
