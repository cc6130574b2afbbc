package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/repository"
)

// ExitPlanService handles exit-plan business logic operations. It depends on
// the holding repository only for the parent holding's amount and current
// price, which the derived tranche values are computed against.
type ExitPlanService struct {
	exitPlanRepo *repository.ExitPlanRepository
	holdingRepo  *repository.HoldingRepository
}

// NewExitPlanService creates a new ExitPlanService with the provided repository dependencies.
func NewExitPlanService(
	exitPlanRepo *repository.ExitPlanRepository,
	holdingRepo *repository.HoldingRepository,
) *ExitPlanService {
	return &ExitPlanService{
		exitPlanRepo: exitPlanRepo,
		holdingRepo:  holdingRepo,
	}
}

// GetExitPlansForHolding retrieves a holding's exit plans ascending by target
// price, each enriched with values derived against the holding. A holding
// that no longer exists yields an empty sequence, matching what the cascade
// leaves behind after a delete.
func (s *ExitPlanService) GetExitPlansForHolding(holdingID string) ([]model.ExitPlanView, error) {
	holding, err := s.holdingRepo.GetHoldingOnID(holdingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			return []model.ExitPlanView{}, nil
		}
		return nil, err
	}

	plans, err := s.exitPlanRepo.GetExitPlansOnHoldingID(holdingID)
	if err != nil {
		return nil, err
	}

	views := make([]model.ExitPlanView, len(plans))
	for i, p := range plans {
		views[i] = model.NewExitPlanView(p, holding)
	}

	return views, nil
}

// CreateExitPlan creates a new pending exit plan scoped to a holding.
// Returns apperrors.ErrHoldingNotFound when the referenced holding does not
// exist (surfaced by the storage referential check).
func (s *ExitPlanService) CreateExitPlan(ctx context.Context, req request.CreateExitPlanRequest) (*model.ExitPlanView, error) {
	plan := &model.ExitPlan{
		ID:             uuid.New().String(),
		HoldingID:      req.HoldingID,
		TargetPrice:    *req.TargetPrice,
		SellPercentage: *req.SellPercentage,
		Notes:          req.Notes,
		IsExecuted:     false,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.exitPlanRepo.InsertExitPlan(ctx, plan); err != nil {
		return nil, err
	}

	return s.readExitPlanView(plan.ID)
}

// UpdateExitPlan replaces all mutable fields of an exit plan. When the
// request marks the plan executed, executed_at is stamped with the current
// time; when it marks it pending, executed_at is cleared.
func (s *ExitPlanService) UpdateExitPlan(ctx context.Context, planID string, req request.UpdateExitPlanRequest) (*model.ExitPlanView, error) {
	plan := &model.ExitPlan{
		ID:             planID,
		TargetPrice:    *req.TargetPrice,
		SellPercentage: *req.SellPercentage,
		Notes:          req.Notes,
		IsExecuted:     req.IsExecuted,
	}

	if req.IsExecuted {
		now := time.Now().UTC()
		plan.ExecutedAt = &now
	}

	if err := s.exitPlanRepo.UpdateExitPlan(ctx, plan); err != nil {
		return nil, err
	}

	return s.readExitPlanView(planID)
}

// ToggleExecuted flips a plan between pending and executed as one atomic
// conditional update; there is no read-modify-write to race against.
func (s *ExitPlanService) ToggleExecuted(ctx context.Context, planID string) (*model.ExitPlanView, error) {
	if err := s.exitPlanRepo.ToggleExecuted(ctx, planID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return s.readExitPlanView(planID)
}

// DeleteExitPlan removes a single exit plan.
func (s *ExitPlanService) DeleteExitPlan(ctx context.Context, planID string) error {
	return s.exitPlanRepo.DeleteExitPlan(ctx, planID)
}

// readExitPlanView re-reads a plan after a write and computes its view
// against the parent holding.
func (s *ExitPlanService) readExitPlanView(planID string) (*model.ExitPlanView, error) {
	plan, err := s.exitPlanRepo.GetExitPlanOnID(planID)
	if err != nil {
		return nil, err
	}

	holding, err := s.holdingRepo.GetHoldingOnID(plan.HoldingID)
	if err != nil {
		return nil, err
	}

	view := model.NewExitPlanView(plan, holding)
	return &view, nil
}
