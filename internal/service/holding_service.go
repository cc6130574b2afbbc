package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/repository"
)

// HoldingService handles holding-related business logic operations.
type HoldingService struct {
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService with the provided repository dependency.
func NewHoldingService(holdingRepo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{
		holdingRepo: holdingRepo,
	}
}

// GetAllHoldings retrieves all holdings newest-first, each enriched with its
// derived valuation fields.
func (s *HoldingService) GetAllHoldings() ([]model.HoldingView, error) {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return nil, err
	}

	views := make([]model.HoldingView, len(holdings))
	for i, h := range holdings {
		views[i] = model.NewHoldingView(h)
	}

	return views, nil
}

// GetPortfolioSummary folds all holdings into the portfolio aggregate.
// The totals are derived on every read; nothing is persisted.
func (s *HoldingService) GetPortfolioSummary() (model.PortfolioSummary, error) {
	holdings, err := s.holdingRepo.GetHoldings()
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	return model.NewPortfolioSummary(holdings), nil
}

// CreateHolding creates a new holding with a generated identifier and current
// timestamps. The created record is re-read from storage so the caller sees
// exactly what was persisted.
func (s *HoldingService) CreateHolding(ctx context.Context, req request.CreateHoldingRequest) (*model.HoldingView, error) {
	now := time.Now().UTC()

	holding := &model.Holding{
		ID:            uuid.New().String(),
		TokenName:     req.TokenName,
		TokenSymbol:   req.TokenSymbol,
		PurchasePrice: *req.PurchasePrice,
		CurrentPrice:  *req.CurrentPrice,
		Amount:        *req.Amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.holdingRepo.InsertHolding(ctx, holding); err != nil {
		return nil, err
	}

	return s.readHoldingView(holding.ID)
}

// UpdateHolding replaces all mutable fields of a holding and refreshes its
// updated_at timestamp.
func (s *HoldingService) UpdateHolding(ctx context.Context, holdingID string, req request.UpdateHoldingRequest) (*model.HoldingView, error) {
	holding := &model.Holding{
		ID:            holdingID,
		TokenName:     req.TokenName,
		TokenSymbol:   req.TokenSymbol,
		PurchasePrice: *req.PurchasePrice,
		CurrentPrice:  *req.CurrentPrice,
		Amount:        *req.Amount,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := s.holdingRepo.UpdateHolding(ctx, holding); err != nil {
		return nil, err
	}

	return s.readHoldingView(holdingID)
}

// DeleteHolding removes a holding. All exit plans referencing it are removed
// by the storage-level cascade in the same action.
func (s *HoldingService) DeleteHolding(ctx context.Context, holdingID string) error {
	return s.holdingRepo.DeleteHolding(ctx, holdingID)
}

// readHoldingView re-reads a holding after a write and computes its view.
func (s *HoldingService) readHoldingView(holdingID string) (*model.HoldingView, error) {
	holding, err := s.holdingRepo.GetHoldingOnID(holdingID)
	if err != nil {
		return nil, err
	}

	view := model.NewHoldingView(holding)
	return &view, nil
}
