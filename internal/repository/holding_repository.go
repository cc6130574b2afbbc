package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetHoldings retrieves all holdings ordered most-recently-created first.
// Returns an empty slice if no holdings exist.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	query := `
		SELECT id, token_name, token_symbol, purchase_price, current_price, amount, created_at, updated_at
		FROM holding
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		h, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHoldingOnID retrieves a single holding by its ID.
// Returns apperrors.ErrHoldingNotFound if no holding has the given ID.
func (r *HoldingRepository) GetHoldingOnID(holdingID string) (model.Holding, error) {
	query := `
		SELECT id, token_name, token_symbol, purchase_price, current_price, amount, created_at, updated_at
		FROM holding
		WHERE id = ?
	`

	h, err := scanHolding(r.db.QueryRow(query, holdingID).Scan)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// InsertHolding persists a new holding row.
func (r *HoldingRepository) InsertHolding(ctx context.Context, h *model.Holding) error {
	query := `
		INSERT INTO holding (id, token_name, token_symbol, purchase_price, current_price, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.TokenName,
		h.TokenSymbol,
		h.PurchasePrice.String(),
		h.CurrentPrice.String(),
		h.Amount.String(),
		FormatTime(h.CreatedAt),
		FormatTime(h.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into holding table: %w", err)
	}

	return nil
}

// UpdateHolding replaces all mutable fields of a holding and refreshes updated_at.
// Returns apperrors.ErrHoldingNotFound if no row was updated.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, h *model.Holding) error {
	query := `
		UPDATE holding
		SET token_name = ?, token_symbol = ?, purchase_price = ?, current_price = ?, amount = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		h.TokenName,
		h.TokenSymbol,
		h.PurchasePrice.String(),
		h.CurrentPrice.String(),
		h.Amount.String(),
		FormatTime(h.UpdatedAt),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// DeleteHolding removes a holding. The exit_plan foreign key carries
// ON DELETE CASCADE, so dependent exit plans are removed in the same
// storage-level action.
// Returns apperrors.ErrHoldingNotFound if no row was deleted.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, holdingID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM holding WHERE id = ?", holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete from holding table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// scanHolding scans one holding row, parsing the text-stored decimal and
// timestamp columns.
func scanHolding(scan func(dest ...any) error) (model.Holding, error) {
	var h model.Holding
	var purchasePrice, currentPrice, amount string
	var createdAt, updatedAt string

	err := scan(
		&h.ID,
		&h.TokenName,
		&h.TokenSymbol,
		&purchasePrice,
		&currentPrice,
		&amount,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, err
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}

	if h.PurchasePrice, err = ParseDecimal(purchasePrice); err != nil {
		return model.Holding{}, err
	}
	if h.CurrentPrice, err = ParseDecimal(currentPrice); err != nil {
		return model.Holding{}, err
	}
	if h.Amount, err = ParseDecimal(amount); err != nil {
		return model.Holding{}, err
	}
	if h.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Holding{}, err
	}
	if h.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}
