package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/apperrors"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/model"
)

// ExitPlanRepository provides data access methods for the exit_plan table.
type ExitPlanRepository struct {
	db *sql.DB
}

// NewExitPlanRepository creates a new ExitPlanRepository with the provided database connection.
func NewExitPlanRepository(db *sql.DB) *ExitPlanRepository {
	return &ExitPlanRepository{db: db}
}

// GetExitPlansOnHoldingID retrieves all exit plans for a holding, ascending by
// target price: the order in which the tranches would trigger as price rises.
// The target_price column is text, so the rows are fetched in creation order
// and stably sorted here by exact decimal comparison; a numeric SQL cast would
// lose precision beyond float64 and could misorder close targets.
// Returns an empty slice when the holding has no plans (or does not exist).
func (r *ExitPlanRepository) GetExitPlansOnHoldingID(holdingID string) ([]model.ExitPlan, error) {
	query := `
		SELECT id, holding_id, target_price, sell_percentage, notes, is_executed, executed_at, created_at
		FROM exit_plan
		WHERE holding_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, holdingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exit_plan table: %w", err)
	}
	defer rows.Close()

	plans := []model.ExitPlan{}

	for rows.Next() {
		p, err := scanExitPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exit_plan table: %w", err)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].TargetPrice.LessThan(plans[j].TargetPrice)
	})

	return plans, nil
}

// GetExitPlanOnID retrieves a single exit plan by its ID.
// Returns apperrors.ErrExitPlanNotFound if no plan has the given ID.
func (r *ExitPlanRepository) GetExitPlanOnID(planID string) (model.ExitPlan, error) {
	query := `
		SELECT id, holding_id, target_price, sell_percentage, notes, is_executed, executed_at, created_at
		FROM exit_plan
		WHERE id = ?
	`

	p, err := scanExitPlan(r.db.QueryRow(query, planID).Scan)
	if err == sql.ErrNoRows {
		return model.ExitPlan{}, apperrors.ErrExitPlanNotFound
	}
	if err != nil {
		return model.ExitPlan{}, err
	}

	return p, nil
}

// InsertExitPlan persists a new exit plan row.
// Returns apperrors.ErrHoldingNotFound when the referenced holding does not
// exist; the check is delegated to the foreign key constraint.
func (r *ExitPlanRepository) InsertExitPlan(ctx context.Context, p *model.ExitPlan) error {
	query := `
		INSERT INTO exit_plan (id, holding_id, target_price, sell_percentage, notes, is_executed, executed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.HoldingID,
		p.TargetPrice.String(),
		p.SellPercentage.String(),
		nullableText(p.Notes),
		p.IsExecuted,
		nullableTime(p.ExecutedAt),
		FormatTime(p.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrHoldingNotFound
		}
		return fmt.Errorf("failed to insert into exit_plan table: %w", err)
	}

	return nil
}

// UpdateExitPlan replaces all mutable fields of an exit plan, including the
// executed flag and its timestamp.
// Returns apperrors.ErrExitPlanNotFound if no row was updated.
func (r *ExitPlanRepository) UpdateExitPlan(ctx context.Context, p *model.ExitPlan) error {
	query := `
		UPDATE exit_plan
		SET target_price = ?, sell_percentage = ?, notes = ?, is_executed = ?, executed_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.TargetPrice.String(),
		p.SellPercentage.String(),
		nullableText(p.Notes),
		p.IsExecuted,
		nullableTime(p.ExecutedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exit_plan table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExitPlanNotFound
	}

	return nil
}

// ToggleExecuted flips the executed flag as a single conditional update, so
// two concurrent toggles can never both read the same prior state. The
// executed_at column is stamped on the pending->executed transition and
// cleared on the reverse transition in the same statement.
// Returns apperrors.ErrExitPlanNotFound if no row was updated.
func (r *ExitPlanRepository) ToggleExecuted(ctx context.Context, planID string, now time.Time) error {
	// Column references inside an UPDATE read the pre-update value, so the
	// CASE branches on the state being flipped away from.
	query := `
		UPDATE exit_plan
		SET is_executed = NOT is_executed,
		    executed_at = CASE WHEN is_executed THEN NULL ELSE ? END
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, FormatTime(now), planID)
	if err != nil {
		return fmt.Errorf("failed to toggle exit_plan executed flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExitPlanNotFound
	}

	return nil
}

// DeleteExitPlan removes a single exit plan.
// Returns apperrors.ErrExitPlanNotFound if no row was deleted.
func (r *ExitPlanRepository) DeleteExitPlan(ctx context.Context, planID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM exit_plan WHERE id = ?", planID)
	if err != nil {
		return fmt.Errorf("failed to delete from exit_plan table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExitPlanNotFound
	}

	return nil
}

// scanExitPlan scans one exit plan row, parsing the text-stored decimal and
// timestamp columns and the nullable notes/executed_at columns.
func scanExitPlan(scan func(dest ...any) error) (model.ExitPlan, error) {
	var p model.ExitPlan
	var targetPrice, sellPercentage string
	var notes, executedAt sql.NullString
	var createdAt string

	err := scan(
		&p.ID,
		&p.HoldingID,
		&targetPrice,
		&sellPercentage,
		&notes,
		&p.IsExecuted,
		&executedAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.ExitPlan{}, err
	}
	if err != nil {
		return model.ExitPlan{}, fmt.Errorf("failed to scan exit_plan table results: %w", err)
	}

	if p.TargetPrice, err = ParseDecimal(targetPrice); err != nil {
		return model.ExitPlan{}, err
	}
	if p.SellPercentage, err = ParseDecimal(sellPercentage); err != nil {
		return model.ExitPlan{}, err
	}
	if notes.Valid {
		p.Notes = notes.String
	}
	if executedAt.Valid {
		t, err := ParseTime(executedAt.String)
		if err != nil {
			return model.ExitPlan{}, err
		}
		p.ExecutedAt = &t
	}
	if p.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.ExitPlan{}, err
	}

	return p, nil
}

// nullableText maps an empty string to NULL so optional text columns stay
// NULL instead of empty.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableTime maps a nil timestamp to NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// isForeignKeyViolation reports whether an insert failed the referential
// check on holding_id.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
