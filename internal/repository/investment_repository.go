package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/secret"
)

// InvestmentRepository provides data access methods for the investment table.
// Payment references are sealed with box before they are written.
type InvestmentRepository struct {
	db  Querier
	box *secret.Box
}

// NewInvestmentRepository creates a new InvestmentRepository. box may be nil.
func NewInvestmentRepository(db *sql.DB, box *secret.Box) *InvestmentRepository {
	return &InvestmentRepository{db: db, box: box}
}

// WithTx returns a copy of the repository that runs every statement inside tx.
func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{db: tx, box: r.box}
}

const investmentColumns = `id, project_id, investor_id, amount, status, payment_reference, invested_at, updated_at`

// GetInvestment retrieves an investment by ID.
// Returns apperrors.ErrInvestmentNotFound if no row matches.
func (r *InvestmentRepository) GetInvestment(ctx context.Context, investmentID string) (model.Investment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+investmentColumns+` FROM investment WHERE id = ?`, investmentID)

	inv, err := r.scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	return inv, err
}

// GetInvestmentsByProject retrieves every investment on a project, optionally filtered by status.
// An empty status returns all investments.
func (r *InvestmentRepository) GetInvestmentsByProject(ctx context.Context, projectID, status string) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE project_id = ?`
	args := []any{projectID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY invested_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	for rows.Next() {
		inv, err := r.scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}
	return investments, nil
}

// GetCompletedInvestments returns the investments that take part in ownership.
// Order carries no meaning for allocation totals.
func (r *InvestmentRepository) GetCompletedInvestments(ctx context.Context, projectID string) ([]model.Investment, error) {
	return r.GetInvestmentsByProject(ctx, projectID, model.InvestmentStatusCompleted)
}

// InsertInvestment stores a new investment.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	ref, err := r.box.Seal(inv.PaymentReference)
	if err != nil {
		return err
	}

	query := `INSERT INTO investment (` + investmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		inv.ID,
		inv.ProjectID,
		inv.InvestorID,
		inv.Amount.StringFixed(2),
		inv.Status,
		ref,
		FormatTime(inv.InvestedAt),
		FormatTime(inv.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}
	return nil
}

// UpdateInvestmentStatus moves an investment from one status to another.
// The update is conditional on the current status so a concurrent transition cannot be overwritten;
// if the stored status differs from `from`, apperrors.ErrInvalidStatusTransition is returned.
func (r *InvestmentRepository) UpdateInvestmentStatus(ctx context.Context, investmentID, from, to string) (time.Time, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE investment SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, FormatTime(now), investmentID, from,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update investment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return time.Time{}, fmt.Errorf("%w: investment %s is not %s", apperrors.ErrInvalidStatusTransition, investmentID, from)
	}
	return now, nil
}

func (r *InvestmentRepository) scanInvestment(row rowScanner) (model.Investment, error) {
	var inv model.Investment
	var ref, investedStr, updatedStr string

	err := row.Scan(
		&inv.ID,
		&inv.ProjectID,
		&inv.InvestorID,
		&inv.Amount,
		&inv.Status,
		&ref,
		&investedStr,
		&updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, err
	}
	if err != nil {
		return inv, fmt.Errorf("failed to scan investment table results: %w", err)
	}

	if inv.PaymentReference, err = r.box.Open(ref); err != nil {
		return inv, fmt.Errorf("failed to open payment reference of investment %s: %w", inv.ID, err)
	}

	err = parseTimes(
		timeField{"invested_at", investedStr, &inv.InvestedAt},
		timeField{"updated_at", updatedStr, &inv.UpdatedAt},
	)
	return inv, err
}
