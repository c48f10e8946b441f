package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/secret"
)

// DividendRepository provides data access for dividend distributions and payments.
type DividendRepository struct {
	db  Querier
	box *secret.Box
}

// NewDividendRepository creates a new DividendRepository. box may be nil.
func NewDividendRepository(db *sql.DB, box *secret.Box) *DividendRepository {
	return &DividendRepository{db: db, box: box}
}

// WithTx returns a copy of the repository that runs every statement inside tx.
func (r *DividendRepository) WithTx(tx *sql.Tx) *DividendRepository {
	return &DividendRepository{db: tx, box: r.box}
}

const dividendPaymentColumns = `id, investment_id, distribution_id, amount, status, payment_reference, calculated_at, paid_at, notes`

// InsertDistribution stores the batch record of one distribution.
func (r *DividendRepository) InsertDistribution(ctx context.Context, d *model.DividendDistribution) error {
	query := `
		INSERT INTO dividend_distribution (id, project_id, revenue_pool, total_distributed, investors_count, skipped_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.ProjectID,
		d.RevenuePool.StringFixed(2),
		d.TotalDistributed.StringFixed(2),
		d.InvestorsCount,
		d.SkippedCount,
		FormatTime(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dividend distribution: %w", err)
	}
	return nil
}

// UpdateDistributionTotals writes the totals of a distribution once its payments are stored.
func (r *DividendRepository) UpdateDistributionTotals(ctx context.Context, d *model.DividendDistribution) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE dividend_distribution SET total_distributed = ?, investors_count = ?, skipped_count = ? WHERE id = ?`,
		d.TotalDistributed.StringFixed(2), d.InvestorsCount, d.SkippedCount, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dividend distribution: %w", err)
	}
	return nil
}

// GetDistributionsByProject returns a project's distribution batches, oldest first.
func (r *DividendRepository) GetDistributionsByProject(ctx context.Context, projectID string) ([]model.DividendDistribution, error) {
	query := `
		SELECT id, project_id, revenue_pool, total_distributed, investors_count, skipped_count, created_at
		FROM dividend_distribution
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_distribution table: %w", err)
	}
	defer rows.Close()

	distributions := []model.DividendDistribution{}
	for rows.Next() {
		var d model.DividendDistribution
		var createdStr string
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.RevenuePool, &d.TotalDistributed, &d.InvestorsCount, &d.SkippedCount, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan dividend_distribution table results: %w", err)
		}
		if err := parseTimes(timeField{"created_at", createdStr, &d.CreatedAt}); err != nil {
			return nil, err
		}
		distributions = append(distributions, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend_distribution table: %w", err)
	}
	return distributions, nil
}

// InsertPayment stores a new dividend payment.
func (r *DividendRepository) InsertPayment(ctx context.Context, p *model.DividendPayment) error {
	ref, err := r.box.Seal(p.PaymentReference)
	if err != nil {
		return err
	}

	var paidAt sql.NullString
	if p.PaidAt != nil {
		paidAt = sql.NullString{String: FormatTime(*p.PaidAt), Valid: true}
	}

	query := `INSERT INTO dividend_payment (` + dividendPaymentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.InvestmentID,
		p.DistributionID,
		p.Amount.StringFixed(2),
		p.Status,
		ref,
		FormatTime(p.CalculatedAt),
		paidAt,
		p.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dividend payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a dividend payment by ID.
// Returns apperrors.ErrDividendPaymentNotFound if no row matches.
func (r *DividendRepository) GetPayment(ctx context.Context, paymentID string) (model.DividendPayment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dividendPaymentColumns+` FROM dividend_payment WHERE id = ?`, paymentID)
	p, err := r.scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DividendPayment{}, apperrors.ErrDividendPaymentNotFound
	}
	return p, err
}

// GetPaymentsByInvestment returns every dividend payment owed to an investment, newest first.
func (r *DividendRepository) GetPaymentsByInvestment(ctx context.Context, investmentID string) ([]model.DividendPayment, error) {
	query := `SELECT ` + dividendPaymentColumns + ` FROM dividend_payment WHERE investment_id = ? ORDER BY calculated_at DESC, id ASC`
	return r.queryPayments(ctx, query, investmentID)
}

// GetPaymentsByDistribution returns the payments created by one distribution.
func (r *DividendRepository) GetPaymentsByDistribution(ctx context.Context, distributionID string) ([]model.DividendPayment, error) {
	query := `SELECT ` + dividendPaymentColumns + ` FROM dividend_payment WHERE distribution_id = ? ORDER BY investment_id ASC`
	return r.queryPayments(ctx, query, distributionID)
}

// UpdatePayment writes the status, reference, paid_at and notes of a payment.
// Amount is never rewritten.
func (r *DividendRepository) UpdatePayment(ctx context.Context, p *model.DividendPayment) error {
	ref, err := r.box.Seal(p.PaymentReference)
	if err != nil {
		return err
	}

	var paidAt sql.NullString
	if p.PaidAt != nil {
		paidAt = sql.NullString{String: FormatTime(*p.PaidAt), Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE dividend_payment SET status = ?, payment_reference = ?, paid_at = ?, notes = ? WHERE id = ?`,
		p.Status, ref, paidAt, p.Notes, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dividend payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDividendPaymentNotFound
	}
	return nil
}

func (r *DividendRepository) queryPayments(ctx context.Context, query string, args ...any) ([]model.DividendPayment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_payment table: %w", err)
	}
	defer rows.Close()

	payments := []model.DividendPayment{}
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend_payment table: %w", err)
	}
	return payments, nil
}

func (r *DividendRepository) scanPayment(row rowScanner) (model.DividendPayment, error) {
	var p model.DividendPayment
	var ref, calculatedStr string
	var paidAtStr sql.NullString

	err := row.Scan(
		&p.ID,
		&p.InvestmentID,
		&p.DistributionID,
		&p.Amount,
		&p.Status,
		&ref,
		&calculatedStr,
		&paidAtStr,
		&p.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, fmt.Errorf("failed to scan dividend_payment table results: %w", err)
	}

	if p.PaymentReference, err = r.box.Open(ref); err != nil {
		return p, fmt.Errorf("failed to open payment reference of dividend %s: %w", p.ID, err)
	}

	if err = parseTimes(timeField{"calculated_at", calculatedStr, &p.CalculatedAt}); err != nil {
		return p, err
	}

	// PaidAt is nullable
	if paidAtStr.Valid {
		paidAt, err := ParseTime(paidAtStr.String)
		if err != nil {
			return p, fmt.Errorf("failed to parse paid_at: %w", err)
		}
		p.PaidAt = &paidAt
	}
	return p, nil
}
