package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
)

// ProjectRepository provides data access methods for the project table.
type ProjectRepository struct {
	db Querier
}

// NewProjectRepository creates a new ProjectRepository bound to the given database.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a copy of the repository that runs every statement inside tx.
func (r *ProjectRepository) WithTx(tx *sql.Tx) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

const projectColumns = `
	id, creator_id, title, description, funding_goal, current_funding, status,
	start_date, end_date, total_revenue, revenue_distributed, version, created_at, updated_at
`

// GetProject retrieves a project by ID.
// Returns apperrors.ErrProjectNotFound if no row matches.
func (r *ProjectRepository) GetProject(ctx context.Context, projectID string) (model.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM project WHERE id = ?`, projectID)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// GetProjects retrieves all projects ordered by creation time.
func (r *ProjectRepository) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM project ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project table: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project table: %w", err)
	}
	return projects, nil
}

// InsertProject stores a new project.
func (r *ProjectRepository) InsertProject(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO project (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.CreatorID,
		p.Title,
		p.Description,
		p.FundingGoal.StringFixed(2),
		p.CurrentFunding.StringFixed(2),
		p.Status,
		FormatTime(p.StartDate),
		FormatTime(p.EndDate),
		p.TotalRevenue.StringFixed(2),
		p.RevenueDistributed.StringFixed(2),
		p.Version,
		FormatTime(p.CreatedAt),
		FormatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// UpdateProjectState writes the mutable funding, revenue and status fields of p.
// The write only succeeds if the stored version still equals p.Version; on success
// p.Version is incremented. A stale version yields apperrors.ErrConcurrentModification.
func (r *ProjectRepository) UpdateProjectState(ctx context.Context, p *model.Project) error {
	now := time.Now().UTC()
	query := `
		UPDATE project
		SET current_funding = ?, status = ?, total_revenue = ?, revenue_distributed = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		p.CurrentFunding.StringFixed(2),
		p.Status,
		p.TotalRevenue.StringFixed(2),
		p.RevenueDistributed.StringFixed(2),
		FormatTime(now),
		p.ID,
		p.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: project %s at version %d", apperrors.ErrConcurrentModification, p.ID, p.Version)
	}

	p.Version++
	p.UpdatedAt = now
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	var startStr, endStr, createdStr, updatedStr string

	err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&p.Title,
		&p.Description,
		&p.FundingGoal,
		&p.CurrentFunding,
		&p.Status,
		&startStr,
		&endStr,
		&p.TotalRevenue,
		&p.RevenueDistributed,
		&p.Version,
		&createdStr,
		&updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, fmt.Errorf("failed to scan project table results: %w", err)
	}

	err = parseTimes(
		timeField{"start_date", startStr, &p.StartDate},
		timeField{"end_date", endStr, &p.EndDate},
		timeField{"created_at", createdStr, &p.CreatedAt},
		timeField{"updated_at", updatedStr, &p.UpdatedAt},
	)
	return p, err
}
