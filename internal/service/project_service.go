package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
)

// ProjectService handles project lifecycle and revenue accrual.
type ProjectService struct {
	db          *sql.DB
	locks       *ProjectLocks
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService with the provided dependencies.
func NewProjectService(
	db *sql.DB,
	locks *ProjectLocks,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		db:          db,
		locks:       locks,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// GetProjects retrieves all projects.
func (s *ProjectService) GetProjects(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.GetProjects(ctx)
}

// GetProject retrieves a single project.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (model.Project, error) {
	return s.projectRepo.GetProject(ctx, projectID)
}

// GetProjectsWithPendingRevenue returns every project that has revenue left to distribute.
func (s *ProjectService) GetProjectsWithPendingRevenue(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projectRepo.GetProjects(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.PendingRevenue().IsPositive() {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// PendingRevenue returns total revenue minus what has already been distributed.
func (s *ProjectService) PendingRevenue(ctx context.Context, projectID string) (decimal.Decimal, error) {
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}
	return project.PendingRevenue(), nil
}

// CreateProject stores a new project with no funding and no revenue.
// The request is expected to have passed validation.ValidateCreateProject.
func (s *ProjectService) CreateProject(ctx context.Context, req request.CreateProjectRequest) (*model.Project, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkMoney(req.FundingGoal); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ProjectStatusDraft
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:                 uuid.New().String(),
		CreatorID:          req.CreatorID,
		Title:              req.Title,
		Description:        req.Description,
		FundingGoal:        req.FundingGoal,
		CurrentFunding:     decimal.Zero,
		Status:             status,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalRevenue:       decimal.Zero,
		RevenueDistributed: decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.projectRepo.InsertProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// RecordRevenue adds recognized revenue to a project. It only ever increases
// TotalRevenue; distribution is a separate step.
func (s *ProjectService) RecordRevenue(ctx context.Context, projectID string, amount decimal.Decimal) (model.Project, error) {
	if err := checkMoney(amount); err != nil {
		return model.Project{}, err
	}

	release, err := s.locks.Acquire(ctx, projectID)
	if err != nil {
		return model.Project{}, err
	}
	defer release()

	var project model.Project
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := s.projectRepo.WithTx(tx)

		project, err = repo.GetProject(ctx, projectID)
		if err != nil {
			return err
		}
		project.TotalRevenue = project.TotalRevenue.Add(amount)
		return repo.UpdateProjectState(ctx, &project)
	})
	if err != nil {
		return model.Project{}, err
	}

	s.logger.Info("revenue recorded",
		zap.String("project_id", projectID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("total_revenue", project.TotalRevenue.StringFixed(2)),
	)
	return project, nil
}
