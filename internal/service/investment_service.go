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
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
)

// InvestmentService maintains the investment ledger. Status transitions are the
// only mutation; completing or refunding an investment also moves the project's
// current funding, under the project's lock.
type InvestmentService struct {
	db             *sql.DB
	locks          *ProjectLocks
	projectRepo    *repository.ProjectRepository
	investmentRepo *repository.InvestmentRepository
	logger         *zap.Logger
}

// NewInvestmentService creates a new InvestmentService with the provided dependencies.
func NewInvestmentService(
	db *sql.DB,
	locks *ProjectLocks,
	projectRepo *repository.ProjectRepository,
	investmentRepo *repository.InvestmentRepository,
	logger *zap.Logger,
) *InvestmentService {
	return &InvestmentService{
		db:             db,
		locks:          locks,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
		logger:         logger,
	}
}

// GetOwnership retrieves an investment together with its current ownership snapshot.
func (s *InvestmentService) GetOwnership(ctx context.Context, investmentID string) (model.InvestmentOwnership, error) {
	inv, err := s.investmentRepo.GetInvestment(ctx, investmentID)
	if err != nil {
		return model.InvestmentOwnership{}, err
	}
	project, err := s.projectRepo.GetProject(ctx, inv.ProjectID)
	if err != nil {
		return model.InvestmentOwnership{}, err
	}

	ownership := model.InvestmentOwnership{
		Investment:          inv,
		OwnershipPercentage: OwnershipPercentage(inv, project),
		ProjectFunding:      project.CurrentFunding,
	}
	// Only completed capital owns a share of the project.
	if !inv.IsCompleted() {
		ownership.OwnershipPercentage = decimal.Zero
	}
	return ownership, nil
}

// GetProjectInvestments lists a project's investments, optionally filtered by status.
func (s *InvestmentService) GetProjectInvestments(ctx context.Context, projectID, status string) ([]model.Investment, error) {
	if _, err := s.projectRepo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.investmentRepo.GetInvestmentsByProject(ctx, projectID, status)
}

// CreateInvestment records a pending investment. It does not touch project funding
// until the payment is confirmed through CompleteInvestment.
func (s *InvestmentService) CreateInvestment(ctx context.Context, projectID string, req request.CreateInvestmentRequest) (*model.Investment, error) {
	if err := checkMoney(req.Amount); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.AcceptsInvestments() {
		return nil, fmt.Errorf("%w: project %s is %s", apperrors.ErrProjectNotOpen, projectID, project.Status)
	}

	now := time.Now().UTC()
	inv := &model.Investment{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		InvestorID:       req.InvestorID,
		Amount:           req.Amount,
		Status:           model.InvestmentStatusPending,
		PaymentReference: req.PaymentReference,
		InvestedAt:       now,
		UpdatedAt:        now,
	}

	if err := s.investmentRepo.InsertInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return inv, nil
}

// CompleteInvestment confirms payment: pending -> completed. The amount is added to the
// project's current funding, and an active project that reaches its goal becomes funded.
func (s *InvestmentService) CompleteInvestment(ctx context.Context, investmentID string) (model.Investment, error) {
	return s.transition(ctx, investmentID, model.InvestmentStatusPending, model.InvestmentStatusCompleted,
		func(p *model.Project, inv model.Investment) error {
			p.CurrentFunding = p.CurrentFunding.Add(inv.Amount)
			if p.Status == model.ProjectStatusActive && p.CurrentFunding.GreaterThanOrEqual(p.FundingGoal) {
				p.Status = model.ProjectStatusFunded
			}
			return nil
		})
}

// CancelInvestment abandons an unpaid investment: pending -> cancelled.
func (s *InvestmentService) CancelInvestment(ctx context.Context, investmentID string) (model.Investment, error) {
	return s.transition(ctx, investmentID, model.InvestmentStatusPending, model.InvestmentStatusCancelled, nil)
}

// RefundInvestment returns capital: completed -> refunded, removing the amount from current funding.
// Dividends already paid to the investment are left untouched.
func (s *InvestmentService) RefundInvestment(ctx context.Context, investmentID string) (model.Investment, error) {
	return s.transition(ctx, investmentID, model.InvestmentStatusCompleted, model.InvestmentStatusRefunded,
		func(p *model.Project, inv model.Investment) error {
			p.CurrentFunding = p.CurrentFunding.Sub(inv.Amount)
			if p.CurrentFunding.IsNegative() {
				return fmt.Errorf("%w: refund of %s would make funding of project %s negative",
					apperrors.ErrDataInconsistency, inv.Amount, p.ID)
			}
			return nil
		})
}

// transition moves an investment between statuses and, when apply is given, updates
// the owning project in the same transaction.
func (s *InvestmentService) transition(
	ctx context.Context,
	investmentID, from, to string,
	apply func(p *model.Project, inv model.Investment) error,
) (model.Investment, error) {
	inv, err := s.investmentRepo.GetInvestment(ctx, investmentID)
	if err != nil {
		return model.Investment{}, err
	}

	release, err := s.locks.Acquire(ctx, inv.ProjectID)
	if err != nil {
		return model.Investment{}, err
	}
	defer release()

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		investmentRepo := s.investmentRepo.WithTx(tx)
		projectRepo := s.projectRepo.WithTx(tx)

		current, err := investmentRepo.GetInvestment(ctx, investmentID)
		if err != nil {
			return err
		}
		if current.Status != from {
			return fmt.Errorf("%w: investment %s is %s, cannot become %s",
				apperrors.ErrInvalidStatusTransition, investmentID, current.Status, to)
		}

		updatedAt, err := investmentRepo.UpdateInvestmentStatus(ctx, investmentID, from, to)
		if err != nil {
			return err
		}
		current.Status = to
		current.UpdatedAt = updatedAt

		if apply != nil {
			project, err := projectRepo.GetProject(ctx, current.ProjectID)
			if err != nil {
				return err
			}
			if err := apply(&project, current); err != nil {
				return err
			}
			if err := projectRepo.UpdateProjectState(ctx, &project); err != nil {
				return err
			}
		}

		inv = current
		return nil
	})
	if err != nil {
		return model.Investment{}, err
	}

	s.logger.Info("investment status changed",
		zap.String("investment_id", investmentID),
		zap.String("project_id", inv.ProjectID),
		zap.String("from", from),
		zap.String("to", to),
	)
	return inv, nil
}
