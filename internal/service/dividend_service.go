package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
)

// Reasons reported on empty calculations.
const (
	ReasonNoFunding              = "project has no completed funding"
	ReasonNoRevenue              = "no revenue to distribute"
	ReasonNoCompletedInvestments = "project has no completed investments"
	ReasonAllSkipped             = "no allocation could be persisted"
)

// errAllSkipped rolls back a distribution in which every allocation was skipped.
var errAllSkipped = errors.New("all allocations skipped")

// DividendService previews, distributes and tracks dividends.
type DividendService struct {
	db             *sql.DB
	locks          *ProjectLocks
	projectRepo    *repository.ProjectRepository
	investmentRepo *repository.InvestmentRepository
	dividendRepo   *repository.DividendRepository
	logger         *zap.Logger
}

// NewDividendService creates a new DividendService with the provided dependencies.
// locks must be shared with the other services that write projects.
func NewDividendService(
	db *sql.DB,
	locks *ProjectLocks,
	projectRepo *repository.ProjectRepository,
	investmentRepo *repository.InvestmentRepository,
	dividendRepo *repository.DividendRepository,
	logger *zap.Logger,
) *DividendService {
	return &DividendService{
		db:             db,
		locks:          locks,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
		dividendRepo:   dividendRepo,
		logger:         logger,
	}
}

// CalculateDividends previews how revenue would be split across the project's completed
// investments. A nil revenueAmount uses the project's pending revenue. Nothing is written.
func (s *DividendService) CalculateDividends(ctx context.Context, projectID string, revenueAmount *decimal.Decimal) (*model.DividendCalculation, error) {
	_, calc, err := calculate(ctx, s.projectRepo, s.investmentRepo, projectID, revenueAmount)
	return calc, err
}

// calculate loads the project and its completed investments through the given repositories
// and allocates the resolved revenue pool.
func calculate(
	ctx context.Context,
	projectRepo *repository.ProjectRepository,
	investmentRepo *repository.InvestmentRepository,
	projectID string,
	revenueAmount *decimal.Decimal,
) (model.Project, *model.DividendCalculation, error) {
	project, err := projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return model.Project{}, nil, err
	}

	calc := &model.DividendCalculation{
		ProjectID:   projectID,
		Allocations: map[string]model.DividendAllocation{},
	}

	pending := project.PendingRevenue()
	if pending.IsNegative() {
		return project, nil, fmt.Errorf("%w: project %s has distributed %s of %s revenue",
			apperrors.ErrDataInconsistency, projectID, project.RevenueDistributed, project.TotalRevenue)
	}

	pool := pending
	if revenueAmount != nil {
		pool = *revenueAmount
		if pool.IsPositive() {
			if !isCents(pool) {
				return project, nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmountPrecision, pool)
			}
			if pool.GreaterThan(pending) {
				return project, nil, fmt.Errorf("%w: requested %s, pending %s",
					apperrors.ErrInsufficientPendingRevenue, pool.StringFixed(2), pending.StringFixed(2))
			}
		}
	}
	calc.Summary.RevenuePool = pool

	if !project.CurrentFunding.IsPositive() {
		calc.Reason = ReasonNoFunding
		return project, calc, nil
	}
	if !pool.IsPositive() {
		calc.Reason = ReasonNoRevenue
		return project, calc, nil
	}

	investments, err := investmentRepo.GetCompletedInvestments(ctx, projectID)
	if err != nil {
		return project, nil, err
	}
	if len(investments) == 0 {
		calc.Reason = ReasonNoCompletedInvestments
		return project, calc, nil
	}

	completed := decimal.Zero
	for _, inv := range investments {
		completed = completed.Add(inv.Amount)
	}
	if !completed.Equal(project.CurrentFunding) {
		return project, nil, fmt.Errorf("%w: completed investments total %s, project funding is %s",
			apperrors.ErrDataInconsistency, completed.StringFixed(2), project.CurrentFunding.StringFixed(2))
	}

	allocations, summary, err := allocateDividends(project, investments, pool)
	if err != nil {
		return project, nil, err
	}
	calc.Allocations = allocations
	calc.Summary = summary
	return project, calc, nil
}

// DistributeDividends allocates revenue and records one pending payment per completed
// investment. A nil revenueAmount distributes all pending revenue.
//
// The project is locked for the duration and every write happens in a single transaction,
// so the payments and the raised RevenueDistributed are committed together or not at all.
// An investment that stopped being completed between allocation and write is skipped and
// its share stays pending.
func (s *DividendService) DistributeDividends(ctx context.Context, projectID string, revenueAmount *decimal.Decimal) (*model.DistributionResult, error) {
	release, err := s.locks.Acquire(ctx, projectID)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &model.DistributionResult{Payments: []model.DividendPayment{}}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		projectRepo := s.projectRepo.WithTx(tx)
		investmentRepo := s.investmentRepo.WithTx(tx)
		dividendRepo := s.dividendRepo.WithTx(tx)

		project, calc, err := calculate(ctx, projectRepo, investmentRepo, projectID, revenueAmount)
		if err != nil {
			return err
		}
		if calc.IsEmpty() {
			result.Reason = calc.Reason
			return nil
		}

		now := time.Now().UTC()
		distribution := &model.DividendDistribution{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			RevenuePool: calc.Summary.RevenuePool,
			CreatedAt:   now,
		}
		// The distribution row must exist before payments reference it.
		if err := dividendRepo.InsertDistribution(ctx, distribution); err != nil {
			return err
		}

		distributed := decimal.Zero
		for _, alloc := range calc.Ordered() {
			inv, err := investmentRepo.GetInvestment(ctx, alloc.InvestmentID)
			switch {
			case errors.Is(err, apperrors.ErrInvestmentNotFound):
				result.Skipped = append(result.Skipped, model.SkippedAllocation{DividendAllocation: alloc, Reason: "investment no longer exists"})
				continue
			case err != nil:
				return err
			case !inv.IsCompleted():
				result.Skipped = append(result.Skipped, model.SkippedAllocation{DividendAllocation: alloc, Reason: "investment is " + inv.Status})
				continue
			}

			// Zero-cent shares are not worth a payment record.
			if !alloc.Dividend.IsPositive() {
				continue
			}

			payment := model.DividendPayment{
				ID:             uuid.New().String(),
				InvestmentID:   alloc.InvestmentID,
				DistributionID: distribution.ID,
				Amount:         alloc.Dividend,
				Status:         model.DividendStatusPending,
				CalculatedAt:   now,
				Notes: fmt.Sprintf("Dividend from %s revenue. %s%% ownership.",
					calc.Summary.RevenuePool.StringFixed(2), alloc.Ownership.StringFixed(2)),
			}
			if err := dividendRepo.InsertPayment(ctx, &payment); err != nil {
				return err
			}
			result.Payments = append(result.Payments, payment)
			distributed = distributed.Add(payment.Amount)
		}

		for _, sk := range result.Skipped {
			s.logger.Warn("dividend allocation skipped",
				zap.String("project_id", projectID),
				zap.String("investment_id", sk.InvestmentID),
				zap.String("dividend", sk.Dividend.StringFixed(2)),
				zap.String("reason", sk.Reason),
			)
		}

		if len(result.Payments) == 0 {
			return errAllSkipped
		}

		distribution.TotalDistributed = distributed
		distribution.InvestorsCount = len(result.Payments)
		distribution.SkippedCount = len(result.Skipped)
		if err := dividendRepo.UpdateDistributionTotals(ctx, distribution); err != nil {
			return err
		}

		project.RevenueDistributed = project.RevenueDistributed.Add(distributed)
		if project.RevenueDistributed.GreaterThan(project.TotalRevenue) {
			return fmt.Errorf("%w: distributed %s exceeds revenue %s",
				apperrors.ErrDataInconsistency, project.RevenueDistributed, project.TotalRevenue)
		}
		if err := projectRepo.UpdateProjectState(ctx, &project); err != nil {
			return err
		}

		result.Distribution = distribution
		return nil
	})

	if errors.Is(err, errAllSkipped) {
		s.logger.Warn("distribution rolled back, every allocation was skipped",
			zap.String("project_id", projectID),
			zap.Int("skipped", len(result.Skipped)),
		)
		return &model.DistributionResult{
			Payments: []model.DividendPayment{},
			Skipped:  result.Skipped,
			Reason:   ReasonAllSkipped,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if result.Distribution != nil {
		s.logger.Info("dividends distributed",
			zap.String("project_id", projectID),
			zap.String("distribution_id", result.Distribution.ID),
			zap.String("revenue_pool", result.Distribution.RevenuePool.StringFixed(2)),
			zap.String("total_distributed", result.Distribution.TotalDistributed.StringFixed(2)),
			zap.Int("payments", len(result.Payments)),
		)
	}
	return result, nil
}

// GetProjectDistributions lists the distribution batches of a project, oldest first.
func (s *DividendService) GetProjectDistributions(ctx context.Context, projectID string) ([]model.DividendDistribution, error) {
	if _, err := s.projectRepo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.dividendRepo.GetDistributionsByProject(ctx, projectID)
}

// GetInvestmentDividends sums an investment's dividend payments by status.
// Totals are recomputed from the payment rows on every call.
func (s *DividendService) GetInvestmentDividends(ctx context.Context, investmentID string) (model.InvestmentDividends, error) {
	if _, err := s.investmentRepo.GetInvestment(ctx, investmentID); err != nil {
		return model.InvestmentDividends{}, err
	}

	payments, err := s.dividendRepo.GetPaymentsByInvestment(ctx, investmentID)
	if err != nil {
		return model.InvestmentDividends{}, err
	}

	out := model.InvestmentDividends{
		InvestmentID: investmentID,
		TotalEarned:  decimal.Zero,
		Paid:         decimal.Zero,
		Pending:      decimal.Zero,
		Failed:       decimal.Zero,
		Payments:     payments,
	}
	for _, p := range payments {
		out.TotalEarned = out.TotalEarned.Add(p.Amount)
		switch p.Status {
		case model.DividendStatusPaid:
			out.Paid = out.Paid.Add(p.Amount)
		case model.DividendStatusPending:
			out.Pending = out.Pending.Add(p.Amount)
		case model.DividendStatusFailed:
			out.Failed = out.Failed.Add(p.Amount)
		}
	}
	return out, nil
}

// MarkPaymentPaid records a successful payout. Pending and failed payments may be paid.
func (s *DividendService) MarkPaymentPaid(ctx context.Context, paymentID, reference string) (model.DividendPayment, error) {
	payment, err := s.dividendRepo.GetPayment(ctx, paymentID)
	if err != nil {
		return model.DividendPayment{}, err
	}
	if payment.Status != model.DividendStatusPending && payment.Status != model.DividendStatusFailed {
		return model.DividendPayment{}, fmt.Errorf("%w: payment %s is %s",
			apperrors.ErrInvalidStatusTransition, paymentID, payment.Status)
	}

	paidAt := time.Now().UTC()
	payment.Status = model.DividendStatusPaid
	payment.PaidAt = &paidAt
	if reference != "" {
		payment.PaymentReference = reference
	}

	if err := s.dividendRepo.UpdatePayment(ctx, &payment); err != nil {
		return model.DividendPayment{}, err
	}

	s.logger.Info("dividend payment paid",
		zap.String("payment_id", paymentID),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return payment, nil
}

// MarkPaymentFailed records a failed payout attempt; the reason is appended to the notes.
func (s *DividendService) MarkPaymentFailed(ctx context.Context, paymentID, reason string) (model.DividendPayment, error) {
	payment, err := s.dividendRepo.GetPayment(ctx, paymentID)
	if err != nil {
		return model.DividendPayment{}, err
	}
	if payment.Status != model.DividendStatusPending {
		return model.DividendPayment{}, fmt.Errorf("%w: payment %s is %s",
			apperrors.ErrInvalidStatusTransition, paymentID, payment.Status)
	}

	payment.Status = model.DividendStatusFailed
	if reason != "" {
		payment.Notes = payment.Notes + " Failed: " + reason
	}

	if err := s.dividendRepo.UpdatePayment(ctx, &payment); err != nil {
		return model.DividendPayment{}, err
	}

	s.logger.Warn("dividend payment failed",
		zap.String("payment_id", paymentID),
		zap.String("reason", reason),
	)
	return payment, nil
}
