package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
)

// ProjectBuilder provides a fluent interface for creating test projects.
// Funding and revenue are written directly, so tests must keep CurrentFunding
// equal to the completed investments they build (or use WithFundingFrom).
//
// Example usage:
//
//	project := testutil.NewProject().
//	    WithFunding(Dec("3000")).
//	    WithRevenue(Dec("1000")).
//	    Build(t, db)
type ProjectBuilder struct {
	project model.Project
}

// NewProject creates a ProjectBuilder for an active project with no funding or revenue.
func NewProject() *ProjectBuilder {
	now := time.Now().UTC()
	return &ProjectBuilder{project: model.Project{
		ID:                 MakeID(),
		CreatorID:          MakeID(),
		Title:              MakeTitle("Test Project"),
		Description:        "Test description",
		FundingGoal:        decimal.NewFromInt(10000),
		CurrentFunding:     decimal.Zero,
		Status:             model.ProjectStatusActive,
		StartDate:          now.AddDate(0, -1, 0).Truncate(24 * time.Hour),
		EndDate:            now.AddDate(0, 2, 0).Truncate(24 * time.Hour),
		TotalRevenue:       decimal.Zero,
		RevenueDistributed: decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}}
}

// WithID sets a custom ID.
func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.project.ID = id
	return b
}

// WithStatus sets the project status.
func (b *ProjectBuilder) WithStatus(status string) *ProjectBuilder {
	b.project.Status = status
	return b
}

// WithFundingGoal sets the funding goal.
func (b *ProjectBuilder) WithFundingGoal(goal decimal.Decimal) *ProjectBuilder {
	b.project.FundingGoal = goal
	return b
}

// WithFunding sets the current funding.
func (b *ProjectBuilder) WithFunding(funding decimal.Decimal) *ProjectBuilder {
	b.project.CurrentFunding = funding
	return b
}

// WithFundingFrom sets the current funding to the sum of amounts, matching
// the completed investments the test is about to build.
func (b *ProjectBuilder) WithFundingFrom(amounts ...string) *ProjectBuilder {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.RequireFromString(a))
	}
	b.project.CurrentFunding = total
	return b
}

// WithRevenue sets the total recognized revenue.
func (b *ProjectBuilder) WithRevenue(revenue decimal.Decimal) *ProjectBuilder {
	b.project.TotalRevenue = revenue
	return b
}

// WithDistributed sets the revenue already distributed.
func (b *ProjectBuilder) WithDistributed(distributed decimal.Decimal) *ProjectBuilder {
	b.project.RevenueDistributed = distributed
	return b
}

// Build creates the project in the database and returns it.
func (b *ProjectBuilder) Build(t *testing.T, db *sql.DB) model.Project {
	t.Helper()

	p := b.project
	if err := repository.NewProjectRepository(db).InsertProject(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
//	inv := testutil.NewInvestment(project.ID).WithAmount(Dec("1500")).Completed().Build(t, db)
type InvestmentBuilder struct {
	inv model.Investment
}

// NewInvestment creates a pending InvestmentBuilder of 100.00 on the given project.
func NewInvestment(projectID string) *InvestmentBuilder {
	now := time.Now().UTC()
	return &InvestmentBuilder{inv: model.Investment{
		ID:         MakeID(),
		ProjectID:  projectID,
		InvestorID: MakeID(),
		Amount:     decimal.NewFromInt(100),
		Status:     model.InvestmentStatusPending,
		InvestedAt: now,
		UpdatedAt:  now,
	}}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.inv.ID = id
	return b
}

// WithInvestor sets the investor ID.
func (b *InvestmentBuilder) WithInvestor(investorID string) *InvestmentBuilder {
	b.inv.InvestorID = investorID
	return b
}

// WithAmount sets the invested amount.
func (b *InvestmentBuilder) WithAmount(amount decimal.Decimal) *InvestmentBuilder {
	b.inv.Amount = amount
	return b
}

// WithStatus sets the investment status.
func (b *InvestmentBuilder) WithStatus(status string) *InvestmentBuilder {
	b.inv.Status = status
	return b
}

// Completed marks the investment as completed.
func (b *InvestmentBuilder) Completed() *InvestmentBuilder {
	b.inv.Status = model.InvestmentStatusCompleted
	return b
}

// WithPaymentReference sets the gateway reference.
func (b *InvestmentBuilder) WithPaymentReference(ref string) *InvestmentBuilder {
	b.inv.PaymentReference = ref
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	inv := b.inv
	if err := repository.NewInvestmentRepository(db, nil).InsertInvestment(context.Background(), &inv); err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}
	return inv
}

// DividendPaymentBuilder creates a payment together with a one-payment distribution.
//
//	payment := testutil.NewDividendPayment(project.ID, inv.ID).WithAmount(Dec("25")).Build(t, db)
type DividendPaymentBuilder struct {
	projectID string
	payment   model.DividendPayment
}

// NewDividendPayment creates a pending DividendPaymentBuilder of 10.00.
func NewDividendPayment(projectID, investmentID string) *DividendPaymentBuilder {
	return &DividendPaymentBuilder{
		projectID: projectID,
		payment: model.DividendPayment{
			ID:           MakeID(),
			InvestmentID: investmentID,
			Amount:       decimal.NewFromInt(10),
			Status:       model.DividendStatusPending,
			CalculatedAt: time.Now().UTC(),
			Notes:        "Test dividend",
		},
	}
}

// WithAmount sets the payment amount.
func (b *DividendPaymentBuilder) WithAmount(amount decimal.Decimal) *DividendPaymentBuilder {
	b.payment.Amount = amount
	return b
}

// WithStatus sets the payment status.
func (b *DividendPaymentBuilder) WithStatus(status string) *DividendPaymentBuilder {
	b.payment.Status = status
	return b
}

// CalculatedAt sets when the payment was calculated.
func (b *DividendPaymentBuilder) CalculatedAt(at time.Time) *DividendPaymentBuilder {
	b.payment.CalculatedAt = at
	return b
}

// Build creates the distribution and payment in the database and returns the payment.
func (b *DividendPaymentBuilder) Build(t *testing.T, db *sql.DB) model.DividendPayment {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewDividendRepository(db, nil)

	distribution := &model.DividendDistribution{
		ID:               MakeID(),
		ProjectID:        b.projectID,
		RevenuePool:      b.payment.Amount,
		TotalDistributed: b.payment.Amount,
		InvestorsCount:   1,
		CreatedAt:        b.payment.CalculatedAt,
	}
	if err := repo.InsertDistribution(ctx, distribution); err != nil {
		t.Fatalf("Failed to create test distribution: %v", err)
	}

	p := b.payment
	p.DistributionID = distribution.ID
	if err := repo.InsertPayment(ctx, &p); err != nil {
		t.Fatalf("Failed to create test dividend payment: %v", err)
	}
	return p
}

// FundedProject builds an active project whose completed investments have the given
// amounts, and sets its revenue. It returns the project and the investments in order.
//
//	project, invs := testutil.FundedProject(t, db, "1000", "1500", "900", "600")
func FundedProject(t *testing.T, db *sql.DB, revenue string, amounts ...string) (model.Project, []model.Investment) {
	t.Helper()

	project := NewProject().
		WithFundingFrom(amounts...).
		WithRevenue(Dec(revenue)).
		Build(t, db)

	investments := make([]model.Investment, 0, len(amounts))
	for _, a := range amounts {
		investments = append(investments, NewInvestment(project.ID).WithAmount(Dec(a)).Completed().Build(t, db))
	}
	return project, investments
}
