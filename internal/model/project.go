package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status values.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusActive    = "active"
	ProjectStatusFunded    = "funded"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project is the aggregate root for funding and revenue.
// CurrentFunding is only changed by investment completion or refund,
// RevenueDistributed only by a dividend distribution.
type Project struct {
	ID                 string          `json:"id"`
	CreatorID          string          `json:"creatorID"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	FundingGoal        decimal.Decimal `json:"fundingGoal"`
	CurrentFunding     decimal.Decimal `json:"currentFunding"`
	Status             string          `json:"status"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	RevenueDistributed decimal.Decimal `json:"revenueDistributed"`
	Version            int64           `json:"version"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// PendingRevenue is the revenue not yet distributed as dividends.
func (p Project) PendingRevenue() decimal.Decimal {
	return p.TotalRevenue.Sub(p.RevenueDistributed)
}

// FundingPercentage returns how far the project is towards its funding goal.
func (p Project) FundingPercentage() decimal.Decimal {
	if !p.FundingGoal.IsPositive() {
		return decimal.Zero
	}
	return p.CurrentFunding.Div(p.FundingGoal).Mul(decimal.NewFromInt(100))
}

// AcceptsInvestments reports whether new investments may be placed on the project.
func (p Project) AcceptsInvestments() bool {
	return p.Status != ProjectStatusCancelled && p.Status != ProjectStatusCompleted
}

// ProjectResponse enriches a project with derived revenue and funding figures for API responses.
type ProjectResponse struct {
	Project
	PendingRevenue    decimal.Decimal `json:"pendingRevenue"`
	FundingPercentage decimal.Decimal `json:"fundingPercentage"`
}

// NewProjectResponse builds the API representation of a project.
func NewProjectResponse(p Project) ProjectResponse {
	return ProjectResponse{
		Project:           p,
		PendingRevenue:    p.PendingRevenue(),
		FundingPercentage: p.FundingPercentage().Round(2),
	}
}
