package request

import "github.com/shopspring/decimal"

// CreateProjectRequest represents the request body for creating a new project.
// Status is optional and defaults to "draft"; dates use YYYY-MM-DD.
type CreateProjectRequest struct {
	CreatorID   string          `json:"creatorId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	FundingGoal decimal.Decimal `json:"fundingGoal"`
	Status      string          `json:"status,omitempty"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
}

// RecordRevenueRequest represents revenue recognized for a project.
type RecordRevenueRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
