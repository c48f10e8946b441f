package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment status values. Only completed investments take part in
// ownership and dividend calculations.
const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusCompleted = "completed"
	InvestmentStatusRefunded  = "refunded"
	InvestmentStatusCancelled = "cancelled"
)

// Investment is a single capital contribution by one investor to one project.
type Investment struct {
	ID               string          `json:"id"`
	ProjectID        string          `json:"projectID"`
	InvestorID       string          `json:"investorID"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	InvestedAt       time.Time       `json:"investedAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// IsCompleted reports whether the investment counts towards ownership.
func (i Investment) IsCompleted() bool {
	return i.Status == InvestmentStatusCompleted
}

// InvestmentOwnership is a point-in-time snapshot of an investment's share of its project.
// It is recomputed on every read and changes as other investors join or leave.
type InvestmentOwnership struct {
	Investment
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`
	ProjectFunding      decimal.Decimal `json:"projectFunding"`
}
