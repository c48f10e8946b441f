package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Dividend payment status values.
const (
	DividendStatusPending = "pending"
	DividendStatusPaid    = "paid"
	DividendStatusFailed  = "failed"
)

// DividendPayment is one payout owed to an investment from one distribution.
// Amount never changes after creation, even if ownership later shifts.
type DividendPayment struct {
	ID               string          `json:"id"`
	InvestmentID     string          `json:"investmentID"`
	DistributionID   string          `json:"distributionID"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	CalculatedAt     time.Time       `json:"calculatedAt"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	Notes            string          `json:"notes"`
}

// DividendDistribution records one allocation batch: a single revenue pool
// split across a project's completed investments.
type DividendDistribution struct {
	ID               string          `json:"id"`
	ProjectID        string          `json:"projectID"`
	RevenuePool      decimal.Decimal `json:"revenuePool"`
	TotalDistributed decimal.Decimal `json:"totalDistributed"`
	InvestorsCount   int             `json:"investorsCount"`
	SkippedCount     int             `json:"skippedCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// DividendAllocation is the share of a revenue pool assigned to a single investment.
// Ownership is rounded to two decimals for display; Dividend is the amount that is persisted.
type DividendAllocation struct {
	InvestmentID     string          `json:"investmentID"`
	InvestorID       string          `json:"investorID"`
	InvestmentAmount decimal.Decimal `json:"investmentAmount"`
	Ownership        decimal.Decimal `json:"ownership"`
	Dividend         decimal.Decimal `json:"dividend"`
}

// AllocationSummary reconciles an allocation against its revenue pool.
type AllocationSummary struct {
	RevenuePool        decimal.Decimal `json:"revenuePool"`
	InvestorsCount     int             `json:"investorsCount"`
	TotalDistributed   decimal.Decimal `json:"totalDistributed"`
	RoundingAdjustment decimal.Decimal `json:"roundingAdjustment"`
}

// DividendCalculation is the result of previewing a distribution.
// An empty calculation (no allocations) is a normal outcome and carries a Reason.
type DividendCalculation struct {
	ProjectID   string                        `json:"projectID"`
	Allocations map[string]DividendAllocation `json:"allocations"`
	Summary     AllocationSummary             `json:"summary"`
	Reason      string                        `json:"reason,omitempty"`
}

// IsEmpty reports whether there is nothing to distribute.
func (c *DividendCalculation) IsEmpty() bool {
	return c == nil || len(c.Allocations) == 0
}

// Ordered returns the allocations sorted by investment ID.
func (c *DividendCalculation) Ordered() []DividendAllocation {
	if c == nil {
		return nil
	}
	out := make([]DividendAllocation, 0, len(c.Allocations))
	for _, a := range c.Allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvestmentID < out[j].InvestmentID })
	return out
}

// SkippedAllocation is an allocation that could not be persisted because its
// investment was no longer eligible when the batch was written.
type SkippedAllocation struct {
	DividendAllocation
	Reason string `json:"reason"`
}

// DistributionResult is what a distribution produced. Distribution is nil and
// Payments is empty when nothing was distributed.
type DistributionResult struct {
	Distribution *DividendDistribution `json:"distribution,omitempty"`
	Payments     []DividendPayment     `json:"payments"`
	Skipped      []SkippedAllocation   `json:"skipped,omitempty"`
	Reason       string                `json:"reason,omitempty"`
}

// InvestmentDividends aggregates an investment's dividend payments by status.
type InvestmentDividends struct {
	InvestmentID string            `json:"investmentID"`
	TotalEarned  decimal.Decimal   `json:"totalEarned"`
	Paid         decimal.Decimal   `json:"paid"`
	Pending      decimal.Decimal   `json:"pending"`
	Failed       decimal.Decimal   `json:"failed"`
	Payments     []DividendPayment `json:"payments"`
}
