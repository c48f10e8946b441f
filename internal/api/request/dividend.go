package request

import "github.com/shopspring/decimal"

// DistributeDividendsRequest represents a distribution trigger.
// A nil Amount distributes all pending revenue.
type DistributeDividendsRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// MarkDividendPaidRequest records a successful payout.
type MarkDividendPaidRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// MarkDividendFailedRequest records a failed payout.
type MarkDividendFailedRequest struct {
	Reason string `json:"reason"`
}
