package request

import "github.com/shopspring/decimal"

// CreateInvestmentRequest represents the request body for placing an investment on a project.
type CreateInvestmentRequest struct {
	InvestorID       string          `json:"investorId"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentReference string          `json:"paymentReference,omitempty"`
}
