package validation

import (
	"strings"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
)

// ValidateDistributeDividends validates a distribution trigger. The amount is optional;
// when given it must be positive with at most two decimals.
func ValidateDistributeDividends(req request.DistributeDividendsRequest) error {
	if req.Amount == nil {
		return nil
	}
	if msg := validateMoney(*req.Amount); msg != "" {
		return &Error{Fields: map[string]string{"amount": msg}}
	}
	return nil
}

// ValidateMarkDividendPaid requires the payout reference issued by the payment provider.
func ValidateMarkDividendPaid(req request.MarkDividendPaidRequest) error {
	if strings.TrimSpace(req.PaymentReference) == "" {
		return &Error{Fields: map[string]string{"paymentReference": "paymentReference is required"}}
	}
	return nil
}
