package validation

import (
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
)

// ValidateCreateInvestment validates an investment request.
// investorId must be a valid UUID and amount positive with at most two decimals.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestorID); err != nil {
		errors["investorId"] = err.Error()
	}
	if msg := validateMoney(req.Amount); msg != "" {
		errors["amount"] = msg
	}
	if len(req.PaymentReference) > 100 {
		errors["paymentReference"] = "paymentReference cannot exceed 100 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
