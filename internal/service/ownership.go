package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// OwnershipPercentage returns the investment's share of the project's current funding,
// as a percentage in [0, 100]. It returns zero when the project has no funding.
// The value is a snapshot: it changes whenever other investments complete or are refunded.
func OwnershipPercentage(investment model.Investment, project model.Project) decimal.Decimal {
	if !project.CurrentFunding.IsPositive() {
		return decimal.Zero
	}
	return investment.Amount.Div(project.CurrentFunding).Mul(hundred)
}

// PotentialDividend returns what the investment would receive if revenue were
// distributed against the project's current funding. Nothing is rounded.
func PotentialDividend(investment model.Investment, project model.Project, revenue decimal.Decimal) decimal.Decimal {
	if !project.CurrentFunding.IsPositive() {
		return decimal.Zero
	}
	return revenue.Mul(investment.Amount).Div(project.CurrentFunding)
}

// isCents reports whether d has at most two decimal places.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// checkMoney enforces the rules shared by every stored amount.
func checkMoney(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", apperrors.ErrNonPositiveAmount, amount)
	}
	if !isCents(amount) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidAmountPrecision, amount)
	}
	return nil
}
