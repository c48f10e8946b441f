package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
)

const validID = "550e8400-e29b-41d4-a716-446655440000"

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
	return verr.Fields
}

func TestValidateCreateProject(t *testing.T) {
	valid := request.CreateProjectRequest{
		CreatorID:   validID,
		Title:       "Wind Park",
		FundingGoal: decimal.RequireFromString("50000"),
		StartDate:   "2026-03-01",
		EndDate:     "2026-09-01",
	}

	t.Run("accepts valid request", func(t *testing.T) {
		assert.NoError(t, ValidateCreateProject(valid))
	})

	t.Run("reports every bad field", func(t *testing.T) {
		req := valid
		req.CreatorID = "nope"
		req.Title = "  "
		req.FundingGoal = decimal.RequireFromString("10.001")
		req.Status = "archived"
		req.EndDate = "2026-02-01"

		got := fields(t, ValidateCreateProject(req))
		assert.Contains(t, got, "creatorId")
		assert.Contains(t, got, "title")
		assert.Contains(t, got, "fundingGoal")
		assert.Contains(t, got, "status")
		assert.Equal(t, "endDate must be after startDate", got["endDate"])
	})
}

func TestValidateCreateInvestment(t *testing.T) {
	assert.NoError(t, ValidateCreateInvestment(request.CreateInvestmentRequest{
		InvestorID: validID,
		Amount:     decimal.RequireFromString("99.99"),
	}))

	got := fields(t, ValidateCreateInvestment(request.CreateInvestmentRequest{
		InvestorID: validID,
		Amount:     decimal.Zero,
	}))
	assert.Equal(t, "must be positive", got["amount"])
}

func TestValidateDistributeDividends(t *testing.T) {
	assert.NoError(t, ValidateDistributeDividends(request.DistributeDividendsRequest{}))

	amount := decimal.RequireFromString("0.005")
	got := fields(t, ValidateDistributeDividends(request.DistributeDividendsRequest{Amount: &amount}))
	assert.Equal(t, "cannot have more than two decimal places", got["amount"])
}

func TestValidateMarkDividendPaid(t *testing.T) {
	assert.NoError(t, ValidateMarkDividendPaid(request.MarkDividendPaidRequest{PaymentReference: "po_1"}))
	assert.Error(t, ValidateMarkDividendPaid(request.MarkDividendPaidRequest{}))
}

func TestErrorMessageIsSorted(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "a: first; b: second", err.Error())
}
