package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture builds a project funded exactly by completed investments of the given amounts.
func fixture(amounts ...string) (model.Project, []model.Investment) {
	project := model.Project{ID: "p", CurrentFunding: decimal.Zero}
	investments := make([]model.Investment, 0, len(amounts))
	for i, a := range amounts {
		inv := model.Investment{
			ID:         fmt.Sprintf("inv-%02d", i),
			ProjectID:  project.ID,
			InvestorID: fmt.Sprintf("investor-%02d", i),
			Amount:     dec(a),
			Status:     model.InvestmentStatusCompleted,
		}
		project.CurrentFunding = project.CurrentFunding.Add(inv.Amount)
		investments = append(investments, inv)
	}
	return project, investments
}

func TestOwnershipPercentage(t *testing.T) {
	t.Run("zero funding yields zero", func(t *testing.T) {
		inv := model.Investment{Amount: dec("100")}
		assert.True(t, OwnershipPercentage(inv, model.Project{}).IsZero())
	})

	t.Run("worked example", func(t *testing.T) {
		project, invs := fixture("1500", "900", "600")
		want := []string{"50", "30", "20"}
		for i, inv := range invs {
			assert.True(t, OwnershipPercentage(inv, project).Equal(dec(want[i])), "investment %d", i)
		}
	})

	t.Run("sums to one hundred", func(t *testing.T) {
		project, invs := fixture("333.33", "333.33", "333.34", "17.01", "0.99")
		total := decimal.Zero
		for _, inv := range invs {
			total = total.Add(OwnershipPercentage(inv, project))
		}
		assert.True(t, total.Sub(dec("100")).Abs().LessThanOrEqual(dec("0.01")), "total %s", total)
	})
}

func TestPotentialDividend(t *testing.T) {
	project, invs := fixture("1500", "900", "600")
	assert.True(t, PotentialDividend(invs[0], project, dec("1000")).Equal(dec("500")))
	assert.True(t, PotentialDividend(invs[2], project, dec("1000")).Equal(dec("200")))
	assert.True(t, PotentialDividend(invs[0], model.Project{}, dec("1000")).IsZero())
}

func TestAllocateDividends(t *testing.T) {
	t.Run("splits pool by ownership", func(t *testing.T) {
		project, invs := fixture("1500", "900", "600")

		allocs, summary, err := allocateDividends(project, invs, dec("1000"))
		require.NoError(t, err)

		require.Len(t, allocs, 3)
		assert.True(t, allocs["inv-00"].Dividend.Equal(dec("500")))
		assert.True(t, allocs["inv-01"].Dividend.Equal(dec("300")))
		assert.True(t, allocs["inv-02"].Dividend.Equal(dec("200")))
		assert.True(t, allocs["inv-01"].Ownership.Equal(dec("30")))

		assert.Equal(t, 3, summary.InvestorsCount)
		assert.True(t, summary.TotalDistributed.Equal(dec("1000")))
		assert.True(t, summary.RoundingAdjustment.IsZero())
	})

	t.Run("single investor receives the whole pool", func(t *testing.T) {
		project, invs := fixture("250")

		allocs, _, err := allocateDividends(project, invs, dec("87.13"))
		require.NoError(t, err)
		assert.True(t, allocs["inv-00"].Dividend.Equal(dec("87.13")))
	})

	t.Run("hands leftover cents to largest remainders", func(t *testing.T) {
		project, invs := fixture("100", "100", "100")

		allocs, summary, err := allocateDividends(project, invs, dec("100"))
		require.NoError(t, err)

		// 33.333... each; one leftover cent goes to the lowest ID on a tie.
		assert.True(t, allocs["inv-00"].Dividend.Equal(dec("33.34")))
		assert.True(t, allocs["inv-01"].Dividend.Equal(dec("33.33")))
		assert.True(t, allocs["inv-02"].Dividend.Equal(dec("33.33")))
		assert.True(t, summary.TotalDistributed.Equal(dec("100")))
		assert.True(t, summary.RoundingAdjustment.Equal(dec("0.01")))
	})

	t.Run("same investor with two investments keeps both allocations", func(t *testing.T) {
		project, invs := fixture("100", "300")
		invs[1].InvestorID = invs[0].InvestorID

		allocs, _, err := allocateDividends(project, invs, dec("40"))
		require.NoError(t, err)
		require.Len(t, allocs, 2)
		assert.True(t, allocs["inv-00"].Dividend.Equal(dec("10")))
		assert.True(t, allocs["inv-01"].Dividend.Equal(dec("30")))
	})

	t.Run("input order does not change amounts", func(t *testing.T) {
		project, invs := fixture("10", "20", "30", "40", "7.77")
		pool := dec("99.99")

		forward, _, err := allocateDividends(project, invs, pool)
		require.NoError(t, err)

		reversed := make([]model.Investment, len(invs))
		for i, inv := range invs {
			reversed[len(invs)-1-i] = inv
		}
		backward, _, err := allocateDividends(project, reversed, pool)
		require.NoError(t, err)

		for id, a := range forward {
			assert.True(t, a.Dividend.Equal(backward[id].Dividend), "investment %s", id)
		}
	})

	t.Run("persisted amounts always add up to the pool", func(t *testing.T) {
		project, invs := fixture("1", "2", "3", "5", "8", "13", "21", "34")
		for _, pool := range []string{"0.01", "0.07", "1.00", "10.01", "333.33", "1000000.99"} {
			allocs, _, err := allocateDividends(project, invs, dec(pool))
			require.NoError(t, err)

			total := decimal.Zero
			for _, a := range allocs {
				assert.True(t, a.Dividend.Equal(a.Dividend.Truncate(2)))
				total = total.Add(a.Dividend)
			}
			assert.True(t, total.Equal(dec(pool)), "pool %s allocated %s", pool, total)
		}
	})
}

func TestCheckMoney(t *testing.T) {
	assert.NoError(t, checkMoney(dec("10.50")))
	assert.ErrorIs(t, checkMoney(dec("0")), apperrors.ErrNonPositiveAmount)
	assert.ErrorIs(t, checkMoney(dec("-1")), apperrors.ErrNonPositiveAmount)
	assert.ErrorIs(t, checkMoney(dec("1.001")), apperrors.ErrInvalidAmountPrecision)
}
