package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
)

var cent = decimal.New(1, -2)

// allocateDividends splits pool across the completed investments of project.
//
// Each investment's exact share is amount * pool / currentFunding. Shares are floored to
// cents and the cents left over are handed out one at a time, largest fractional
// remainder first (ties broken by investment ID), so the persisted amounts always add up
// to pool and the input order never matters.
//
// The caller must have checked that the investments add up to project.CurrentFunding
// and that pool is a positive amount in cents.
func allocateDividends(project model.Project, investments []model.Investment, pool decimal.Decimal) (map[string]model.DividendAllocation, model.AllocationSummary, error) {
	type candidate struct {
		alloc    model.DividendAllocation
		fraction decimal.Decimal
	}

	candidates := make([]candidate, 0, len(investments))
	floored := decimal.Zero

	for _, inv := range investments {
		exact := PotentialDividend(inv, project, pool)
		share := exact.RoundFloor(2)
		floored = floored.Add(share)

		candidates = append(candidates, candidate{
			alloc: model.DividendAllocation{
				InvestmentID:     inv.ID,
				InvestorID:       inv.InvestorID,
				InvestmentAmount: inv.Amount,
				Ownership:        OwnershipPercentage(inv, project).Round(2),
				Dividend:         share,
			},
			fraction: exact.Sub(share),
		})
	}

	leftover := pool.Sub(floored)
	leftoverCents := int(leftover.Shift(2).IntPart())

	sort.Slice(candidates, func(i, j int) bool {
		if c := candidates[i].fraction.Cmp(candidates[j].fraction); c != 0 {
			return c > 0
		}
		return candidates[i].alloc.InvestmentID < candidates[j].alloc.InvestmentID
	})
	for i := 0; i < leftoverCents && i < len(candidates); i++ {
		candidates[i].alloc.Dividend = candidates[i].alloc.Dividend.Add(cent)
	}

	allocations := make(map[string]model.DividendAllocation, len(candidates))
	total := decimal.Zero
	for _, c := range candidates {
		allocations[c.alloc.InvestmentID] = c.alloc
		total = total.Add(c.alloc.Dividend)
	}

	if !total.Equal(pool) {
		return nil, model.AllocationSummary{}, fmt.Errorf("%w: allocated %s of pool %s", apperrors.ErrDataInconsistency, total, pool)
	}

	summary := model.AllocationSummary{
		RevenuePool:        pool,
		InvestorsCount:     len(investments),
		TotalDistributed:   total,
		RoundingAdjustment: leftover,
	}
	return allocations, summary, nil
}
