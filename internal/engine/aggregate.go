package engine

import (
	"sort"

	"github.com/rpgo/drawdown-engine/internal/domain"
)

// Aggregate reduces one grid point's simulated ensemble to the summary
// fields reported to a caller, per SPEC_FULL.md section 4.7. The point's
// (start_portfolio, reserve_years, loan_amount) identity is filled in by the
// caller, not here.
func Aggregate(out PathOutcome) domain.GridPointResult {
	if out.Infeasible {
		return domain.GridPointResult{}
	}

	pDW, p99 := deathWeightedSuccess(out.FailIdx, out.StartAge, out.NYears)

	n := len(out.Risky)
	homeEquity := make([]float64, n)
	totalNetEnd := make([]float64, n)
	netWorthEnd := make([]float64, n)
	var rmDrawCount int
	for i := 0; i < n; i++ {
		homeEquity[i] = nonNegative(out.HomeValueReal - out.RMBalance[i])
		totalNetEnd[i] = out.Cash[i] + out.BaseTreas[i] + out.Risky[i] + out.LoanBucket[i] - out.LoanBal[i]
		netWorthEnd[i] = totalNetEnd[i] + homeEquity[i]
		if out.RMEverUsed[i] {
			rmDrawCount++
		}
	}

	return domain.GridPointResult{
		PSuccessDeathWeighted:     pDW,
		PSuccessToAge99:           p99,
		MedianMaxDDRisky:          median(out.MaxDDRisky),
		MedianMaxDDTotal:          median(out.MaxDDTotal),
		HomeEquityRemainingMedian: median(homeEquity),
		PAnyRMDraw:                float64(rmDrawCount) / float64(n),
		RMBalanceEndMedian:        median(out.RMBalance),
		RiskyEndMedian:            median(out.Risky),
		TotalNetEndMedian:         median(totalNetEnd),
		NetWorthEndMedian:         median(netWorthEnd),
	}
}

// median returns the standard "average the two middle order statistics"
// median of values, without mutating the caller's slice. A single-element
// slice degenerates to that element.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
