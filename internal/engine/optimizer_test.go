package engine

import (
	"testing"

	"github.com/rpgo/drawdown-engine/internal/domain"
)

func TestObjectiveSelectsMetric(t *testing.T) {
	cases := []struct {
		metric domain.SuccessMetric
		weight float64
		pDW    float64
		p99    float64
		want   float64
	}{
		{domain.MetricDeathWeighted, 0.5, 0.9, 0.8, 0.9},
		{domain.MetricAge99, 0.5, 0.9, 0.8, 0.8},
		{domain.MetricBothMin, 0.5, 0.9, 0.8, 0.8},
		{domain.MetricBothMin, 0.5, 0.7, 0.95, 0.7},
		{domain.MetricBothWeighted, 0.25, 0.8, 0.4, 0.25*0.8 + 0.75*0.4},
	}
	for _, c := range cases {
		got := objective(c.metric, c.weight, c.pDW, c.p99)
		if got != c.want {
			t.Fatalf("objective(%v, %v, %v, %v) = %v, want %v", c.metric, c.weight, c.pDW, c.p99, got, c.want)
		}
	}
}

func TestFindMaxEReturnsLoWhenFloorAlreadyMissesTarget(t *testing.T) {
	cfg := minimalScenario()
	cfg.FloorAnnualReal = 20_000
	cfg.OptimizeSuccessMetric = domain.MetricDeathWeighted
	point := domain.GridPoint{StartPortfolio: 200_000, ReserveYears: 0, LoanAmount: 0}
	returns := GenerateReturns(cfg.Seed, cfg.NSims, cfg.NYears(), cfg.ReturnMuReal, cfg.ReturnVolReal)

	// Spending an enormous eLo empties the portfolio in the first year, so
	// the later years cannot fund the positive floor and e_lo misses a
	// target of 1.0.
	maxE, _, converged := findMaxE(&cfg, point, 1.0, 10_000_000, 10_000_001, 5, returns)

	if converged {
		t.Fatalf("expected non-convergence when even e_lo misses the target")
	}
	if maxE != 10_000_000 {
		t.Fatalf("expected the returned E to equal e_lo on immediate failure, got %v", maxE)
	}
}

func TestFindMaxEConvergesOnAchievableTarget(t *testing.T) {
	cfg := minimalScenario()
	cfg.FloorAnnualReal = 20_000 // with no floor no path can fail and the search always runs to eCeiling
	cfg.OptimizeSuccessMetric = domain.MetricDeathWeighted
	point := domain.GridPoint{StartPortfolio: 1_000_000, ReserveYears: 1, LoanAmount: 0}
	returns := GenerateReturns(cfg.Seed, cfg.NSims, cfg.NYears(), cfg.ReturnMuReal, cfg.ReturnVolReal)

	maxE, result, converged := findMaxE(&cfg, point, 0.5, 1_000, 50_000, 15, returns)

	if maxE < 1_000 {
		t.Fatalf("expected max E at or above e_lo, got %v", maxE)
	}
	if !converged {
		t.Logf("optimizer did not converge for this target/range combination; maxE=%v result=%+v", maxE, result)
	}
}

func TestFindMaxEMonotonicInTarget(t *testing.T) {
	cfg := minimalScenario()
	cfg.FloorAnnualReal = 0
	cfg.OptimizeSuccessMetric = domain.MetricDeathWeighted
	point := domain.GridPoint{StartPortfolio: 1_000_000, ReserveYears: 1, LoanAmount: 0}
	returns := GenerateReturns(cfg.Seed, cfg.NSims, cfg.NYears(), cfg.ReturnMuReal, cfg.ReturnVolReal)

	easyMaxE, _, _ := findMaxE(&cfg, point, 0.1, 1_000, 50_000, 15, returns)
	hardMaxE, _, _ := findMaxE(&cfg, point, 0.95, 1_000, 50_000, 15, returns)

	if hardMaxE > easyMaxE {
		t.Fatalf("a harder target should never yield a larger max E: easy=%v hard=%v", easyMaxE, hardMaxE)
	}
}
