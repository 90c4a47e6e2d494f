package engine

import "github.com/rpgo/drawdown-engine/internal/domain"

// eCeiling is the absolute upper bound the auto-expanding search will never
// cross, guaranteeing termination regardless of how generous the target is.
const eCeiling = 600_000

// objective picks the scalar the optimizer searches on, per
// SPEC_FULL.md section 4.8.
func objective(metric domain.SuccessMetric, bothWeight, pDW, p99 float64) float64 {
	switch metric {
	case domain.MetricAge99:
		return p99
	case domain.MetricBothMin:
		if pDW < p99 {
			return pDW
		}
		return p99
	case domain.MetricBothWeighted:
		return bothWeight*pDW + (1-bothWeight)*p99
	default:
		return pDW
	}
}

// evalE runs the kernel and aggregator at spending level e and returns the
// objective value alongside the full result row.
func evalE(cfg *domain.ScenarioConfig, point domain.GridPoint, e float64, returns *ReturnsMatrix) (float64, domain.GridPointResult) {
	out := SimulateOnce(cfg, point, e, returns)
	result := Aggregate(out)
	obj := objective(cfg.OptimizeSuccessMetric, cfg.BothWeight, result.PSuccessDeathWeighted, result.PSuccessToAge99)
	return obj, result
}

// findMaxE binary-searches for the largest integral annual spending level
// whose objective still meets target, auto-expanding the upper bound when
// the search range turns out too narrow. Mirrors the reference
// implementation's find_max_E exactly, including its two non-convergent
// outcomes: the floor itself falls short of target, or the absolute
// spending ceiling is reached while still meeting target (true max unknown).
func findMaxE(cfg *domain.ScenarioConfig, point domain.GridPoint, target float64, eLo, eHi int, iters int, returns *ReturnsMatrix) (int, domain.GridPointResult, bool) {
	lo, hi := eLo, eHi

	objLo, resultLo := evalE(cfg, point, float64(lo), returns)
	if objLo < target {
		return lo, resultLo, false
	}

	objHi, resultHi := evalE(cfg, point, float64(hi), returns)
	for objHi >= target && hi < eCeiling {
		lo, resultLo = hi, resultHi
		hi = int(float64(hi) * 1.25)
		if hi > eCeiling {
			hi = eCeiling
		}
		objHi, resultHi = evalE(cfg, point, float64(hi), returns)
	}
	ceilingLimited := objHi >= target

	for i := 0; i < iters; i++ {
		mid := (lo + hi) / 2
		objMid, resultMid := evalE(cfg, point, float64(mid), returns)
		if objMid >= target {
			lo, resultLo = mid, resultMid
		} else {
			hi = mid - 1
		}
	}

	return lo, resultLo, !ceilingLimited
}
