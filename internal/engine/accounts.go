package engine

// takeFromScalar withdraws, in place, as much as possible of want from
// balance, never driving it negative. It returns the amount actually taken
// and the residual (unmet) want, and is the only primitive in the kernel
// that mutates a balance during a withdrawal step — every funding-order
// step in SPEC_FULL.md section 4.6 routes through it, once per path.
func takeFromScalar(balance *float64, want float64) (taken, residual float64) {
	avail := *balance
	if avail < 0 {
		avail = 0
	}
	taken = want
	if taken > avail {
		taken = avail
	}
	*balance -= taken
	return taken, want - taken
}

// safeTargets returns the (cash, treasury) reserve dollar targets for year t,
// sized off the planned withdrawal for year t+1 (clamped to the last
// modeled year), per SPEC_FULL.md section 4.5.
func safeTargets(withdrawals []float64, t int, reserveYears, reserveCashFraction float64) (tgtCash, tgtBase float64) {
	next := t + 1
	if next > len(withdrawals)-1 {
		next = len(withdrawals) - 1
	}
	total := reserveYears * withdrawals[next]
	tgtCash = reserveCashFraction * total
	tgtBase = total - tgtCash
	return tgtCash, tgtBase
}
