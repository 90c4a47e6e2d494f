package engine

import "math"

// amortPayment returns the fixed real annual payment that amortizes
// principal over term years at real rate rate. A zero or negative principal
// has no payment; a zero rate falls back to straight-line amortization.
func amortPayment(principal, rate float64, term int) float64 {
	if principal <= 0 {
		return 0
	}
	if rate <= 0 {
		return principal / float64(term)
	}
	return (rate * principal) / (1 - math.Pow(1+rate, -float64(term)))
}

// loanBalanceAfterK returns the outstanding principal after k annual
// payments of amount payment on a loan of principal at real rate rate,
// via the closed-form amortization identity (avoids re-simulating payment
// history year by year inside the kernel).
func loanBalanceAfterK(principal, rate, payment float64, k int) float64 {
	if principal <= 0 {
		return 0
	}
	if rate <= 0 {
		bal := principal - payment*float64(k)
		if bal < 0 {
			return 0
		}
		return bal
	}
	grown := principal * math.Pow(1+rate, float64(k))
	paid := payment * ((math.Pow(1+rate, float64(k)) - 1) / rate)
	bal := grown - paid
	if bal < 0 {
		return 0
	}
	return bal
}
