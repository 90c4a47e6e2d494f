package engine

import "github.com/rpgo/drawdown-engine/internal/domain"

// epsilon is the tolerance used throughout the kernel for "close enough to
// zero" comparisons on residual withdrawal amounts and drawdown levels,
// matching the reference implementation's 1e-9 guard bands.
const epsilon = 1e-9

// PathOutcome holds the per-path ending state and lifetime statistics for one
// grid point's ensemble, in struct-of-arrays layout (one slice per field,
// indexed by path). The aggregator (C7) reduces this into a GridPointResult;
// nothing here is exported to a caller directly.
type PathOutcome struct {
	StartAge      int
	NYears        int
	HomeValueReal float64

	Cash       []float64
	BaseTreas  []float64
	Risky      []float64
	LoanBucket []float64
	LoanBal    []float64
	RMLimit    []float64
	RMBalance  []float64

	MaxDDRisky []float64
	MaxDDTotal []float64

	// FailIdx[i] is the year index the path first failed to fund its floor
	// or a mandatory loan/lien payment; NYears means "never failed".
	FailIdx    []int
	RMEverUsed []bool

	// Infeasible is set when the grid point's reserve-plus-loan ask exceeds
	// start_portfolio; no paths were simulated and every other field is nil.
	Infeasible bool
}

// buildWithdrawals computes the planned (pre-guardrail) withdrawal for every
// modeled year. In actual-spend mode it is simply E (pro-rated in year 0);
// in legacy mode, Social Security and earned income are netted out up front.
func buildWithdrawals(cfg *domain.ScenarioConfig, e float64) []float64 {
	nYears := cfg.NYears()
	w := make([]float64, nYears)

	if cfg.IncomeAppliesToActualSpend {
		w[0] = e * cfg.PartialYearFraction
		for t := 1; t < nYears; t++ {
			w[t] = e
		}
		return w
	}

	age0 := cfg.StartAge
	ei0 := earnedIncomeAt(cfg, age0) * cfg.PartialYearFraction
	var ss0 float64
	if age0 >= cfg.SSStartAge {
		ss0 = cfg.SSAnnualReal * cfg.PartialYearFraction
	}
	w[0] = nonNegative(e*cfg.PartialYearFraction - ss0 - ei0)

	for t := 1; t < nYears; t++ {
		age := cfg.StartAge + t
		ei := earnedIncomeAt(cfg, age)
		var ss float64
		if age >= cfg.SSStartAge {
			ss = cfg.SSAnnualReal
		}
		w[t] = nonNegative(e - ss - ei)
	}
	return w
}

// buildFloorAssets computes the asset-funded floor for every modeled year,
// pro-rated by partial_year_fraction in year 0 only (a same-year spending
// obligation, unlike the forward-looking reserve targets in safeTargets).
func buildFloorAssets(cfg *domain.ScenarioConfig) []float64 {
	nYears := cfg.NYears()
	floorAssets := make([]float64, nYears)
	for t := range floorAssets {
		floorAssets[t] = cfg.FloorAnnualReal
	}
	floorAssets[0] = cfg.FloorAnnualReal * cfg.PartialYearFraction
	return floorAssets
}

func earnedIncomeAt(cfg *domain.ScenarioConfig, age int) float64 {
	if cfg.EarnedIncomeAnnualReal <= 0 {
		return 0
	}
	if age < cfg.EarnedIncomeStartAge || age > cfg.EarnedIncomeEndAge {
		return 0
	}
	return cfg.EarnedIncomeAnnualReal
}

func nonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// SimulateOnce runs the full ensemble for a single grid point at a single
// spending level E, per SPEC_FULL.md section 4.6. It is the hot path of the
// engine: for n_years outer iterations it walks every live path once, in
// struct-of-arrays order, so the inner loop stays cache-friendly regardless
// of n_sims.
func SimulateOnce(cfg *domain.ScenarioConfig, point domain.GridPoint, e float64, returns *ReturnsMatrix) PathOutcome {
	nYears := cfg.NYears()
	nSims := cfg.NSims

	withdrawals := buildWithdrawals(cfg, e)
	floorAssets := buildFloorAssets(cfg)
	flexPre, flexPost := flexFractions(cfg.BaselineEForFlex, cfg.BaselineFlexPre, cfg.BaselineNetPostSS, cfg.BaselineFlexPost)

	rmOpenT := cfg.RMOpenAge - cfg.StartAge
	rmLimitOpen := cfg.HomeValueReal * cfg.RMPLFAtOpen
	hasLoan := point.LoanAmount > 0
	pay := amortPayment(point.LoanAmount, cfg.LoanRealRate, cfg.LoanTermYears)

	tgtCash0, tgtBase0 := safeTargets(withdrawals, 0, point.ReserveYears, cfg.ReserveCashFraction)
	reserveAsk := tgtCash0 + tgtBase0
	if reserveAsk+point.LoanAmount > point.StartPortfolio {
		return PathOutcome{StartAge: cfg.StartAge, NYears: nYears, HomeValueReal: cfg.HomeValueReal, Infeasible: true}
	}

	initSafe := reserveAsk
	if initSafe > point.StartPortfolio {
		initSafe = point.StartPortfolio
	}
	initCash := tgtCash0
	if initCash > initSafe {
		initCash = initSafe
	}
	initBase := initSafe - initCash
	if initBase < 0 {
		initBase = 0
	}
	initRisky := point.StartPortfolio - initSafe - point.LoanAmount

	out := PathOutcome{
		StartAge:      cfg.StartAge,
		NYears:        nYears,
		HomeValueReal: cfg.HomeValueReal,
		Cash:          make([]float64, nSims),
		BaseTreas:     make([]float64, nSims),
		Risky:         make([]float64, nSims),
		LoanBucket:    make([]float64, nSims),
		LoanBal:       make([]float64, nSims),
		RMLimit:       make([]float64, nSims),
		RMBalance:     make([]float64, nSims),
		MaxDDRisky:    make([]float64, nSims),
		MaxDDTotal:    make([]float64, nSims),
		FailIdx:       make([]int, nSims),
		RMEverUsed:    make([]bool, nSims),
	}

	hwmRisky := make([]float64, nSims)
	hwmTotal := make([]float64, nSims)
	failed := make([]bool, nSims)

	for i := 0; i < nSims; i++ {
		out.Cash[i] = initCash
		out.BaseTreas[i] = initBase
		out.Risky[i] = initRisky
		if hasLoan {
			out.LoanBucket[i] = point.LoanAmount
			out.LoanBal[i] = point.LoanAmount
		}
		hwmRisky[i] = initRisky
		hwmTotal[i] = initCash + initBase + initRisky + out.LoanBucket[i] - out.LoanBal[i]
		out.FailIdx[i] = nYears
	}

	for t := 0; t < nYears; t++ {
		age := cfg.StartAge + t
		planned := withdrawals[t]
		floorNeed := floorAssets[t]

		flexPct := flexPre
		if age >= cfg.SSStartAge {
			flexPct = flexPost
		}
		flexAmt := flexPct * planned
		if flexAmt > planned {
			flexAmt = planned
		}
		floorAmt := planned - flexAmt

		incomeScalar := 0.0
		if cfg.IncomeAppliesToActualSpend {
			ei := earnedIncomeAt(cfg, age)
			var ss float64
			if age >= cfg.SSStartAge {
				ss = cfg.SSAnnualReal
			}
			if t == 0 {
				ei *= cfg.PartialYearFraction
				ss *= cfg.PartialYearFraction
			}
			incomeScalar = ss + ei
		}

		tgtCashR, tgtBaseR := safeTargets(withdrawals, t, point.ReserveYears, cfg.ReserveCashFraction)

		for i := 0; i < nSims; i++ {
			// A failed path is frozen at its state from the end of the year
			// it failed.
			if failed[i] {
				continue
			}
			r := returns.At(i, t)

			// 1. Growth.
			out.Risky[i] *= 1 + r
			out.Cash[i] *= 1 + cfg.SafeRealReturn
			out.BaseTreas[i] *= 1 + cfg.SafeRealReturn
			if hasLoan {
				out.LoanBucket[i] *= 1 + cfg.LoanBucketRealReturn
			}

			// 2. Drawdown.
			if out.Risky[i] > hwmRisky[i] {
				hwmRisky[i] = out.Risky[i]
			}
			dd := 0.0
			if hwmRisky[i] > 0 {
				dd = 1 - out.Risky[i]/hwmRisky[i]
				if dd < 0 {
					dd = 0
				}
			}
			if dd > out.MaxDDRisky[i] {
				out.MaxDDRisky[i] = dd
			}
			totalNet := out.Cash[i] + out.BaseTreas[i] + out.Risky[i] + out.LoanBucket[i] - out.LoanBal[i]
			if totalNet > hwmTotal[i] {
				hwmTotal[i] = totalNet
			}
			ddTotal := 0.0
			if hwmTotal[i] > 0 {
				ddTotal = 1 - totalNet/hwmTotal[i]
				if ddTotal < 0 {
					ddTotal = 0
				}
			}
			if ddTotal > out.MaxDDTotal[i] {
				out.MaxDDTotal[i] = ddTotal
			}

			// 3. Loan payment, pre-RM-open.
			if hasLoan && t < rmOpenT {
				due := pay
				if t >= cfg.LoanTermYears {
					due = 0 // term over: the loan is fully repaid
				}
				_, rem := takeFromScalar(&out.Cash[i], due)
				_, rem = takeFromScalar(&out.BaseTreas[i], rem)
				_, rem = takeFromScalar(&out.Risky[i], rem)
				if dd >= cfg.LoanBucketUseDD && !failed[i] && rem > epsilon {
					take := rem
					if take > out.LoanBucket[i] {
						take = out.LoanBucket[i]
					}
					out.LoanBucket[i] -= take
					rem -= take
				}
				if !failed[i] && rem > epsilon {
					failed[i] = true
					out.FailIdx[i] = t
				}
				k := t + 1
				if k <= cfg.LoanTermYears {
					out.LoanBal[i] = loanBalanceAfterK(point.LoanAmount, cfg.LoanRealRate, pay, k)
				} else {
					out.LoanBal[i] = 0
				}
			}

			// 4. RM open / lien payoff.
			if t == rmOpenT {
				out.RMLimit[i] = rmLimitOpen * (1 + cfg.RMLimitRealGrowth)
				if hasLoan {
					payoff := out.LoanBal[i]
					riskyFirst := dd <= cfg.PayoffDDThreshold

					if riskyFirst {
						_, payoff = takeFromScalar(&out.Risky[i], payoff)
					}
					if !riskyFirst {
						avail := out.RMLimit[i] - out.RMBalance[i]
						if avail < 0 {
							avail = 0
						}
						take := payoff
						if take > avail {
							take = avail
						}
						out.RMBalance[i] += take
						payoff -= take
					}
					if riskyFirst {
						avail := out.RMLimit[i] - out.RMBalance[i]
						if avail < 0 {
							avail = 0
						}
						take := payoff
						if take > avail {
							take = avail
						}
						out.RMBalance[i] += take
						payoff -= take
					}
					if !riskyFirst {
						_, payoff = takeFromScalar(&out.Risky[i], payoff)
					}
					_, payoff = takeFromScalar(&out.BaseTreas[i], payoff)
					_, payoff = takeFromScalar(&out.Cash[i], payoff)
					_, payoff = takeFromScalar(&out.LoanBucket[i], payoff)

					if !failed[i] && payoff > epsilon {
						failed[i] = true
						out.FailIdx[i] = t
					}
					out.LoanBal[i] = 0
				}
			}

			// 5. RM growth.
			if t >= rmOpenT {
				out.RMLimit[i] *= 1 + cfg.RMLimitRealGrowth
				out.RMBalance[i] *= 1 + cfg.RMBalRealRate
			}

			// 6. Guardrails flex split.
			cut := guardrailCut(dd, cfg.DD1, cfg.DD2, cfg.Cut1, cfg.Cut2)
			desired := floorAmt + flexAmt*(1-cut)

			// 7. Feasibility ceiling.
			availRM := out.RMLimit[i] - out.RMBalance[i]
			if availRM < 0 {
				availRM = 0
			}
			accessibleLoanBucket := 0.0
			if dd >= cfg.LoanBucketUseDD {
				accessibleLoanBucket = out.LoanBucket[i]
			}
			riskyPositive := out.Risky[i]
			if riskyPositive < 0 {
				riskyPositive = 0
			}
			maxFeasible := out.Cash[i] + out.BaseTreas[i] + riskyPositive + availRM + accessibleLoanBucket

			// 8. Income application.
			var assetDesired, floorNeedAssets float64
			if incomeScalar > 0 {
				assetDesired = nonNegative(desired - incomeScalar)
				floorNeedAssets = nonNegative(floorNeed - incomeScalar)
				surplus := nonNegative(incomeScalar - desired)
				if surplus > 0 {
					if cfg.SurplusAllocation == domain.SurplusRiskyFirst {
						out.Risky[i] += surplus
					} else {
						addCash := nonNegative(tgtCashR - out.Cash[i])
						if addCash > surplus {
							addCash = surplus
						}
						out.Cash[i] += addCash
						surplus -= addCash

						addBase := nonNegative(tgtBaseR - out.BaseTreas[i])
						if addBase > surplus {
							addBase = surplus
						}
						out.BaseTreas[i] += addBase
						surplus -= addBase

						out.Risky[i] += surplus
					}
				}
			} else {
				assetDesired = desired
				floorNeedAssets = floorNeed
			}

			// 9. Floor enforcement / failure.
			if !failed[i] && maxFeasible < floorNeedAssets-epsilon {
				failed[i] = true
				out.FailIdx[i] = t
			}
			spendAssets := assetDesired
			if spendAssets > maxFeasible {
				spendAssets = maxFeasible
			}
			if failed[i] {
				spendAssets = 0
			} else if spendAssets < floorNeedAssets {
				spendAssets = floorNeedAssets
			}

			// 10. Funding order.
			rem := spendAssets
			_, rem = takeFromScalar(&out.Cash[i], rem)
			_, rem = takeFromScalar(&out.BaseTreas[i], rem)

			if dd >= cfg.LoanBucketUseDD && !failed[i] && out.LoanBucket[i] > 0 {
				takeLoan := rem * cfg.LoanBucketPartialCover
				if takeLoan > out.LoanBucket[i] {
					takeLoan = out.LoanBucket[i]
				}
				out.LoanBucket[i] -= takeLoan
				rem -= takeLoan
			}

			availRM = out.RMLimit[i] - out.RMBalance[i]
			if availRM < 0 {
				availRM = 0
			}
			if dd >= cfg.DD2 && !failed[i] {
				takeRM := rem * cfg.RMPartialCover
				if takeRM > availRM {
					takeRM = availRM
				}
				out.RMBalance[i] += takeRM
				rem -= takeRM
			}

			_, rem = takeFromScalar(&out.Risky[i], rem)

			availRM = out.RMLimit[i] - out.RMBalance[i]
			if availRM < 0 {
				availRM = 0
			}
			takeRM2 := rem
			if takeRM2 > availRM {
				takeRM2 = availRM
			}
			out.RMBalance[i] += takeRM2
			rem -= takeRM2

			if dd >= cfg.LoanBucketUseDD && !failed[i] && rem > epsilon {
				take := rem
				if take > out.LoanBucket[i] {
					take = out.LoanBucket[i]
				}
				out.LoanBucket[i] -= take
				rem -= take
			}

			// 11. Reserve refill.
			good := dd < cfg.DD1 && !failed[i]
			if good {
				needCash := nonNegative(tgtCashR - out.Cash[i])
				riskyAvail := out.Risky[i]
				if riskyAvail < 0 {
					riskyAvail = 0
				}
				addCash := needCash
				if addCash > riskyAvail {
					addCash = riskyAvail
				}
				out.Risky[i] -= addCash
				out.Cash[i] += addCash

				needBase := nonNegative(tgtBaseR - out.BaseTreas[i])
				riskyAvail = out.Risky[i]
				if riskyAvail < 0 {
					riskyAvail = 0
				}
				addBase := needBase
				if addBase > riskyAvail {
					addBase = riskyAvail
				}
				out.Risky[i] -= addBase
				out.BaseTreas[i] += addBase
			}

			// 12. RM repayment.
			recovered := good && dd < epsilon && out.RMBalance[i] > 0
			if recovered {
				repayAmt := out.RMBalance[i] * cfg.RMRepayRate
				riskyAvail := out.Risky[i]
				if riskyAvail < 0 {
					riskyAvail = 0
				}
				if repayAmt > riskyAvail {
					repayAmt = riskyAvail
				}
				out.Risky[i] -= repayAmt
				out.RMBalance[i] -= repayAmt
			}

			// 13. Bookkeeping.
			if out.RMBalance[i] > 0 {
				out.RMEverUsed[i] = true
			}
		}
	}

	return out
}
