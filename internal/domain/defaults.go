package domain

// DefaultScenario returns a scenario populated with the same baseline
// assumptions the reference planning tool ships with. Callers typically
// decode a YAML file over a copy of this and only override the fields
// that differ for their situation.
func DefaultScenario() ScenarioConfig {
	return ScenarioConfig{
		Seed:                424242,
		NSims:               25000,
		StartAge:            53,
		PartialYearFraction: 0.894444,

		ReturnMuReal:  0.04,
		ReturnVolReal: 0.10,

		Mode:                       ModeOptimize,
		EFixed:                     80000.0,
		TargetSuccessDeathWeighted: 0.90,
		ELo:                        40000,
		EHi:                        220000,
		ESearchIters:               19,
		OptimizeSuccessMetric:      MetricDeathWeighted,
		BothWeight:                 0.5,

		SSAnnualReal:               46405.0,
		SSStartAge:                 63,
		EarnedIncomeAnnualReal:     0.0,
		EarnedIncomeStartAge:       54,
		EarnedIncomeEndAge:         62,
		IncomeAppliesToActualSpend: true,
		AllowSurplusSavings:        false,
		SurplusAllocation:          SurplusReserveFirst,

		FloorAnnualReal: 60000.0,

		ReserveCashFraction: 0.5,
		SafeRealReturn:      0.01,

		DD1:               0.15,
		DD2:               0.25,
		Cut1:              0.50,
		Cut2:              1.00,
		BaselineEForFlex:  99300.0,
		BaselineFlexPre:   20000.0,
		BaselineNetPostSS: 52895.0,
		BaselineFlexPost:  10000.0,

		RMOpenAge:         62,
		HomeValueReal:     950000.0,
		RMPLFAtOpen:       0.40,
		RMLimitRealGrowth: 0.015,
		RMBalRealRate:     0.015,
		RMPartialCover:    0.50,
		RMRepayRate:       0.15,
		PayoffDDThreshold: 0.05,

		LoanRealRate:           0.03,
		LoanTermYears:          30,
		LoanBucketRealReturn:   0.01,
		LoanBucketUseDD:        0.15,
		LoanBucketPartialCover: 0.50,

		StartPortfolios:  []float64{1477000.0},
		ReserveYearsList: []float64{1.0},
		LoanAmounts:      []float64{0},
	}
}
