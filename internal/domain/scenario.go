// Package domain holds the plain data types that cross the boundary between
// a caller and the simulation engine: the scenario configuration, the grid
// sweep it describes, and the results the engine reports back.
package domain

// OptimizerMode selects how the engine resolves planned spending E for a grid point.
type OptimizerMode string

const (
	ModeOptimize OptimizerMode = "optimize"
	ModeSingle   OptimizerMode = "single"
)

// SuccessMetric selects which success measure the binary search optimizes against.
type SuccessMetric string

const (
	MetricDeathWeighted SuccessMetric = "death_weighted"
	MetricAge99         SuccessMetric = "age_99"
	MetricBothMin       SuccessMetric = "both_min"
	MetricBothWeighted  SuccessMetric = "both_weighted"
)

// SurplusAllocation selects where reinvested income surplus goes first.
type SurplusAllocation string

const (
	SurplusReserveFirst SurplusAllocation = "reserve_first"
	SurplusRiskyFirst   SurplusAllocation = "risky_first"
)

// ScenarioConfig is the full, flat configuration for one simulation run.
// All monetary fields are real (inflation-adjusted) dollars; all rates are
// annual fractions. See SPEC_FULL.md section 3 for field groupings.
type ScenarioConfig struct {
	// Ensemble controls
	Seed                int64   `yaml:"seed" json:"seed"`
	NSims               int     `yaml:"n_sims" json:"n_sims"`
	StartAge            int     `yaml:"start_age" json:"start_age"`
	PartialYearFraction float64 `yaml:"partial_year_fraction" json:"partial_year_fraction"`

	// Return model
	ReturnMuReal  float64 `yaml:"return_mu_real" json:"return_mu_real"`
	ReturnVolReal float64 `yaml:"return_vol_real" json:"return_vol_real"`

	// Optimizer controls
	Mode                        OptimizerMode `yaml:"mode" json:"mode"`
	EFixed                      float64       `yaml:"e_fixed" json:"e_fixed"`
	TargetSuccessDeathWeighted  float64       `yaml:"target_success_death_weighted" json:"target_success_death_weighted"`
	ELo                         int           `yaml:"e_lo" json:"e_lo"`
	EHi                         int           `yaml:"e_hi" json:"e_hi"`
	ESearchIters                int           `yaml:"e_search_iters" json:"e_search_iters"`
	OptimizeSuccessMetric       SuccessMetric `yaml:"optimize_success_metric" json:"optimize_success_metric"`
	BothWeight                  float64       `yaml:"both_weight" json:"both_weight"`

	// Income
	SSAnnualReal                float64           `yaml:"ss_annual_real" json:"ss_annual_real"`
	SSStartAge                  int               `yaml:"ss_start_age" json:"ss_start_age"`
	EarnedIncomeAnnualReal      float64           `yaml:"earned_income_annual_real" json:"earned_income_annual_real"`
	EarnedIncomeStartAge        int               `yaml:"earned_income_start_age" json:"earned_income_start_age"`
	EarnedIncomeEndAge          int               `yaml:"earned_income_end_age" json:"earned_income_end_age"`
	IncomeAppliesToActualSpend  bool              `yaml:"income_applies_to_actual_spend" json:"income_applies_to_actual_spend"`
	AllowSurplusSavings         bool              `yaml:"allow_surplus_savings" json:"allow_surplus_savings"`
	SurplusAllocation           SurplusAllocation `yaml:"surplus_allocation" json:"surplus_allocation"`

	// Spending
	FloorAnnualReal float64 `yaml:"floor_annual_real" json:"floor_annual_real"`

	// Reserve
	ReserveCashFraction float64 `yaml:"reserve_cash_fraction" json:"reserve_cash_fraction"`
	SafeRealReturn      float64 `yaml:"safe_real_return" json:"safe_real_return"`

	// Guardrails
	DD1                 float64 `yaml:"dd1" json:"dd1"`
	DD2                 float64 `yaml:"dd2" json:"dd2"`
	Cut1                float64 `yaml:"cut1" json:"cut1"`
	Cut2                float64 `yaml:"cut2" json:"cut2"`
	BaselineEForFlex    float64 `yaml:"baseline_e_for_flex" json:"baseline_e_for_flex"`
	BaselineFlexPre     float64 `yaml:"baseline_flex_pre" json:"baseline_flex_pre"`
	BaselineNetPostSS   float64 `yaml:"baseline_net_post_ss" json:"baseline_net_post_ss"`
	BaselineFlexPost    float64 `yaml:"baseline_flex_post" json:"baseline_flex_post"`

	// Reverse mortgage
	RMOpenAge          int     `yaml:"rm_open_age" json:"rm_open_age"`
	HomeValueReal      float64 `yaml:"home_value_real" json:"home_value_real"`
	RMPLFAtOpen        float64 `yaml:"rm_plf_at_open" json:"rm_plf_at_open"`
	RMLimitRealGrowth  float64 `yaml:"rm_limit_real_growth" json:"rm_limit_real_growth"`
	RMBalRealRate      float64 `yaml:"rm_bal_real_rate" json:"rm_bal_real_rate"`
	RMPartialCover     float64 `yaml:"rm_partial_cover" json:"rm_partial_cover"`
	RMRepayRate        float64 `yaml:"rm_repay_rate" json:"rm_repay_rate"`
	PayoffDDThreshold  float64 `yaml:"payoff_dd_threshold" json:"payoff_dd_threshold"`

	// Equity loan
	LoanRealRate            float64 `yaml:"loan_real_rate" json:"loan_real_rate"`
	LoanTermYears           int     `yaml:"loan_term_years" json:"loan_term_years"`
	LoanBucketRealReturn    float64 `yaml:"loan_bucket_real_return" json:"loan_bucket_real_return"`
	LoanBucketUseDD         float64 `yaml:"loan_bucket_use_dd" json:"loan_bucket_use_dd"`
	LoanBucketPartialCover  float64 `yaml:"loan_bucket_partial_cover" json:"loan_bucket_partial_cover"`

	// Sweep grid
	StartPortfolios  []float64 `yaml:"start_portfolios" json:"start_portfolios"`
	ReserveYearsList []float64 `yaml:"reserve_years_list" json:"reserve_years_list"`
	LoanAmounts      []float64 `yaml:"loan_amounts" json:"loan_amounts"`
}

// NYears returns the number of simulated years, ages start_age..99 inclusive.
func (c *ScenarioConfig) NYears() int {
	return 99 - c.StartAge + 1
}

// SimulationRequest is the single operation the engine exposes at its boundary.
type SimulationRequest struct {
	Scenario ScenarioConfig `json:"scenario"`
	RunID    *string        `json:"run_id,omitempty"`
}

// GridPoint identifies one point in the (start_portfolio, reserve_years, loan_amount) sweep.
type GridPoint struct {
	StartPortfolio float64
	ReserveYears   float64
	LoanAmount     float64
}

// GridPointResult is the aggregated outcome for one grid point.
type GridPointResult struct {
	StartPortfolio float64 `json:"start_portfolio"`
	ReserveYears   float64 `json:"reserve_years"`
	LoanAmount     float64 `json:"loan_amount"`

	MaxERealPerYear *int `json:"max_E_real_per_year,omitempty"`
	ERealPerYear    *int `json:"E_real_per_year,omitempty"`

	PSuccessDeathWeighted     float64 `json:"p_success_death_weighted"`
	PSuccessToAge99           float64 `json:"p_success_to_age_99"`
	MedianMaxDDRisky          float64 `json:"median_max_dd_risky"`
	MedianMaxDDTotal          float64 `json:"median_max_dd_total"`
	HomeEquityRemainingMedian float64 `json:"home_equity_remaining_median"`
	PAnyRMDraw                float64 `json:"p_any_rm_draw"`
	RMBalanceEndMedian        float64 `json:"rm_balance_end_median"`
	RiskyEndMedian            float64 `json:"risky_end_median"`
	TotalNetEndMedian         float64 `json:"total_net_end_median"`
	NetWorthEndMedian         float64 `json:"net_worth_end_median"`

	// OptimizerConverged is false when the binary search never reached the
	// target and max_E_real_per_year is a best-effort value. Diagnostic only.
	OptimizerConverged bool `json:"optimizer_converged"`
}

// RunStatus is the terminal state of a simulation run.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// SimulationResponse is the result of a single Engine.Simulate call.
type SimulationResponse struct {
	RunID           *string           `json:"run_id,omitempty"`
	Status          RunStatus         `json:"status"`
	Results         []GridPointResult `json:"results"`
	TotalGridPoints int               `json:"total_grid_points"`
	Error           string            `json:"error,omitempty"`
}
