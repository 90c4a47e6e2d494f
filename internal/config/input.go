// Package config loads and validates scenario configuration from YAML
// files, the boundary where the engine's float64 kernel meets
// human-authored input. Loading never silently fills in missing numeric
// fields with magic zero values: LoadScenarioFile decodes the file over
// domain.DefaultScenario, so a field absent from the file keeps its
// baseline value.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/drawdown-engine/internal/domain"
)

// LoadScenarioFile reads and validates a scenario from a YAML file.
func LoadScenarioFile(path string) (*domain.ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	cfg := domain.DefaultScenario()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateScenario(&cfg); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &cfg, nil
}

// ValidateScenario checks a scenario configuration for internally
// inconsistent or out-of-range fields, per SPEC_FULL.md section 7. It is
// reused by both the CLI loader and Engine.Simulate's own pre-flight check.
func ValidateScenario(cfg *domain.ScenarioConfig) error {
	if err := validateEnsemble(cfg); err != nil {
		return fmt.Errorf("ensemble controls: %w", err)
	}
	if err := validateOptimizer(cfg); err != nil {
		return fmt.Errorf("optimizer controls: %w", err)
	}
	if err := validateIncome(cfg); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	if err := validateReserve(cfg); err != nil {
		return fmt.Errorf("reserve: %w", err)
	}
	if err := validateGuardrails(cfg); err != nil {
		return fmt.Errorf("guardrails: %w", err)
	}
	if err := validateRM(cfg); err != nil {
		return fmt.Errorf("reverse mortgage: %w", err)
	}
	if err := validateLoan(cfg); err != nil {
		return fmt.Errorf("equity loan: %w", err)
	}
	if err := validateGrid(cfg); err != nil {
		return fmt.Errorf("sweep grid: %w", err)
	}
	return nil
}

func validateEnsemble(cfg *domain.ScenarioConfig) error {
	if cfg.NSims <= 0 {
		return fmt.Errorf("n_sims must be positive, got %d", cfg.NSims)
	}
	if cfg.StartAge < 0 || cfg.StartAge > 99 {
		return fmt.Errorf("start_age must be in [0, 99], got %d", cfg.StartAge)
	}
	if cfg.PartialYearFraction <= 0 || cfg.PartialYearFraction > 1 {
		return fmt.Errorf("partial_year_fraction must be in (0, 1], got %v", cfg.PartialYearFraction)
	}
	if cfg.ReturnVolReal < 0 {
		return fmt.Errorf("return_vol_real cannot be negative, got %v", cfg.ReturnVolReal)
	}
	return nil
}

func validateOptimizer(cfg *domain.ScenarioConfig) error {
	switch cfg.Mode {
	case domain.ModeOptimize, domain.ModeSingle:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", domain.ModeOptimize, domain.ModeSingle, cfg.Mode)
	}

	if cfg.Mode == domain.ModeSingle {
		if cfg.EFixed <= 0 {
			return fmt.Errorf("e_fixed must be positive in single mode, got %v", cfg.EFixed)
		}
		return nil
	}

	if cfg.ELo <= 0 || cfg.EHi <= cfg.ELo {
		return fmt.Errorf("e_lo/e_hi must satisfy 0 < e_lo < e_hi, got e_lo=%d e_hi=%d", cfg.ELo, cfg.EHi)
	}
	if cfg.ESearchIters <= 0 {
		return fmt.Errorf("e_search_iters must be positive, got %d", cfg.ESearchIters)
	}
	if cfg.TargetSuccessDeathWeighted < 0 || cfg.TargetSuccessDeathWeighted > 1 {
		return fmt.Errorf("target_success_death_weighted must be in [0, 1], got %v", cfg.TargetSuccessDeathWeighted)
	}
	switch cfg.OptimizeSuccessMetric {
	case domain.MetricDeathWeighted, domain.MetricAge99, domain.MetricBothMin, domain.MetricBothWeighted:
	default:
		return fmt.Errorf("unrecognized optimize_success_metric %q", cfg.OptimizeSuccessMetric)
	}
	if cfg.OptimizeSuccessMetric == domain.MetricBothWeighted && (cfg.BothWeight < 0 || cfg.BothWeight > 1) {
		return fmt.Errorf("both_weight must be in [0, 1], got %v", cfg.BothWeight)
	}
	return nil
}

func validateIncome(cfg *domain.ScenarioConfig) error {
	if cfg.SSAnnualReal < 0 {
		return fmt.Errorf("ss_annual_real cannot be negative")
	}
	if cfg.EarnedIncomeAnnualReal < 0 {
		return fmt.Errorf("earned_income_annual_real cannot be negative")
	}
	if cfg.EarnedIncomeEndAge < cfg.EarnedIncomeStartAge {
		return fmt.Errorf("earned_income_end_age (%d) cannot be before earned_income_start_age (%d)", cfg.EarnedIncomeEndAge, cfg.EarnedIncomeStartAge)
	}
	switch cfg.SurplusAllocation {
	case domain.SurplusReserveFirst, domain.SurplusRiskyFirst:
	default:
		return fmt.Errorf("unrecognized surplus_allocation %q", cfg.SurplusAllocation)
	}
	return nil
}

func validateReserve(cfg *domain.ScenarioConfig) error {
	if cfg.ReserveCashFraction < 0 || cfg.ReserveCashFraction > 1 {
		return fmt.Errorf("reserve_cash_fraction must be in [0, 1], got %v", cfg.ReserveCashFraction)
	}
	return nil
}

func validateGuardrails(cfg *domain.ScenarioConfig) error {
	if cfg.DD1 < 0 || cfg.DD2 < cfg.DD1 {
		return fmt.Errorf("guardrail drawdown thresholds must satisfy 0 <= dd1 <= dd2, got dd1=%v dd2=%v", cfg.DD1, cfg.DD2)
	}
	if cfg.Cut1 < 0 || cfg.Cut1 > 1 || cfg.Cut2 < 0 || cfg.Cut2 > 1 {
		return fmt.Errorf("guardrail cut fractions must be in [0, 1], got cut1=%v cut2=%v", cfg.Cut1, cfg.Cut2)
	}
	return nil
}

func validateRM(cfg *domain.ScenarioConfig) error {
	if cfg.RMOpenAge < cfg.StartAge {
		return fmt.Errorf("rm_open_age (%d) cannot be before start_age (%d)", cfg.RMOpenAge, cfg.StartAge)
	}
	if cfg.HomeValueReal < 0 {
		return fmt.Errorf("home_value_real cannot be negative")
	}
	if cfg.RMPLFAtOpen < 0 || cfg.RMPLFAtOpen > 1 {
		return fmt.Errorf("rm_plf_at_open must be in [0, 1], got %v", cfg.RMPLFAtOpen)
	}
	return nil
}

func validateLoan(cfg *domain.ScenarioConfig) error {
	if cfg.LoanTermYears < 0 {
		return fmt.Errorf("loan_term_years cannot be negative")
	}
	for _, amt := range cfg.LoanAmounts {
		if amt < 0 {
			return fmt.Errorf("loan_amounts entries cannot be negative, got %v", amt)
		}
		if amt > 0 && cfg.LoanTermYears == 0 {
			return fmt.Errorf("loan_term_years must be positive when a non-zero loan amount is swept")
		}
	}
	return nil
}

func validateGrid(cfg *domain.ScenarioConfig) error {
	if len(cfg.StartPortfolios) == 0 {
		return fmt.Errorf("start_portfolios must have at least one entry")
	}
	if len(cfg.ReserveYearsList) == 0 {
		return fmt.Errorf("reserve_years_list must have at least one entry")
	}
	if len(cfg.LoanAmounts) == 0 {
		return fmt.Errorf("loan_amounts must have at least one entry")
	}
	for _, sp := range cfg.StartPortfolios {
		if sp < 0 {
			return fmt.Errorf("start_portfolios entries cannot be negative, got %v", sp)
		}
	}
	for _, ry := range cfg.ReserveYearsList {
		if ry < 0 {
			return fmt.Errorf("reserve_years_list entries cannot be negative, got %v", ry)
		}
	}
	return nil
}
