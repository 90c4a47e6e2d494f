package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/drawdown-engine/internal/domain"
)

func TestValidateScenarioAcceptsDefaults(t *testing.T) {
	cfg := domain.DefaultScenario()
	assert.NoError(t, ValidateScenario(&cfg))
}

func TestValidateEnsemble(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.NSims = 0
	assert.Error(t, ValidateScenario(&cfg))

	cfg = domain.DefaultScenario()
	cfg.StartAge = 150
	assert.Error(t, ValidateScenario(&cfg))

	cfg = domain.DefaultScenario()
	cfg.PartialYearFraction = 0
	assert.Error(t, ValidateScenario(&cfg))

	cfg = domain.DefaultScenario()
	cfg.ReturnVolReal = -0.1
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateOptimizerSingleModeRequiresEFixed(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.Mode = domain.ModeSingle
	cfg.EFixed = 0
	assert.Error(t, ValidateScenario(&cfg))

	cfg.EFixed = 80000
	assert.NoError(t, ValidateScenario(&cfg))
}

func TestValidateOptimizerModeRequiresOrderedBounds(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.Mode = domain.ModeOptimize
	cfg.ELo = 100000
	cfg.EHi = 50000
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateOptimizerBothWeightedRequiresWeightInRange(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.Mode = domain.ModeOptimize
	cfg.OptimizeSuccessMetric = domain.MetricBothWeighted
	cfg.BothWeight = 1.5
	assert.Error(t, ValidateScenario(&cfg))

	cfg.BothWeight = 0.5
	assert.NoError(t, ValidateScenario(&cfg))
}

func TestValidateIncomeRejectsInvertedEarnedIncomeWindow(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.EarnedIncomeStartAge = 70
	cfg.EarnedIncomeEndAge = 60
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateIncomeRejectsUnknownSurplusAllocation(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.SurplusAllocation = "sideways"
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateGuardrailsOrdering(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.DD1 = 0.30
	cfg.DD2 = 0.10
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateRMRejectsOpenAgeBeforeStart(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.RMOpenAge = cfg.StartAge - 1
	assert.Error(t, ValidateScenario(&cfg))
}

func TestValidateLoanRequiresTermWhenAmountSwept(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.LoanAmounts = []float64{50000}
	cfg.LoanTermYears = 0
	assert.Error(t, ValidateScenario(&cfg))

	cfg.LoanTermYears = 30
	assert.NoError(t, ValidateScenario(&cfg))
}

func TestValidateGridRequiresNonEmptySweeps(t *testing.T) {
	cfg := domain.DefaultScenario()
	cfg.StartPortfolios = nil
	assert.Error(t, ValidateScenario(&cfg))

	cfg = domain.DefaultScenario()
	cfg.ReserveYearsList = []float64{}
	assert.Error(t, ValidateScenario(&cfg))

	cfg = domain.DefaultScenario()
	cfg.LoanAmounts = nil
	assert.Error(t, ValidateScenario(&cfg))
}

func TestLoadScenarioFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	yamlContent := `
start_age: 55
n_sims: 500
mode: single
e_fixed: 65000
floor_annual_real: 45000
start_portfolios: [900000, 1200000]
reserve_years_list: [1, 2]
loan_amounts: [0]
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.Equal(t, 55, cfg.StartAge)
	assert.Equal(t, 500, cfg.NSims)
	assert.Equal(t, domain.ModeSingle, cfg.Mode)
	assert.Equal(t, 45000.0, cfg.FloorAnnualReal)
	// Fields absent from the YAML keep the default baseline's values.
	assert.Equal(t, domain.DefaultScenario().SSAnnualReal, cfg.SSAnnualReal)
}

func TestLoadScenarioFileRejectsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n_sims: -1\n"), 0o644))

	_, err := LoadScenarioFile(path)
	assert.Error(t, err)
}

func TestLoadScenarioFileMissingFile(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
