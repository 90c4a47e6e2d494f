package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown-engine/internal/config"
	"github.com/rpgo/drawdown-engine/internal/domain"
	"github.com/rpgo/drawdown-engine/internal/engine"
	"github.com/rpgo/drawdown-engine/pkg/money"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	ScenarioPath string
	RunID        string
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run the grid sweep described by a scenario file",
		Long: `Loads a scenario configuration, generates the return ensemble, and
runs every (start_portfolio, reserve_years, loan_amount) grid point.

Example:
  drawdown simulate scenario.yaml
  drawdown simulate --run-id my-run scenario.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ScenarioPath = args[0]
			return runSimulate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "correlation id for this run (generated if omitted)")

	return cmd
}

func runSimulate(parentCtx context.Context, opts *SimulateOptions) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := newSlogLogger(slog.New(handler))

	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadScenarioFile(opts.ScenarioPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	req := domain.SimulationRequest{Scenario: *cfg}
	if opts.RunID != "" {
		req.RunID = &opts.RunID
	}

	e := engine.New()
	e.SetLogger(logger)

	progress := func(done, n int) {
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "progress: %d/%d grid points\n", done, n)
		}
	}

	resp := e.Simulate(ctx, req, progress)

	if err := printSimulationResponse(opts.Format, resp); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	switch resp.Status {
	case domain.StatusCompleted:
		return nil
	case domain.StatusCancelled:
		return NewExitError(ExitFailure, "simulation cancelled: "+resp.Error)
	default:
		return NewExitError(ExitFailure, "simulation failed: "+resp.Error)
	}
}

func printSimulationResponse(format string, resp domain.SimulationResponse) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	runID := ""
	if resp.RunID != nil {
		runID = *resp.RunID
	}
	fmt.Printf("run %s: %s (%d grid points)\n", runID, resp.Status, resp.TotalGridPoints)
	for _, r := range resp.Results {
		spend := "n/a"
		if r.MaxERealPerYear != nil {
			spend = money.FromFloat64(float64(*r.MaxERealPerYear)).Format() + "/yr"
		} else if r.ERealPerYear != nil {
			spend = money.FromFloat64(float64(*r.ERealPerYear)).Format() + "/yr"
		}
		fmt.Printf("  portfolio=%s reserve_years=%.1f loan=%s -> spend=%s p_dw=%.3f p_99=%.3f converged=%v\n",
			money.FromFloat64(r.StartPortfolio).Format(),
			r.ReserveYears,
			money.FromFloat64(r.LoanAmount).Format(),
			spend,
			r.PSuccessDeathWeighted,
			r.PSuccessToAge99,
			r.OptimizerConverged,
		)
	}
	if resp.Error != "" {
		fmt.Fprintf(os.Stderr, "error: %s\n", resp.Error)
	}
	return nil
}
