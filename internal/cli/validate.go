package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown-engine/internal/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running the simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadScenarioFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "scenario is invalid", err)
			}
			gridPoints := len(cfg.StartPortfolios) * len(cfg.ReserveYearsList) * len(cfg.LoanAmounts)
			fmt.Printf("scenario is valid: %d grid point(s), n_sims=%d, mode=%s\n", gridPoints, cfg.NSims, cfg.Mode)
			return nil
		},
	}
	return cmd
}
