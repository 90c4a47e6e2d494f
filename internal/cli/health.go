package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown-engine/internal/engine"
)

// NewHealthCommand creates the health command.
func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report whether the engine is ready to accept work",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := engine.New()
			if err := e.Health(); err != nil {
				return WrapExitError(ExitFailure, "engine unhealthy", err)
			}
			fmt.Println("ok")
			return nil
		},
	}
	return cmd
}
