// Command drawdown runs the retirement drawdown Monte Carlo engine from the
// command line: load a scenario, sweep the grid, print results.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpgo/drawdown-engine/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
