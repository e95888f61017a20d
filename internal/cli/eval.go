package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// evalCommand creates the eval command.
func (c *CLI) evalCommand() *cobra.Command {
	var (
		src     sourceFlags
		asJSON  bool
		refresh bool
		solve   bool
	)

	cmd := &cobra.Command{
		Use:   "eval [board]",
		Short: "Estimate the moves needed to solve a board",
		Long: `Estimate the moves needed to solve a board.

The board is read from a file ("-" for stdin) in the grid format, one row per
line with '.' for empty cells and 'A' for the target car:

  ...CC.
  ....B.
  AA..B.

Use --jam for the jam format or --level to pick a bundled level. With
--solve the estimate is compared against the optimal solution.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := src.options(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts.Solve = solve
			opts.Refresh = refresh
			return c.runEval(cmd.Context(), cmd.OutOrStdout(), opts, asJSON)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&solve, "solve", false, "also compute the optimal number of moves")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached reports")

	return cmd
}

func (c *CLI) runEval(ctx context.Context, w io.Writer, opts pipeline.Options, asJSON bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.Solve && !asJSON {
		spinner = newSpinnerWithContext(ctx, "Solving...")
		spinner.Start()
	}
	report, err := runner.Evaluate(ctx, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Evaluation failed")
		}
		return fmt.Errorf("evaluate: %w", err)
	}
	if spinner != nil {
		spinner.Stop()
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	if !report.Goal {
		printNextStep("See why", "gridlock explain "+explainHint(opts))
	}
	return nil
}

// printReport prints the human-readable summary of a report.
func printReport(r *pipeline.Report) {
	fmt.Println(StyleTitle.Render(r.Name))
	fmt.Println(renderBoard(r.Rows))
	fmt.Println()

	if r.Goal {
		printSuccess("Already solved")
		return
	}
	printKeyValue("estimate", StyleNumber.Render(strconv.Itoa(r.Estimate)))
	if r.Solution != nil {
		printKeyValue("optimal", StyleNumber.Render(strconv.Itoa(r.Solution.Moves)))
	}
	visited := 0
	if r.Tree != nil {
		visited = r.Tree.Visited
	}
	printStats(r.Vehicles, visited, r.CacheInfo.ReportHit)
	if r.Overestimate {
		printWarning("Estimate exceeds the optimal solution")
	}
}

func explainHint(opts pipeline.Options) string {
	if opts.Level != 0 {
		return "--level " + strconv.Itoa(opts.Level)
	}
	return "<board>"
}
