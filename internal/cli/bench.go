package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		opts   pipeline.BenchOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare estimates against optimal solutions on the bundled levels",
		Long: `Compare estimates against optimal solutions on the bundled levels.

Every level is evaluated and, unless --solve=false, solved optimally. The
table shows the estimate, the optimal move count and their ratio. An
estimate above the optimum is flagged.

Worker count and solving default to the [bench] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.Workers = c.Config.Bench.Workers
			}
			if !cmd.Flags().Changed("solve") {
				opts.Solve = c.Config.Bench.Solve
			}
			return c.runBench(cmd.Context(), cmd.OutOrStdout(), opts, asJSON)
		},
	}

	cmd.Flags().IntSliceVar(&opts.Levels, "levels", nil, "levels to run (default all)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", pipeline.DefaultBenchWorkers, "concurrent evaluations")
	cmd.Flags().BoolVar(&opts.Solve, "solve", true, "solve each level optimally for comparison")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached reports")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) runBench(ctx context.Context, w io.Writer, opts pipeline.BenchOptions, asJSON bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if !asJSON {
		spinner = newSpinnerWithContext(ctx, "Benchmarking levels...")
		spinner.Start()
		opts.Progress = func(done, total int) {
			spinner.SetMessage(fmt.Sprintf("Benchmarking levels... %d/%d", done, total))
		}
	}

	result, err := runner.Bench(ctx, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Benchmark failed")
		}
		return fmt.Errorf("bench: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Benchmarked %d levels in %s", len(result.Entries), result.Elapsed.Round(time.Millisecond)))
	fmt.Fprintln(w, benchTable(result))
	if opts.Solve {
		printKeyValue("mean ratio", StyleNumber.Render(strconv.FormatFloat(result.MeanRatio, 'f', 3, 64)))
	}
	if result.Overestimates > 0 {
		printWarning("%d levels overestimated", result.Overestimates)
	} else if opts.Solve {
		printSuccess("No level overestimated")
	}
	return nil
}

// benchTable renders bench entries as a bordered table.
func benchTable(r *pipeline.BenchResult) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(r.Entries))
	for i, e := range r.Entries {
		optimal, ratio := "-", "-"
		if e.Optimal >= 0 {
			optimal = strconv.Itoa(e.Optimal)
		}
		if e.Optimal > 0 {
			ratio = strconv.FormatFloat(e.Ratio(), 'f', 2, 64)
		}
		status := iconFresh
		if e.Cached {
			status = iconCached
		}
		rows[i] = []string{
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Vehicles),
			strconv.Itoa(e.Estimate),
			optimal,
			ratio,
			strconv.Itoa(e.Visited),
			status,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Vehicles", "Estimate", "Optimal", "Ratio", "Visited", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(r.Entries) {
				return lipgloss.NewStyle()
			}
			e := r.Entries[row]
			switch {
			case e.Overestimate:
				return lipgloss.NewStyle().Foreground(colorYellow)
			case col == 6 && e.Cached:
				return styleCached
			case col == 6:
				return styleComputed
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
