package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/pipeline"
)

type explainOpts struct {
	dot      bool
	svg      bool
	asJSON   bool
	detailed bool
	output   string
}

func (o explainOpts) format() (string, error) {
	n := 0
	format := pipeline.FormatText
	for _, f := range []struct {
		set    bool
		format string
	}{
		{o.dot, pipeline.FormatDOT},
		{o.svg, pipeline.FormatSVG},
		{o.asJSON, pipeline.FormatJSON},
	} {
		if f.set {
			n++
			format = f.format
		}
	}
	if n > 1 {
		return "", fmt.Errorf("--dot, --svg and --json are mutually exclusive")
	}
	return format, nil
}

// explainCommand creates the explain command.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		src  sourceFlags
		opts explainOpts
	)

	cmd := &cobra.Command{
		Use:   "explain [board]",
		Short: "Show the blocking tree behind an estimate",
		Long: `Show the blocking tree behind an estimate.

Each line is a vehicle reached while following what blocks the target car,
with the side it was reached from and the cost charged for it. Vehicles that
were already counted are marked (seen).

Use --dot or --svg to draw the tree as a diagram.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := src.options(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			popts.Explain = true
			format, err := opts.format()
			if err != nil {
				return err
			}
			return c.runExplain(cmd.Context(), cmd.OutOrStdout(), popts, format, opts)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print the tree as Graphviz DOT")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render the tree as SVG")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report including the tree as JSON")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add costs to diagram nodes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (c *CLI) runExplain(ctx context.Context, w io.Writer, popts pipeline.Options, format string, opts explainOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	report, err := runner.Evaluate(ctx, popts)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if report.Goal && format == pipeline.FormatText {
		printSuccess("%s is already solved", report.Name)
		return nil
	}

	prog := newProgress(loggerFromContext(ctx))
	data, err := pipeline.RenderTree(ctx, report, format, opts.detailed)
	if err != nil {
		return err
	}
	if format == pipeline.FormatSVG {
		prog.done("Rendered SVG")
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Estimate %d for %s", report.Estimate, report.Name)
		printFile(opts.output)
		return nil
	}

	_, err = w.Write(data)
	return err
}
