package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/heuristic"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the bundled levels",
		Long: `List the bundled levels with their vehicle count and estimate.

With --interactive, browse the levels with their boards and press enter to
print the full report for the selected one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadLevelRows()
			if err != nil {
				return err
			}
			if !interactive {
				fmt.Fprintln(cmd.OutOrStdout(), levelsTable(rows))
				return nil
			}
			return c.runLevelBrowser(cmd.Context(), cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse levels interactively")

	return cmd
}

// loadLevelRows evaluates every bundled level. Evaluation is fast enough that
// the list bypasses the runner and its cache.
func loadLevelRows() ([]levelRow, error) {
	levels, err := puzzle.Levels()
	if err != nil {
		return nil, err
	}
	out := make([]levelRow, len(levels))
	for i, p := range levels {
		e, err := heuristic.New(p.Layout)
		if err != nil {
			return nil, err
		}
		estimate, err := e.Evaluate(p.Initial)
		if err != nil {
			return nil, err
		}
		out[i] = levelRow{
			Level:    i + 1,
			Name:     p.Name,
			Vehicles: p.Layout.VehicleCount(),
			Estimate: estimate,
			Rows:     p.Rows(),
		}
	}
	return out, nil
}

func levelsTable(levels []levelRow) string {
	rows := make([][]string, len(levels))
	for i, l := range levels {
		rows[i] = []string{strconv.Itoa(l.Level), l.Name, strconv.Itoa(l.Vehicles), strconv.Itoa(l.Estimate)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Name", "Vehicles", "Estimate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func (c *CLI) runLevelBrowser(ctx context.Context, w io.Writer, rows []levelRow) error {
	p := tea.NewProgram(NewLevelBrowserModel(rows), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("level browser: %w", err)
	}
	m, ok := final.(LevelBrowserModel)
	if !ok || m.Chosen == 0 {
		return nil
	}
	return c.runEval(ctx, w, pipeline.Options{Level: m.Chosen}, false)
}
