package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/seatlab/seatplan/pkg/plan"
	"github.com/seatlab/seatplan/pkg/roster"
)

// assignCommand creates the assign command for placing rosters onto layouts.
func (c *CLI) assignCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := plan.Options{}

	cmd := &cobra.Command{
		Use:   "assign [venue.toml] [roster.csv]",
		Short: "Assign a guest roster onto a venue layout",
		Long: `Assign a guest roster onto a venue layout.

The assign command builds the venue's seat layout, imports the roster CSV
(columns: number, name, unit, section), and places every guest, section by
section in roster order. Guests whose target section runs out of matches
spill into the next section with free seats; guests that fit nowhere are
reported in an unplaced table.

The output plan.json carries the full seat/guest linkage.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.VenuePath = args[0]
			opts.RosterPath = args[1]
			return c.runAssign(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <venue>.plan.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and rebuild")

	return cmd
}

// runAssign builds, assigns, and writes the plan document.
func (c *CLI) runAssign(ctx context.Context, opts plan.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Assigning roster...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Assignment failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Assigned %d of %d guests", result.Stats.Placed, result.Stats.GuestCount))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.VenuePath, filepath.Ext(opts.VenuePath))
		outputPath = base + ".plan.json"
	}

	if err := plan.WritePlanFile(result.Document(), outputPath); err != nil {
		return err
	}

	printSuccess("Assignment complete")
	printFile(outputPath)
	printStats(result.Stats.SeatCount, result.Stats.GuestCount, result.CacheInfo.BuildHit)

	if len(result.Unplaced) > 0 {
		printNewline()
		printWarning("%d guests could not be placed", len(result.Unplaced))
		fmt.Println(unplacedTable(result.Unplaced))
	}

	printNewline()
	printNextStep("Browse", "seatplan view "+outputPath)

	return nil
}

// unplacedTable renders the guests that did not fit anywhere.
func unplacedTable(guests []*roster.Guest) string {
	rows := make([][]string, len(guests))
	for i, g := range guests {
		rows[i] = []string{g.Number, g.Name, g.Unit, g.AssignedSection}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Number", "Name", "Unit", "Section").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
