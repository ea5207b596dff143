package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seatlab/seatplan/pkg/plan"
)

// layoutCommand creates the layout command for building seat layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := plan.Options{}

	cmd := &cobra.Command{
		Use:   "layout [venue.toml]",
		Short: "Build the seat layout for a venue configuration",
		Long: `Build the seat layout for a venue configuration.

The layout command reads a venue TOML file (room, optional stage, seating
sections) and packs every section's rows into positioned seats. The output
is a plan.json file that can be browsed with 'view', assigned with 'assign',
or consumed by an external renderer.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.VenuePath = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.plan.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and rebuild")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed demo occupancy on new seats")

	return cmd
}

// runLayout builds the layout and writes the plan document.
func (c *CLI) runLayout(ctx context.Context, opts plan.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Building layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.VenuePath, filepath.Ext(opts.VenuePath))
		outputPath = base + ".plan.json"
	}

	if err := plan.WritePlanFile(result.Document(), outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.SeatCount, 0, result.CacheInfo.BuildHit)
	printNewline()
	printNextStep("Browse", "seatplan view "+outputPath)

	return nil
}
