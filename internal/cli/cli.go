// Package cli implements the seatplan command-line interface.
//
// This package provides commands for building seat layouts from venue
// configurations, assigning guest rosters, browsing plans interactively,
// and serving the engine over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Build the seat layout for a venue configuration
//   - assign: Import a roster and assign guests to seats
//   - view: Browse a plan interactively in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the plan cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/seatlab/seatplan/pkg/buildinfo"
	"github.com/seatlab/seatplan/pkg/cache"
	"github.com/seatlab/seatplan/pkg/plan"
)

// appName is the application name used for directories and display.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "seatplan",
		Short:        "Seatplan builds venue seat layouts and assigns guest rosters",
		Long:         `Seatplan turns a declarative venue configuration (room, stage, sections) into a positioned seat layout, assigns imported guest rosters onto it, and keeps per-seat state stable across configuration edits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.assignCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a plan runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*plan.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return plan.NewRunner(store, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/seatplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
