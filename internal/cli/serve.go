package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seatlab/seatplan/internal/server"
	"github.com/seatlab/seatplan/pkg/cache"
	"github.com/seatlab/seatplan/pkg/plan"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the seating engine as an HTTP API",
		Long: `Run the seating engine as an HTTP API.

The server holds one venue, one layout, and one roster in memory and
serializes all edits. With --redis, computed layouts are cached in a shared
redis instance instead of the local cache directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			store, err := serveCache(cmd.Context(), redisAddr, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}

			runner := plan.NewRunner(store, logger)
			defer runner.Close()

			srv := server.New(runner, logger)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache picks the cache backend for the server. Redis wins over the
// local file cache; entries are namespaced so CLI and server runs sharing
// a backend stay separate.
func serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		return cache.Scoped(store, "seatplan:"), nil
	}
	return newCache(false)
}
