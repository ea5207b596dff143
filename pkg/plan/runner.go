package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seatlab/seatplan/pkg/assign"
	"github.com/seatlab/seatplan/pkg/cache"
	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/roster"
	"github.com/seatlab/seatplan/pkg/venue"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete build → reconcile → assign pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	seats, venueHash, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Seats = seats
	result.VenueHash = venueHash
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.SeatCount = len(seats)
	result.CacheInfo.BuildHit = buildHit

	r.Logger.Info("built layout",
		"seats", len(seats),
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Reconcile
	if len(opts.Previous) > 0 || opts.Seed != 0 {
		reconcileStart := time.Now()
		result.Seats = layout.Reconcile(opts.Previous, result.Seats, opts.randSource())
		result.Stats.ReconcileTime = time.Since(reconcileStart)

		r.Logger.Info("reconciled state",
			"previous", len(opts.Previous),
			"duration", result.Stats.ReconcileTime)
	}

	// Stage 3: Assign
	if opts.RosterPath != "" {
		assignStart := time.Now()
		ros, err := roster.ImportCSV(opts.RosterPath)
		if err != nil {
			return nil, err
		}
		v, err := r.loadVenue(opts)
		if err != nil {
			return nil, err
		}
		res := assign.Assign(ros.Guests, result.Seats, v.SectionOrder())
		result.Roster = ros
		result.Unplaced = res.Unplaced
		result.Stats.GuestCount = len(ros.Guests)
		result.Stats.Placed = res.Placed
		result.Stats.AssignTime = time.Since(assignStart)

		r.Logger.Info("assigned roster",
			"guests", len(ros.Guests),
			"placed", res.Placed,
			"unplaced", len(res.Unplaced),
			"duration", result.Stats.AssignTime)
	}

	return result, nil
}

// BuildWithCacheInfo builds the seat layout with caching and returns the
// venue content hash plus cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) ([]*layout.Seat, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	data, err := opts.venueBytes()
	if err != nil {
		return nil, "", false, err
	}
	venueHash := cache.Hash(data)
	cacheKey := opts.cacheKey(venueHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var seats []*layout.Seat
			if err := json.Unmarshal(cached, &seats); err == nil {
				return seats, venueHash, true, nil // Cache hit
			}
			// Corrupt entry - fall through to rebuild
		}
	}

	v, err := venue.Read(bytes.NewReader(data))
	if err != nil {
		return nil, "", false, err
	}
	seats := layout.Build(v)

	// Cache the result
	if cached, err := json.Marshal(seats); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, cached, cache.TTLPlan)
	}

	return seats, venueHash, false, nil // Cache miss
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) ([]*layout.Seat, error) {
	seats, _, _, err := r.BuildWithCacheInfo(ctx, opts)
	return seats, err
}

// loadVenue parses the venue configuration from options.
func (r *Runner) loadVenue(opts Options) (*venue.Venue, error) {
	data, err := opts.venueBytes()
	if err != nil {
		return nil, err
	}
	return venue.Read(bytes.NewReader(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// venueBytes returns the raw venue TOML, reading VenuePath when
// VenueData is not set.
func (o *Options) venueBytes() ([]byte, error) {
	if len(o.VenueData) > 0 {
		return o.VenueData, nil
	}
	data, err := os.ReadFile(o.VenuePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read venue file %s", o.VenuePath)
	}
	return data, nil
}

// randSource returns the occupancy seeding source for these options,
// nil when no seed is set.
func (o *Options) randSource() layout.RandSource {
	if o.Seed == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(o.Seed))
	return rng.Float64
}
