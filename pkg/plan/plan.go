// Package plan provides the seating pipeline shared by the CLI and the
// HTTP server.
//
// The pipeline consists of three stages:
//
//  1. Build: pack the venue's sections into positioned seats
//  2. Reconcile: carry per-seat state over from a previous plan
//  3. Assign: place an imported roster onto the seats
//
// Each stage can be run independently or as part of the complete
// pipeline. Create a Runner and execute:
//
//	runner := plan.NewRunner(cache, logger)
//	opts := plan.Options{VenuePath: "venue.toml", RosterPath: "roster.csv"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan.WritePlanFile("plan.json", result.Document())
package plan

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seatlab/seatplan/pkg/cache"
	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/roster"
)

// Options contains all configuration for the seating pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// VenuePath is the venue TOML file to build from. Required unless
	// VenueData carries the raw TOML bytes instead.
	VenuePath string `json:"venue_path,omitempty"`

	// VenueData is the raw venue TOML. Takes precedence over VenuePath.
	VenueData []byte `json:"venue_data,omitempty"`

	// RosterPath is an optional guest roster CSV to assign after building.
	RosterPath string `json:"roster_path,omitempty"`

	// Seed seeds demo occupancy on seats new to this plan. Zero leaves
	// new seats empty.
	Seed int64 `json:"seed,omitempty"`

	// Previous carries seats from an earlier plan whose state should
	// survive the rebuild.
	Previous []*layout.Seat `json:"-"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is the logger for pipeline stages (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.VenuePath == "" && len(o.VenueData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "venue path or data is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seats is the built (and possibly reconciled, assigned) layout.
	Seats []*layout.Seat

	// Roster is the imported roster, nil when no roster was given.
	Roster *roster.Roster

	// Unplaced lists roster guests that did not fit anywhere.
	Unplaced []*roster.Guest

	// VenueHash is the content hash of the venue configuration.
	VenueHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeatCount     int
	GuestCount    int
	Placed        int
	BuildTime     time.Duration
	ReconcileTime time.Duration
	AssignTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit bool // Whether the seat layout came from cache
}

// Document converts the result into the serializable plan document.
func (r *Result) Document() *Document {
	doc := &Document{
		VenueHash:   r.VenueHash,
		Seats:       r.Seats,
		Unplaced:    r.Unplaced,
		GeneratedAt: time.Now().UTC(),
	}
	if r.Roster != nil {
		doc.ImportID = r.Roster.ImportID
		doc.Guests = r.Roster.Guests
	}
	return doc
}

// Document is the JSON plan handed to external renderers and re-read by
// the view command.
type Document struct {
	VenueHash   string          `json:"venue_hash"`
	ImportID    string          `json:"import_id,omitempty"`
	Seats       []*layout.Seat  `json:"seats"`
	Guests      []*roster.Guest `json:"guests,omitempty"`
	Unplaced    []*roster.Guest `json:"unplaced,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// cacheKey builds the layout cache key for these options.
func (o *Options) cacheKey(venueHash string) string {
	return cache.PlanKey(venueHash, cache.PlanKeyOpts{Seed: o.Seed})
}
