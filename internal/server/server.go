// Package server exposes the seating engine over HTTP.
//
// The server holds exactly one venue, one seat layout, and one roster in
// memory. A mutex serializes every request, so concurrent edits apply in
// arrival order and the last write wins. There is no persistence: state
// lives for the lifetime of the process.
package server

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/plan"
	"github.com/seatlab/seatplan/pkg/roster"
	"github.com/seatlab/seatplan/pkg/venue"
)

// Server is the HTTP front end over a single engine state.
type Server struct {
	runner *plan.Runner
	logger *log.Logger

	// rng seeds demo occupancy for the randomize endpoint. Swappable
	// so tests stay deterministic.
	rng layout.RandSource

	mu        sync.Mutex
	venue     *venue.Venue
	venueHash string
	seats     []*layout.Seat
	roster    *roster.Roster
	unplaced  []*roster.Guest
}

// New creates a server using the given runner for venue builds.
// If runner is nil, an uncached runner is used.
func New(runner *plan.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = plan.NewRunner(nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Server{
		runner: runner,
		logger: logger,
		rng:    rng.Float64,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Put("/venue", s.handlePutVenue)
	r.Post("/roster", s.handlePostRoster)
	r.Post("/assign", s.handleAssign)
	r.Delete("/assignments", s.handleClearAssignments)

	r.Post("/seats/swap", s.handleSwap)
	r.Post("/seats/randomize", s.handleRandomize)
	r.Post("/seats/reset", s.handleReset)
	r.Post("/seats/{id}/select", s.handleSelect)

	r.Get("/plan", s.handleGetPlan)

	return r
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
