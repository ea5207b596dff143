package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seatlab/seatplan/pkg/assign"
	"github.com/seatlab/seatplan/pkg/buildinfo"
	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/plan"
	"github.com/seatlab/seatplan/pkg/roster"
	"github.com/seatlab/seatplan/pkg/venue"
)

// maxBodyBytes bounds venue and roster uploads.
const maxBodyBytes = 4 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handlePutVenue replaces the venue configuration (raw TOML body) and
// rebuilds the layout. State on surviving seat ids is carried over;
// seats whose ids vanish lose their state. A loaded roster is
// re-assigned onto the new layout.
func (s *Server) handlePutVenue(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	v, err := venue.Read(bytes.NewReader(data))
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seats, hash, cached, err := s.runner.BuildWithCacheInfo(r.Context(), plan.Options{VenueData: data})
	if err != nil {
		writeError(w, err)
		return
	}
	seats = layout.Reconcile(s.seats, seats, nil)

	s.venue = v
	s.venueHash = hash
	s.seats = seats

	var placed int
	if s.roster != nil {
		res := assign.Assign(s.roster.Guests, s.seats, v.SectionOrder())
		placed = res.Placed
		s.unplaced = res.Unplaced
	}

	s.logger.Info("venue replaced", "seats", len(seats), "cached", cached)
	writeJSON(w, http.StatusOK, map[string]any{
		"venue_hash": hash,
		"seats":      len(seats),
		"placed":     placed,
		"unplaced":   len(s.unplaced),
	})
}

// handlePostRoster imports a roster (raw CSV body) and assigns it when a
// venue is loaded. A malformed roster leaves the current one in place.
func (s *Server) handlePostRoster(w http.ResponseWriter, r *http.Request) {
	body := io.LimitReader(r.Body, maxBodyBytes)
	ros, err := roster.ReadCSV(body)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = ros
	s.unplaced = nil

	var placed int
	if s.venue != nil {
		res := assign.Assign(ros.Guests, s.seats, s.venue.SectionOrder())
		placed = res.Placed
		s.unplaced = res.Unplaced
	}

	s.logger.Info("roster imported", "import_id", ros.ImportID, "guests", len(ros.Guests))
	writeJSON(w, http.StatusOK, map[string]any{
		"import_id": ros.ImportID,
		"guests":    len(ros.Guests),
		"placed":    placed,
		"unplaced":  len(s.unplaced),
	})
}

// handleAssign re-runs assignment of the loaded roster from scratch.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}
	if s.roster == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidRoster, "no roster loaded"))
		return
	}

	res := assign.Assign(s.roster.Guests, s.seats, s.venue.SectionOrder())
	s.unplaced = res.Unplaced

	writeJSON(w, http.StatusOK, map[string]any{
		"placed":   res.Placed,
		"unplaced": len(res.Unplaced),
	})
}

func (s *Server) handleClearAssignments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	var guests []*roster.Guest
	if s.roster != nil {
		guests = s.roster.Guests
	}
	assign.ClearAssignments(s.seats, guests)
	s.unplaced = nil

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type swapRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode swap request"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	var guests []*roster.Guest
	if s.roster != nil {
		guests = s.roster.Guests
	}
	if !assign.SwapSeats(s.seats, guests, req.A, req.B) {
		writeError(w, errors.New(errors.ErrCodeSeatNotFound, "cannot swap %q and %q", req.A, req.B))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "swapped"})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	seat := assign.SelectSeat(s.seats, id)
	if seat == nil {
		writeError(w, errors.New(errors.ErrCodeSeatNotFound, "unknown seat %q", id))
		return
	}

	writeJSON(w, http.StatusOK, seat)
}

func (s *Server) handleRandomize(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	assign.RandomizeOccupancy(s.seats, s.rng)
	writeJSON(w, http.StatusOK, map[string]string{"status": "randomized"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	assign.ResetOccupancy(s.seats)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleGetPlan returns the current state as a plan document.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVenue(); err != nil {
		writeError(w, err)
		return
	}

	res := plan.Result{
		Seats:     s.seats,
		Roster:    s.roster,
		Unplaced:  s.unplaced,
		VenueHash: s.venueHash,
	}
	writeJSON(w, http.StatusOK, res.Document())
}

// requireVenue guards endpoints that need a loaded layout.
// Callers must hold s.mu.
func (s *Server) requireVenue() error {
	if s.venue == nil {
		return errors.New(errors.ErrCodeNotFound, "no venue loaded")
	}
	return nil
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeError maps coded errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeSeatNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidSection,
		errors.ErrCodeInvalidStage, errors.ErrCodeInvalidRoster, errors.ErrCodeInvalidFormat:
		status = http.StatusUnprocessableEntity
	case "":
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}
