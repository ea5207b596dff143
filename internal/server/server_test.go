package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/seatlab/seatplan/pkg/plan"
)

const testVenue = `
[room]
width = 20.0
length = 15.0

[[sections]]
name = "Orchestra"
rows = 5
max_continuous_seats = 10
seat_width = 0.5
seat_length = 0.5
seat_left_right_spacing = 0.0
seat_front_back_spacing = 1.0
aisle_width = 1.2
left_wall_distance = 1.0
right_wall_distance = 1.0
`

const testRoster = `number,name,unit,section
1,Ada,Engineering,Orchestra
2,Grace,Engineering,Orchestra
`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(plan.NewRunner(nil, logger), logger)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &decoded)
	}
	return resp, decoded
}

func loadVenue(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp, _ := doRequest(t, http.MethodPut, ts.URL+"/venue", testVenue)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /venue status = %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestPutVenueBuildsLayout(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doRequest(t, http.MethodPut, ts.URL+"/venue", testVenue)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if body["seats"] != float64(150) {
		t.Errorf("seats = %v, want 150", body["seats"])
	}
	if body["venue_hash"] == "" {
		t.Error("venue_hash missing")
	}
}

func TestPutVenueRejectsInvalidConfig(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doRequest(t, http.MethodPut, ts.URL+"/venue", "[room]\nwidth = -5.0\n")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["code"] != "INVALID_CONFIG" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestPlanRequiresVenue(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/plan", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["code"] != "NOT_FOUND" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestRosterAssignFlow(t *testing.T) {
	_, ts := newTestServer(t)
	loadVenue(t, ts)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/roster", testRoster)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /roster status = %d: %v", resp.StatusCode, body)
	}
	if body["guests"] != float64(2) || body["placed"] != float64(2) {
		t.Errorf("roster response = %v", body)
	}

	// Explicit re-assign starts from a clean slate.
	resp, body = doRequest(t, http.MethodPost, ts.URL+"/assign", "")
	if resp.StatusCode != http.StatusOK || body["placed"] != float64(2) {
		t.Fatalf("POST /assign = %d %v", resp.StatusCode, body)
	}

	// Plan document carries the linkage.
	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/plan", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /plan status = %d", resp.StatusCode)
	}
}

func TestRosterRejectedWholesale(t *testing.T) {
	s, ts := newTestServer(t)
	loadVenue(t, ts)

	doRequest(t, http.MethodPost, ts.URL+"/roster", testRoster)

	// A malformed import must not replace the loaded roster.
	resp, body := doRequest(t, http.MethodPost, ts.URL+"/roster", "number,name,unit,section\n,NoNumber,Unit,Orchestra\n")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["code"] != "INVALID_ROSTER" {
		t.Errorf("code = %v", body["code"])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil || len(s.roster.Guests) != 2 {
		t.Error("failed import should leave previous roster in place")
	}
}

func TestSwapAndSelect(t *testing.T) {
	s, ts := newTestServer(t)
	loadVenue(t, ts)
	doRequest(t, http.MethodPost, ts.URL+"/roster", testRoster)

	resp, _ := doRequest(t, http.MethodPost, ts.URL+"/seats/swap", `{"a":"S1-R1-1","b":"S1-R1-3"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swap status = %d", resp.StatusCode)
	}

	s.mu.Lock()
	if s.seats[0].Guest != nil {
		t.Error("seat 1 should be empty after swap")
	}
	if s.seats[2].Guest == nil || s.seats[2].Guest.Number != "1" {
		t.Errorf("seat 3 should hold guest 1: %+v", s.seats[2].Guest)
	}
	s.mu.Unlock()

	resp, _ = doRequest(t, http.MethodPost, ts.URL+"/seats/swap", `{"a":"S1-R1-1","b":"S9-R9-9"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("swap with unknown seat status = %d", resp.StatusCode)
	}

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/seats/S1-R1-2/select", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status = %d", resp.StatusCode)
	}
	if body["selected"] != true {
		t.Errorf("select response = %v", body)
	}

	resp, _ = doRequest(t, http.MethodPost, ts.URL+"/seats/S9-R9-9/select", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("select unknown seat status = %d", resp.StatusCode)
	}
}

func TestRandomizeAndReset(t *testing.T) {
	s, ts := newTestServer(t)
	loadVenue(t, ts)
	s.rng = func() float64 { return 0.9 }

	doRequest(t, http.MethodPost, ts.URL+"/seats/randomize", "")

	s.mu.Lock()
	if !s.seats[0].Occupied {
		t.Error("randomize at 0.9 should occupy seats")
	}
	s.mu.Unlock()

	doRequest(t, http.MethodPost, ts.URL+"/seats/reset", "")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seat := range s.seats {
		if seat.Occupied {
			t.Fatalf("seat %s still occupied after reset", seat.ID)
		}
	}
}

func TestVenueUpdateCarriesState(t *testing.T) {
	s, ts := newTestServer(t)
	loadVenue(t, ts)

	s.mu.Lock()
	s.seats[0].Occupied = true
	s.seats[0].VIP = true
	s.mu.Unlock()

	// Replacing the venue with the same config keeps per-seat state.
	loadVenue(t, ts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seats[0].Occupied || !s.seats[0].VIP {
		t.Errorf("seat state lost across venue update: %+v", s.seats[0])
	}
}

func TestClearAssignments(t *testing.T) {
	s, ts := newTestServer(t)
	loadVenue(t, ts)
	doRequest(t, http.MethodPost, ts.URL+"/roster", testRoster)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/assignments", bytes.NewReader(nil))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seat := range s.seats {
		if seat.Guest != nil || seat.Occupied {
			t.Fatalf("seat %s not cleared", seat.ID)
		}
	}
	for _, g := range s.roster.Guests {
		if g.SeatID != "" {
			t.Errorf("guest %s still linked", g.ID)
		}
	}
}
