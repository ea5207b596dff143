// Package roster defines the guest roster consumed by the assignment
// engine and its strict CSV import.
//
// The engine itself is agnostic to tabular formats; it only requires an
// ordered []*Guest. ReadCSV produces that list from a CSV file with the
// header row:
//
//	number,name,unit,section
//
// Every row must carry a guest number and a target section. A single bad
// row fails the whole import; partial rosters are never accepted.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/seatlab/seatplan/pkg/errors"
)

// Guest is one roster entry. Number is the external identifier supplied by
// the operator; ID is assigned on import. SeatID is set by the assignment
// engine and by seat swaps.
type Guest struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
	Unit   string `json:"unit,omitempty"`

	// AssignedSection is the guest's declared target section name.
	AssignedSection string `json:"assigned_section"`

	// SeatID is the id of the seat the guest currently occupies, or empty.
	SeatID string `json:"seat_id,omitempty"`
}

// Roster is an imported guest list. ImportID identifies one import; every
// re-import replaces the previous roster wholesale and gets a fresh id.
type Roster struct {
	ImportID string   `json:"import_id"`
	Guests   []*Guest `json:"guests"`
}

// GuestID builds the sequential guest identifier assigned on import.
func GuestID(n int) string {
	return fmt.Sprintf("G%d", n)
}

// New wraps a guest list into a Roster with a fresh import id, assigning
// sequential guest ids.
func New(guests []*Guest) *Roster {
	for i, g := range guests {
		g.ID = GuestID(i + 1)
	}
	return &Roster{ImportID: uuid.NewString(), Guests: guests}
}

// csv column indices after the header row.
const (
	colNumber = iota
	colName
	colUnit
	colSection
	numCols
)

// ReadCSV reads a roster from r. The first record must be the header row;
// its values are ignored beyond arity checking. Returns a coded error
// describing the first offending row; no partial roster is ever returned.
func ReadCSV(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // arity checked per row for better messages

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "parse roster")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster is empty")
	}

	guests := make([]*Guest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2 // 1-based, after header
		if len(rec) < numCols {
			return nil, errors.New(errors.ErrCodeInvalidRoster, "row %d has %d columns, want %d", line, len(rec), numCols)
		}
		g := &Guest{
			Number:          strings.TrimSpace(rec[colNumber]),
			Name:            strings.TrimSpace(rec[colName]),
			Unit:            strings.TrimSpace(rec[colUnit]),
			AssignedSection: strings.TrimSpace(rec[colSection]),
		}
		if g.Number == "" {
			return nil, errors.New(errors.ErrCodeInvalidRoster, "row %d is missing a guest number", line)
		}
		if g.AssignedSection == "" {
			return nil, errors.New(errors.ErrCodeInvalidRoster, "row %d is missing a target section", line)
		}
		guests = append(guests, g)
	}
	if len(guests) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster has no guest rows")
	}
	return New(guests), nil
}

// ImportCSV reads a roster file at path using ReadCSV.
func ImportCSV(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// Find returns the guest with the given id, or nil if absent.
func Find(guests []*Guest, id string) *Guest {
	for _, g := range guests {
		if g.ID == id {
			return g
		}
	}
	return nil
}
