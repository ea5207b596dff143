package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/seatlab/seatplan/pkg/assign"
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/plan"
)

// viewCommand creates the view command for browsing plans in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [plan.json]",
		Short: "Browse a seating plan interactively",
		Long: `Browse a seating plan interactively.

Renders the seat map in the terminal. Move the cursor across seats, select
a seat, swap two guests, seed or reset demo occupancy, and write the edited
plan back to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := plan.ReadPlanFile(args[0])
			if err != nil {
				return err
			}

			model := NewPlanModel(doc, args[0])
			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}

			if m, ok := final.(PlanModel); ok && m.Dirty {
				printInfo("Plan has unsaved changes (press w in the viewer to save)")
			}
			return nil
		},
	}
}

// Seat map styles.
var (
	seatEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
	seatOccupiedStyle = lipgloss.NewStyle().Foreground(colorGray)
	seatVIPStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	seatCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	seatSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	seatSwapStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// PlanModel is the bubbletea model for the seat-map viewer.
type PlanModel struct {
	Doc  *plan.Document
	Path string

	// rows groups the document's seats per section row, preserving the
	// builder's row-major order.
	rows [][]*layout.Seat

	// Cursor position within rows.
	Row, Col int

	// SwapFrom holds the first seat of a pending swap, empty when none.
	SwapFrom string

	// Dirty reports unsaved edits.
	Dirty bool

	status string
	rng    layout.RandSource
}

// NewPlanModel creates a viewer model over a plan document.
func NewPlanModel(doc *plan.Document, path string) PlanModel {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return PlanModel{
		Doc:  doc,
		Path: path,
		rows: seatRows(doc.Seats),
		rng:  rng.Float64,
	}
}

// seatRows splits the flat seat list at section/row boundaries.
func seatRows(seats []*layout.Seat) [][]*layout.Seat {
	var rows [][]*layout.Seat
	for i, s := range seats {
		if i == 0 || s.SectionIndex != seats[i-1].SectionIndex || s.Row != seats[i-1].Row {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], s)
	}
	return rows
}

func (m PlanModel) Init() tea.Cmd {
	return nil
}

// current returns the seat under the cursor, nil for an empty plan.
func (m PlanModel) current() *layout.Seat {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.Row][m.Col]
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h":
		if m.Col > 0 {
			m.Col--
		}
	case "right", "l":
		if len(m.rows) > 0 && m.Col < len(m.rows[m.Row])-1 {
			m.Col++
		}
	case "up", "k":
		if m.Row > 0 {
			m.Row--
			m.clampCol()
		}
	case "down", "j":
		if m.Row < len(m.rows)-1 {
			m.Row++
			m.clampCol()
		}

	case "enter", " ":
		if s := m.current(); s != nil {
			assign.SelectSeat(m.Doc.Seats, s.ID)
			m.Dirty = true
			m.status = "selected " + s.ID
		}

	case "s":
		m = m.handleSwap()

	case "o":
		if s := m.current(); s != nil && s.Guest == nil {
			s.Occupied = !s.Occupied
			m.Dirty = true
			m.status = "toggled " + s.ID
		}

	case "r":
		assign.RandomizeOccupancy(m.Doc.Seats, m.rng)
		m.Dirty = true
		m.status = "randomized occupancy"
	case "R":
		assign.ResetOccupancy(m.Doc.Seats)
		m.Dirty = true
		m.status = "reset occupancy"
	case "c":
		assign.ClearAssignments(m.Doc.Seats, m.Doc.Guests)
		m.Dirty = true
		m.status = "cleared assignments"

	case "w":
		if err := plan.WritePlanFile(m.Doc, m.Path); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.Dirty = false
			m.status = "saved " + m.Path
		}
	}

	return m, nil
}

// clampCol keeps the cursor inside the current row after a vertical move.
func (m *PlanModel) clampCol() {
	if max := len(m.rows[m.Row]) - 1; m.Col > max {
		m.Col = max
	}
}

// handleSwap implements the two-stroke swap gesture: the first press marks
// the seat under the cursor, the second executes the exchange.
func (m PlanModel) handleSwap() PlanModel {
	s := m.current()
	if s == nil {
		return m
	}
	if m.SwapFrom == "" {
		m.SwapFrom = s.ID
		m.status = "swap from " + s.ID + " (press s on the target)"
		return m
	}
	from := m.SwapFrom
	m.SwapFrom = ""
	if assign.SwapSeats(m.Doc.Seats, m.Doc.Guests, from, s.ID) {
		m.Dirty = true
		m.status = fmt.Sprintf("swapped %s and %s", from, s.ID)
	} else {
		m.status = "swap cancelled"
	}
	return m
}

func (m PlanModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Seating Plan"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↓↑→ move  ⏎ select  s swap  o toggle  r randomize  R reset  c clear  w save  q quit"))
	b.WriteString("\n\n")

	prevSection := 0
	for ri, row := range m.rows {
		if row[0].SectionIndex != prevSection {
			if prevSection != 0 {
				b.WriteString("\n")
			}
			prevSection = row[0].SectionIndex
			b.WriteString(StyleDim.Render(row[0].Section))
			b.WriteString("\n")
		}
		for ci, s := range row {
			b.WriteString(m.renderSeat(s, ri == m.Row && ci == m.Col))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s := m.current(); s != nil {
		b.WriteString(m.seatInfo(s))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
	}
	if m.Dirty {
		b.WriteString(StyleWarning.Render("unsaved changes"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSeat picks the glyph and style for one seat cell.
func (m PlanModel) renderSeat(s *layout.Seat, underCursor bool) string {
	glyph := "·"
	style := seatEmptyStyle
	switch {
	case s.Guest != nil:
		glyph = "●"
		style = seatOccupiedStyle
		if s.Guest.Color != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Guest.Color))
		}
	case s.VIP:
		glyph = "★"
		style = seatVIPStyle
	case s.Occupied:
		glyph = "●"
		style = seatOccupiedStyle
	}

	if s.ID == m.SwapFrom {
		style = seatSwapStyle
	} else if s.Selected {
		style = seatSelectedStyle
	}

	cell := " " + glyph + " "
	if underCursor {
		return seatCursorStyle.Render("[" + glyph + "]")
	}
	return style.Render(cell)
}

// seatInfo renders the status line for the seat under the cursor.
func (m PlanModel) seatInfo(s *layout.Seat) string {
	info := StyleValue.Render(s.ID)
	if s.Guest != nil {
		info += StyleDim.Render(" · ") + StyleValue.Render(s.Guest.Name)
		if s.Guest.Unit != "" {
			info += StyleDim.Render(" ("+s.Guest.Unit+")")
		}
		info += StyleDim.Render(" · " + s.Guest.Section)
	} else if s.Occupied {
		info += StyleDim.Render(" · occupied")
	} else {
		info += StyleDim.Render(" · empty")
	}
	return info
}
