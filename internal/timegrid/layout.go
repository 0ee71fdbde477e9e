package timegrid

import (
	"fmt"
	"sort"
)

// CellKind tells a renderer what to do with a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellStart
	CellContinuation
)

var cellKindNames = [...]string{"empty", "start", "continuation"}

func (k CellKind) String() string {
	if int(k) < len(cellKindNames) {
		return cellKindNames[k]
	}
	return fmt.Sprintf("CellKind(%d)", uint8(k))
}

func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKind) UnmarshalText(b []byte) error {
	for i, name := range cellKindNames {
		if name == string(b) {
			*k = CellKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", b)
}

// Entry is the display payload of a start cell.
type Entry struct {
	MeetingID  string `json:"meetingId"`
	CourseCode string `json:"courseCode"`
	Section    string `json:"section"`
	Professor  string `json:"professor"`
	Classroom  string `json:"classroom"`
}

// Cell is one (row, day) position of the grid. Start cells carry the span and
// payload. A continuation cell points back to its start cell, Offset rows up,
// and names the covering meeting in Of.
type Cell struct {
	Kind   CellKind `json:"kind"`
	Span   int      `json:"span,omitempty"`
	Entry  *Entry   `json:"entry,omitempty"`
	Offset int      `json:"offset,omitempty"`
	Of     string   `json:"of,omitempty"`
}

// Row is one half-hour band of the grid.
type Row struct {
	Index int            `json:"index"`
	Label Label          `json:"label"`
	Cells [DayCount]Cell `json:"cells"`
}

// SkipReason explains why a meeting is missing from the grid.
type SkipReason string

const (
	SkipInvalidDay    SkipReason = "invalid_day"
	SkipMisaligned    SkipReason = "misaligned"
	SkipOutOfBounds   SkipReason = "out_of_bounds"
	SkipDuplicateSlot SkipReason = "duplicate_slot"
	SkipOverlapped    SkipReason = "overlapped"
)

// Skip records a meeting the layout refused to place.
type Skip struct {
	MeetingID string     `json:"meetingId"`
	Day       Day        `json:"day"`
	Start     float64    `json:"start"`
	Reason    SkipReason `json:"reason"`

	pos int
}

// Grid is the row-major result of Layout.
type Grid struct {
	Days    [DayCount]Day `json:"days"`
	Rows    [RowCount]Row `json:"rows"`
	Skipped []Skip        `json:"skipped,omitempty"`
}

type slotKey struct {
	day int
	row int
}

type placed struct {
	m   Meeting
	pos int
}

// Layout lays meetings for a single display target onto the half-hour grid.
// When two meetings claim the same day and row the first one in input order
// wins; the rest end up in Grid.Skipped along with anything that cannot be
// placed at all. A span running past the last row is reported unclipped in
// Cell.Span, but only in-grid cells are marked as covered.
func Layout(meetings []Meeting, names NameResolver) Grid {
	if names == nil {
		names = Names{}
	}

	var g Grid
	g.Days = Days
	for r := range g.Rows {
		g.Rows[r].Index = r
		g.Rows[r].Label = RowLabel(r)
	}

	starts := make(map[slotKey]placed, len(meetings))
	skip := func(m Meeting, pos int, reason SkipReason) {
		g.Skipped = append(g.Skipped, Skip{
			MeetingID: m.ID,
			Day:       m.Day,
			Start:     m.Start,
			Reason:    reason,
			pos:       pos,
		})
	}

	for pos, m := range meetings {
		col := m.Day.Index()
		switch {
		case col < 0:
			skip(m, pos, SkipInvalidDay)
			continue
		case !onSlotBoundary(m.Start):
			skip(m, pos, SkipMisaligned)
			continue
		}
		row := RowIndex(m.Start)
		if !InGrid(row) {
			skip(m, pos, SkipOutOfBounds)
			continue
		}
		key := slotKey{day: col, row: row}
		if _, taken := starts[key]; taken {
			skip(m, pos, SkipDuplicateSlot)
			continue
		}
		starts[key] = placed{m: m, pos: pos}
	}

	// start row + 1 of the meeting covering each cell, 0 when free
	var origin [DayCount][RowCount]int

	for r := 0; r < RowCount; r++ {
		for d := 0; d < DayCount; d++ {
			p, hasStart := starts[slotKey{day: d, row: r}]

			if o := origin[d][r]; o > 0 {
				from := o - 1
				g.Rows[r].Cells[d] = Cell{
					Kind:   CellContinuation,
					Offset: r - from,
					Of:     starts[slotKey{day: d, row: from}].m.ID,
				}
				if hasStart {
					skip(p.m, p.pos, SkipOverlapped)
				}
				continue
			}
			if !hasStart {
				continue
			}

			m := p.m
			span := RowSpan(m)
			for k := r + 1; k < r+span && k < RowCount; k++ {
				origin[d][k] = r + 1
			}
			g.Rows[r].Cells[d] = Cell{
				Kind: CellStart,
				Span: span,
				Entry: &Entry{
					MeetingID:  m.ID,
					CourseCode: m.CourseCode,
					Section:    m.Section,
					Professor:  names.ProfessorName(m.Professor),
					Classroom:  names.ClassroomName(m.ClassroomID),
				},
			}
		}
	}

	sort.SliceStable(g.Skipped, func(i, j int) bool {
		return g.Skipped[i].pos < g.Skipped[j].pos
	})
	return g
}

// Cell returns the cell at row r for day d.
func (g *Grid) Cell(r int, d Day) (Cell, bool) {
	col := d.Index()
	if col < 0 || !InGrid(r) {
		return Cell{}, false
	}
	return g.Rows[r].Cells[col], true
}

// CoveredRows lists every row on day d that belongs to meetingID, start cell
// included, in ascending order. Continuation cells are matched through the
// start cell they point back to.
func (g *Grid) CoveredRows(d Day, meetingID string) []int {
	col := d.Index()
	if col < 0 {
		return nil
	}
	var rows []int
	for r := range g.Rows {
		c := g.Rows[r].Cells[col]
		from := r
		switch {
		case c.Kind == CellStart:
		case c.Kind == CellContinuation && c.Offset > 0 && c.Offset <= r:
			from = r - c.Offset
		default:
			continue
		}
		if s := g.Rows[from].Cells[col]; s.Kind == CellStart && s.Entry != nil && s.Entry.MeetingID == meetingID {
			rows = append(rows, r)
		}
	}
	return rows
}

//This project is the facility scheduling backend API for the OpenSourceDUTH team.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
