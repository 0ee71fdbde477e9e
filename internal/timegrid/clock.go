package timegrid

import (
	"fmt"
	"math"
)

// Grid bounds shared by the conflict checker and the layout.
const (
	GridStartHour = 7
	GridEndHour   = 20
	SlotMinutes   = 30

	// SlotsPerHour is the number of rows a whole hour occupies.
	SlotsPerHour = 60 / SlotMinutes

	// RowCount covers 7:00 through the 8:00-8:30 row.
	RowCount = (GridEndHour-GridStartHour)*SlotsPerHour + 1

	// LatestEnd is 8:30 PM expressed as a decimal hour.
	LatestEnd = float64(GridEndHour) + float64(SlotMinutes)/60

	// LunchStart is reserved; no meeting may start exactly at noon.
	LunchStart = 12.0

	// HalfHourMinutes is the only non-zero value accepted for Meeting.HalfHour.
	HalfHourMinutes = 30
)

const alignEpsilon = 1e-9

// slotOffset converts a decimal hour into fractional slots past the grid start.
func slotOffset(hour float64) float64 {
	return (hour - GridStartHour) * SlotsPerHour
}

// RowIndex maps a decimal start hour to its row. The result is only meaningful
// for aligned starts; see IsAligned.
func RowIndex(start float64) int {
	return int(math.Round(slotOffset(start)))
}

// StartForRow is the inverse of RowIndex.
func StartForRow(row int) float64 {
	return GridStartHour + float64(row)/SlotsPerHour
}

// IsAligned reports whether start sits on a 30-minute boundary at or after 7:00.
func IsAligned(start float64) bool {
	return slotOffset(start) > -alignEpsilon && onSlotBoundary(start)
}

func onSlotBoundary(hour float64) bool {
	off := slotOffset(hour)
	return math.Abs(off-math.Round(off)) < alignEpsilon
}

// InGrid reports whether row is a valid row index.
func InGrid(row int) bool {
	return row >= 0 && row < RowCount
}

// RowSpan is the number of half-hour rows a meeting occupies.
func RowSpan(m Meeting) int {
	span := m.Duration * SlotsPerHour
	if m.HalfHour == HalfHourMinutes {
		span++
	}
	return span
}

// End returns the decimal hour at which m finishes. The half-hour tail is only
// counted when withHalfHour is set.
func End(m Meeting, withHalfHour bool) float64 {
	end := m.Start + float64(m.Duration)
	if withHalfHour && m.HalfHour == HalfHourMinutes {
		end += float64(HalfHourMinutes) / 60
	}
	return end
}

// Label is the printable time range of a single row.
type Label struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (l Label) String() string {
	return l.Start + " - " + l.End
}

// RowLabel derives the time range of row r, in 12-hour format without a suffix.
func RowLabel(r int) Label {
	startMin := GridStartHour*60 + r*SlotMinutes
	return Label{
		Start: formatClock(startMin),
		End:   formatClock(startMin + SlotMinutes),
	}
}

// FormatHour renders a decimal hour the same way row labels are rendered.
func FormatHour(hour float64) string {
	return formatClock(int(math.Round(hour * 60)))
}

func formatClock(minutes int) string {
	h := (minutes / 60) % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, minutes%60)
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
