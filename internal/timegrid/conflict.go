package timegrid

// Dimension names the shared resource behind a conflict.
type Dimension string

const (
	DimensionProfessor Dimension = "professor"
	DimensionClassroom Dimension = "classroom"
	DimensionSection   Dimension = "section"
)

// ConflictResult is either empty (no conflict) or points at one existing meeting.
type ConflictResult struct {
	Meeting    *Meeting    `json:"meeting,omitempty"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
}

// Found reports whether a conflicting meeting was identified.
func (r ConflictResult) Found() bool {
	return r.Meeting != nil
}

// Checker decides whether a candidate meeting may be placed on a day.
type Checker struct {
	// IncludeHalfHour counts the optional 30-minute tail when computing end
	// times. When false only whole-hour durations are compared.
	IncludeHalfHour bool
}

// DefaultChecker counts the half-hour tail so conflicts agree with grid spans.
var DefaultChecker = Checker{IncludeHalfHour: true}

// FindConflict runs DefaultChecker.
func FindConflict(candidate Meeting, existingOnSameDay []Meeting) ConflictResult {
	return DefaultChecker.FindConflict(candidate, existingOnSameDay)
}

// FindConflict returns the first meeting in existingOnSameDay that overlaps
// candidate in time and shares a professor, classroom or section with it.
// The caller is trusted to pass meetings of the candidate's day only.
func (c Checker) FindConflict(candidate Meeting, existingOnSameDay []Meeting) ConflictResult {
	for i := range existingOnSameDay {
		e := existingOnSameDay[i]
		if candidate.ID != "" && e.ID == candidate.ID {
			continue
		}
		if !c.Overlaps(candidate, e) {
			continue
		}
		if dims := sharedResources(candidate, e); len(dims) > 0 {
			return ConflictResult{Meeting: &e, Dimensions: dims}
		}
	}
	return ConflictResult{}
}

// Overlaps applies the half-open interval test; touching endpoints do not overlap.
func (c Checker) Overlaps(a, b Meeting) bool {
	aEnd := End(a, c.IncludeHalfHour)
	bEnd := End(b, c.IncludeHalfHour)
	return !(aEnd <= b.Start || a.Start >= bEnd)
}

// sharedResources lists matching identities. Blank identifiers never match.
func sharedResources(a, b Meeting) []Dimension {
	var dims []Dimension
	if sameID(a.Professor, b.Professor) {
		dims = append(dims, DimensionProfessor)
	}
	if sameID(a.ClassroomID, b.ClassroomID) {
		dims = append(dims, DimensionClassroom)
	}
	if sameID(a.Section, b.Section) {
		dims = append(dims, DimensionSection)
	}
	return dims
}

func sameID(a, b string) bool {
	return a != "" && a == b
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
