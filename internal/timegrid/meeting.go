package timegrid

import (
	"strings"
)

// Meeting is one weekly occurrence of a class.
type Meeting struct {
	ID          string  `json:"id"`
	Day         Day     `json:"day"`
	Start       float64 `json:"start"`
	Duration    int     `json:"duration"`
	HalfHour    int     `json:"halfHour,omitempty"`
	Professor   string  `json:"professor"`
	ClassroomID string  `json:"classroomId"`
	Section     string  `json:"section"`
	CourseCode  string  `json:"courseCode"`
	Program     string  `json:"program,omitempty"`
	YearLevel   string  `json:"yearLevel,omitempty"`
}

// FieldError is used to indicate an error with a specific meeting field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError collects every field that failed Validate.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	return "invalid meeting: " + strings.Join(msgs, "; ")
}

// Messages flattens the field errors for response envelopes.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	return msgs
}

// Normalize snaps a start that sits within rounding noise of a slot boundary
// onto the boundary itself. Starts that are clearly off a boundary are left
// alone for Validate to reject.
func Normalize(m Meeting) Meeting {
	if onSlotBoundary(m.Start) {
		m.Start = StartForRow(RowIndex(m.Start))
	}
	return m
}

// Validate rejects malformed time fields before a meeting reaches the
// checker or the layout. Both of those assume well-formed input.
func Validate(m Meeting) error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Error: msg})
	}

	if !m.Day.Valid() {
		add("day", "must be one of Mon, Tues, Wed, Thurs, Fri, Sat")
	}

	switch {
	case m.Start < GridStartHour:
		add("start", "must not be before 7:00")
	case !IsAligned(m.Start):
		add("start", "must align to a 30-minute boundary")
	case RowIndex(m.Start) == RowIndex(LunchStart):
		add("start", "12:00 is reserved for the lunch break")
	}

	if m.Duration < 1 {
		add("duration", "must be at least one hour")
	}
	if m.HalfHour != 0 && m.HalfHour != HalfHourMinutes {
		add("halfHour", "must be 0 or 30")
	}
	if m.Duration >= 1 && End(m, true) > LatestEnd+alignEpsilon {
		add("duration", "meeting must end by 8:30")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
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
