package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"SchedulingAPI/internal/timegrid"
)

// Status is the collection a meeting currently lives in.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// ParseStatus accepts "pending" or "approved" in any case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// StoredMeeting is a meeting together with its persistence metadata.
type StoredMeeting struct {
	timegrid.Meeting
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Classroom is a room that can host meetings.
type Classroom struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Building string `json:"building"`
}

// Professor is a faculty member that can teach meetings.
type Professor struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// Filter narrows ListMeetings. Empty fields match everything.
type Filter struct {
	ClassroomID string
	Professor   string
	Section     string
	Day         timegrid.Day
	Status      Status
}

// MeetingRequest is the body accepted by the submit, check and update endpoints.
type MeetingRequest struct {
	Day         string  `json:"day" binding:"required,schoolday"`
	Start       float64 `json:"start" binding:"halfhour"`
	Duration    int     `json:"duration" binding:"required,min=1"`
	HalfHour    int     `json:"halfHour" binding:"omitempty,oneof=0 30"`
	Professor   string  `json:"professor" binding:"required"`
	ClassroomID string  `json:"classroomId" binding:"required"`
	Section     string  `json:"section" binding:"required"`
	CourseCode  string  `json:"courseCode" binding:"required"`
	Program     string  `json:"program"`
	YearLevel   string  `json:"yearLevel"`
	Override    bool    `json:"override"`
}

func (r MeetingRequest) toMeeting() (timegrid.Meeting, error) {
	day, err := timegrid.ParseDay(r.Day)
	if err != nil {
		return timegrid.Meeting{}, err
	}
	return timegrid.Normalize(timegrid.Meeting{
		Day:         day,
		Start:       r.Start,
		Duration:    r.Duration,
		HalfHour:    r.HalfHour,
		Professor:   strings.TrimSpace(r.Professor),
		ClassroomID: strings.TrimSpace(r.ClassroomID),
		Section:     strings.TrimSpace(r.Section),
		CourseCode:  strings.TrimSpace(r.CourseCode),
		Program:     strings.TrimSpace(r.Program),
		YearLevel:   strings.TrimSpace(r.YearLevel),
	}), nil
}

// ConflictError is returned when a write would collide with an existing meeting.
type ConflictError struct {
	Candidate timegrid.Meeting        `json:"candidate"`
	Result    timegrid.ConflictResult `json:"conflict"`
}

func (e *ConflictError) Error() string {
	if e == nil || e.Result.Meeting == nil {
		return "schedule conflict"
	}
	dims := make([]string, 0, len(e.Result.Dimensions))
	for _, d := range e.Result.Dimensions {
		dims = append(dims, string(d))
	}
	c := e.Result.Meeting
	return fmt.Sprintf("conflicts with %s %s (%s %s-%s) on %s",
		c.CourseCode, c.Section, c.Day,
		timegrid.FormatHour(c.Start), timegrid.FormatHour(timegrid.End(*c, true)),
		strings.Join(dims, ", "))
}

// ClassroomGrid is one classroom's laid out week.
type ClassroomGrid struct {
	ClassroomID string        `json:"classroomId"`
	Classroom   string        `json:"classroom"`
	Grid        timegrid.Grid `json:"grid"`
}

// ProfessorGrid is one professor's laid out week.
type ProfessorGrid struct {
	ProfessorID string        `json:"professorId"`
	Professor   string        `json:"professor"`
	Grid        timegrid.Grid `json:"grid"`
}

//   This project is the facility scheduling backend API for the OpenSourceDUTH team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
