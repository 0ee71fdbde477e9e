package schedule

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"SchedulingAPI/internal/timegrid"

	"github.com/mr-tron/base58"
	"go.uber.org/zap"
)

// Service owns the meeting lifecycle: submission, review and grid rendering.
// Writes are serialized so that a conflict check and the insert it guards see
// the same snapshot of the day.
type Service struct {
	repo    *Repository
	checker timegrid.Checker
	log     *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() (string, error)
}

func NewService(repo *Repository, checker timegrid.Checker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		checker: checker,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   newMeetingID,
	}
}

// newMeetingID returns base58 of 16 random bytes.
func newMeetingID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate meeting id: %w", err)
	}
	return base58.Encode(b), nil
}

func meetingsOf(stored []StoredMeeting) []timegrid.Meeting {
	out := make([]timegrid.Meeting, len(stored))
	for i := range stored {
		out[i] = stored[i].Meeting
	}
	return out
}

// Submit validates m and stores it as pending. A conflict with any pending or
// approved meeting on the same day is returned as *ConflictError unless
// override is set.
func (s *Service) Submit(ctx context.Context, m timegrid.Meeting, override bool) (*StoredMeeting, error) {
	m.ID = ""
	m = timegrid.Normalize(m)
	if err := timegrid.Validate(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	var stored StoredMeeting
	err = s.repo.WithTx(ctx, func(tx *Repository) error {
		if err := s.guard(ctx, tx, m, override, StatusPending, StatusApproved); err != nil {
			return err
		}
		now := s.now()
		m.ID = id
		stored = StoredMeeting{Meeting: m, Status: StatusPending, CreatedAt: now, UpdatedAt: now}
		return tx.InsertMeeting(ctx, stored)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("meeting submitted",
		zap.String("id", stored.ID),
		zap.String("course", stored.CourseCode),
		zap.String("section", stored.Section),
		zap.String("day", string(stored.Day)),
		zap.Float64("start", stored.Start),
	)
	return &stored, nil
}

// Check is a dry run of the conflict test. A non-empty m.ID is excluded from
// the comparison so an edit can be previewed against its own old slot.
func (s *Service) Check(ctx context.Context, m timegrid.Meeting) (timegrid.ConflictResult, error) {
	m = timegrid.Normalize(m)
	if err := timegrid.Validate(m); err != nil {
		return timegrid.ConflictResult{}, err
	}
	existing, err := s.repo.ListByDay(ctx, m.Day, StatusPending, StatusApproved)
	if err != nil {
		return timegrid.ConflictResult{}, err
	}
	return s.checker.FindConflict(m, meetingsOf(existing)), nil
}

// Update replaces the scheduling fields of meeting id, keeping its status.
func (s *Service) Update(ctx context.Context, id string, m timegrid.Meeting, override bool) (*StoredMeeting, error) {
	m.ID = id
	m = timegrid.Normalize(m)
	if err := timegrid.Validate(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stored StoredMeeting
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		current, err := tx.GetMeeting(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard(ctx, tx, m, override, StatusPending, StatusApproved); err != nil {
			return err
		}
		stored = StoredMeeting{Meeting: m, Status: current.Status, CreatedAt: current.CreatedAt, UpdatedAt: s.now()}
		return tx.UpdateMeeting(ctx, stored)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("meeting updated", zap.String("id", id))
	return &stored, nil
}

// Approve promotes a pending meeting after re-checking it against the
// approved schedule. Approving an approved meeting is a no-op.
func (s *Service) Approve(ctx context.Context, id string) (*StoredMeeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored *StoredMeeting
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		current, err := tx.GetMeeting(ctx, id)
		if err != nil {
			return err
		}
		stored = current
		if current.Status == StatusApproved {
			return nil
		}
		if err := s.guard(ctx, tx, current.Meeting, false, StatusApproved); err != nil {
			return err
		}
		now := s.now()
		if err := tx.SetStatus(ctx, id, StatusApproved, now); err != nil {
			return err
		}
		stored.Status = StatusApproved
		stored.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("meeting approved", zap.String("id", id))
	return stored, nil
}

// guard runs the conflict check for m against the given collections of its day.
func (s *Service) guard(ctx context.Context, tx *Repository, m timegrid.Meeting, override bool, statuses ...Status) error {
	existing, err := tx.ListByDay(ctx, m.Day, statuses...)
	if err != nil {
		return err
	}
	res := s.checker.FindConflict(m, meetingsOf(existing))
	if !res.Found() {
		return nil
	}
	if !override {
		return &ConflictError{Candidate: m, Result: res}
	}
	s.log.Warn("schedule conflict overridden",
		zap.String("id", m.ID),
		zap.String("course", m.CourseCode),
		zap.String("conflictsWith", res.Meeting.ID),
		zap.Any("dimensions", res.Dimensions),
	)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteMeeting(ctx, id); err != nil {
		return err
	}
	s.log.Info("meeting deleted", zap.String("id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*StoredMeeting, error) {
	return s.repo.GetMeeting(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]StoredMeeting, error) {
	return s.repo.ListMeetings(ctx, f)
}

// ClassroomGrid lays out the week of one classroom.
func (s *Service) ClassroomGrid(ctx context.Context, classroomID string, status Status) (*ClassroomGrid, error) {
	meetings, err := s.repo.ListMeetings(ctx, Filter{ClassroomID: classroomID, Status: status})
	if err != nil {
		return nil, err
	}
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}
	grid := s.layout("classroom", classroomID, meetings, names)
	return &ClassroomGrid{
		ClassroomID: classroomID,
		Classroom:   names.ClassroomName(classroomID),
		Grid:        grid,
	}, nil
}

// ProfessorGrid lays out the week of one professor.
func (s *Service) ProfessorGrid(ctx context.Context, professor string, status Status) (*ProfessorGrid, error) {
	meetings, err := s.repo.ListMeetings(ctx, Filter{Professor: professor, Status: status})
	if err != nil {
		return nil, err
	}
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}
	grid := s.layout("professor", professor, meetings, names)
	return &ProfessorGrid{
		ProfessorID: professor,
		Professor:   names.ProfessorName(professor),
		Grid:        grid,
	}, nil
}

// AllGrids renders every known classroom, ordered by classroom id.
func (s *Service) AllGrids(ctx context.Context, status Status) ([]ClassroomGrid, error) {
	ids, err := s.repo.ListClassroomIDs(ctx, status)
	if err != nil {
		return nil, err
	}
	meetings, err := s.repo.ListMeetings(ctx, Filter{Status: status})
	if err != nil {
		return nil, err
	}
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string][]StoredMeeting, len(ids))
	for _, m := range meetings {
		byRoom[m.ClassroomID] = append(byRoom[m.ClassroomID], m)
	}

	sort.Strings(ids)
	grids := make([]ClassroomGrid, 0, len(ids))
	for _, id := range ids {
		grids = append(grids, ClassroomGrid{
			ClassroomID: id,
			Classroom:   names.ClassroomName(id),
			Grid:        s.layout("classroom", id, byRoom[id], names),
		})
	}
	return grids, nil
}

func (s *Service) layout(target, id string, meetings []StoredMeeting, names timegrid.Names) timegrid.Grid {
	grid := timegrid.Layout(meetingsOf(meetings), names)
	for _, sk := range grid.Skipped {
		s.log.Warn("meeting left out of grid",
			zap.String(target, id),
			zap.String("meeting", sk.MeetingID),
			zap.String("day", string(sk.Day)),
			zap.Float64("start", sk.Start),
			zap.String("reason", string(sk.Reason)),
		)
	}
	return grid
}

func (s *Service) PutClassroom(ctx context.Context, c Classroom) error {
	return s.repo.UpsertClassroom(ctx, c)
}

func (s *Service) PutProfessor(ctx context.Context, p Professor) error {
	return s.repo.UpsertProfessor(ctx, p)
}

// Ping reports whether the backing store answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
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
