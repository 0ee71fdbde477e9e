package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"SchedulingAPI/internal/timegrid"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	db *sql.DB
	q  queryer
}

// NewRepository creates a new schedule repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// Ping checks the store is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// WithTx runs fn against a repository bound to a single transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

const meetingColumns = `id, status, day, start, duration, half_hour, professor, classroom_id,
	section, course_code, program, year_level, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (StoredMeeting, error) {
	var m StoredMeeting
	var day string
	err := row.Scan(
		&m.ID, &m.Status, &day, &m.Start, &m.Duration, &m.HalfHour, &m.Professor, &m.ClassroomID,
		&m.Section, &m.CourseCode, &m.Program, &m.YearLevel, &m.CreatedAt, &m.UpdatedAt,
	)
	m.Day = timegrid.Day(day)
	return m, err
}

func collectMeetings(rows *sql.Rows) ([]StoredMeeting, error) {
	defer rows.Close()

	meetings := []StoredMeeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// InsertMeeting adds a new meeting record
func (r *Repository) InsertMeeting(ctx context.Context, m StoredMeeting) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Status, string(m.Day), m.Start, m.Duration, m.HalfHour, m.Professor, m.ClassroomID,
		m.Section, m.CourseCode, m.Program, m.YearLevel, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// UpdateMeeting overwrites the scheduling fields of an existing meeting
func (r *Repository) UpdateMeeting(ctx context.Context, m StoredMeeting) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE meetings
		SET day = ?, start = ?, duration = ?, half_hour = ?, professor = ?, classroom_id = ?,
			section = ?, course_code = ?, program = ?, year_level = ?, updated_at = ?
		WHERE id = ?`,
		string(m.Day), m.Start, m.Duration, m.HalfHour, m.Professor, m.ClassroomID,
		m.Section, m.CourseCode, m.Program, m.YearLevel, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// SetStatus moves a meeting between the pending and approved collections
func (r *Repository) SetStatus(ctx context.Context, id string, status Status, at time.Time) error {
	res, err := r.q.ExecContext(ctx, "UPDATE meetings SET status = ?, updated_at = ? WHERE id = ?", status, at, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// DeleteMeeting removes a meeting record
func (r *Repository) DeleteMeeting(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMeeting returns a meeting by id
func (r *Repository) GetMeeting(ctx context.Context, id string) (*StoredMeeting, error) {
	row := r.q.QueryRowContext(ctx, "SELECT "+meetingColumns+" FROM meetings WHERE id = ?", id)
	m, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByDay returns every meeting on day whose status is one of statuses
func (r *Repository) ListByDay(ctx context.Context, day timegrid.Day, statuses ...Status) ([]StoredMeeting, error) {
	if len(statuses) == 0 {
		statuses = []Status{StatusPending, StatusApproved}
	}
	args := []any{string(day)}
	for _, s := range statuses {
		args = append(args, s)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings
		WHERE day = ? AND status IN (`+placeholders+`)
		ORDER BY start, id`, args...)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

// ListMeetings returns the meetings matching f ordered by day, start and id
func (r *Repository) ListMeetings(ctx context.Context, f Filter) ([]StoredMeeting, error) {
	var where []string
	var args []any
	add := func(clause string, v any) {
		where = append(where, clause)
		args = append(args, v)
	}
	if f.ClassroomID != "" {
		add("classroom_id = ?", f.ClassroomID)
	}
	if f.Professor != "" {
		add("professor = ?", f.Professor)
	}
	if f.Section != "" {
		add("section = ?", f.Section)
	}
	if f.Day != "" {
		add("day = ?", string(f.Day))
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}

	query := "SELECT " + meetingColumns + " FROM meetings"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY CASE day
		WHEN 'Mon' THEN 0 WHEN 'Tues' THEN 1 WHEN 'Wed' THEN 2
		WHEN 'Thurs' THEN 3 WHEN 'Fri' THEN 4 ELSE 5 END, start, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectMeetings(rows)
}

// ListClassroomIDs returns every classroom that hosts a meeting with the given
// status, plus every registered classroom
func (r *Repository) ListClassroomIDs(ctx context.Context, status Status) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT classroom_id FROM meetings WHERE status = ? AND classroom_id <> ''
		UNION
		SELECT id FROM classrooms
		ORDER BY 1`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertClassroom registers or renames a classroom
func (r *Repository) UpsertClassroom(ctx context.Context, c Classroom) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO classrooms (id, name, building) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, building = excluded.building`,
		c.ID, c.Name, c.Building)
	return err
}

// UpsertProfessor registers or renames a professor
func (r *Repository) UpsertProfessor(ctx context.Context, p Professor) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO professors (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		p.ID, p.Name)
	return err
}

// Names loads the display name directory
func (r *Repository) Names(ctx context.Context) (timegrid.Names, error) {
	names := timegrid.Names{
		Professors: map[string]string{},
		Classrooms: map[string]string{},
	}

	load := func(query string, into map[string]string) error {
		rows, err := r.q.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id, name string
			if err := rows.Scan(&id, &name); err != nil {
				return err
			}
			into[id] = name
		}
		return rows.Err()
	}

	if err := load("SELECT id, name FROM professors", names.Professors); err != nil {
		return names, fmt.Errorf("load professor names: %w", err)
	}
	if err := load(`SELECT id, CASE WHEN building = '' THEN name ELSE building || ' ' || name END FROM classrooms`, names.Classrooms); err != nil {
		return names, fmt.Errorf("load classroom names: %w", err)
	}
	return names, nil
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
