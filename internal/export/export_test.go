package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SchedulingAPI/internal/timegrid"
	"SchedulingAPI/internal/v0/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	grids  []schedule.ClassroomGrid
	err    error
	status schedule.Status
}

func (f *fakeSource) AllGrids(_ context.Context, status schedule.Status) ([]schedule.ClassroomGrid, error) {
	f.status = status
	return f.grids, f.err
}

func TestRunWritesGridsAndIndex(t *testing.T) {
	grid := timegrid.Layout([]timegrid.Meeting{
		{ID: "a", Day: timegrid.Mon, Start: 8, Duration: 1, CourseCode: "CS1"},
		{ID: "b", Day: timegrid.Mon, Start: 8, Duration: 1, CourseCode: "CS2"},
	}, nil)
	src := &fakeSource{grids: []schedule.ClassroomGrid{
		{ClassroomID: "R101", Classroom: "Main R101", Grid: grid},
		{ClassroomID: "lab/2", Classroom: "lab/2", Grid: timegrid.Layout(nil, nil)},
	}}

	dir := filepath.Join(t.TempDir(), "out")
	e := New(src, dir, "@daily", nil)
	fixed := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	idx, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusApproved, src.status)
	assert.Equal(t, fixed, idx.GeneratedAt)
	assert.Equal(t, []IndexEntry{
		{ClassroomID: "R101", Classroom: "Main R101", File: "room_R101.json", Skipped: 1},
		{ClassroomID: "lab/2", Classroom: "lab/2", File: "room_lab%2F2.json", Skipped: 0},
	}, idx.Classrooms)

	raw, err := os.ReadFile(filepath.Join(dir, "room_R101.json"))
	require.NoError(t, err)
	var got schedule.ClassroomGrid
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "R101", got.ClassroomID)
	assert.Equal(t, timegrid.CellStart, got.Grid.Rows[2].Cells[0].Kind)

	raw, err = os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	var onDisk Index
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Len(t, onDisk.Classrooms, 2)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRunPropagatesSourceError(t *testing.T) {
	e := New(&fakeSource{err: errors.New("db down")}, t.TempDir(), "@daily", nil)
	_, err := e.Run(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestRunRequiresDir(t *testing.T) {
	e := New(&fakeSource{}, "", "@daily", nil)
	_, err := e.Run(context.Background())
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	disabled := New(&fakeSource{}, "", "not a cron", nil)
	assert.NoError(t, disabled.Start())
	disabled.Stop()

	bad := New(&fakeSource{}, t.TempDir(), "not a cron", nil)
	assert.Error(t, bad.Start())

	ok := New(&fakeSource{}, t.TempDir(), "0 2 * * *", nil)
	require.NoError(t, ok.Start())
	ok.Stop()
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "room_R101.json", FileName("R101"))
	assert.Equal(t, "room_a%2Fb.json", FileName("a/b"))
	assert.Equal(t, "room_Main%20Hall.json", FileName("Main Hall"))
	assert.Equal(t, "room_index.json", FileName("index"))
	assert.Equal(t, "room_.json", FileName(""))

	ids := []string{"A/B", "A B", "A_B", `A\B`, "A%2FB", "A..B", "index", ""}
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		name := FileName(id)
		assert.NotEqual(t, IndexFile, name)
		assert.NotContains(t, name, "/")
		assert.NotContains(t, name, `\`)
		if prev, dup := names[name]; dup {
			t.Fatalf("%q and %q both map to %s", prev, id, name)
		}
		names[name] = id
	}
}

func TestRunKeepsLookalikeClassroomsApart(t *testing.T) {
	var grids []schedule.ClassroomGrid
	for _, id := range []string{"A/B", "A B", "A_B"} {
		grids = append(grids, schedule.ClassroomGrid{ClassroomID: id, Classroom: id, Grid: timegrid.Layout(nil, nil)})
	}
	dir := t.TempDir()
	idx, err := New(&fakeSource{grids: grids}, dir, "@daily", nil).Run(context.Background())
	require.NoError(t, err)

	files := map[string]bool{}
	for _, c := range idx.Classrooms {
		files[c.File] = true
		raw, err := os.ReadFile(filepath.Join(dir, c.File))
		require.NoError(t, err)
		var got schedule.ClassroomGrid
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, c.ClassroomID, got.ClassroomID)
	}
	assert.Len(t, files, 3)
}

func TestRunRejectsRepeatedClassroom(t *testing.T) {
	g := schedule.ClassroomGrid{ClassroomID: "R1", Grid: timegrid.Layout(nil, nil)}
	_, err := New(&fakeSource{grids: []schedule.ClassroomGrid{g, g}}, t.TempDir(), "@daily", nil).Run(context.Background())
	assert.ErrorContains(t, err, "exported twice")
}
