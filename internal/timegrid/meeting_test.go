package timegrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := Meeting{Day: Mon, Start: 9, Duration: 1}

	tests := []struct {
		name       string
		mutate     func(m *Meeting)
		wantFields []string
	}{
		{name: "valid", mutate: func(m *Meeting) {}},
		{name: "valid with half hour", mutate: func(m *Meeting) { m.HalfHour = 30 }},
		{name: "latest possible", mutate: func(m *Meeting) { m.Start = 19.5; m.Duration = 1 }},
		{name: "ends at 8:30 with tail", mutate: func(m *Meeting) { m.Start = 18; m.Duration = 2; m.HalfHour = 30 }},
		{name: "half past noon", mutate: func(m *Meeting) { m.Start = 12.5 }},
		{name: "unknown day", mutate: func(m *Meeting) { m.Day = "Sun" }, wantFields: []string{"day"}},
		{name: "before 7", mutate: func(m *Meeting) { m.Start = 6.5 }, wantFields: []string{"start"}},
		{name: "misaligned", mutate: func(m *Meeting) { m.Start = 9.25 }, wantFields: []string{"start"}},
		{name: "lunch break", mutate: func(m *Meeting) { m.Start = 12 }, wantFields: []string{"start"}},
		{name: "lunch break with float noise", mutate: func(m *Meeting) { m.Start = 12.0000000001 }, wantFields: []string{"start"}},
		{name: "zero duration", mutate: func(m *Meeting) { m.Duration = 0 }, wantFields: []string{"duration"}},
		{name: "bad half hour", mutate: func(m *Meeting) { m.HalfHour = 15 }, wantFields: []string{"halfHour"}},
		{name: "runs past 8:30", mutate: func(m *Meeting) { m.Start = 20; m.Duration = 1 }, wantFields: []string{"duration"}},
		{name: "tail runs past 8:30", mutate: func(m *Meeting) { m.Start = 19.5; m.HalfHour = 30 }, wantFields: []string{"duration"}},
		{
			name:       "several",
			mutate:     func(m *Meeting) { m.Day = ""; m.Start = 7.1; m.HalfHour = 1 },
			wantFields: []string{"day", "start", "halfHour"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := Validate(m)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Len(t, verr.Messages(), len(tt.wantFields))
		})
	}
}

func TestNormalizeSnapsNearBoundaryStarts(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{9.9999999999, 10},
		{12.0000000001, 12},
		{7.5000000001, 7.5},
		{9.25, 9.25},
		{8, 8},
	}
	for _, tt := range tests {
		got := Normalize(Meeting{Day: Mon, Start: tt.in, Duration: 1})
		assert.Equal(t, tt.want, got.Start, "start %v", tt.in)
	}

	// a snapped start no longer collides with a meeting ending at the boundary
	before := Meeting{ID: "a", Day: Mon, Start: 9, Duration: 1, Professor: "P"}
	next := Normalize(Meeting{ID: "b", Day: Mon, Start: 9.9999999999, Duration: 1, Professor: "P"})
	require.NoError(t, Validate(next))
	assert.False(t, FindConflict(next, []Meeting{before}).Found())
}
