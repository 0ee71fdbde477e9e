package timegrid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{in: "Mon", want: Mon},
		{in: "monday", want: Mon},
		{in: " MONDAY ", want: Mon},
		{in: "Tue", want: Tues},
		{in: "Tuesday", want: Tues},
		{in: "Tues", want: Tues},
		{in: "wed", want: Wed},
		{in: "Thu", want: Thurs},
		{in: "thur", want: Thurs},
		{in: "Thurs.", want: Thurs},
		{in: "THURSDAY", want: Thurs},
		{in: "Fri", want: Fri},
		{in: "saturday", want: Sat},
		{in: "Sunday", wantErr: true},
		{in: "", wantErr: true},
		{in: "someday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayIndex(t *testing.T) {
	for i, d := range Days {
		assert.Equal(t, i, d.Index())
		assert.True(t, d.Valid())
	}
	assert.Equal(t, -1, Day("Sun").Index())
	assert.False(t, Day("").Valid())
}

func TestMeetingJSONNormalizesDay(t *testing.T) {
	var m Meeting
	err := json.Unmarshal([]byte(`{"day":"thursday","start":8.5,"duration":1}`), &m)
	require.NoError(t, err)
	assert.Equal(t, Thurs, m.Day)

	err = json.Unmarshal([]byte(`{"day":"sunday"}`), &m)
	assert.ErrorIs(t, err, ErrInvalidDay)
}
