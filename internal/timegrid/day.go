package timegrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Day is one of the six canonical teaching days.
type Day string

const (
	Mon   Day = "Mon"
	Tues  Day = "Tues"
	Wed   Day = "Wed"
	Thurs Day = "Thurs"
	Fri   Day = "Fri"
	Sat   Day = "Sat"
)

// DayCount is the width of the grid.
const DayCount = 6

// Days is the fixed column order of the grid.
var Days = [DayCount]Day{Mon, Tues, Wed, Thurs, Fri, Sat}

var ErrInvalidDay = errors.New("invalid day")

var dayAliases = map[string]Day{
	"mon": Mon, "monday": Mon, "m": Mon,
	"tue": Tues, "tues": Tues, "tuesday": Tues, "t": Tues,
	"wed": Wed, "weds": Wed, "wednesday": Wed, "w": Wed,
	"thu": Thurs, "thur": Thurs, "thurs": Thurs, "thursday": Thurs, "th": Thurs,
	"fri": Fri, "friday": Fri, "f": Fri,
	"sat": Sat, "saturday": Sat, "s": Sat,
}

// ParseDay normalizes free-form day spellings into the canonical set.
func ParseDay(s string) (Day, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, ".")
	if d, ok := dayAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// Index returns the grid column of d, or -1 when d is not canonical.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the canonical days.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = parsed
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
