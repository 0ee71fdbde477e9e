package timegrid

// NameResolver turns opaque professor and classroom ids into display strings.
type NameResolver interface {
	ProfessorName(id string) string
	ClassroomName(id string) string
}

// Names is a map-backed NameResolver. Unknown ids resolve to themselves.
type Names struct {
	Professors map[string]string
	Classrooms map[string]string
}

func (n Names) ProfessorName(id string) string {
	if name, ok := n.Professors[id]; ok && name != "" {
		return name
	}
	return id
}

func (n Names) ClassroomName(id string) string {
	if name, ok := n.Classrooms[id]; ok && name != "" {
		return name
	}
	return id
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
