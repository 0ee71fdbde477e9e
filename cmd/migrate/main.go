package main

import (
	"errors"
	"flag"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	path := flag.String("path", "schedule", "migration set under internal/databases/migrations")
	db := flag.String("db", "", "database file (default internal/databases/<path>.db)")
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	dbFile := *db
	if dbFile == "" {
		dbFile = "internal/databases/" + *path + ".db"
	}

	m, err := migrate.New(
		"file://internal/databases/migrations/"+*path,
		"sqlite3://"+dbFile,
	)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal(err)
	}
	log.Printf("Database migration complete for %s (%s): version %d, dirty %v", *path, dbFile, version, dirty)
}

/*
This project is the facility scheduling backend API for the OpenSourceDUTH team.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
