package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SchedulingAPI/internal/v0/schedule"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// GridSource renders the classroom grids to export.
type GridSource interface {
	AllGrids(ctx context.Context, status schedule.Status) ([]schedule.ClassroomGrid, error)
}

// IndexEntry describes one exported classroom file.
type IndexEntry struct {
	ClassroomID string `json:"classroomId"`
	Classroom   string `json:"classroom"`
	File        string `json:"file"`
	Skipped     int    `json:"skipped"`
}

// Index is written to index.json after every run.
type Index struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Status      schedule.Status `json:"status"`
	Classrooms  []IndexEntry    `json:"classrooms"`
}

const (
	IndexFile           = "index.json"
	classroomFilePrefix = "room_"
)

// Exporter writes every approved classroom grid to Dir as JSON, either once
// through Run or periodically once Start is called.
type Exporter struct {
	Dir      string
	Schedule string
	Timeout  time.Duration

	src  GridSource
	log  *zap.Logger
	now  func() time.Time
	mu   sync.Mutex
	cron *cron.Cron
}

func New(src GridSource, dir, expr string, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		Dir:      dir,
		Schedule: expr,
		Timeout:  4 * time.Minute,
		src:      src,
		log:      log.Named("export"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run exports once and returns the written index.
func (e *Exporter) Run(ctx context.Context) (*Index, error) {
	if e.Dir == "" {
		return nil, errors.New("export directory not configured")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	grids, err := e.src.AllGrids(ctx, schedule.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("render grids: %w", err)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, err
	}

	idx := &Index{
		GeneratedAt: e.now(),
		Status:      schedule.StatusApproved,
		Classrooms:  make([]IndexEntry, 0, len(grids)),
	}
	seen := make(map[string]bool, len(grids))
	for _, g := range grids {
		name := FileName(g.ClassroomID)
		if seen[name] {
			return nil, fmt.Errorf("classroom %q exported twice", g.ClassroomID)
		}
		seen[name] = true
		if err := writeJSON(filepath.Join(e.Dir, name), g); err != nil {
			return nil, fmt.Errorf("export %s: %w", g.ClassroomID, err)
		}
		idx.Classrooms = append(idx.Classrooms, IndexEntry{
			ClassroomID: g.ClassroomID,
			Classroom:   g.Classroom,
			File:        name,
			Skipped:     len(g.Grid.Skipped),
		})
	}
	if err := writeJSON(filepath.Join(e.Dir, IndexFile), idx); err != nil {
		return nil, err
	}

	e.log.Info("grids exported", zap.String("dir", e.Dir), zap.Int("classrooms", len(grids)))
	return idx, nil
}

// Start schedules Run on the cron expression. A run that is still going when
// the next one fires is skipped.
func (e *Exporter) Start() error {
	if e.Dir == "" {
		e.log.Info("grid export disabled, no directory configured")
		return nil
	}

	logger := cron.PrintfLogger(zap.NewStdLog(e.log))
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
	_, err := c.AddFunc(e.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.Timeout)
		defer cancel()
		if _, err := e.Run(ctx); err != nil {
			e.log.Error("grid export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule export %q: %w", e.Schedule, err)
	}

	e.cron = c
	c.Start()
	e.log.Info("grid export scheduled", zap.String("cron", e.Schedule), zap.String("dir", e.Dir))
	return nil
}

// Stop waits for a running export to finish.
func (e *Exporter) Stop() {
	if e.cron == nil {
		return
	}
	<-e.cron.Stop().Done()
}

// FileName maps a classroom id onto a file name. Distinct ids always get
// distinct names and never the index file's name.
func FileName(classroomID string) string {
	return classroomFilePrefix + url.PathEscape(classroomID) + ".json"
}

// writeJSON replaces path atomically.
func writeJSON(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
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
