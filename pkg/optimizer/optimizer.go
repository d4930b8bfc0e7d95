// FPSTune Core
// Copyright (c) 2026 The FPSTune Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of FPSTune Core.
//
// FPSTune Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// FPSTune Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with FPSTune Core.  If not, see <http://www.gnu.org/licenses/>.

package optimizer

import (
	"context"
	"errors"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of a single tweak attempt.
type Result struct {
	Tweak Tweak  `json:"tweak"`
	Error string `json:"error,omitempty"`
	OK    bool   `json:"ok"`
}

// Report summarizes one optimization or revert session. Application is
// best effort: a failed write is recorded and the batch continues.
type Report struct {
	Timestamp       time.Time `json:"timestamp"`
	BackupPath      string    `json:"backupPath,omitempty"`
	MaxRisk         string    `json:"maxRisk"`
	Results         []Result  `json:"results"`
	Applied         int       `json:"applied"`
	Failed          int       `json:"failed"`
	DryRun          bool      `json:"dryRun"`
	RequiresRestart bool      `json:"requiresRestart"`
}

// Engine applies tuning catalogs through a Platform and keeps JSON backups
// of every value it overwrites.
type Engine struct {
	pl    platforms.Platform
	store *BackupStore
	clock func() time.Time
}

func NewEngine(pl platforms.Platform, store *BackupStore) *Engine {
	return &Engine{pl: pl, store: store, clock: time.Now}
}

// SetClockForTesting overrides the engine's time source.
func (e *Engine) SetClockForTesting(clock func() time.Time) {
	e.clock = clock
}

// Selected returns the catalog tweaks that the current config selects:
// everything at or below max_risk whose category is enabled.
func (e *Engine) Selected(cfg *config.Instance) []Tweak {
	maxRisk, err := ParseRisk(cfg.MaxRisk())
	if err != nil {
		maxRisk = RiskLow
	}
	return Filter(CatalogFor(e.pl.ID()), maxRisk, cfg.IsCategoryDisabled)
}

// Apply writes the selected tweaks, backing up every current value first.
// In dry run mode nothing is written and the report lists what would be.
func (e *Engine) Apply(ctx context.Context, cfg *config.Instance) (Report, error) {
	tweaks := e.Selected(cfg)
	report := Report{
		Timestamp: e.clock(),
		MaxRisk:   cfg.MaxRisk(),
		DryRun:    cfg.DryRun(),
		Results:   make([]Result, 0, len(tweaks)),
	}

	if report.DryRun {
		for _, t := range tweaks {
			report.Results = append(report.Results, Result{Tweak: t, OK: true})
		}
		log.Info().Int("tweaks", len(tweaks)).Msg("dry run, nothing applied")
		return report, nil
	}

	backup := Backup{
		Timestamp: report.Timestamp,
		Platform:  e.pl.ID(),
		Records:   make([]BackupRecord, 0, len(tweaks)),
	}
	for _, t := range tweaks {
		record := BackupRecord{Key: t.Key}
		current, err := e.pl.ReadSetting(t.Key)
		switch {
		case err == nil:
			record.Value = current
			record.Existed = true
		case errors.Is(err, platforms.ErrSettingNotFound),
			errors.Is(err, platforms.ErrNotSupported):
			// nothing to preserve
		default:
			log.Warn().Err(err).Str("key", t.ID()).Msg("could not read current value")
		}
		backup.Records = append(backup.Records, record)
	}

	backupPath, err := e.store.Save(backup)
	if err != nil {
		return report, err
	}
	report.BackupPath = backupPath

	for _, t := range tweaks {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		err := e.pl.WriteSetting(ctx, t.Key, t.Value)
		if err != nil {
			log.Warn().Err(err).Str("key", t.ID()).Msg("tweak failed")
			report.Results = append(report.Results, Result{Tweak: t, Error: err.Error()})
			report.Failed++
			continue
		}

		log.Debug().Str("key", t.ID()).Str("category", t.Category).Msg("tweak applied")
		report.Results = append(report.Results, Result{Tweak: t, OK: true})
		report.Applied++
		if t.RequiresRestart {
			report.RequiresRestart = true
		}
	}

	log.Info().
		Int("applied", report.Applied).
		Int("failed", report.Failed).
		Str("maxRisk", report.MaxRisk).
		Msg("optimization session finished")

	return report, nil
}

// Revert restores original values from a backup file. An empty path means
// the most recent backup. Records that had no original value are deleted
// where the scope supports deletion.
func (e *Engine) Revert(ctx context.Context, backupPath string) (Report, error) {
	var backup Backup
	var err error

	if backupPath == "" {
		backup, backupPath, err = e.store.Latest()
	} else {
		backup, err = e.store.Load(backupPath)
	}
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Timestamp:  e.clock(),
		BackupPath: backupPath,
		Results:    make([]Result, 0, len(backup.Records)),
	}

	for _, record := range backup.Records {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		t := Tweak{Key: record.Key, Value: record.Value}

		var restoreErr error
		if record.Existed {
			restoreErr = e.pl.WriteSetting(ctx, record.Key, record.Value)
		} else {
			restoreErr = e.pl.DeleteSetting(record.Key)
			if errors.Is(restoreErr, platforms.ErrNotSupported) {
				// file scopes can't delete; leave the value in place
				restoreErr = nil
			}
		}

		if restoreErr != nil {
			log.Warn().Err(restoreErr).Str("key", t.ID()).Msg("revert failed")
			report.Results = append(report.Results, Result{Tweak: t, Error: restoreErr.Error()})
			report.Failed++
			continue
		}

		report.Results = append(report.Results, Result{Tweak: t, OK: true})
		report.Applied++
	}

	log.Info().
		Int("restored", report.Applied).
		Int("failed", report.Failed).
		Str("backup", backupPath).
		Msg("revert session finished")

	return report, nil
}
