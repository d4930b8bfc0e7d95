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

package historydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/helpers"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNullSQL = errors.New("HistoryDB is not connected")

const sqliteConnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

// Session is one recorded optimization or revert run.
type Session struct {
	StartedAt  time.Time `json:"startedAt"`
	Platform   string    `json:"platform"`
	MaxRisk    string    `json:"maxRisk"`
	BackupPath string    `json:"backupPath"`
	DBID       int64     `json:"id"`
	Applied    int       `json:"applied"`
	Failed     int       `json:"failed"`
	DryRun     bool      `json:"dryRun"`
}

// TweakEntry is one tweak outcome inside a session.
type TweakEntry struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	Error    string `json:"error,omitempty"`
	OK       bool   `json:"ok"`
}

// GameSession is one detected play session.
type GameSession struct {
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Name      string     `json:"name"`
	Exe       string     `json:"exe"`
	DBID      int64      `json:"id"`
}

// HistoryDB records optimization sessions and game play sessions.
type HistoryDB struct {
	sql *sql.DB
	pl  platforms.Platform
	ctx context.Context
}

func OpenHistoryDB(ctx context.Context, pl platforms.Platform) (*HistoryDB, error) {
	db := &HistoryDB{sql: nil, pl: pl, ctx: ctx}
	err := db.Open()
	return db, err
}

func (db *HistoryDB) Open() error {
	dbPath := db.GetDBPath()
	if _, err := os.Stat(dbPath); err != nil {
		mkdirErr := os.MkdirAll(filepath.Dir(dbPath), 0o750)
		if mkdirErr != nil {
			return fmt.Errorf("failed to create directory for database: %w", mkdirErr)
		}
	}
	sqlInstance, err := sql.Open("sqlite3", dbPath+sqliteConnParams)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.sql = sqlInstance
	return db.MigrateUp()
}

func (db *HistoryDB) GetDBPath() string {
	return filepath.Join(helpers.DataDir(db.pl), config.HistoryDbFile)
}

func (db *HistoryDB) MigrateUp() error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlMigrateUp(db.sql)
}

func (db *HistoryDB) Close() error {
	if db.sql == nil {
		return nil
	}
	if err := db.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// AddReport stores an engine report with its per-tweak results in one
// transaction and returns the new session id.
//
//nolint:gocritic // report struct copied for DB insertion
func (db *HistoryDB) AddReport(platformID string, report optimizer.Report) (int64, error) {
	if db.sql == nil {
		return 0, ErrNullSQL
	}
	return sqlAddReport(db.ctx, db.sql, platformID, report)
}

// RecentSessions returns the newest sessions first.
func (db *HistoryDB) RecentSessions(limit int) ([]Session, error) {
	if db.sql == nil {
		return nil, ErrNullSQL
	}
	return sqlRecentSessions(db.ctx, db.sql, limit)
}

// SessionTweaks returns the tweak outcomes recorded for a session.
func (db *HistoryDB) SessionTweaks(sessionID int64) ([]TweakEntry, error) {
	if db.sql == nil {
		return nil, ErrNullSQL
	}
	return sqlSessionTweaks(db.ctx, db.sql, sessionID)
}

// StartGameSession opens a play session row and returns its id.
func (db *HistoryDB) StartGameSession(name, exe string, startedAt time.Time) (int64, error) {
	if db.sql == nil {
		return 0, ErrNullSQL
	}
	return sqlStartGameSession(db.ctx, db.sql, name, exe, startedAt)
}

// EndGameSession closes every open session for a game.
func (db *HistoryDB) EndGameSession(name string, endedAt time.Time) error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlEndGameSession(db.ctx, db.sql, name, endedAt)
}

// CloseHangingGameSessions marks every still-open play session as ended.
// Called on startup to clean up after an unclean shutdown.
func (db *HistoryDB) CloseHangingGameSessions() error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlCloseHangingGameSessions(db.ctx, db.sql, time.Now())
}

// RecentGameSessions returns the newest play sessions first.
func (db *HistoryDB) RecentGameSessions(limit int) ([]GameSession, error) {
	if db.sql == nil {
		return nil, ErrNullSQL
	}
	return sqlRecentGameSessions(db.ctx, db.sql, limit)
}

// SetSQLForTesting injects a sql.DB instance, usually in-memory, and runs
// migrations on it.
func (db *HistoryDB) SetSQLForTesting(ctx context.Context, sqlDB *sql.DB) error {
	db.sql = sqlDB
	db.ctx = ctx
	return db.MigrateUp()
}
