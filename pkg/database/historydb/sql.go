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
	"embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/database"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func sqlMigrateUp(db *sql.DB) error {
	if err := database.MigrateUp(db, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run history database migrations: %w", err)
	}
	return nil
}

//nolint:gocritic // report struct copied for DB insertion
func sqlAddReport(
	ctx context.Context,
	db *sql.DB,
	platformID string,
	report optimizer.Report,
) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil &&
			!errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Warn().Err(rollbackErr).Msg("failed to roll back session insert")
		}
	}()

	res, err := tx.ExecContext(ctx, `
		insert into Sessions(
			StartedAt, Platform, MaxRisk, Applied, Failed, DryRun, BackupPath
		) values (?, ?, ?, ?, ?, ?, ?);
	`, report.Timestamp.Unix(), platformID, report.MaxRisk,
		report.Applied, report.Failed, report.DryRun, report.BackupPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	sessionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		insert into Tweaks(
			SessionDBID, Category, Key, Value, OK, Error
		) values (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tweak insert statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	for _, result := range report.Results {
		value := result.Tweak.Value.String
		if result.Tweak.Value.Kind == platforms.ValueDWord {
			value = strconv.FormatUint(uint64(result.Tweak.Value.DWord), 10)
		}
		_, err := stmt.ExecContext(ctx,
			sessionID, result.Tweak.Category, result.Tweak.ID(), value,
			result.OK, result.Error)
		if err != nil {
			return 0, fmt.Errorf("failed to insert tweak result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}
	return sessionID, nil
}

func sqlRecentSessions(ctx context.Context, db *sql.DB, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := db.QueryContext(ctx, `
		select DBID, StartedAt, Platform, MaxRisk, Applied, Failed, DryRun, BackupPath
		from Sessions order by DBID desc limit ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql rows")
		}
	}()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt int64
		err := rows.Scan(&s.DBID, &startedAt, &s.Platform, &s.MaxRisk,
			&s.Applied, &s.Failed, &s.DryRun, &s.BackupPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		s.StartedAt = time.Unix(startedAt, 0)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return sessions, nil
}

func sqlSessionTweaks(ctx context.Context, db *sql.DB, sessionID int64) ([]TweakEntry, error) {
	rows, err := db.QueryContext(ctx, `
		select Category, Key, Value, OK, Error
		from Tweaks where SessionDBID = ? order by DBID;
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tweaks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql rows")
		}
	}()

	var entries []TweakEntry
	for rows.Next() {
		var e TweakEntry
		if err := rows.Scan(&e.Category, &e.Key, &e.Value, &e.OK, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan tweak row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tweak rows: %w", err)
	}
	return entries, nil
}

func sqlStartGameSession(
	ctx context.Context,
	db *sql.DB,
	name, exe string,
	startedAt time.Time,
) (int64, error) {
	res, err := db.ExecContext(ctx, `
		insert into GameSessions(Name, Exe, StartedAt) values (?, ?, ?);
	`, name, exe, startedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert game session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get game session id: %w", err)
	}
	return id, nil
}

func sqlEndGameSession(ctx context.Context, db *sql.DB, name string, endedAt time.Time) error {
	_, err := db.ExecContext(ctx, `
		update GameSessions set EndedAt = ? where Name = ? and EndedAt is null;
	`, endedAt.Unix(), name)
	if err != nil {
		return fmt.Errorf("failed to close game session: %w", err)
	}
	return nil
}

func sqlCloseHangingGameSessions(ctx context.Context, db *sql.DB, endedAt time.Time) error {
	_, err := db.ExecContext(ctx, `
		update GameSessions set EndedAt = ? where EndedAt is null;
	`, endedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to close hanging game sessions: %w", err)
	}
	return nil
}

func sqlRecentGameSessions(ctx context.Context, db *sql.DB, limit int) ([]GameSession, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := db.QueryContext(ctx, `
		select DBID, Name, Exe, StartedAt, EndedAt
		from GameSessions order by DBID desc limit ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql rows")
		}
	}()

	var sessions []GameSession
	for rows.Next() {
		var s GameSession
		var startedAt int64
		var endedAt sql.NullInt64
		if err := rows.Scan(&s.DBID, &s.Name, &s.Exe, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game session row: %w", err)
		}
		s.StartedAt = time.Unix(startedAt, 0)
		if endedAt.Valid {
			t := time.Unix(endedAt.Int64, 0)
			s.EndedAt = &t
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game session rows: %w", err)
	}
	return sessions, nil
}
