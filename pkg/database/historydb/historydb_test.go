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
	"testing"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *HistoryDB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &HistoryDB{}
	require.NoError(t, db.SetSQLForTesting(context.Background(), sqlDB))
	return db
}

func testReport() optimizer.Report {
	return optimizer.Report{
		Timestamp:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		BackupPath: "/data/backups/backup-20260314-092653.json",
		MaxRisk:    "medium",
		Applied:    2,
		Failed:     1,
		Results: []optimizer.Result{
			{
				Tweak: optimizer.Tweak{
					Key: platforms.SettingKey{
						Scope: platforms.ScopeFile,
						Path:  "/proc/sys/vm/swappiness",
					},
					Value:    platforms.StringValue("10"),
					Category: optimizer.CategoryMemory,
				},
				OK: true,
			},
			{
				Tweak: optimizer.Tweak{
					Key: platforms.SettingKey{
						Scope: platforms.ScopeRegistryMachine,
						Path:  `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`,
						Name:  "TcpAckFrequency",
					},
					Value:    platforms.DWordValue(1),
					Category: optimizer.CategoryNetwork,
				},
				OK: true,
			},
			{
				Tweak: optimizer.Tweak{
					Key: platforms.SettingKey{
						Scope: platforms.ScopeFile,
						Path:  "/sys/devices/system/cpu/intel_pstate/no_turbo",
					},
					Value:    platforms.StringValue("0"),
					Category: optimizer.CategoryCPU,
				},
				Error: "permission denied",
			},
		},
	}
}

func TestAddReportAndRecentSessions(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	id, err := db.AddReport(platforms.PlatformIDLinux, testReport())
	require.NoError(t, err)
	assert.Positive(t, id)

	sessions, err := db.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, id, s.DBID)
	assert.Equal(t, platforms.PlatformIDLinux, s.Platform)
	assert.Equal(t, "medium", s.MaxRisk)
	assert.Equal(t, 2, s.Applied)
	assert.Equal(t, 1, s.Failed)
	assert.False(t, s.DryRun)
	assert.Equal(t, "/data/backups/backup-20260314-092653.json", s.BackupPath)
}

func TestSessionTweaks(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	id, err := db.AddReport(platforms.PlatformIDLinux, testReport())
	require.NoError(t, err)

	tweaks, err := db.SessionTweaks(id)
	require.NoError(t, err)
	require.Len(t, tweaks, 3)

	assert.Equal(t, "file:/proc/sys/vm/swappiness", tweaks[0].Key)
	assert.Equal(t, "10", tweaks[0].Value)
	assert.True(t, tweaks[0].OK)

	// DWORD values stored as decimal text
	assert.Equal(t, "1", tweaks[1].Value)

	assert.False(t, tweaks[2].OK)
	assert.Equal(t, "permission denied", tweaks[2].Error)
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	for range 5 {
		_, err := db.AddReport(platforms.PlatformIDLinux, testReport())
		require.NoError(t, err)
	}

	sessions, err := db.RecentSessions(3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Greater(t, sessions[0].DBID, sessions[1].DBID)
}

func TestGameSessions(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	id, err := db.StartGameSession("Counter-Strike 2", "cs2.exe", start)
	require.NoError(t, err)
	assert.Positive(t, id)

	sessions, err := db.RecentGameSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Nil(t, sessions[0].EndedAt)

	end := start.Add(90 * time.Minute)
	require.NoError(t, db.EndGameSession("Counter-Strike 2", end))

	sessions, err = db.RecentGameSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndedAt)
	assert.True(t, sessions[0].EndedAt.Equal(end))
}

func TestNotConnected(t *testing.T) {
	t.Parallel()

	db := &HistoryDB{}
	_, err := db.RecentSessions(10)
	require.ErrorIs(t, err, ErrNullSQL)
}
