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

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/service/state"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistoryDB(t *testing.T) *historydb.HistoryDB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &historydb.HistoryDB{}
	require.NoError(t, db.SetSQLForTesting(context.Background(), sqlDB))
	return db
}

func TestMonitorHooksRecordGameSessions(t *testing.T) {
	t.Parallel()

	st, ns := state.NewState(nil)
	t.Cleanup(st.StopService)
	db := testHistoryDB(t)

	hooks := monitorHooks(st, db)
	game := monitor.ActiveGame{Name: "Counter-Strike 2", Exe: "cs2.exe", PID: 4321}

	hooks.OnGameStarted(game)

	notif := <-ns
	assert.Equal(t, models.NotificationGameStarted, notif.Method)
	info, ok := notif.Params.(models.GameInfo)
	require.True(t, ok)
	assert.Equal(t, "Counter-Strike 2", info.Name)

	sessions, err := db.RecentGameSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Nil(t, sessions[0].EndedAt)

	hooks.OnGameStopped(game)

	notif = <-ns
	assert.Equal(t, models.NotificationGameStopped, notif.Method)

	sessions, err = db.RecentGameSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.NotNil(t, sessions[0].EndedAt)
}

func TestMonitorHooksBroadcastMetrics(t *testing.T) {
	t.Parallel()

	st, ns := state.NewState(nil)
	t.Cleanup(st.StopService)
	db := testHistoryDB(t)

	hooks := monitorHooks(st, db)
	hooks.OnMetrics(monitor.Snapshot{})

	notif := <-ns
	assert.Equal(t, models.NotificationMetricsUpdated, notif.Method)
}

func TestWatchConfigReloads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, watchConfig(ctx, cfg))

	// write a change through a second instance sharing the same file
	other, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)
	require.True(t, other.SetMaxRisk(config.RiskHigh))
	require.NoError(t, other.Save())

	assert.Eventually(t, func() bool {
		return cfg.MaxRisk() == config.RiskHigh
	}, 3*time.Second, 50*time.Millisecond)
}
