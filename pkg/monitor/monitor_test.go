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

package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, defaults config.Values) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir(), defaults)
	require.NoError(t, err)
	return cfg
}

func TestMatchGame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		process  string
		wantGame string
		wantOK   bool
	}{
		{name: "exact", process: "cs2.exe", wantGame: "Counter-Strike 2", wantOK: true},
		{name: "case insensitive", process: "CS2.EXE", wantGame: "Counter-Strike 2", wantOK: true},
		{name: "no exe suffix", process: "cs2", wantGame: "Counter-Strike 2", wantOK: true},
		{name: "multi exe game", process: "r5apex.exe", wantGame: "Apex Legends", wantOK: true},
		{name: "unknown", process: "firefox.exe", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			game, ok := MatchGame(tt.process)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantGame, game)
		})
	}
}

func TestMonitorTickMetrics(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var notified []Snapshot

	m := New(testConfig(t, config.BaseDefaults), Hooks{
		OnMetrics: func(s Snapshot) {
			mu.Lock()
			notified = append(notified, s)
			mu.Unlock()
		},
	})

	tick := 0
	m.SetCollectorForTesting(func(_ context.Context) (Snapshot, error) {
		tick++
		return Snapshot{
			Timestamp: time.Unix(int64(tick), 0),
			CPU:       CPUMetrics{UsagePercent: float64(tick)},
		}, nil
	})

	_, ok := m.Current()
	assert.False(t, ok)

	for range 3 {
		m.tickMetrics(context.Background())
	}

	current, ok := m.Current()
	require.True(t, ok)
	assert.InEpsilon(t, 3.0, current.CPU.UsagePercent, 0.001)
	assert.Len(t, m.History(0), 3)
	assert.Len(t, m.History(2), 2)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, notified, 3)
}

func TestMonitorHistoryCapped(t *testing.T) {
	t.Parallel()

	defaults := config.BaseDefaults
	defaults.Monitor.HistorySize = 5
	m := New(testConfig(t, defaults), Hooks{})
	m.SetCollectorForTesting(func(_ context.Context) (Snapshot, error) {
		return Snapshot{Timestamp: time.Now()}, nil
	})

	for range 10 {
		m.tickMetrics(context.Background())
	}
	assert.Len(t, m.History(0), 5)
}

func TestMonitorMetricsLoop(t *testing.T) {
	t.Parallel()

	ticks := make(chan Snapshot, 8)
	m := New(testConfig(t, config.BaseDefaults), Hooks{
		OnMetrics: func(s Snapshot) { ticks <- s },
	})
	m.SetCollectorForTesting(func(_ context.Context) (Snapshot, error) {
		return Snapshot{Timestamp: time.Now()}, nil
	})
	m.SetDetectorForTesting(func(_ context.Context) (ActiveGame, bool) {
		return ActiveGame{}, false
	})

	clock := clockwork.NewFakeClock()
	m.SetClockForTesting(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	// wait for all three loop tickers to be armed
	clock.BlockUntil(3)
	clock.Advance(time.Second)

	select {
	case <-ticks:
	case <-time.After(5 * time.Second):
		t.Fatal("metrics tick never fired")
	}
}

func TestMonitorGameTransitions(t *testing.T) {
	t.Parallel()

	var started, stopped []string
	m := New(testConfig(t, config.BaseDefaults), Hooks{
		OnGameStarted: func(g ActiveGame) { started = append(started, g.Name) },
		OnGameStopped: func(g ActiveGame) { stopped = append(stopped, g.Name) },
	})

	var current *ActiveGame
	m.SetDetectorForTesting(func(_ context.Context) (ActiveGame, bool) {
		if current == nil {
			return ActiveGame{}, false
		}
		return *current, true
	})

	ctx := context.Background()

	// nothing running
	m.tickGames(ctx)
	assert.Empty(t, started)

	// game starts
	current = &ActiveGame{Name: "Counter-Strike 2", Exe: "cs2.exe", PID: 4242}
	m.tickGames(ctx)
	assert.Equal(t, []string{"Counter-Strike 2"}, started)

	active, ok := m.ActiveGame()
	require.True(t, ok)
	assert.Equal(t, "Counter-Strike 2", active.Name)

	// still running, no duplicate notification
	m.tickGames(ctx)
	assert.Len(t, started, 1)

	// switch games in one poll
	current = &ActiveGame{Name: "Dota 2", Exe: "dota2.exe", PID: 4343}
	m.tickGames(ctx)
	assert.Equal(t, []string{"Counter-Strike 2", "Dota 2"}, started)
	assert.Equal(t, []string{"Counter-Strike 2"}, stopped)

	// game exits
	current = nil
	m.tickGames(ctx)
	assert.Equal(t, []string{"Counter-Strike 2", "Dota 2"}, stopped)

	_, ok = m.ActiveGame()
	assert.False(t, ok)
}
