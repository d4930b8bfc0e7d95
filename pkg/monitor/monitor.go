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

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Hooks are callbacks raised by the monitor loops. All of them are
// optional and are called outside the monitor's lock.
type Hooks struct {
	OnMetrics     func(Snapshot)
	OnGameStarted func(ActiveGame)
	OnGameStopped func(ActiveGame)
}

// Monitor runs the metrics, game detection and latency loops and holds
// their latest results.
type Monitor struct {
	cfg     *config.Instance
	clock   clockwork.Clock
	collect func(context.Context) (Snapshot, error)
	detect  func(context.Context) (ActiveGame, bool)
	prober  *Prober
	hooks   Hooks

	current    *Snapshot
	history    []Snapshot
	activeGame *ActiveGame
	mu         syncutil.RWMutex
}

func New(cfg *config.Instance, hooks Hooks) *Monitor {
	return &Monitor{
		cfg:     cfg,
		clock:   clockwork.NewRealClock(),
		collect: CollectSnapshot,
		detect:  DetectGame,
		prober:  NewProber(),
		hooks:   hooks,
	}
}

// SetClockForTesting swaps in a fake clock. Must be called before Start.
func (m *Monitor) SetClockForTesting(clock clockwork.Clock) {
	m.clock = clock
}

// SetCollectorForTesting swaps the metrics source. Must be called before
// Start.
func (m *Monitor) SetCollectorForTesting(collect func(context.Context) (Snapshot, error)) {
	m.collect = collect
}

// SetDetectorForTesting swaps the game detector. Must be called before
// Start.
func (m *Monitor) SetDetectorForTesting(detect func(context.Context) (ActiveGame, bool)) {
	m.detect = detect
}

// Prober exposes the latency prober, mainly so tests can stub its dialer.
func (m *Monitor) Prober() *Prober {
	return m.prober
}

// Start launches the poll loops. They stop when ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go m.metricsLoop(ctx)
	go m.gameLoop(ctx)
	go m.pingLoop(ctx)
}

func (m *Monitor) metricsLoop(ctx context.Context) {
	ticker := m.clock.NewTicker(m.cfg.MetricsInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.tickMetrics(ctx)
		}
	}
}

func (m *Monitor) tickMetrics(ctx context.Context) {
	snap, err := m.collect(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("metrics collection failed")
		return
	}

	m.mu.Lock()
	m.current = &snap
	m.history = append(m.history, snap)
	if size := m.cfg.HistorySize(); len(m.history) > size {
		m.history = m.history[len(m.history)-size:]
	}
	m.mu.Unlock()

	if m.hooks.OnMetrics != nil {
		m.hooks.OnMetrics(snap)
	}
}

func (m *Monitor) gameLoop(ctx context.Context) {
	ticker := m.clock.NewTicker(m.cfg.GamePollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.tickGames(ctx)
		}
	}
}

func (m *Monitor) tickGames(ctx context.Context) {
	game, running := m.detect(ctx)

	m.mu.Lock()
	previous := m.activeGame
	var started, stopped *ActiveGame
	switch {
	case running && previous == nil:
		m.activeGame = &game
		started = &game
	case running && previous.Name != game.Name:
		m.activeGame = &game
		stopped = previous
		started = &game
	case !running && previous != nil:
		m.activeGame = nil
		stopped = previous
	}
	m.mu.Unlock()

	if stopped != nil {
		log.Info().Str("game", stopped.Name).Msg("game stopped")
		if m.hooks.OnGameStopped != nil {
			m.hooks.OnGameStopped(*stopped)
		}
	}
	if started != nil {
		log.Info().Str("game", started.Name).Str("exe", started.Exe).Msg("game detected")
		if m.hooks.OnGameStarted != nil {
			m.hooks.OnGameStarted(*started)
		}
	}
}

func (m *Monitor) pingLoop(ctx context.Context) {
	ticker := m.clock.NewTicker(m.cfg.PingInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.prober.Probe(ctx, m.cfg.PingHosts())
		}
	}
}

// Current returns the latest snapshot, if one has been collected yet.
func (m *Monitor) Current() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Snapshot{}, false
	}
	return *m.current, true
}

// History returns a copy of the snapshot ring, oldest first, capped at
// limit when limit is positive.
func (m *Monitor) History(limit int) []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.history
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]Snapshot, len(history))
	copy(out, history)
	return out
}

// ActiveGame returns the currently detected game, if any.
func (m *Monitor) ActiveGame() (ActiveGame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.activeGame == nil {
		return ActiveGame{}, false
	}
	return *m.activeGame, true
}

// NetworkStats returns latency statistics over the recent probe window.
func (m *Monitor) NetworkStats() NetworkStats {
	return m.prober.Stats()
}
