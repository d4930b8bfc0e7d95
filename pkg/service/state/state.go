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

package state

import (
	"context"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/helpers/syncutil"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
)

// State holds the runtime state of the FPSTune service.
//
// LOCKING RULES: the mu mutex protects all mutable fields. Never send to
// the notifications channel while holding the lock. Pattern: lock, modify,
// copy what's needed, unlock, then notify.
type State struct {
	platform      platforms.Platform
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	lastReport    *optimizer.Report
	Notifications chan<- models.Notification
	startedAt     time.Time
	mu            syncutil.RWMutex
	stopService   bool
}

func NewState(platform platforms.Platform) (state *State, notificationCh <-chan models.Notification) {
	// Buffered so metrics ticks never block the monitor when no client is
	// draining notifications.
	ns := make(chan models.Notification, 500)
	ctx, ctxCancelFunc := context.WithCancel(context.Background())
	return &State{
		platform:      platform,
		Notifications: ns,
		ctx:           ctx,
		ctxCancelFunc: ctxCancelFunc,
		startedAt:     time.Now(),
	}, ns
}

func (s *State) StopService() {
	s.mu.Lock()
	s.stopService = true
	s.mu.Unlock()
	s.ctxCancelFunc()
}

func (s *State) ShouldStopService() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopService
}

func (s *State) GetContext() context.Context {
	return s.ctx
}

func (s *State) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}

// SetLastReport records the most recent apply or revert outcome.
//
//nolint:gocritic // report struct copied for immutability
func (s *State) SetLastReport(report optimizer.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReport = &report
}

func (s *State) LastReport() (optimizer.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastReport == nil {
		return optimizer.Report{}, false
	}
	return *s.lastReport, true
}

// PendingRestart reports whether the last applied batch included tweaks
// that only take effect after a reboot.
func (s *State) PendingRestart() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport != nil && s.lastReport.RequiresRestart && !s.lastReport.DryRun
}
