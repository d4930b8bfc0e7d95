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
	"testing"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStopService(t *testing.T) {
	t.Parallel()

	st, _ := NewState(nil)
	assert.False(t, st.ShouldStopService())

	st.StopService()
	assert.True(t, st.ShouldStopService())

	select {
	case <-st.GetContext().Done():
	default:
		t.Fatal("expected context to be cancelled")
	}
}

func TestStateLastReport(t *testing.T) {
	t.Parallel()

	st, _ := NewState(nil)
	t.Cleanup(st.StopService)

	_, ok := st.LastReport()
	assert.False(t, ok)
	assert.False(t, st.PendingRestart())

	st.SetLastReport(optimizer.Report{Applied: 3, RequiresRestart: true})

	report, ok := st.LastReport()
	require.True(t, ok)
	assert.Equal(t, 3, report.Applied)
	assert.True(t, st.PendingRestart())
}

func TestStatePendingRestartIgnoresDryRun(t *testing.T) {
	t.Parallel()

	st, _ := NewState(nil)
	t.Cleanup(st.StopService)

	st.SetLastReport(optimizer.Report{RequiresRestart: true, DryRun: true})
	assert.False(t, st.PendingRestart())
}

func TestStateNotificationsBuffered(t *testing.T) {
	t.Parallel()

	st, ns := NewState(nil)
	t.Cleanup(st.StopService)

	// sends must not block with no consumer attached
	for range 10 {
		st.Notifications <- models.Notification{Method: models.NotificationMetricsUpdated}
	}
	assert.Len(t, ns, 10)
}
