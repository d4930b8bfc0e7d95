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

package notifications

import (
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/rs/zerolog/log"
)

// send never blocks the caller. The channel is buffered by the service
// state; if the broadcaster stalls and the buffer fills, the notification
// is dropped and logged.
func send(ns chan<- models.Notification, n models.Notification) {
	select {
	case ns <- n:
	default:
		log.Warn().Str("method", n.Method).Msg("notification channel full, dropping")
	}
}

//nolint:gocritic // snapshot copied for broadcast payload
func MetricsUpdated(ns chan<- models.Notification, payload monitor.Snapshot) {
	send(ns, models.Notification{
		Method: models.NotificationMetricsUpdated,
		Params: payload,
	})
}

func GameStarted(ns chan<- models.Notification, payload models.GameInfo) {
	send(ns, models.Notification{
		Method: models.NotificationGameStarted,
		Params: payload,
	})
}

func GameStopped(ns chan<- models.Notification, payload models.GameInfo) {
	send(ns, models.Notification{
		Method: models.NotificationGameStopped,
		Params: payload,
	})
}

//nolint:gocritic // report struct copied for broadcast payload
func TweaksApplied(ns chan<- models.Notification, payload optimizer.Report) {
	send(ns, models.Notification{
		Method: models.NotificationTweaksApplied,
		Params: payload,
	})
}

//nolint:gocritic // report struct copied for broadcast payload
func TweaksReverted(ns chan<- models.Notification, payload optimizer.Report) {
	send(ns, models.Notification{
		Method: models.NotificationTweaksReverted,
		Params: payload,
	})
}
