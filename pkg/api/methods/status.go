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

package methods

import (
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models/requests"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/rs/zerolog/log"
)

// NoContent is returned by methods that have nothing to report on success.
type NoContent struct{}

func HandleStatus(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received status request")

	resp := models.StatusResponse{
		Platform:       env.Platform.ID(),
		Version:        config.AppVersion,
		DeviceID:       env.Config.DeviceID(),
		PendingRestart: env.State.PendingRestart(),
	}

	if env.Monitor != nil {
		if game, ok := env.Monitor.ActiveGame(); ok {
			resp.ActiveGame = &models.GameInfo{
				Name: game.Name,
				Exe:  game.Exe,
				PID:  game.PID,
			}
		}
	}

	return resp, nil
}

func HandleHardware(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received hardware request")
	return monitor.ReadHardwareInfo(env.State.GetContext()), nil
}

func HandleVersion(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received version request")
	return models.VersionResponse{
		Version:  config.AppVersion,
		Platform: env.Platform.ID(),
	}, nil
}
