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
	"errors"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models/requests"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/validation"
	"github.com/rs/zerolog/log"
)

func HandleSettings(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received settings request")

	resp := models.SettingsResponse{
		DebugLogging:       env.Config.DebugLogging(),
		MaxRisk:            env.Config.MaxRisk(),
		DryRun:             env.Config.DryRun(),
		RefreshRate:        env.Config.RefreshRate(),
		DisabledCategories: make([]string, 0),
		PingHosts:          make([]string, 0),
	}

	resp.DisabledCategories = append(resp.DisabledCategories, env.Config.DisabledCategories()...)
	resp.PingHosts = append(resp.PingHosts, env.Config.PingHosts()...)

	return resp, nil
}

func HandleSettingsUpdate(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received settings update request")

	if !env.IsLocal {
		return nil, ErrNotLocal
	}

	var params models.UpdateSettingsParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	if params.MaxRisk != nil && !env.Config.SetMaxRisk(*params.MaxRisk) {
		return nil, errors.New("invalid max risk tier")
	}
	if params.DryRun != nil {
		env.Config.SetDryRun(*params.DryRun)
	}
	if params.DebugLogging != nil {
		env.Config.SetDebugLogging(*params.DebugLogging)
	}

	if err := env.Config.Save(); err != nil {
		log.Error().Err(err).Msg("error saving settings")
		return nil, errors.New("error saving settings")
	}

	return NoContent{}, nil
}

func HandleSettingsReload(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received settings reload request")

	if err := env.Config.Load(); err != nil {
		log.Error().Err(err).Msg("error loading settings")
		return nil, errors.New("error loading settings")
	}

	return NoContent{}, nil
}
