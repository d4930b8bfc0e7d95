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
	"github.com/FPSTuneProject/fpstune-core/pkg/cs2"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/FPSTuneProject/fpstune-core/pkg/steam"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func HandleSteamGames(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received steam games request")

	root, err := steam.FindRoot(env.Config)
	if err != nil {
		return nil, err
	}

	return models.SteamGamesResponse{
		Root:  root,
		Games: steam.ScanGames(root),
	}, nil
}

func HandleCS2Config(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received cs2 config request")

	if !env.IsLocal {
		return nil, ErrNotLocal
	}

	root, err := steam.FindRoot(env.Config)
	if err != nil {
		return nil, err
	}

	game, ok := steam.FindGame(root, steam.CS2AppID)
	if !ok {
		return nil, errors.New("cs2 is not installed")
	}

	fs := afero.NewOsFs()

	cfgDir := cs2.CfgDir(fs, game)
	autoexecPath, err := cs2.WriteAutoexec(fs, cfgDir, env.Config)
	if err != nil {
		log.Error().Err(err).Msg("error writing autoexec")
		return nil, errors.New("error writing autoexec")
	}

	videoPaths, err := cs2.WriteVideoConfigs(fs, steam.UserCfgDirs(root, steam.CS2AppID))
	if err != nil {
		log.Error().Err(err).Msg("error writing video configs")
		return nil, errors.New("error writing video configs")
	}

	return models.CS2ConfigResponse{
		AutoexecPath:  autoexecPath,
		VideoPaths:    videoPaths,
		LaunchOptions: steam.CS2LaunchOptions(env.Config),
	}, nil
}

func HandleCS2LaunchOptions(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received cs2 launch options request")

	var params models.CS2LaunchOptionsParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	opts := steam.CS2LaunchOptions(env.Config)
	resp := models.CS2LaunchOptionsResponse{Options: opts}

	if params.Apply {
		if !env.IsLocal {
			return nil, ErrNotLocal
		}
		err := steam.SetLaunchOptions(env.State.GetContext(), env.Platform, steam.CS2AppID, opts)
		if errors.Is(err, platforms.ErrNotSupported) {
			return nil, errors.New("launch options can only be written on windows")
		}
		if err != nil {
			log.Error().Err(err).Msg("error writing launch options")
			return nil, errors.New("error writing launch options")
		}
		resp.Applied = true
	}

	return resp, nil
}
