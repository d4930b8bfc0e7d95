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
	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/rs/zerolog/log"
)

func historyLimit(params models.HistoryParams) int {
	if params.Limit != nil {
		return *params.Limit
	}
	return 0
}

func HandleHistory(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received history request")

	var params models.HistoryParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	sessions, err := env.HistoryDB.RecentSessions(historyLimit(params))
	if err != nil {
		log.Error().Err(err).Msg("error getting history")
		return nil, errors.New("error getting history")
	}

	if sessions == nil {
		sessions = make([]historydb.Session, 0)
	}

	return models.HistoryResponse{Sessions: sessions}, nil
}

func HandleHistoryTweaks(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received history tweaks request")

	var params models.HistoryTweaksParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	tweaks, err := env.HistoryDB.SessionTweaks(params.SessionID)
	if err != nil {
		log.Error().Err(err).Msg("error getting session tweaks")
		return nil, errors.New("error getting session tweaks")
	}

	return models.HistoryTweaksResponse{Tweaks: tweaks}, nil
}

func HandleHistoryGames(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received game history request")

	var params models.HistoryParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	sessions, err := env.HistoryDB.RecentGameSessions(historyLimit(params))
	if err != nil {
		log.Error().Err(err).Msg("error getting game history")
		return nil, errors.New("error getting game history")
	}

	return models.HistoryGamesResponse{Sessions: sessions}, nil
}
