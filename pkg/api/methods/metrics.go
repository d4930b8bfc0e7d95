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

var ErrMonitorDisabled = errors.New("metrics monitor is not running")

func HandleMetricsCurrent(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received metrics current request")

	if env.Monitor == nil {
		return nil, ErrMonitorDisabled
	}

	snapshot, ok := env.Monitor.Current()
	if !ok {
		return nil, errors.New("no metrics collected yet")
	}

	return models.MetricsCurrentResponse{
		Metrics: snapshot,
		Network: env.Monitor.NetworkStats(),
	}, nil
}

func HandleMetricsHistory(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received metrics history request")

	if env.Monitor == nil {
		return nil, ErrMonitorDisabled
	}

	var params models.MetricsHistoryParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	return models.MetricsHistoryResponse{
		Entries: env.Monitor.History(limit),
	}, nil
}

func HandleMetricsNetwork(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received network stats request")

	if env.Monitor == nil {
		return nil, ErrMonitorDisabled
	}

	return env.Monitor.NetworkStats(), nil
}
