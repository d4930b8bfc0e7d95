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
	"github.com/FPSTuneProject/fpstune-core/pkg/api/notifications"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/validation"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/rs/zerolog/log"
)

// ErrNotLocal rejects system-changing methods from remote clients.
var ErrNotLocal = errors.New("method requires a local client")

func HandleOptimizePreview(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received optimize preview request")

	tweaks := env.Engine.Selected(env.Config)
	return models.OptimizePreviewResponse{
		MaxRisk:    env.Config.MaxRisk(),
		Tweaks:     tweaks,
		Categories: optimizer.Categories(optimizer.CatalogFor(env.Platform.ID())),
	}, nil
}

func HandleOptimizeApply(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received optimize apply request")

	if !env.IsLocal {
		return nil, ErrNotLocal
	}

	var params models.OptimizeApplyParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	if params.MaxRisk != nil && !env.Config.SetMaxRisk(*params.MaxRisk) {
		return nil, errors.New("invalid max risk tier")
	}
	if params.DryRun != nil {
		env.Config.SetDryRun(*params.DryRun)
	}

	report, err := env.Engine.Apply(env.State.GetContext(), env.Config)
	if err != nil {
		log.Error().Err(err).Msg("error applying tweaks")
		return nil, errors.New("error applying tweaks")
	}

	recordReport(env, report)
	if !report.DryRun {
		notifications.TweaksApplied(env.State.Notifications, report)
	}

	return report, nil
}

func HandleOptimizeRevert(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received optimize revert request")

	if !env.IsLocal {
		return nil, ErrNotLocal
	}

	var params models.OptimizeRevertParams
	if err := validation.ValidateOptional(env.Params, &params); err != nil {
		return nil, err
	}

	report, err := env.Engine.Revert(env.State.GetContext(), params.BackupPath)
	if err != nil {
		if errors.Is(err, optimizer.ErrNoBackups) {
			return nil, err
		}
		log.Error().Err(err).Msg("error reverting tweaks")
		return nil, errors.New("error reverting tweaks")
	}

	recordReport(env, report)
	notifications.TweaksReverted(env.State.Notifications, report)

	return report, nil
}

func HandleOptimizeBackups(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received backups request")

	paths, err := env.Backups.List()
	if err != nil {
		log.Error().Err(err).Msg("error listing backups")
		return nil, errors.New("error listing backups")
	}

	return models.BackupsResponse{Paths: paths}, nil
}

//nolint:gocritic // report struct copied for DB insertion
func recordReport(env requests.RequestEnv, report optimizer.Report) {
	env.State.SetLastReport(report)

	if env.HistoryDB == nil || report.DryRun {
		return
	}
	if _, err := env.HistoryDB.AddReport(env.Platform.ID(), report); err != nil {
		log.Warn().Err(err).Msg("failed to record session in history database")
	}
}
