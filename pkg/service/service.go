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

package service

import (
	"fmt"
	"os"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/api"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/notifications"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/FPSTuneProject/fpstune-core/pkg/helpers"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/FPSTuneProject/fpstune-core/pkg/service/state"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func setupEnvironment(pl platforms.Platform, cfg *config.Instance) error {
	log.Info().Msg("creating platform directories")
	dirs := []string{
		helpers.ConfigDir(pl),
		pl.Settings().TempDir,
		helpers.DataDir(pl),
		helpers.BackupsDir(pl, cfg),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func monitorHooks(st *state.State, db *historydb.HistoryDB) monitor.Hooks {
	return monitor.Hooks{
		OnMetrics: func(snapshot monitor.Snapshot) {
			notifications.MetricsUpdated(st.Notifications, snapshot)
		},
		OnGameStarted: func(game monitor.ActiveGame) {
			log.Info().Str("game", game.Name).Int32("pid", game.PID).Msg("game started")
			gameStarted(st, db, game)
		},
		OnGameStopped: func(game monitor.ActiveGame) {
			log.Info().Str("game", game.Name).Msg("game stopped")
			gameStopped(st, db, game)
		},
	}
}

func gameStarted(st *state.State, db *historydb.HistoryDB, game monitor.ActiveGame) {
	notifications.GameStarted(st.Notifications, gameInfo(game))
	if _, err := db.StartGameSession(game.Name, game.Exe, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to record game session start")
	}
}

func gameStopped(st *state.State, db *historydb.HistoryDB, game monitor.ActiveGame) {
	notifications.GameStopped(st.Notifications, gameInfo(game))
	if err := db.EndGameSession(game.Name, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to record game session end")
	}
}

// Start brings the whole service up: history database, optimizer engine,
// metrics monitor, config watcher and the API server. It returns a stop
// function that blocks until cleanup has finished.
func Start(
	pl platforms.Platform,
	cfg *config.Instance,
) (stop func() error, done <-chan struct{}, err error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	st, ns := state.NewState(pl)

	if err := setupEnvironment(pl, cfg); err != nil {
		log.Error().Err(err).Msg("error setting up environment")
		return nil, nil, err
	}

	log.Info().Msg("running platform pre start")
	if err := pl.StartPre(cfg); err != nil {
		log.Error().Err(err).Msg("platform start pre error")
		return nil, nil, fmt.Errorf("platform start pre failed: %w", err)
	}

	log.Info().Msg("opening history database")
	db, err := historydb.OpenHistoryDB(st.GetContext(), pl)
	if err != nil {
		log.Error().Err(err).Msg("error opening history database")
		return nil, nil, err
	}

	// close any play sessions left open by an unclean shutdown
	if err := db.CloseHangingGameSessions(); err != nil {
		log.Warn().Err(err).Msg("error closing hanging game sessions")
	}

	store := optimizer.NewBackupStore(afero.NewOsFs(), helpers.BackupsDir(pl, cfg))
	engine := optimizer.NewEngine(pl, store)

	log.Info().Msg("starting metrics monitor")
	mon := monitor.New(cfg, monitorHooks(st, db))
	mon.Start(st.GetContext())

	log.Info().Msg("starting config file watcher")
	if err := watchConfig(st.GetContext(), cfg); err != nil {
		log.Warn().Err(err).Msg("config watcher failed to start, hot reload disabled")
	}

	log.Info().Msg("starting API service")
	go api.Start(api.Env{
		Platform:  pl,
		Config:    cfg,
		State:     st,
		HistoryDB: db,
		Engine:    engine,
		Backups:   store,
		Monitor:   mon,
	}, ns)

	log.Info().Msg("running platform post start")
	if err := pl.StartPost(cfg); err != nil {
		log.Error().Err(err).Msg("platform post start error")
		return nil, nil, fmt.Errorf("platform start post failed: %w", err)
	}
	log.Info().Msg("service fully initialized")

	doneCh := make(chan struct{})
	go func() {
		<-st.GetContext().Done()
		log.Info().Msg("service context cancelled, running cleanup")

		if stopErr := pl.Stop(); stopErr != nil {
			log.Warn().Msgf("error stopping platform: %s", stopErr)
		}
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing history database")
		}

		log.Info().Msg("service cleanup completed")
		close(doneCh)
	}()

	stop = func() error {
		st.StopService()
		<-doneCh
		return nil
	}
	done = doneCh
	return stop, done, nil
}

func gameInfo(game monitor.ActiveGame) models.GameInfo {
	return models.GameInfo{Name: game.Name, Exe: game.Exe, PID: game.PID}
}
