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
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const reloadDebounce = 250 * time.Millisecond

// watchConfig reloads the config instance when its file changes on disk.
// Editors replace rather than rewrite files, so the parent directory is
// watched and events are filtered by name.
func watchConfig(ctx context.Context, cfg *config.Instance) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	cfgPath := cfg.Path()
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		closeErr := watcher.Close()
		if closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close config watcher")
		}
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go func() {
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("failed to close config watcher")
			}
		}()

		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != cfgPath {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				// coalesce the burst of events an editor save produces
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					log.Info().Msg("config file changed, reloading")
					if loadErr := cfg.Load(); loadErr != nil {
						log.Error().Err(loadErr).Msg("error reloading config")
					}
				})
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(watchErr).Msg("config watcher error")
			}
		}
	}()

	return nil
}
