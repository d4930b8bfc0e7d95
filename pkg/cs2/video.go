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

package cs2

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// videoSettings is the per-user video.txt table, favoring frame rate over
// fidelity.
var videoSettings = []setting{
	{"setting.gpu_mem_priority", "1"},
	{"setting.mat_vsync", "0"},
	{"setting.fps_max", "0"},
	{"setting.mat_queue_mode", "2"},
	{"setting.engine_low_latency_sleep_after_client_tick", "false"},
	{"setting.defaultres", "1920"},
	{"setting.defaultresheight", "1080"},
	{"setting.mat_monitorgamma", "2.2"},
	{"setting.mat_monitorgamma_tv_enabled", "0"},
	{"setting.r_dynamic", "0"},
	{"setting.r_drawtracers_firstperson", "1"},
	{"setting.r_eyegloss", "0"},
	{"setting.r_eyemove", "0"},
	{"setting.r_eyeshift_x", "0"},
	{"setting.r_eyeshift_y", "0"},
	{"setting.r_eyeshift_z", "0"},
	{"setting.r_eyesize", "0"},
}

// RenderVideoConfig builds the video.txt key-value block in the game's own
// format.
func RenderVideoConfig() string {
	var sb strings.Builder
	sb.WriteString("\"VideoConfig\"\n{\n")
	for _, s := range videoSettings {
		sb.WriteString("\t\"" + s.key + "\"\t\t\"" + s.value + "\"\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// WriteVideoConfigs writes video.txt into each per-user cfg directory. The
// game's own file is renamed to video.txt.backup once, so the player can
// always get back to their old settings.
func WriteVideoConfigs(fs afero.Fs, cfgDirs []string) ([]string, error) {
	var written []string
	content := RenderVideoConfig()

	for _, dir := range cfgDirs {
		path := filepath.Join(dir, "video.txt")
		backupPath := path + ".backup"

		exists, _ := afero.Exists(fs, path)
		backupExists, _ := afero.Exists(fs, backupPath)
		if exists && !backupExists {
			if err := fs.Rename(path, backupPath); err != nil {
				return written, fmt.Errorf("failed to back up video.txt: %w", err)
			}
			log.Info().Str("path", backupPath).Msg("backed up existing video.txt")
		}

		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil { //nolint:gosec // game config
			return written, fmt.Errorf("failed to write video.txt: %w", err)
		}
		written = append(written, path)
	}

	return written, nil
}
