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

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/steam"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type setting struct {
	key   string
	value string
}

// Console variable tables for competitive play. Order matters only for
// readability of the generated file.
var (
	networkSettings = []setting{
		{"rate", "786432"},
		{"cl_cmdrate", "128"},
		{"cl_updaterate", "128"},
		{"cl_interp", "0"},
		{"cl_interp_ratio", "1"},
		{"cl_lagcompensation", "1"},
		{"cl_predict", "1"},
		{"cl_predictweapons", "1"},
		{"net_client_steamdatagram_enable_override", "1"},
		{"net_steamcnx_allowrelay", "0"},
	}

	audioSettings = []setting{
		{"snd_musicvolume", "0.0"},
		{"snd_mixahead", "0.025"},
		{"snd_headphone_pan_exponent", "2"},
		{"snd_hwcompat", "0"},
		{"snd_pitchquality", "1"},
		{"snd_disable_mixer_duck", "1"},
		{"voice_enable", "1"},
		{"voice_scale", "1.0"},
		{"snd_deathcamera", "0"},
	}

	performanceSettings = []setting{
		{"fps_max", "0"},
		{"cl_forcepreload", "1"},
		{"mat_queue_mode", "2"},
		{"engine_low_latency_sleep_after_client_tick", "false"},
		{"mat_vsync", "0"},
	}

	mouseSettings = []setting{
		{"m_rawinput", "1"},
		{"m_mouseaccel1", "0"},
		{"m_mouseaccel2", "0"},
		{"m_mousespeed", "0"},
	}

	crosshairSettings = []setting{
		{"cl_crosshair_recoil", "0"},
		{"cl_crosshair_sniper_width", "1"},
		{"cl_crosshairalpha", "255"},
		{"cl_crosshaircolor", "1"},
		{"cl_crosshairdot", "0"},
		{"cl_crosshairgap", "-1"},
		{"cl_crosshairsize", "2"},
		{"cl_crosshairstyle", "4"},
		{"cl_crosshairthickness", "0"},
	}

	radarSettings = []setting{
		{"cl_radar_always_centered", "0"},
		{"cl_radar_scale", "0.3"},
		{"cl_hud_radar_scale", "1.15"},
		{"cl_radar_icon_scale_min", "1"},
	}

	hudSettings = []setting{
		{"cl_hud_color", "1"},
		{"cl_hud_healthammo_style", "0"},
		{"cl_hud_playercount_showcount", "1"},
		{"cl_hud_playercount_pos", "0"},
	}

	viewmodelSettings = []setting{
		{"viewmodel_fov", "68"},
		{"viewmodel_offset_x", "2.5"},
		{"viewmodel_offset_y", "0"},
		{"viewmodel_offset_z", "-1.5"},
		{"viewmodel_presetpos", "3"},
	}

	bindSettings = []setting{
		{`bind "w"`, "+forward"},
		{`bind "s"`, "+back"},
		{`bind "a"`, "+moveleft"},
		{`bind "d"`, "+moveright"},
		{`bind "SPACE"`, "+jump"},
		{`bind "CTRL"`, "+duck"},
		{`bind "SHIFT"`, "+speed"},
		{`bind "mouse1"`, "+attack"},
		{`bind "mouse2"`, "+attack2"},
		{`bind "r"`, "+reload"},
		{`bind "g"`, "drop"},
		{`bind "b"`, "buymenu"},
		{`bind "m"`, "teammenu"},
		{`bind "TAB"`, "+showscores"},
	}
)

func writeSection(sb *strings.Builder, title string, settings []setting) {
	sb.WriteString("// === " + title + " ===\n")
	for _, s := range settings {
		sb.WriteString(s.key + ` "` + s.value + "\"\n")
	}
	sb.WriteString("\n")
}

// RenderAutoexec builds the autoexec.cfg contents, appending any extra
// lines from the config file verbatim.
func RenderAutoexec(extra []string) string {
	var sb strings.Builder
	sb.WriteString("// CS2 competitive performance config\n")
	sb.WriteString("// Generated by FPSTune Core\n\n")

	writeSection(&sb, "NETWORK SETTINGS", networkSettings)
	writeSection(&sb, "AUDIO SETTINGS", audioSettings)
	writeSection(&sb, "PERFORMANCE SETTINGS", performanceSettings)
	writeSection(&sb, "MOUSE SETTINGS", mouseSettings)
	writeSection(&sb, "CROSSHAIR SETTINGS", crosshairSettings)
	writeSection(&sb, "RADAR SETTINGS", radarSettings)
	writeSection(&sb, "HUD SETTINGS", hudSettings)
	writeSection(&sb, "VIEWMODEL SETTINGS", viewmodelSettings)
	writeSection(&sb, "BIND SETTINGS", bindSettings)

	if len(extra) > 0 {
		sb.WriteString("// === CUSTOM SETTINGS ===\n")
		for _, line := range extra {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("echo \"FPSTune CS2 config loaded\"\n")
	return sb.String()
}

// CfgDir resolves the game's cfg directory under its install dir, probing
// both directory layouts the game has shipped with.
func CfgDir(fs afero.Fs, game steam.Game) string {
	candidates := []string{
		filepath.Join(game.InstallDir, "game", "csgo", "cfg"),
		filepath.Join(game.InstallDir, "csgo", "cfg"),
	}
	for _, dir := range candidates {
		if info, err := fs.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return candidates[0]
}

// WriteAutoexec writes autoexec.cfg into dir, preserving any existing file
// as autoexec.cfg.backup the first time. Returns the written path.
func WriteAutoexec(fs afero.Fs, dir string, cfg *config.Instance) (string, error) {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create cfg directory: %w", err)
	}

	path := filepath.Join(dir, "autoexec.cfg")
	backupPath := path + ".backup"

	exists, _ := afero.Exists(fs, path)
	backupExists, _ := afero.Exists(fs, backupPath)
	if exists && !backupExists {
		if err := fs.Rename(path, backupPath); err != nil {
			return "", fmt.Errorf("failed to back up existing autoexec: %w", err)
		}
		log.Info().Str("path", backupPath).Msg("backed up existing autoexec.cfg")
	}

	content := RenderAutoexec(cfg.AutoexecExtra())
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil { //nolint:gosec // game config
		return "", fmt.Errorf("failed to write autoexec.cfg: %w", err)
	}
	return path, nil
}
