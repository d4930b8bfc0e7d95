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
	"path/filepath"
	"testing"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/steam"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, defaults config.Values) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir(), defaults)
	require.NoError(t, err)
	return cfg
}

func TestRenderAutoexec(t *testing.T) {
	t.Parallel()

	content := RenderAutoexec(nil)

	assert.Contains(t, content, "// === NETWORK SETTINGS ===")
	assert.Contains(t, content, `rate "786432"`)
	assert.Contains(t, content, `cl_updaterate "128"`)
	assert.Contains(t, content, `snd_musicvolume "0.0"`)
	assert.Contains(t, content, `m_rawinput "1"`)
	assert.Contains(t, content, `cl_crosshairstyle "4"`)
	assert.Contains(t, content, `viewmodel_fov "68"`)
	assert.Contains(t, content, `bind "SPACE" "+jump"`)
	assert.NotContains(t, content, "CUSTOM SETTINGS")
}

func TestRenderAutoexecExtraLines(t *testing.T) {
	t.Parallel()

	content := RenderAutoexec([]string{`sensitivity "1.2"`, `zoom_sensitivity_ratio "1"`})

	assert.Contains(t, content, "// === CUSTOM SETTINGS ===")
	assert.Contains(t, content, `sensitivity "1.2"`)
	assert.Contains(t, content, `zoom_sensitivity_ratio "1"`)
}

func TestWriteAutoexec(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg := testConfig(t, config.BaseDefaults)
	dir := "/games/cs2/game/csgo/cfg"

	path, err := WriteAutoexec(fs, dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "autoexec.cfg"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fps_max "0"`)
}

func TestWriteAutoexecBacksUpExisting(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg := testConfig(t, config.BaseDefaults)
	dir := "/games/cs2/game/csgo/cfg"
	path := filepath.Join(dir, "autoexec.cfg")

	require.NoError(t, afero.WriteFile(fs, path, []byte("// mine\n"), 0o644))

	_, err := WriteAutoexec(fs, dir, cfg)
	require.NoError(t, err)

	backup, err := afero.ReadFile(fs, path+".backup")
	require.NoError(t, err)
	assert.Equal(t, "// mine\n", string(backup))

	// a second write must not clobber the original backup
	_, err = WriteAutoexec(fs, dir, cfg)
	require.NoError(t, err)
	backup, err = afero.ReadFile(fs, path+".backup")
	require.NoError(t, err)
	assert.Equal(t, "// mine\n", string(backup))
}

func TestCfgDirPrefersNewLayout(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	game := steam.Game{InstallDir: "/games/cs2"}

	require.NoError(t, fs.MkdirAll("/games/cs2/game/csgo/cfg", 0o750))
	assert.Equal(t, filepath.Join("/games/cs2", "game", "csgo", "cfg"), CfgDir(fs, game))
}

func TestCfgDirFallsBackToOldLayout(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	game := steam.Game{InstallDir: "/games/cs2"}

	require.NoError(t, fs.MkdirAll("/games/cs2/csgo/cfg", 0o750))
	assert.Equal(t, filepath.Join("/games/cs2", "csgo", "cfg"), CfgDir(fs, game))
}

func TestRenderVideoConfig(t *testing.T) {
	t.Parallel()

	content := RenderVideoConfig()
	assert.True(t, len(content) > 0)
	assert.Contains(t, content, "\"VideoConfig\"")
	assert.Contains(t, content, "\"setting.mat_vsync\"\t\t\"0\"")
	assert.Contains(t, content, "\"setting.fps_max\"\t\t\"0\"")
}

func TestWriteVideoConfigs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dirs := []string{
		"/steam/userdata/111/730/local/cfg",
		"/steam/userdata/222/730/local/cfg",
	}
	for _, dir := range dirs {
		require.NoError(t, fs.MkdirAll(dir, 0o750))
	}

	// user 111 already has a video.txt
	existing := filepath.Join(dirs[0], "video.txt")
	require.NoError(t, afero.WriteFile(fs, existing, []byte("old"), 0o644))

	written, err := WriteVideoConfigs(fs, dirs)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	backup, err := afero.ReadFile(fs, existing+".backup")
	require.NoError(t, err)
	assert.Equal(t, "old", string(backup))

	data, err := afero.ReadFile(fs, filepath.Join(dirs[1], "video.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "VideoConfig")
}
