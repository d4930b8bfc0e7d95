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

package steam

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

// CS2AppID is Counter-Strike 2's Steam app ID.
const CS2AppID = 730

var ErrSteamNotFound = errors.New("steam installation not found")

// Game is one installed Steam app found in a library manifest.
type Game struct {
	Name       string `json:"name"`
	InstallDir string `json:"installDir"`
	LibraryDir string `json:"libraryDir"`
	AppID      int    `json:"appId"`
}

// FindRoot locates the Steam root directory. A configured install_dir wins,
// then per-OS candidate locations are probed.
func FindRoot(cfg *config.Instance) (string, error) {
	if dir := cfg.SteamInstallDir(); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		log.Warn().Str("dir", dir).Msg("configured steam install dir does not exist")
	}

	for _, candidate := range rootCandidates() {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrSteamNotFound
}

// steamAppsDir resolves the steamapps directory under a Steam or library
// root, tolerating the mixed-case spelling older installs use.
func steamAppsDir(root string) string {
	for _, candidate := range []string{"steamapps", "SteamApps"} {
		path := filepath.Join(root, candidate)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return filepath.Join(root, "steamapps")
}

// libraryDirs returns every steamapps directory registered in
// libraryfolders.vdf, starting with the main one.
func libraryDirs(root string) []string {
	mainDir := steamAppsDir(root)
	dirs := []string{mainDir}

	//nolint:gosec // reads Steam config files for library scanning
	f, err := os.Open(filepath.Join(mainDir, "libraryfolders.vdf"))
	if err != nil {
		log.Debug().Err(err).Msg("failed to open libraryfolders.vdf")
		return dirs
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse libraryfolders.vdf")
		return dirs
	}

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		return dirs
	}
	for _, v := range lfs {
		ls, ok := v.(map[string]any)
		if !ok {
			continue
		}
		libraryPath, ok := ls["path"].(string)
		if !ok {
			continue
		}
		libDir := steamAppsDir(libraryPath)
		if libDir == mainDir {
			continue
		}
		dirs = append(dirs, libDir)
	}
	return dirs
}

func parseManifest(path string) (Game, bool) {
	//nolint:gosec // reads Steam manifest files for library scanning
	f, err := os.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to open app manifest")
		return Game{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing app manifest")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse app manifest")
		return Game{}, false
	}

	appState, ok := m["AppState"].(map[string]any)
	if !ok {
		return Game{}, false
	}
	appIDStr, ok := appState["appid"].(string)
	if !ok {
		return Game{}, false
	}
	appID, err := strconv.Atoi(appIDStr)
	if err != nil {
		return Game{}, false
	}
	name, ok := appState["name"].(string)
	if !ok {
		return Game{}, false
	}
	installDir, _ := appState["installdir"].(string)

	return Game{AppID: appID, Name: name, InstallDir: installDir}, true
}

// ScanGames lists every installed app across all Steam libraries, sorted by
// name. Unreadable libraries and manifests are skipped.
func ScanGames(root string) []Game {
	var games []Game
	seen := make(map[int]bool)

	for _, dir := range libraryDirs(root) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("failed to list steamapps dir")
			continue
		}
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), "appmanifest_") ||
				!strings.HasSuffix(e.Name(), ".acf") {
				continue
			}
			game, ok := parseManifest(filepath.Join(dir, e.Name()))
			if !ok || seen[game.AppID] {
				continue
			}
			seen[game.AppID] = true
			game.LibraryDir = dir
			if game.InstallDir != "" {
				game.InstallDir = filepath.Join(dir, "common", game.InstallDir)
			}
			games = append(games, game)
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Name < games[j].Name
	})
	return games
}

// FindGame looks up a single installed app by ID.
func FindGame(root string, appID int) (Game, bool) {
	for _, game := range ScanGames(root) {
		if game.AppID == appID {
			return game, true
		}
	}
	return Game{}, false
}

// UserCfgDirs returns the per-user local config directories for an app,
// where per-user files like CS2's video.txt live.
func UserCfgDirs(root string, appID int) []string {
	userdata := filepath.Join(root, "userdata")
	users, err := os.ReadDir(userdata)
	if err != nil {
		log.Debug().Err(err).Msg("no steam userdata directory")
		return nil
	}

	var dirs []string
	for _, u := range users {
		if !u.IsDir() {
			continue
		}
		dir := filepath.Join(userdata, u.Name(), strconv.Itoa(appID), "local", "cfg")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
