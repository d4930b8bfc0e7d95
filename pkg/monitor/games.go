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

package monitor

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ActiveGame is a detected running game process.
type ActiveGame struct {
	Name string `json:"name"`
	Exe  string `json:"exe"`
	PID  int32  `json:"pid"`
}

// knownGames maps display names to the executable names each game runs
// under. Matching is case-insensitive and ignores the .exe suffix so the
// table works for Proton and native builds alike.
var knownGames = map[string][]string{
	"League of Legends":      {"League of Legends.exe", "LeagueClient.exe"},
	"Counter-Strike 2":       {"cs2.exe"},
	"Valorant":               {"VALORANT.exe", "VALORANT-Win64-Shipping.exe"},
	"Fortnite":               {"FortniteClient-Win64-Shipping.exe"},
	"Call of Duty":           {"cod.exe", "ModernWarfare.exe", "warzone.exe"},
	"Apex Legends":           {"r5apex.exe"},
	"Overwatch 2":            {"Overwatch.exe"},
	"Cyberpunk 2077":         {"Cyberpunk2077.exe"},
	"Elden Ring":             {"eldenring.exe"},
	"Minecraft":              {"javaw.exe", "Minecraft.exe"},
	"World of Warcraft":      {"Wow.exe", "WowClassic.exe"},
	"Dota 2":                 {"dota2.exe"},
	"Rainbow Six Siege":      {"RainbowSix.exe"},
	"PUBG":                   {"TslGame.exe"},
	"Rocket League":          {"RocketLeague.exe"},
	"GTA V":                  {"GTA5.exe"},
	"Red Dead Redemption 2":  {"RDR2.exe"},
	"The Witcher 3":          {"witcher3.exe"},
	"Battlefield":            {"bf1.exe", "bfv.exe", "Battlefield2042.exe"},
}

// exeIndex is knownGames inverted for O(1) process name lookups.
var exeIndex = func() map[string]string {
	idx := make(map[string]string)
	for game, exes := range knownGames {
		for _, exe := range exes {
			idx[normalizeExeName(exe)] = game
		}
	}
	return idx
}()

func normalizeExeName(name string) string {
	name = strings.ToLower(name)
	return strings.TrimSuffix(name, ".exe")
}

// MatchGame returns the game a process name belongs to, if any.
func MatchGame(processName string) (string, bool) {
	game, ok := exeIndex[normalizeExeName(processName)]
	return game, ok
}

// DetectGame scans the process list for the first known game. Process
// entries that refuse to report a name are skipped.
func DetectGame(ctx context.Context) (ActiveGame, bool) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return ActiveGame{}, false
	}

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if game, ok := MatchGame(name); ok {
			return ActiveGame{Name: game, Exe: name, PID: p.Pid}, true
		}
	}
	return ActiveGame{}, false
}
