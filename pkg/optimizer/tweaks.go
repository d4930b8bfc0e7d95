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

package optimizer

import (
	"fmt"

	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
)

// Risk orders tuning records by how likely they are to cause trouble.
// Filtering is a simple threshold over this ordering.
type Risk int

const (
	RiskLow Risk = iota
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

func ParseRisk(s string) (Risk, error) {
	switch s {
	case "low", "":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk tier: %q", s)
	}
}

// Tweak categories. These are stable identifiers used in the config file
// and the history database, not display strings.
const (
	CategoryGameMode = "game_mode"
	CategoryNetwork  = "network"
	CategoryCPU      = "cpu"
	CategoryGPU      = "gpu"
	CategoryMemory   = "memory"
	CategoryTimer    = "timer"
	CategoryInput    = "input"
	CategoryVisual   = "visual"
	CategoryServices = "services"
	CategoryStorage  = "storage"
	CategoryPower    = "power"
)

// Tweak is a single tuning record: where to write, what to write, and how
// risky doing so is.
type Tweak struct {
	Key             platforms.SettingKey `json:"key"`
	Value           platforms.Value      `json:"value"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	Risk            Risk                 `json:"risk"`
	RequiresRestart bool                 `json:"requiresRestart"`
}

// ID returns a stable human-readable identifier for logs, backups and the
// history database.
func (t Tweak) ID() string {
	if t.Key.Name != "" {
		return string(t.Key.Scope) + ":" + t.Key.Path + "\\" + t.Key.Name
	}
	return string(t.Key.Scope) + ":" + t.Key.Path
}

// CatalogFor returns the static tuning table for a platform ID. The tables
// are plain data and are available on every OS so they can be inspected
// and tested anywhere.
func CatalogFor(platformID string) []Tweak {
	switch platformID {
	case platforms.PlatformIDLinux:
		return linuxCatalog()
	case platforms.PlatformIDWindows:
		return windowsCatalog()
	default:
		return nil
	}
}

// Filter returns the tweaks at or below maxRisk whose category is not
// disabled. Order is preserved.
func Filter(tweaks []Tweak, maxRisk Risk, disabled func(string) bool) []Tweak {
	out := make([]Tweak, 0, len(tweaks))
	for _, t := range tweaks {
		if t.Risk > maxRisk {
			continue
		}
		if disabled != nil && disabled(t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories returns the distinct categories present in tweaks, in first
// appearance order.
func Categories(tweaks []Tweak) []string {
	seen := make(map[string]bool, len(tweaks))
	var out []string
	for _, t := range tweaks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
