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

package config

type Steam struct {
	InstallDir    string   `toml:"install_dir,omitempty"`
	RefreshRate   int      `toml:"refresh_rate,omitempty"`
	LaunchThreads int      `toml:"launch_threads,omitempty"`
	AutoexecExtra []string `toml:"autoexec_extra,omitempty,multiline"`
}

func (c *Instance) SteamInstallDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.InstallDir
}

// RefreshRate returns the monitor refresh rate used when generating
// launch options, targeting esports displays by default.
func (c *Instance) RefreshRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Steam.RefreshRate <= 0 {
		return 240
	}
	return c.vals.Steam.RefreshRate
}

func (c *Instance) LaunchThreads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.LaunchThreads
}

func (c *Instance) AutoexecExtra() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.Steam.AutoexecExtra...)
}
