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

import "time"

type Monitor struct {
	MetricsInterval  int      `toml:"metrics_interval_s,omitempty"`
	GamePollInterval int      `toml:"game_poll_interval_s,omitempty"`
	PingInterval     int      `toml:"ping_interval_s,omitempty"`
	PingHosts        []string `toml:"ping_hosts,omitempty,multiline"`
	HistorySize      int      `toml:"history_size,omitempty"`
}

// DefaultPingHosts are probed when no hosts are configured. Port 443 is
// used for the TCP round trip so probes work without raw socket access.
var DefaultPingHosts = []string{
	"1.1.1.1:443",
	"8.8.8.8:443",
	"208.67.222.222:443",
}

func intervalOrDefault(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func (c *Instance) MetricsInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intervalOrDefault(c.vals.Monitor.MetricsInterval, 1)
}

func (c *Instance) GamePollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intervalOrDefault(c.vals.Monitor.GamePollInterval, 5)
}

func (c *Instance) PingInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intervalOrDefault(c.vals.Monitor.PingInterval, 30)
}

func (c *Instance) PingHosts() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vals.Monitor.PingHosts) == 0 {
		return append([]string(nil), DefaultPingHosts...)
	}
	return append([]string(nil), c.vals.Monitor.PingHosts...)
}

func (c *Instance) HistorySize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Monitor.HistorySize <= 0 {
		return 1000
	}
	return c.vals.Monitor.HistorySize
}
