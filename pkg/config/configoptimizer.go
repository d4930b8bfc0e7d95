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

import "strings"

// Risk tier names stored in the config file. Ordering is defined by
// the optimizer package; the config layer only validates the label.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type Optimizer struct {
	MaxRisk            string   `toml:"max_risk,omitempty"`
	BackupDir          string   `toml:"backup_dir,omitempty"`
	DisabledCategories []string `toml:"disabled_categories,omitempty"`
	DryRun             bool     `toml:"dry_run"`
}

func (c *Instance) MaxRisk() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch c.vals.Optimizer.MaxRisk {
	case RiskLow, RiskMedium, RiskHigh:
		return c.vals.Optimizer.MaxRisk
	default:
		return RiskLow
	}
}

func (c *Instance) SetMaxRisk(risk string) bool {
	switch risk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Optimizer.MaxRisk = risk
	return true
}

func (c *Instance) DryRun() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Optimizer.DryRun
}

func (c *Instance) SetDryRun(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Optimizer.DryRun = enabled
}

func (c *Instance) BackupDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Optimizer.BackupDir
}

func (c *Instance) IsCategoryDisabled(category string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, disabled := range c.vals.Optimizer.DisabledCategories {
		if strings.EqualFold(disabled, category) {
			return true
		}
	}
	return false
}

func (c *Instance) DisabledCategories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.Optimizer.DisabledCategories...)
}
