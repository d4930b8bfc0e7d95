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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWritesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, CfgFile))
	require.NoError(t, err)

	assert.Equal(t, RiskLow, cfg.MaxRisk())
	assert.False(t, cfg.DryRun())
	assert.NotEmpty(t, cfg.DeviceID())
	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	require.True(t, cfg.SetMaxRisk(RiskHigh))
	cfg.SetDryRun(true)
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, reloaded.MaxRisk())
	assert.True(t, reloaded.DryRun())
	assert.Equal(t, cfg.DeviceID(), reloaded.DeviceID())
}

func TestSetMaxRiskRejectsUnknownTier(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)

	assert.False(t, cfg.SetMaxRisk("reckless"))
	assert.Equal(t, RiskLow, cfg.MaxRisk())
}

func TestIsCategoryDisabledCaseInsensitive(t *testing.T) {
	t.Parallel()

	defaults := BaseDefaults
	defaults.Optimizer.DisabledCategories = []string{"Network", "gpu"}

	cfg, err := NewConfig(t.TempDir(), defaults)
	require.NoError(t, err)

	assert.True(t, cfg.IsCategoryDisabled("network"))
	assert.True(t, cfg.IsCategoryDisabled("GPU"))
	assert.False(t, cfg.IsCategoryDisabled("memory"))
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_schema = 99\n"), 0o600))

	_, err := NewConfig(dir, BaseDefaults)
	require.Error(t, err)
}

func TestConfigEnvPathOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(CfgEnv, cfgPath)

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, cfg.Path())

	_, err = os.Stat(cfgPath)
	require.NoError(t, err)
}
