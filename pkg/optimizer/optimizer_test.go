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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform stores settings in memory and can be told to fail specific
// keys, to exercise best-effort application.
type fakePlatform struct {
	values   map[platforms.SettingKey]platforms.Value
	failures map[platforms.SettingKey]error
	deleted  []platforms.SettingKey
	id       string
}

func newFakePlatform(id string) *fakePlatform {
	return &fakePlatform{
		id:       id,
		values:   make(map[platforms.SettingKey]platforms.Value),
		failures: make(map[platforms.SettingKey]error),
	}
}

func (p *fakePlatform) ID() string                         { return p.id }
func (p *fakePlatform) StartPre(_ *config.Instance) error  { return nil }
func (p *fakePlatform) StartPost(_ *config.Instance) error { return nil }
func (p *fakePlatform) Stop() error                        { return nil }
func (p *fakePlatform) Settings() platforms.Settings       { return platforms.Settings{} }

func (p *fakePlatform) ReadSetting(key platforms.SettingKey) (platforms.Value, error) {
	v, ok := p.values[key]
	if !ok {
		return platforms.Value{}, platforms.ErrSettingNotFound
	}
	return v, nil
}

func (p *fakePlatform) WriteSetting(
	_ context.Context,
	key platforms.SettingKey,
	value platforms.Value,
) error {
	if err, ok := p.failures[key]; ok {
		return err
	}
	p.values[key] = value
	return nil
}

func (p *fakePlatform) DeleteSetting(key platforms.SettingKey) error {
	if key.Scope == platforms.ScopeFile {
		return platforms.ErrNotSupported
	}
	delete(p.values, key)
	p.deleted = append(p.deleted, key)
	return nil
}

func testConfig(t *testing.T) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func testEngine(t *testing.T, pl platforms.Platform) *Engine {
	t.Helper()
	store := NewBackupStore(afero.NewMemMapFs(), "/data/backups")
	engine := NewEngine(pl, store)
	engine.SetClockForTesting(func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	})
	return engine
}

func TestEngineSelectedHonorsRiskAndCategories(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	engine := testEngine(t, pl)
	cfg := testConfig(t)

	low := engine.Selected(cfg)
	for _, tw := range low {
		assert.LessOrEqual(t, tw.Risk, RiskLow)
	}

	require.True(t, cfg.SetMaxRisk(config.RiskMedium))
	medium := engine.Selected(cfg)
	assert.Greater(t, len(medium), len(low))
}

func TestEngineApplyWritesAndBacksUp(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	swappiness := platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	}
	pl.values[swappiness] = platforms.StringValue("60")

	engine := testEngine(t, pl)
	cfg := testConfig(t)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)

	assert.False(t, report.DryRun)
	assert.Zero(t, report.Failed)
	assert.Equal(t, len(engine.Selected(cfg)), report.Applied)
	assert.NotEmpty(t, report.BackupPath)

	// value actually written
	got, err := pl.ReadSetting(swappiness)
	require.NoError(t, err)
	assert.Equal(t, "10", got.String)

	// original value preserved in the backup
	backup, err := engine.store.Load(report.BackupPath)
	require.NoError(t, err)
	var found bool
	for _, record := range backup.Records {
		if record.Key == swappiness {
			found = true
			assert.True(t, record.Existed)
			assert.Equal(t, "60", record.Value.String)
		}
	}
	assert.True(t, found)
}

func TestEngineApplyBestEffort(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	swappiness := platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	}
	pl.failures[swappiness] = errors.New("permission denied")

	engine := testEngine(t, pl)
	cfg := testConfig(t)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, len(engine.Selected(cfg))-1, report.Applied)

	var failure *Result
	for i := range report.Results {
		if !report.Results[i].OK {
			failure = &report.Results[i]
		}
	}
	require.NotNil(t, failure)
	assert.Equal(t, swappiness, failure.Tweak.Key)
	assert.Contains(t, failure.Error, "permission denied")
}

func TestEngineApplyDryRun(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	engine := testEngine(t, pl)
	cfg := testConfig(t)
	cfg.SetDryRun(true)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Empty(t, report.BackupPath)
	assert.Empty(t, pl.values)
	assert.Len(t, report.Results, len(engine.Selected(cfg)))

	// no backup written either
	_, _, err = engine.store.Latest()
	require.ErrorIs(t, err, ErrNoBackups)
}

func TestEngineApplyRequiresRestart(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDWindows)
	engine := testEngine(t, pl)
	cfg := testConfig(t)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, report.RequiresRestart)
}

func TestEngineRevertRestoresOriginals(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDWindows)
	tcpAck := platforms.SettingKey{
		Scope: platforms.ScopeRegistryMachine,
		Path:  `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`,
		Name:  "TcpAckFrequency",
	}
	pl.values[tcpAck] = platforms.DWordValue(2)

	engine := testEngine(t, pl)
	cfg := testConfig(t)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)

	got, err := pl.ReadSetting(tcpAck)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.DWord)

	revert, err := engine.Revert(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, report.BackupPath, revert.BackupPath)
	assert.Zero(t, revert.Failed)

	// pre-existing value restored
	got, err = pl.ReadSetting(tcpAck)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), got.DWord)

	// values that did not exist before were deleted
	assert.NotEmpty(t, pl.deleted)
}

func TestEngineRevertExplicitPath(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	engine := testEngine(t, pl)
	cfg := testConfig(t)

	report, err := engine.Apply(context.Background(), cfg)
	require.NoError(t, err)

	revert, err := engine.Revert(context.Background(), report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, report.BackupPath, revert.BackupPath)
}

func TestEngineRevertNoBackups(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	engine := testEngine(t, pl)

	_, err := engine.Revert(context.Background(), "")
	require.ErrorIs(t, err, ErrNoBackups)
}

func TestEngineApplyCancelled(t *testing.T) {
	t.Parallel()

	pl := newFakePlatform(platforms.PlatformIDLinux)
	engine := testEngine(t, pl)
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Apply(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
}
