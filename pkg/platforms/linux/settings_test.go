//go:build linux

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

package linux

import (
	"context"
	"testing"

	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	files := map[string]string{
		"/proc/sys/vm/swappiness":                                  "60\n",
		"/sys/devices/system/cpu/cpu0/cpufreq/scaling_governor":    "schedutil\n",
		"/sys/devices/system/cpu/cpu1/cpufreq/scaling_governor":    "schedutil\n",
		"/sys/block/nvme0n1/queue/scheduler":                       "[none] mq-deadline kyber\n",
		"/sys/block/loop0/queue/scheduler":                         "none\n",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func TestReadSettingFile(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	v, err := pl.ReadSetting(platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	})
	require.NoError(t, err)
	assert.Equal(t, "60", v.String)
}

func TestReadSettingFileMissing(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	_, err := pl.ReadSetting(platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/kernel/does_not_exist",
	})
	require.ErrorIs(t, err, platforms.ErrSettingNotFound)
}

func TestWriteSettingFile(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	pl := NewPlatformWithFs(fs)

	key := platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	}
	err := pl.WriteSetting(context.Background(), key, platforms.StringValue("10"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, key.Path)
	require.NoError(t, err)
	assert.Equal(t, "10", string(data))
}

func TestWriteSettingFileMissing(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	err := pl.WriteSetting(context.Background(), platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/sys/devices/system/cpu/intel_pstate/no_turbo",
	}, platforms.StringValue("0"))
	require.ErrorIs(t, err, platforms.ErrSettingNotFound)
}

func TestWriteSettingCPUFreqFansOut(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	pl := NewPlatformWithFs(fs)

	err := pl.WriteSetting(context.Background(), platforms.SettingKey{
		Scope: platforms.ScopeCPUFreq,
		Path:  "scaling_governor",
	}, platforms.StringValue("performance"))
	require.NoError(t, err)

	for _, cpu := range []string{"cpu0", "cpu1"} {
		data, err := afero.ReadFile(fs,
			"/sys/devices/system/cpu/"+cpu+"/cpufreq/scaling_governor")
		require.NoError(t, err)
		assert.Equal(t, "performance", string(data))
	}
}

func TestWriteSettingPowerPlanSetsGovernor(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	pl := NewPlatformWithFs(fs)

	err := pl.WriteSetting(context.Background(), platforms.SettingKey{
		Scope: platforms.ScopePowerPlan,
		Path:  "high_performance",
	}, platforms.StringValue("high_performance"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs,
		"/sys/devices/system/cpu/cpu0/cpufreq/scaling_governor")
	require.NoError(t, err)
	assert.Equal(t, "performance", string(data))
}

func TestWriteSettingPowerPlanRestoresBackedUpGovernor(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))
	key := platforms.SettingKey{
		Scope: platforms.ScopePowerPlan,
		Path:  "high_performance",
	}

	before, err := pl.ReadSetting(key)
	require.NoError(t, err)
	assert.Equal(t, "schedutil", before.String)

	err = pl.WriteSetting(context.Background(), key,
		platforms.StringValue("high_performance"))
	require.NoError(t, err)

	v, err := pl.ReadSetting(key)
	require.NoError(t, err)
	assert.Equal(t, "performance", v.String)

	// writing the backed-up value through the same key must restore it
	err = pl.WriteSetting(context.Background(), key, before)
	require.NoError(t, err)

	v, err = pl.ReadSetting(key)
	require.NoError(t, err)
	assert.Equal(t, "schedutil", v.String)
}

func TestReadSettingBlockQueueParsesActiveScheduler(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	v, err := pl.ReadSetting(platforms.SettingKey{
		Scope: platforms.ScopeBlockQueue,
		Path:  "scheduler",
	})
	require.NoError(t, err)
	assert.Equal(t, "none", v.String)
}

func TestWriteSettingBlockQueueSkipsLoopDevices(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	pl := NewPlatformWithFs(fs)

	err := pl.WriteSetting(context.Background(), platforms.SettingKey{
		Scope: platforms.ScopeBlockQueue,
		Path:  "scheduler",
	}, platforms.StringValue("mq-deadline"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/sys/block/nvme0n1/queue/scheduler")
	require.NoError(t, err)
	assert.Equal(t, "mq-deadline", string(data))

	data, err = afero.ReadFile(fs, "/sys/block/loop0/queue/scheduler")
	require.NoError(t, err)
	assert.Equal(t, "none\n", string(data))
}

func TestWriteSettingDWordAsDecimal(t *testing.T) {
	t.Parallel()

	fs := testFs(t)
	pl := NewPlatformWithFs(fs)

	key := platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	}
	err := pl.WriteSetting(context.Background(), key, platforms.DWordValue(10))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, key.Path)
	require.NoError(t, err)
	assert.Equal(t, "10", string(data))
}

func TestRegistryScopesUnsupported(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	key := platforms.SettingKey{
		Scope: platforms.ScopeRegistryMachine,
		Path:  `SOFTWARE\Valve\Steam`,
		Name:  "InstallPath",
	}
	_, err := pl.ReadSetting(key)
	require.ErrorIs(t, err, platforms.ErrNotSupported)

	err = pl.WriteSetting(context.Background(), key, platforms.DWordValue(1))
	require.ErrorIs(t, err, platforms.ErrNotSupported)
}

func TestDeleteSettingUnsupported(t *testing.T) {
	t.Parallel()

	pl := NewPlatformWithFs(testFs(t))

	err := pl.DeleteSetting(platforms.SettingKey{
		Scope: platforms.ScopeFile,
		Path:  "/proc/sys/vm/swappiness",
	})
	require.ErrorIs(t, err, platforms.ErrNotSupported)
}
