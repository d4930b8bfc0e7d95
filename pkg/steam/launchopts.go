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
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/shirou/gopsutil/v4/cpu"
)

// launchThreads picks the -threads value: configured override first, then
// physical core count, then whatever the runtime reports.
func launchThreads(cfg *config.Instance) int {
	if n := cfg.LaunchThreads(); n > 0 {
		return n
	}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CS2LaunchOptions builds the recommended CS2 launch option string.
func CS2LaunchOptions(cfg *config.Instance) string {
	opts := []string{
		"-novid",
		"-nojoy",
		"-high",
		"-threads " + strconv.Itoa(launchThreads(cfg)),
		"+fps_max 0",
		"+cl_forcepreload 1",
		"+mat_queue_mode 2",
		"-freq " + strconv.Itoa(cfg.RefreshRate()),
		"+rate 786432",
		"+cl_cmdrate 128",
		"+cl_updaterate 128",
		"+cl_interp_ratio 1",
		"+cl_interp 0",
		"-worldwide",
		"-tickrate 128",
		"+exec autoexec.cfg",
	}
	return strings.Join(opts, " ")
}

// launchOptionsKey addresses the per-app launch options Steam stores in the
// user registry hive. Only the Windows platform can write it.
func launchOptionsKey(appID int) platforms.SettingKey {
	return platforms.SettingKey{
		Scope: platforms.ScopeRegistryUser,
		Path:  `SOFTWARE\Valve\Steam\Apps\` + strconv.Itoa(appID),
		Name:  "LaunchOptions",
	}
}

// SetLaunchOptions stores launch options for an app. Steam must be
// restarted to pick the change up. Returns ErrNotSupported where the OS
// has no writable launch option store.
func SetLaunchOptions(
	ctx context.Context,
	pl platforms.Platform,
	appID int,
	opts string,
) error {
	err := pl.WriteSetting(ctx, launchOptionsKey(appID), platforms.StringValue(opts))
	if err != nil {
		return fmt.Errorf("failed to set launch options for app %d: %w", appID, err)
	}
	return nil
}

// LaunchOptions reads the currently stored launch options for an app.
func LaunchOptions(pl platforms.Platform, appID int) (string, error) {
	v, err := pl.ReadSetting(launchOptionsKey(appID))
	if err != nil {
		return "", fmt.Errorf("failed to read launch options for app %d: %w", appID, err)
	}
	return v.String, nil
}
