//go:build windows

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

package windows

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// highPerformancePlan is the well-known GUID of the built-in High
// Performance power scheme.
const highPerformancePlan = "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c"

func rootKey(scope platforms.SettingScope) (registry.Key, error) {
	switch scope {
	case platforms.ScopeRegistryMachine:
		return registry.LOCAL_MACHINE, nil
	case platforms.ScopeRegistryUser:
		return registry.CURRENT_USER, nil
	default:
		return 0, platforms.ErrNotSupported
	}
}

// ReadSetting reads a registry value. The power plan scope reports the
// active scheme GUID.
func (*Platform) ReadSetting(key platforms.SettingKey) (platforms.Value, error) {
	if key.Scope == platforms.ScopePowerPlan {
		return readActivePowerPlan()
	}

	root, err := rootKey(key.Scope)
	if err != nil {
		return platforms.Value{}, err
	}

	k, err := registry.OpenKey(root, key.Path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return platforms.Value{}, platforms.ErrSettingNotFound
		}
		return platforms.Value{}, fmt.Errorf("failed to open registry key: %w", err)
	}
	defer func() {
		if closeErr := k.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close registry key")
		}
	}()

	if s, _, err := k.GetStringValue(key.Name); err == nil {
		return platforms.StringValue(s), nil
	}
	d, _, err := k.GetIntegerValue(key.Name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return platforms.Value{}, platforms.ErrSettingNotFound
		}
		return platforms.Value{}, fmt.Errorf("failed to read registry value: %w", err)
	}
	return platforms.DWordValue(uint32(d)), nil //nolint:gosec // DWORD range
}

// WriteSetting writes a registry value, creating missing subkeys. The
// power plan scope activates a power scheme via powercfg.
func (*Platform) WriteSetting(
	ctx context.Context,
	key platforms.SettingKey,
	value platforms.Value,
) error {
	if key.Scope == platforms.ScopePowerPlan {
		return setActivePowerPlan(ctx, value)
	}

	root, err := rootKey(key.Scope)
	if err != nil {
		return err
	}

	k, _, err := registry.CreateKey(root, key.Path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to create registry key: %w", err)
	}
	defer func() {
		if closeErr := k.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close registry key")
		}
	}()

	if value.Kind == platforms.ValueDWord {
		if err := k.SetDWordValue(key.Name, value.DWord); err != nil {
			return fmt.Errorf("failed to set registry value: %w", err)
		}
		return nil
	}
	if err := k.SetStringValue(key.Name, value.String); err != nil {
		return fmt.Errorf("failed to set registry value: %w", err)
	}
	return nil
}

// DeleteSetting removes a registry value. Missing values are not an error
// so reverting a batch stays idempotent.
func (*Platform) DeleteSetting(key platforms.SettingKey) error {
	root, err := rootKey(key.Scope)
	if err != nil {
		return err
	}

	k, err := registry.OpenKey(root, key.Path, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer func() {
		if closeErr := k.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close registry key")
		}
	}()

	if err := k.DeleteValue(key.Name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to delete registry value: %w", err)
	}
	return nil
}

func readActivePowerPlan() (platforms.Value, error) {
	out, err := exec.Command("powercfg", "/getactivescheme").Output()
	if err != nil {
		return platforms.Value{}, fmt.Errorf("failed to query active power scheme: %w", err)
	}
	return platforms.StringValue(parseSchemeGUID(string(out))), nil
}

func setActivePowerPlan(ctx context.Context, value platforms.Value) error {
	guid := value.String
	if guid == "high_performance" {
		guid = highPerformancePlan
	}
	cmd := exec.CommandContext(ctx, "powercfg", "/setactive", guid)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to activate power scheme %s: %w", guid, err)
	}
	return nil
}
