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

package platforms

import (
	"context"
	"errors"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
)

var (
	ErrNotSupported    = errors.New("operation not supported on this platform")
	ErrSettingNotFound = errors.New("setting does not exist")
)

const (
	PlatformIDLinux   = "linux"
	PlatformIDWindows = "windows"
)

// SettingScope selects the OS configuration store a SettingKey addresses.
type SettingScope string

const (
	// ScopeFile is an absolute path, typically under /proc/sys or /sys.
	ScopeFile SettingScope = "file"
	// ScopeCPUFreq fans out a write across every
	// /sys/devices/system/cpu/cpu*/cpufreq/<Path> file.
	ScopeCPUFreq SettingScope = "cpufreq"
	// ScopeBlockQueue fans out a write across every
	// /sys/block/<dev>/queue/<Path> file, skipping loop devices.
	ScopeBlockQueue SettingScope = "blkq"
	// ScopeRegistryMachine is a value under HKEY_LOCAL_MACHINE.
	ScopeRegistryMachine SettingScope = "hklm"
	// ScopeRegistryUser is a value under HKEY_CURRENT_USER.
	ScopeRegistryUser SettingScope = "hkcu"
	// ScopePowerPlan activates an OS power profile. Path names the profile.
	ScopePowerPlan SettingScope = "power"
)

// SettingKey addresses a single OS tuning location.
type SettingKey struct {
	// Scope selects the configuration store.
	Scope SettingScope
	// Path is the file path or registry subkey.
	Path string
	// Name is the registry value name. Unused for file scopes.
	Name string
}

// ValueKind discriminates Value variants.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueDWord
)

// Value is a typed setting value. File scopes write DWords as decimal
// strings; registry scopes preserve the native type.
type Value struct {
	String string
	DWord  uint32
	Kind   ValueKind
}

func StringValue(s string) Value {
	return Value{Kind: ValueString, String: s}
}

func DWordValue(v uint32) Value {
	return Value{Kind: ValueDWord, DWord: v}
}

// Settings defines all simple settings/configuration values available for a
// platform.
type Settings struct {
	// DataDir is the root folder where backups and the history database
	// are permanently stored.
	DataDir string
	// ConfigDir is the directory where the config file is stored.
	ConfigDir string
	// TempDir is where logs and the PID file live. Expect it to be deleted.
	TempDir string
}

// Platform is the central interface that defines how Core applies tuning
// values on a supported operating system.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// StartPre runs any necessary platform setup BEFORE the main service
	// has started running.
	StartPre(*config.Instance) error
	// StartPost runs any necessary platform setup AFTER the main service
	// has started running.
	StartPost(*config.Instance) error
	// Stop runs any necessary cleanup tasks before the rest of the service
	// starts shutting down.
	Stop() error
	// Settings returns all simple platform-specific settings such as paths.
	Settings() Settings
	// ReadSetting returns the current value stored at key, or
	// ErrSettingNotFound if nothing is stored there.
	ReadSetting(SettingKey) (Value, error)
	// WriteSetting stores a value at key, creating any missing parents.
	WriteSetting(context.Context, SettingKey, Value) error
	// DeleteSetting removes the value at key, if the scope supports it.
	DeleteSetting(SettingKey) error
}
