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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	cpufreqGlob   = "/sys/devices/system/cpu/cpu[0-9]*/cpufreq"
	blockQueueDir = "/sys/block"
)

func valueText(value platforms.Value) string {
	if value.Kind == platforms.ValueDWord {
		return strconv.FormatUint(uint64(value.DWord), 10)
	}
	return value.String
}

// fanoutPaths resolves a fan-out scope to the concrete sysfs files it
// addresses on this machine.
func (p *Platform) fanoutPaths(key platforms.SettingKey) ([]string, error) {
	switch key.Scope {
	case platforms.ScopeCPUFreq:
		matches, err := afero.Glob(p.fs, filepath.Join(cpufreqGlob, key.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to glob cpufreq files: %w", err)
		}
		return matches, nil
	case platforms.ScopePowerPlan:
		// the closest thing to a power plan here is the frequency governor
		matches, err := afero.Glob(p.fs, filepath.Join(cpufreqGlob, "scaling_governor"))
		if err != nil {
			return nil, fmt.Errorf("failed to glob governor files: %w", err)
		}
		return matches, nil
	case platforms.ScopeBlockQueue:
		entries, err := afero.ReadDir(p.fs, blockQueueDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list block devices: %w", err)
		}
		var paths []string
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram") {
				continue
			}
			target := filepath.Join(blockQueueDir, name, "queue", key.Path)
			if exists, _ := afero.Exists(p.fs, target); exists {
				paths = append(paths, target)
			}
		}
		return paths, nil
	default:
		return nil, platforms.ErrNotSupported
	}
}

func (p *Platform) readFile(path string) (platforms.Value, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return platforms.Value{}, platforms.ErrSettingNotFound
		}
		return platforms.Value{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))

	// scheduler files report all options with the active one in brackets
	if start := strings.IndexByte(text, '['); start >= 0 {
		if end := strings.IndexByte(text[start:], ']'); end > 0 {
			text = text[start+1 : start+end]
		}
	}

	return platforms.StringValue(text), nil
}

func (p *Platform) writeFile(path, text string) error {
	if err := afero.WriteFile(p.fs, path, []byte(text), 0o644); err != nil { //nolint:gosec // sysfs mode
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadSetting reads the first concrete file behind key. For fan-out scopes
// all files carry the same value in practice, so one representative is
// enough for the backup.
func (p *Platform) ReadSetting(key platforms.SettingKey) (platforms.Value, error) {
	switch key.Scope {
	case platforms.ScopeFile:
		return p.readFile(key.Path)
	case platforms.ScopeCPUFreq, platforms.ScopeBlockQueue, platforms.ScopePowerPlan:
		paths, err := p.fanoutPaths(key)
		if err != nil {
			return platforms.Value{}, err
		}
		if len(paths) == 0 {
			return platforms.Value{}, platforms.ErrSettingNotFound
		}
		return p.readFile(paths[0])
	default:
		return platforms.Value{}, platforms.ErrNotSupported
	}
}

// WriteSetting writes a value, fanning out across per-CPU and per-device
// files where the scope calls for it. A fan-out write fails only when no
// target accepts the value.
func (p *Platform) WriteSetting(
	ctx context.Context,
	key platforms.SettingKey,
	value platforms.Value,
) error {
	text := valueText(value)
	// the catalog's plan alias maps to the performance governor; any other
	// value is a backed-up governor being restored and is written verbatim
	if key.Scope == platforms.ScopePowerPlan && text == "high_performance" {
		text = "performance"
	}

	switch key.Scope {
	case platforms.ScopeFile:
		if exists, _ := afero.Exists(p.fs, key.Path); !exists {
			return platforms.ErrSettingNotFound
		}
		return p.writeFile(key.Path, text)
	case platforms.ScopeCPUFreq, platforms.ScopeBlockQueue, platforms.ScopePowerPlan:
		paths, err := p.fanoutPaths(key)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return platforms.ErrSettingNotFound
		}

		written := 0
		var lastErr error
		for _, path := range paths {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := p.writeFile(path, text); err != nil {
				log.Debug().Err(err).Str("path", path).Msg("fan-out write rejected")
				lastErr = err
				continue
			}
			written++
		}
		if written == 0 {
			return lastErr
		}
		return nil
	default:
		return platforms.ErrNotSupported
	}
}

// DeleteSetting is unsupported: kernel tunables always have a value, they
// are never absent the way a registry value can be.
func (*Platform) DeleteSetting(_ platforms.SettingKey) error {
	return platforms.ErrNotSupported
}
