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
	"os"
	"path/filepath"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

type Platform struct {
	fs afero.Fs
}

func NewPlatform() *Platform {
	return &Platform{fs: afero.NewOsFs()}
}

// NewPlatformWithFs is used by tests to run against an in-memory tree.
func NewPlatformWithFs(fs afero.Fs) *Platform {
	return &Platform{fs: fs}
}

func (*Platform) ID() string {
	return platforms.PlatformIDLinux
}

func (*Platform) StartPre(_ *config.Instance) error {
	return nil
}

func (*Platform) StartPost(_ *config.Instance) error {
	return nil
}

func (*Platform) Stop() error {
	return nil
}

func (*Platform) Settings() platforms.Settings {
	return platforms.Settings{
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		TempDir:   filepath.Join(os.TempDir(), config.AppName),
	}
}
