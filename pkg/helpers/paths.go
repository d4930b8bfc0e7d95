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

package helpers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
)

func ConfigDir(pl platforms.Platform) string {
	return pl.Settings().ConfigDir
}

func DataDir(pl platforms.Platform) string {
	return pl.Settings().DataDir
}

// BackupsDir resolves the directory optimization backups are written to.
// An absolute backup_dir in the config overrides the data dir default.
func BackupsDir(pl platforms.Platform, cfg *config.Instance) string {
	dir := cfg.BackupDir()
	if dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(DataDir(pl), config.BackupsDir)
}

// EnsureDirectories creates the config, data and temp directories if any
// are missing. Called before logging is initialized.
func EnsureDirectories(pl platforms.Platform) error {
	for _, dir := range []string{
		pl.Settings().ConfigDir,
		pl.Settings().DataDir,
		pl.Settings().TempDir,
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
