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

package steam

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// rootCandidates asks the Steam installer's registry entry first, then
// falls back to the default install locations.
func rootCandidates() []string {
	var candidates []string

	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\WOW6432Node\Valve\Steam`, registry.QUERY_VALUE)
	if err == nil {
		if path, _, err := k.GetStringValue("InstallPath"); err == nil && path != "" {
			candidates = append(candidates, path)
		}
		if closeErr := k.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close steam registry key")
		}
	}

	return append(candidates,
		`C:\Program Files (x86)\Steam`,
		`C:\Program Files\Steam`,
	)
}
