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

package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/client"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/helpers"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	Version *bool
	Status  *bool
	Preview *bool
	Apply   *bool
	Revert  *bool
	Backup  *string
	API     *string
	Reload  *bool
}

// SetupFlags defines all common CLI flags between platforms.
func SetupFlags() *Flags {
	return &Flags{
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Status: flag.Bool(
			"status",
			false,
			"print service status and active game",
		),
		Preview: flag.Bool(
			"preview",
			false,
			"list the tweaks the current config selects",
		),
		Apply: flag.Bool(
			"apply",
			false,
			"apply the selected tweaks",
		),
		Revert: flag.Bool(
			"revert",
			false,
			"restore settings from the latest backup",
		),
		Backup: flag.String(
			"backup",
			"",
			"backup file to revert from, defaults to latest",
		),
		API: flag.String(
			"api",
			"",
			"send method and params to API and print response",
		),
		Reload: flag.Bool(
			"reload",
			false,
			"reload config from disk",
		),
	}
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre(pl platforms.Platform) {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("FPSTune v%s (%s)\n", config.AppVersion, pl.ID())
		os.Exit(0)
	}
}

func callAPI(cfg *config.Instance, method, params string) {
	resp, err := client.LocalClient(context.Background(), cfg, method, params)
	if err != nil {
		log.Error().Err(err).Str("method", method).Msg("error calling API")
		_, _ = fmt.Fprintf(os.Stderr, "Error calling API: %v\n", err)
		os.Exit(1)
	}

	_, _ = fmt.Println(resp)
	os.Exit(0)
}

// Post actions all remaining common flags that require the environment to
// be set up. A running service is required, every action goes through the
// local API.
func (f *Flags) Post(cfg *config.Instance, _ platforms.Platform) {
	switch {
	case *f.Status:
		callAPI(cfg, models.MethodStatus, "")
	case *f.Preview:
		callAPI(cfg, models.MethodOptimizePreview, "")
	case *f.Apply:
		callAPI(cfg, models.MethodOptimizeApply, "")
	case *f.Revert:
		params := ""
		if *f.Backup != "" {
			data, err := json.Marshal(&models.OptimizeRevertParams{
				BackupPath: *f.Backup,
			})
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error encoding params: %v\n", err)
				os.Exit(1)
			}
			params = string(data)
		}
		callAPI(cfg, models.MethodOptimizeRevert, params)
	case isFlagPassed("api"):
		if *f.API == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: api flag requires a value\n")
			os.Exit(1)
		}

		ps := strings.SplitN(*f.API, ":", 2)
		method := ps[0]
		params := ""
		if len(ps) > 1 {
			params = ps[1]
		}

		callAPI(cfg, method, params)
	case *f.Reload:
		callAPI(cfg, models.MethodSettingsReload, "")
	}
}

// Setup initializes the user config and logging. Returns a user config
// object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	pl platforms.Platform,
	defaultConfig config.Values,
	writers []io.Writer,
) *config.Instance {
	// Ensure directories exist before logging initialization
	err := helpers.EnsureDirectories(pl)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}

	err = helpers.InitLogging(pl, writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(pl), defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg
}
