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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/FPSTuneProject/fpstune-core/pkg/cli"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms/windows"
	"github.com/FPSTuneProject/fpstune-core/pkg/service"
	"github.com/FPSTuneProject/fpstune-core/pkg/service/daemon"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	pl := windows.NewPlatform()
	flags := cli.SetupFlags()

	daemonMode := flag.Bool(
		"daemon",
		false,
		"run the service in the foreground",
	)

	flags.Pre(pl)

	var logWriters []io.Writer
	if *daemonMode {
		logWriters = []io.Writer{os.Stderr}
	}

	cfg := cli.Setup(pl, config.BaseDefaults, logWriters)

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	flags.Post(cfg, pl)

	svc, err := daemon.NewService(daemon.ServiceArgs{
		Platform: pl,
		Entry: func() (func() error, <-chan struct{}, error) {
			return service.Start(pl, cfg)
		},
	})
	if err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}

	svc.Run()
	return nil
}
