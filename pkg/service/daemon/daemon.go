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

package daemon

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/rs/zerolog/log"
)

// ServiceEntry starts the main service and returns its stop function and
// done channel.
type ServiceEntry func() (func() error, <-chan struct{}, error)

// Service manages the lifetime of the core service process: PID file,
// signal handling and single-instance checking.
type Service struct {
	pl    platforms.Platform
	start ServiceEntry
	stop  func() error
	done  <-chan struct{}
}

type ServiceArgs struct {
	Platform platforms.Platform
	Entry    ServiceEntry
}

func NewService(args ServiceArgs) (*Service, error) {
	if err := os.MkdirAll(args.Platform.Settings().TempDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Service{
		start: args.Entry,
		pl:    args.Platform,
	}, nil
}

func (s *Service) pidPath() string {
	return filepath.Join(s.pl.Settings().TempDir, config.PidFile)
}

func (s *Service) createPidFile() error {
	pid := os.Getpid()
	if err := os.WriteFile(s.pidPath(), []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

func (s *Service) removePidFile() error {
	if err := os.Remove(s.pidPath()); err != nil {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Pid returns the process ID of the current running service, or 0 if no
// PID file exists.
func (s *Service) Pid() (int, error) {
	pid := 0

	if _, err := os.Stat(s.pidPath()); err == nil {
		//nolint:gosec // reads PID files for service management
		pidFile, err := os.ReadFile(s.pidPath())
		if err != nil {
			return pid, fmt.Errorf("error reading pid file: %w", err)
		}

		pidInt, err := strconv.Atoi(string(pidFile))
		if err != nil {
			return pid, fmt.Errorf("error parsing pid: %w", err)
		}

		pid = pidInt
	}

	return pid, nil
}

// Running returns true if another service instance appears to be running.
func (s *Service) Running() bool {
	pid, err := s.Pid()
	if err != nil || pid == 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}

func (s *Service) stopService() error {
	log.Info().Msg("stopping service")

	if err := s.stop(); err != nil {
		log.Error().Err(err).Msg("error stopping service")
		return err
	}

	if err := s.removePidFile(); err != nil {
		log.Error().Err(err).Msg("error removing pid file")
		return err
	}

	return nil
}

// setupStopService exits the process cleanly on SIGINT or SIGTERM.
func (s *Service) setupStopService() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs

		if err := s.stopService(); err != nil {
			os.Exit(1)
		}

		os.Exit(0)
	}()
}

// Run starts the service and blocks until it is stopped by a signal or
// internally through the API.
func (s *Service) Run() {
	if s.Running() {
		log.Error().Msg("service already running")
		os.Exit(1)
	}

	log.Info().Msg("starting service")

	if err := s.createPidFile(); err != nil {
		log.Error().Err(err).Msg("error creating pid file")
		os.Exit(1)
	}

	stop, done, err := s.start()
	if err != nil {
		log.Error().Err(err).Msg("error starting service")

		if rmErr := s.removePidFile(); rmErr != nil {
			log.Error().Err(rmErr).Msg("error removing pid file")
		}

		os.Exit(1)
	}

	s.stop = stop
	s.done = done
	s.setupStopService()

	<-done
	log.Info().Msg("service shut down internally")

	if err := s.removePidFile(); err != nil {
		log.Error().Err(err).Msg("error removing pid file")
	}
}
