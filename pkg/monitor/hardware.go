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

package monitor

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HardwareInfo describes the machine for the status surface.
type HardwareInfo struct {
	Hostname        string  `json:"hostname"`
	OS              string  `json:"os"`
	Platform        string  `json:"platform"`
	PlatformVersion string  `json:"platformVersion"`
	KernelVersion   string  `json:"kernelVersion"`
	CPUModel        string  `json:"cpuModel"`
	MemoryTotalGB   float64 `json:"memoryTotalGb"`
	PhysicalCores   int     `json:"physicalCores"`
	LogicalCores    int     `json:"logicalCores"`
	UptimeSeconds   uint64  `json:"uptimeSeconds"`
}

// ReadHardwareInfo queries host details. Failed probes are logged and
// leave their fields zeroed.
func ReadHardwareInfo(ctx context.Context) HardwareInfo {
	var info HardwareInfo

	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.OS = hi.OS
		info.Platform = hi.Platform
		info.PlatformVersion = hi.PlatformVersion
		info.KernelVersion = hi.KernelVersion
		info.UptimeSeconds = hi.Uptime
	} else {
		log.Debug().Err(err).Msg("failed to read host info")
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCores = n
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.LogicalCores = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotalGB = float64(vm.Total) / bytesPerGB
	}

	return info
}
