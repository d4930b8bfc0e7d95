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
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"
)

const bytesPerGB = 1024 * 1024 * 1024

type CPUMetrics struct {
	UsagePercent float64 `json:"usagePercent"`
	FrequencyMHz float64 `json:"frequencyMhz"`
	Count        int     `json:"count"`
}

type MemoryMetrics struct {
	UsagePercent float64 `json:"usagePercent"`
	TotalGB      float64 `json:"totalGb"`
	AvailableGB  float64 `json:"availableGb"`
	UsedGB       float64 `json:"usedGb"`
}

type SwapMetrics struct {
	UsagePercent float64 `json:"usagePercent"`
	TotalGB      float64 `json:"totalGb"`
	UsedGB       float64 `json:"usedGb"`
}

type DiskMetrics struct {
	UsagePercent float64 `json:"usagePercent"`
	TotalGB      float64 `json:"totalGb"`
	FreeGB       float64 `json:"freeGb"`
	UsedGB       float64 `json:"usedGb"`
}

type NetworkCounters struct {
	BytesSent   uint64 `json:"bytesSent"`
	BytesRecv   uint64 `json:"bytesRecv"`
	PacketsSent uint64 `json:"packetsSent"`
	PacketsRecv uint64 `json:"packetsRecv"`
}

// Snapshot is one tick of system metrics, shaped for the dashboard.
type Snapshot struct {
	Timestamp    time.Time       `json:"timestamp"`
	CPU          CPUMetrics      `json:"cpu"`
	Memory       MemoryMetrics   `json:"memory"`
	Swap         SwapMetrics     `json:"swap"`
	Disk         DiskMetrics     `json:"disk"`
	Network      NetworkCounters `json:"network"`
	TemperatureC float64         `json:"temperature"`
	ProcessCount int             `json:"processCount"`
}

func diskRoot() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// CollectSnapshot gathers a metrics snapshot. Individual probes that fail
// leave their section zeroed; only a total CPU failure is an error.
func CollectSnapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Timestamp: time.Now()}

	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return snap, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(cpuPercents) > 0 {
		snap.CPU.UsagePercent = cpuPercents[0]
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		snap.CPU.Count = count
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snap.CPU.FrequencyMHz = infos[0].Mhz
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.Memory = MemoryMetrics{
			UsagePercent: vm.UsedPercent,
			TotalGB:      float64(vm.Total) / bytesPerGB,
			AvailableGB:  float64(vm.Available) / bytesPerGB,
			UsedGB:       float64(vm.Used) / bytesPerGB,
		}
	} else {
		log.Debug().Err(err).Msg("failed to read virtual memory")
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snap.Swap = SwapMetrics{
			UsagePercent: swap.UsedPercent,
			TotalGB:      float64(swap.Total) / bytesPerGB,
			UsedGB:       float64(swap.Used) / bytesPerGB,
		}
	}

	if usage, err := disk.UsageWithContext(ctx, diskRoot()); err == nil {
		snap.Disk = DiskMetrics{
			UsagePercent: usage.UsedPercent,
			TotalGB:      float64(usage.Total) / bytesPerGB,
			FreeGB:       float64(usage.Free) / bytesPerGB,
			UsedGB:       float64(usage.Used) / bytesPerGB,
		}
	}

	if counters, err := gopsnet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		snap.Network = NetworkCounters{
			BytesSent:   counters[0].BytesSent,
			BytesRecv:   counters[0].BytesRecv,
			PacketsSent: counters[0].PacketsSent,
			PacketsRecv: counters[0].PacketsRecv,
		}
	}

	if temps, err := sensors.TemperaturesWithContext(ctx); err == nil {
		snap.TemperatureC = hottestCoreTemp(temps)
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		snap.ProcessCount = len(pids)
	}

	return snap, nil
}

// hottestCoreTemp prefers CPU sensors and falls back to the hottest sensor
// of any kind.
func hottestCoreTemp(temps []sensors.TemperatureStat) float64 {
	var cpuMax, anyMax float64
	for _, t := range temps {
		if t.Temperature > anyMax {
			anyMax = t.Temperature
		}
		switch t.SensorKey {
		case "coretemp", "k10temp", "cpu_thermal", "zenpower":
			if t.Temperature > cpuMax {
				cpuMax = t.Temperature
			}
		}
	}
	if cpuMax > 0 {
		return cpuMax
	}
	return anyMax
}
