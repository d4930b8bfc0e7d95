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

package optimizer

import "github.com/FPSTuneProject/fpstune-core/pkg/platforms"

func fileTweak(path, value, desc, category string, risk Risk) Tweak {
	return Tweak{
		Key:         platforms.SettingKey{Scope: platforms.ScopeFile, Path: path},
		Value:       platforms.StringValue(value),
		Description: desc,
		Category:    category,
		Risk:        risk,
	}
}

// linuxCatalog is the full tuning table for Linux desktops. Values target
// kernel defaults that favor throughput over latency; everything here is
// revertible from the per-session backup.
func linuxCatalog() []Tweak {
	return []Tweak{
		// CPU scheduler
		{
			Key:         platforms.SettingKey{Scope: platforms.ScopeCPUFreq, Path: "scaling_governor"},
			Value:       platforms.StringValue("performance"),
			Description: "Set CPU frequency governor to performance",
			Category:    CategoryCPU,
			Risk:        RiskLow,
		},
		fileTweak("/proc/sys/kernel/sched_migration_cost_ns", "500000",
			"Reduce task migration cost for lower scheduling latency", CategoryCPU, RiskLow),
		fileTweak("/proc/sys/kernel/sched_min_granularity_ns", "1000000",
			"Reduce minimum scheduling granularity", CategoryCPU, RiskLow),
		fileTweak("/proc/sys/kernel/sched_wakeup_granularity_ns", "2000000",
			"Tune wakeup granularity for interactive workloads", CategoryCPU, RiskLow),
		fileTweak("/proc/sys/kernel/sched_latency_ns", "6000000",
			"Reduce scheduler target latency", CategoryCPU, RiskLow),
		fileTweak("/sys/devices/system/cpu/intel_pstate/no_turbo", "0",
			"Keep Intel turbo boost enabled", CategoryCPU, RiskMedium),

		// Memory
		fileTweak("/proc/sys/vm/swappiness", "10",
			"Reduce swapping under memory pressure", CategoryMemory, RiskLow),
		fileTweak("/proc/sys/vm/vfs_cache_pressure", "50",
			"Keep directory and inode caches longer", CategoryMemory, RiskLow),
		fileTweak("/proc/sys/vm/dirty_ratio", "15",
			"Cap dirty page ratio before synchronous writeback", CategoryMemory, RiskLow),
		fileTweak("/proc/sys/vm/dirty_background_ratio", "5",
			"Start background writeback earlier", CategoryMemory, RiskLow),

		// Network
		fileTweak("/proc/sys/net/core/rmem_max", "134217728",
			"Raise maximum socket receive buffer", CategoryNetwork, RiskLow),
		fileTweak("/proc/sys/net/core/wmem_max", "134217728",
			"Raise maximum socket send buffer", CategoryNetwork, RiskLow),
		fileTweak("/proc/sys/net/ipv4/tcp_window_scaling", "1",
			"Enable TCP window scaling", CategoryNetwork, RiskLow),
		fileTweak("/proc/sys/net/ipv4/tcp_timestamps", "1",
			"Enable TCP timestamps", CategoryNetwork, RiskLow),
		fileTweak("/proc/sys/net/ipv4/tcp_sack", "1",
			"Enable selective acknowledgements", CategoryNetwork, RiskLow),
		fileTweak("/proc/sys/net/ipv4/tcp_congestion_control", "bbr",
			"Use BBR congestion control", CategoryNetwork, RiskMedium),

		// Storage
		{
			Key:         platforms.SettingKey{Scope: platforms.ScopeBlockQueue, Path: "scheduler"},
			Value:       platforms.StringValue("mq-deadline"),
			Description: "Use mq-deadline I/O scheduler on block devices",
			Category:    CategoryStorage,
			Risk:        RiskMedium,
		},

		// Input
		fileTweak("/sys/module/usbhid/parameters/mousepoll", "1",
			"Poll USB mice at 1000Hz", CategoryInput, RiskMedium),
		fileTweak("/sys/module/usbhid/parameters/kbpoll", "1",
			"Poll USB keyboards at 1000Hz", CategoryInput, RiskMedium),
		fileTweak("/sys/module/usbcore/parameters/autosuspend", "-1",
			"Disable USB autosuspend for input devices", CategoryInput, RiskLow),

		// Power
		{
			Key:         platforms.SettingKey{Scope: platforms.ScopePowerPlan, Path: "high_performance"},
			Value:       platforms.StringValue("high_performance"),
			Description: "Activate the high performance power profile",
			Category:    CategoryPower,
			Risk:        RiskLow,
		},
	}
}
