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

func hklmDword(subkey, name string, value uint32, desc, category string, risk Risk, restart bool) Tweak {
	return Tweak{
		Key:             platforms.SettingKey{Scope: platforms.ScopeRegistryMachine, Path: subkey, Name: name},
		Value:           platforms.DWordValue(value),
		Description:     desc,
		Category:        category,
		Risk:            risk,
		RequiresRestart: restart,
	}
}

func hklmString(subkey, name, value, desc, category string, risk Risk) Tweak {
	return Tweak{
		Key:         platforms.SettingKey{Scope: platforms.ScopeRegistryMachine, Path: subkey, Name: name},
		Value:       platforms.StringValue(value),
		Description: desc,
		Category:    category,
		Risk:        risk,
	}
}

func hkcuDword(subkey, name string, value uint32, desc, category string, risk Risk) Tweak {
	return Tweak{
		Key:         platforms.SettingKey{Scope: platforms.ScopeRegistryUser, Path: subkey, Name: name},
		Value:       platforms.DWordValue(value),
		Description: desc,
		Category:    category,
		Risk:        risk,
	}
}

func hkcuString(subkey, name, value, desc, category string, risk Risk) Tweak {
	return Tweak{
		Key:         platforms.SettingKey{Scope: platforms.ScopeRegistryUser, Path: subkey, Name: name},
		Value:       platforms.StringValue(value),
		Description: desc,
		Category:    category,
		Risk:        risk,
	}
}

const (
	gamesTaskKey  = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile\Tasks\Games`
	sysProfileKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile`
	tcpipKey      = `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`
	memMgmtKey    = `SYSTEM\CurrentControlSet\Control\Session Manager\Memory Management`
	prefetchKey   = memMgmtKey + `\PrefetchParameters`
	kernelKey     = `SYSTEM\CurrentControlSet\Control\Session Manager\kernel`
	graphicsKey   = `SYSTEM\CurrentControlSet\Control\GraphicsDrivers`
)

// windowsCatalog is the full registry tuning table for Windows. Subkeys and
// values follow vendor documentation for the multimedia system profile, the
// TCP/IP stack and session manager memory management.
func windowsCatalog() []Tweak {
	return []Tweak{
		// Game scheduling profile
		hklmDword(gamesTaskKey, "GPU Priority", 8,
			"Raise GPU priority for the games scheduling task", CategoryGameMode, RiskLow, false),
		hklmDword(gamesTaskKey, "Priority", 6,
			"Raise CPU priority for the games scheduling task", CategoryGameMode, RiskLow, false),
		hklmString(gamesTaskKey, "Scheduling Category", "High",
			"Set games scheduling category to high", CategoryGameMode, RiskLow),
		hklmString(gamesTaskKey, "SFIO Priority", "High",
			"Set storage and file I/O priority to high for games", CategoryGameMode, RiskLow),
		hkcuDword(`SOFTWARE\Microsoft\GameBar`, "UseNexusForGameBarEnabled", 0,
			"Disable the Xbox Game Bar nexus button", CategoryGameMode, RiskLow),
		hkcuDword(`SOFTWARE\Microsoft\GameBar`, "AllowAutoGameMode", 1,
			"Allow automatic Game Mode activation", CategoryGameMode, RiskLow),

		// Network
		hklmDword(tcpipKey, "TcpAckFrequency", 1,
			"Acknowledge every TCP segment immediately", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "TCPNoDelay", 1,
			"Disable Nagle's algorithm", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "TcpDelAckTicks", 0,
			"Minimize delayed ACK timeout", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "MaxUserPort", 65534,
			"Raise the ephemeral port ceiling", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "TcpTimedWaitDelay", 30,
			"Shorten TIME_WAIT reuse delay", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "DefaultTTL", 64,
			"Set default IP TTL to 64", CategoryNetwork, RiskLow, false),
		hklmDword(tcpipKey, "TcpMaxDupAcks", 2,
			"Trigger fast retransmit after two duplicate ACKs", CategoryNetwork, RiskLow, false),

		// CPU and power
		hklmDword(`SYSTEM\CurrentControlSet\Control\Power`, "CsEnabled", 0,
			"Disable Connected Standby", CategoryCPU, RiskMedium, true),
		hklmDword(`SYSTEM\CurrentControlSet\Control\Session Manager\Power`, "HiberbootEnabled", 0,
			"Disable Fast Startup", CategoryCPU, RiskLow, true),
		hklmDword(`SYSTEM\CurrentControlSet\Services\Processor\Performance`, "TimeCheck", 200,
			"Reduce processor performance check interval", CategoryCPU, RiskLow, false),

		// GPU and multimedia profile
		hklmDword(graphicsKey, "HwSchMode", 2,
			"Enable hardware accelerated GPU scheduling", CategoryGPU, RiskLow, true),
		hklmDword(graphicsKey, "PlatformSupportMiracast", 0,
			"Disable Miracast support", CategoryGPU, RiskLow, false),
		hklmDword(sysProfileKey, "NetworkThrottlingIndex", 0xFFFFFFFF,
			"Disable multimedia network throttling", CategoryGPU, RiskLow, false),
		hklmDword(sysProfileKey, "SystemResponsiveness", 0,
			"Reserve no CPU for background multimedia tasks", CategoryGPU, RiskLow, false),

		// Memory management
		hklmDword(memMgmtKey, "ClearPageFileAtShutdown", 0,
			"Skip pagefile clearing at shutdown", CategoryMemory, RiskLow, false),
		hklmDword(memMgmtKey, "LargeSystemCache", 1,
			"Favor the system cache over working sets", CategoryMemory, RiskLow, false),
		hklmDword(memMgmtKey, "DisablePagingExecutive", 1,
			"Keep kernel and drivers out of the pagefile", CategoryMemory, RiskMedium, true),
		hklmDword(memMgmtKey, "SystemPages", 0,
			"Let the kernel size the system PTE pool", CategoryMemory, RiskLow, false),
		hklmDword(prefetchKey, "EnablePrefetcher", 0,
			"Disable the prefetcher on SSD systems", CategoryMemory, RiskMedium, false),
		hklmDword(prefetchKey, "EnableSuperfetch", 0,
			"Disable superfetch on SSD systems", CategoryMemory, RiskMedium, false),

		// Timers
		hklmDword(kernelKey, "GlobalTimerResolutionRequests", 1,
			"Allow global high resolution timer requests", CategoryTimer, RiskLow, false),
		hklmDword(kernelKey, "DpcWatchdogProfileOffset", 0,
			"Zero the DPC watchdog profile offset", CategoryTimer, RiskMedium, false),

		// Input
		hkcuString(`Control Panel\Mouse`, "MouseHoverTime", "0",
			"Remove mouse hover delay", CategoryInput, RiskLow),
		hkcuString(`Control Panel\Mouse`, "MouseSpeed", "0",
			"Disable pointer acceleration", CategoryInput, RiskLow),
		hkcuString(`Control Panel\Mouse`, "MouseThreshold1", "0",
			"Disable pointer acceleration threshold 1", CategoryInput, RiskLow),
		hkcuString(`Control Panel\Mouse`, "MouseThreshold2", "0",
			"Disable pointer acceleration threshold 2", CategoryInput, RiskLow),
		hklmDword(`SYSTEM\CurrentControlSet\Services\mouclass\Parameters`, "MouseDataQueueSize", 20,
			"Grow the mouse class driver data queue", CategoryInput, RiskLow, false),

		// Visual effects
		hkcuDword(`SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\VisualEffects`, "VisualFXSetting", 2,
			"Switch visual effects to the performance preset", CategoryVisual, RiskLow),
		hkcuString(`Control Panel\Desktop`, "MenuShowDelay", "0",
			"Remove menu show delay", CategoryVisual, RiskLow),
		hkcuString(`Control Panel\Desktop\WindowMetrics`, "MinAnimate", "0",
			"Disable window minimize and maximize animations", CategoryVisual, RiskLow),

		// Background services
		hklmDword(`SYSTEM\CurrentControlSet\Services\SysMain`, "Start", 4,
			"Disable the SysMain (superfetch) service", CategoryServices, RiskMedium, true),
		hklmDword(`SYSTEM\CurrentControlSet\Services\WSearch`, "Start", 4,
			"Disable the Windows Search indexer", CategoryServices, RiskMedium, true),
		hklmDword(`SYSTEM\CurrentControlSet\Services\Spooler`, "Start", 4,
			"Disable the print spooler", CategoryServices, RiskLow, true),

		// Power plan
		{
			Key:         platforms.SettingKey{Scope: platforms.ScopePowerPlan, Path: "high_performance"},
			Value:       platforms.StringValue("high_performance"),
			Description: "Activate the High Performance power plan",
			Category:    CategoryPower,
			Risk:        RiskLow,
		},
	}
}
