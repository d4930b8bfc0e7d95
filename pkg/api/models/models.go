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

package models

import (
	"encoding/json"

	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/steam"
	"github.com/google/uuid"
)

const (
	NotificationMetricsUpdated = "metrics.updated"
	NotificationGameStarted    = "game.started"
	NotificationGameStopped    = "game.stopped"
	NotificationTweaksApplied  = "tweaks.applied"
	NotificationTweaksReverted = "tweaks.reverted"
)

const (
	MethodStatus           = "status"
	MethodHardware         = "status.hardware"
	MethodMetricsCurrent   = "metrics.current"
	MethodMetricsHistory   = "metrics.history"
	MethodMetricsNetwork   = "metrics.network"
	MethodOptimizePreview  = "optimize.preview"
	MethodOptimizeApply    = "optimize.apply"
	MethodOptimizeRevert   = "optimize.revert"
	MethodOptimizeBackups  = "optimize.backups"
	MethodSteamGames       = "steam.games"
	MethodCS2Config        = "cs2.config"
	MethodCS2LaunchOptions = "cs2.launchoptions"
	MethodHistory          = "history"
	MethodHistoryTweaks    = "history.tweaks"
	MethodHistoryGames     = "history.games"
	MethodSettings         = "settings"
	MethodSettingsUpdate   = "settings.update"
	MethodSettingsReload   = "settings.reload"
	MethodVersion          = "version"
)

// Notification is an unsolicited server-to-client message. Params is
// marshalled at broadcast time.
type Notification struct {
	Params any    `json:"params,omitempty"`
	Method string `json:"method"`
}

type RequestObject struct {
	ID      *uuid.UUID      `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}

// ResponseErrorObject exists for sending errors, so result can be omitted
// from the payload while ResponseObject still serializes nil results.
type ResponseErrorObject struct {
	Error   *ErrorObject `json:"error"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}

type GameInfo struct {
	Name string `json:"name"`
	Exe  string `json:"exe"`
	PID  int32  `json:"pid"`
}

type StatusResponse struct {
	ActiveGame     *GameInfo `json:"activeGame,omitempty"`
	Platform       string    `json:"platform"`
	Version        string    `json:"version"`
	DeviceID       string    `json:"deviceId"`
	PendingRestart bool      `json:"pendingRestart"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

type MetricsCurrentResponse struct {
	Metrics monitor.Snapshot     `json:"metrics"`
	Network monitor.NetworkStats `json:"network"`
}

type MetricsHistoryParams struct {
	Limit *int `json:"limit" validate:"omitempty,gte=1,lte=1000"`
}

type MetricsHistoryResponse struct {
	Entries []monitor.Snapshot `json:"entries"`
}

type OptimizePreviewResponse struct {
	MaxRisk    string            `json:"maxRisk"`
	Tweaks     []optimizer.Tweak `json:"tweaks"`
	Categories []string          `json:"categories"`
}

type OptimizeApplyParams struct {
	MaxRisk *string `json:"maxRisk" validate:"omitempty,oneof=low medium high"`
	DryRun  *bool   `json:"dryRun"`
}

type OptimizeRevertParams struct {
	BackupPath string `json:"backupPath"`
}

type BackupsResponse struct {
	Paths []string `json:"paths"`
}

type SteamGamesResponse struct {
	Root  string       `json:"root"`
	Games []steam.Game `json:"games"`
}

type CS2ConfigResponse struct {
	AutoexecPath  string   `json:"autoexecPath"`
	LaunchOptions string   `json:"launchOptions"`
	VideoPaths    []string `json:"videoPaths"`
}

type CS2LaunchOptionsParams struct {
	Apply bool `json:"apply"`
}

type CS2LaunchOptionsResponse struct {
	Options string `json:"options"`
	Applied bool   `json:"applied"`
}

type HistoryParams struct {
	Limit *int `json:"limit" validate:"omitempty,gte=1,lte=500"`
}

type HistoryResponse struct {
	Sessions []historydb.Session `json:"sessions"`
}

type HistoryTweaksParams struct {
	SessionID int64 `json:"sessionId" validate:"required,gt=0"`
}

type HistoryTweaksResponse struct {
	Tweaks []historydb.TweakEntry `json:"tweaks"`
}

type HistoryGamesResponse struct {
	Sessions []historydb.GameSession `json:"sessions"`
}

type SettingsResponse struct {
	MaxRisk            string   `json:"maxRisk"`
	DisabledCategories []string `json:"disabledCategories"`
	PingHosts          []string `json:"pingHosts"`
	RefreshRate        int      `json:"refreshRate"`
	DryRun             bool     `json:"dryRun"`
	DebugLogging       bool     `json:"debugLogging"`
}

type UpdateSettingsParams struct {
	MaxRisk      *string `json:"maxRisk" validate:"omitempty,oneof=low medium high"`
	DryRun       *bool   `json:"dryRun"`
	DebugLogging *bool   `json:"debugLogging"`
}
