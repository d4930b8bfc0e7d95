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

package requests

import (
	"encoding/json"

	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/FPSTuneProject/fpstune-core/pkg/service/state"
	"github.com/google/uuid"
)

// RequestEnv carries everything a method handler may need to service one
// request. IsLocal gates methods that change the host system.
type RequestEnv struct {
	Platform  platforms.Platform
	Config    *config.Instance
	State     *state.State
	HistoryDB *historydb.HistoryDB
	Engine    *optimizer.Engine
	Backups   *optimizer.BackupStore
	Monitor   *monitor.Monitor
	Params    json.RawMessage
	ID        uuid.UUID
	IsLocal   bool
}
