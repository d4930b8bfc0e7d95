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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/api/methods"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models/requests"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/validation"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/FPSTuneProject/fpstune-core/pkg/database/historydb"
	"github.com/FPSTuneProject/fpstune-core/pkg/monitor"
	"github.com/FPSTuneProject/fpstune-core/pkg/optimizer"
	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/FPSTuneProject/fpstune-core/pkg/service/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// APIPath is the current versioned websocket endpoint.
const APIPath = "/api/v1"

var (
	JSONRPCErrorParseError     = models.ErrorObject{Code: -32700, Message: "parse error"}
	JSONRPCErrorInvalidRequest = models.ErrorObject{Code: -32600, Message: "invalid request"}
	JSONRPCErrorMethodNotFound = models.ErrorObject{Code: -32601, Message: "method not found"}
	JSONRPCErrorInvalidParams  = models.ErrorObject{Code: -32602, Message: "invalid params"}
	JSONRPCErrorInternalError  = models.ErrorObject{Code: -32603, Message: "internal error"}
	JSONRPCErrorServerError    = models.ErrorObject{Code: -32000, Message: "server error"}
)

var methodMap = map[string]func(requests.RequestEnv) (any, error){
	// status
	models.MethodStatus:   methods.HandleStatus,
	models.MethodHardware: methods.HandleHardware,
	models.MethodVersion:  methods.HandleVersion,
	// metrics
	models.MethodMetricsCurrent: methods.HandleMetricsCurrent,
	models.MethodMetricsHistory: methods.HandleMetricsHistory,
	models.MethodMetricsNetwork: methods.HandleMetricsNetwork,
	// optimizer
	models.MethodOptimizePreview: methods.HandleOptimizePreview,
	models.MethodOptimizeApply:   methods.HandleOptimizeApply,
	models.MethodOptimizeRevert:  methods.HandleOptimizeRevert,
	models.MethodOptimizeBackups: methods.HandleOptimizeBackups,
	// steam
	models.MethodSteamGames:       methods.HandleSteamGames,
	models.MethodCS2Config:        methods.HandleCS2Config,
	models.MethodCS2LaunchOptions: methods.HandleCS2LaunchOptions,
	// history
	models.MethodHistory:       methods.HandleHistory,
	models.MethodHistoryTweaks: methods.HandleHistoryTweaks,
	models.MethodHistoryGames:  methods.HandleHistoryGames,
	// settings
	models.MethodSettings:       methods.HandleSettings,
	models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
	models.MethodSettingsReload: methods.HandleSettingsReload,
}

// Env bundles the service dependencies handed to every request handler.
type Env struct {
	Platform  platforms.Platform
	Config    *config.Instance
	State     *state.State
	HistoryDB *historydb.HistoryDB
	Engine    *optimizer.Engine
	Backups   *optimizer.BackupStore
	Monitor   *monitor.Monitor
}

//nolint:gocritic // request env copied per request
func handleRequest(env requests.RequestEnv, req models.RequestObject) (any, *models.ErrorObject) {
	log.Debug().Interface("request", req).Msg("received request")

	fn, ok := methodMap[strings.ToLower(req.Method)]
	if !ok {
		return nil, &JSONRPCErrorMethodNotFound
	}

	env.ID = *req.ID
	env.Params = req.Params

	resp, err := fn(env)
	if err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) ||
			errors.Is(err, validation.ErrMissingParams) ||
			errors.Is(err, validation.ErrInvalidParams) {
			return nil, &models.ErrorObject{
				Code:    JSONRPCErrorInvalidParams.Code,
				Message: err.Error(),
			}
		}
		return nil, &models.ErrorObject{
			Code:    JSONRPCErrorServerError.Code,
			Message: err.Error(),
		}
	}

	return resp, nil
}

func sendResponse(session *melody.Session, id uuid.UUID, result any) error {
	log.Debug().Interface("result", result).Msg("sending response")

	resp := models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling response: %w", err)
	}

	if err := session.Write(data); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}

//nolint:gocritic // error object copied for response
func sendError(session *melody.Session, id uuid.UUID, errObj models.ErrorObject) error {
	log.Debug().Int("code", errObj.Code).Str("message", errObj.Message).Msg("sending error")

	resp := models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errObj,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling error response: %w", err)
	}

	if err := session.Write(data); err != nil {
		return fmt.Errorf("error writing error response: %w", err)
	}
	return nil
}

func broadcastNotifications(
	st *state.State,
	session *melody.Melody,
	notifications <-chan models.Notification,
) {
	for {
		select {
		case <-st.GetContext().Done():
			log.Debug().Msg("stopping notification broadcaster")
			return
		case notif := <-notifications:
			var params json.RawMessage
			if notif.Params != nil {
				data, err := json.Marshal(notif.Params)
				if err != nil {
					log.Error().Err(err).Msg("marshalling notification params")
					continue
				}
				params = data
			}

			req := models.RequestObject{
				JSONRPC: "2.0",
				Method:  notif.Method,
				Params:  params,
			}

			data, err := json.Marshal(req)
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification request")
				continue
			}

			if err := session.Broadcast(data); err != nil {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

func isLocalAddr(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func handleWSMessage(env Env) func(session *melody.Session, msg []byte) {
	return func(session *melody.Session, msg []byte) {
		// ping command for heartbeat operation
		if bytes.Equal(msg, []byte("ping")) {
			if err := session.Write([]byte("pong")); err != nil {
				log.Error().Err(err).Msg("sending pong")
			}
			return
		}

		if !json.Valid(msg) {
			log.Error().Msg("data not valid json")
			if err := sendError(session, uuid.Nil, JSONRPCErrorParseError); err != nil {
				log.Error().Err(err).Msg("error sending error response")
			}
			return
		}

		var req models.RequestObject
		err := json.Unmarshal(msg, &req)
		if err != nil || req.Method == "" {
			log.Error().Err(err).Msg("message is not a request")
			if sendErr := sendError(session, uuid.Nil, JSONRPCErrorInvalidRequest); sendErr != nil {
				log.Error().Err(sendErr).Msg("error sending error response")
			}
			return
		}

		if req.JSONRPC != "2.0" {
			log.Error().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
			if sendErr := sendError(session, uuid.Nil, JSONRPCErrorInvalidRequest); sendErr != nil {
				log.Error().Err(sendErr).Msg("error sending error response")
			}
			return
		}

		if req.ID == nil {
			// request is a notification, nothing to respond to
			log.Info().Interface("req", req).Msg("received notification, ignoring")
			return
		}

		resp, errObj := handleRequest(requests.RequestEnv{
			Platform:  env.Platform,
			Config:    env.Config,
			State:     env.State,
			HistoryDB: env.HistoryDB,
			Engine:    env.Engine,
			Backups:   env.Backups,
			Monitor:   env.Monitor,
			IsLocal:   isLocalAddr(session.Request.RemoteAddr),
		}, req)
		if errObj != nil {
			if err := sendError(session, *req.ID, *errObj); err != nil {
				log.Error().Err(err).Msg("error sending error response")
			}
			return
		}

		if err := sendResponse(session, *req.ID, resp); err != nil {
			log.Error().Err(err).Msg("error sending response")
		}
	}
}

// Start runs the JSON-RPC websocket API until the service context is
// cancelled.
func Start(env Env, notifications <-chan models.Notification) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))

	allowedOrigins := env.Config.AllowedOrigins()
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"https://*", "http://*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Accept"},
		ExposedHeaders: []string{},
	}))

	session := melody.New()
	session.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	go broadcastNotifications(env.State, session, notifications)

	wsHandler := func(w http.ResponseWriter, r *http.Request) {
		if err := session.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	}
	r.Get("/api", wsHandler)
	r.Get(APIPath, wsHandler)

	session.HandleMessage(handleWSMessage(env))

	srv := &http.Server{
		Addr:              env.Config.APIListen(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-env.State.GetContext().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("error shutting down http server")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("starting API server")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("error starting http server")
	}
}
