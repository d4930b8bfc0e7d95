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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/api"
	"github.com/FPSTuneProject/fpstune-core/pkg/api/models"
	"github.com/FPSTuneProject/fpstune-core/pkg/config"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestTimeout   = errors.New("request timed out")
	ErrInvalidParams    = errors.New("invalid params")
	ErrRequestCancelled = errors.New("request cancelled")
)

// LocalClient sends a single method with params to the local running API
// service, waits for a response until timeout then disconnects.
func LocalClient(
	ctx context.Context,
	cfg *config.Instance,
	method string,
	params string,
) (string, error) {
	wsURL := url.URL{
		Scheme: "ws",
		Host:   "localhost:" + strconv.Itoa(cfg.APIPort()),
		Path:   api.APIPath,
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate request id: %w", err)
	}

	req := models.RequestObject{
		JSONRPC: "2.0",
		ID:      &id,
		Method:  method,
	}

	switch {
	case len(params) == 0:
		req.Params = nil
	case json.Valid([]byte(params)):
		req.Params = []byte(params)
	default:
		return "", ErrInvalidParams
	}

	c, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to connect to local API: %w", err)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing websocket")
		}
	}()

	done := make(chan struct{})
	var resp *models.ResponseObject

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Error().Err(err).Msg("error reading message")
				return
			}

			var m models.ResponseObject
			if err := json.Unmarshal(message, &m); err != nil {
				continue
			}

			if m.JSONRPC != "2.0" {
				log.Error().Msg("invalid jsonrpc version")
				continue
			}

			if m.ID != id {
				continue
			}

			resp = &m
			return
		}
	}()

	if err := c.WriteJSON(req); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	timer := time.NewTimer(config.APIRequestTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		if closeErr := c.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing websocket")
		}
		return "", ErrRequestTimeout
	case <-ctx.Done():
		if closeErr := c.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing websocket")
		}
		return "", ErrRequestCancelled
	}

	if resp == nil {
		return "", ErrRequestTimeout
	}

	if resp.Error != nil {
		return "", errors.New(resp.Error.Message)
	}

	b, err := json.Marshal(resp.Result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(b), nil
}
