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
	"math"
	"net"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// statsWindow is how many recent samples latency statistics cover.
const statsWindow = 30

// NetworkStats summarizes recent round trip measurements.
type NetworkStats struct {
	AvgMs    float64 `json:"avgMs"`
	MinMs    float64 `json:"minMs"`
	MaxMs    float64 `json:"maxMs"`
	JitterMs float64 `json:"jitterMs"`
	Samples  int     `json:"samples"`
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Prober measures latency with TCP connects. ICMP needs raw sockets and a
// privileged service, a TCP handshake to a resolver gives a comparable
// round trip without them.
type Prober struct {
	dial    dialFunc
	samples []float64
	timeout time.Duration
	mu      syncutil.RWMutex
}

func NewProber() *Prober {
	d := &net.Dialer{}
	return &Prober{
		dial:    d.DialContext,
		timeout: 3 * time.Second,
	}
}

// SetDialForTesting replaces the dialer.
func (p *Prober) SetDialForTesting(dial dialFunc) {
	p.dial = dial
}

// Probe connects to each host once, in parallel, and records the
// handshake time of the ones that answer.
func (p *Prober) Probe(ctx context.Context, hosts []string) {
	var g errgroup.Group
	for _, host := range hosts {
		g.Go(func() error {
			dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			start := time.Now()
			conn, err := p.dial(dialCtx, "tcp", host)
			elapsed := time.Since(start)

			if err != nil {
				log.Debug().Err(err).Str("host", host).Msg("latency probe failed")
				return nil
			}
			if closeErr := conn.Close(); closeErr != nil {
				log.Debug().Err(closeErr).Str("host", host).Msg("failed to close probe connection")
			}

			p.record(float64(elapsed.Microseconds()) / 1000.0)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Prober) record(ms float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = append(p.samples, ms)
	if len(p.samples) > statsWindow {
		p.samples = p.samples[len(p.samples)-statsWindow:]
	}
}

// Stats computes avg/min/max/jitter over the sample window. Jitter is the
// sample standard deviation.
func (p *Prober) Stats() NetworkStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := NetworkStats{Samples: len(p.samples)}
	if len(p.samples) == 0 {
		return stats
	}

	stats.MinMs = p.samples[0]
	stats.MaxMs = p.samples[0]
	var sum float64
	for _, s := range p.samples {
		sum += s
		if s < stats.MinMs {
			stats.MinMs = s
		}
		if s > stats.MaxMs {
			stats.MaxMs = s
		}
	}
	stats.AvgMs = sum / float64(len(p.samples))

	if len(p.samples) > 1 {
		var sq float64
		for _, s := range p.samples {
			d := s - stats.AvgMs
			sq += d * d
		}
		stats.JitterMs = math.Sqrt(sq / float64(len(p.samples)-1))
	}

	return stats
}
