// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client and resilient facade for the
// ChatFS backend process.
package backend

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often the health monitor re-probes the
// backend when no interval is configured.
const DefaultPollInterval = 30 * time.Second

// =============================================================================
// STATUS
// =============================================================================

// Status is a snapshot of backend connectivity.
type Status struct {
	Connected   bool
	LastChecked time.Time
	Diagnostic  string
}

// Badge returns the short status text for the status bar.
func (s Status) Badge() string {
	if s.Connected {
		return "live"
	}
	return "degraded"
}

// =============================================================================
// HEALTH MONITOR
// =============================================================================

// Monitor continuously refreshes the backend health status so the rest of
// the system can display live-vs-degraded mode. Run probes immediately on
// start and on a fixed interval after that.
type Monitor struct {
	facade   *Facade
	interval time.Duration

	mu     sync.RWMutex
	status Status

	// onChange, if set, is invoked after every probe with the fresh
	// status. Invoked from the monitor goroutine.
	onChange func(Status)
}

// NewMonitor creates a health monitor over facade. A non-positive interval
// uses DefaultPollInterval.
func NewMonitor(facade *Facade, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		facade:   facade,
		interval: interval,
	}
}

// OnChange registers a callback invoked after every probe. Must be called
// before Run.
func (m *Monitor) OnChange(fn func(Status)) {
	m.onChange = fn
}

// Status returns the latest connectivity snapshot.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check probes the backend once and updates the stored status.
func (m *Monitor) Check(ctx context.Context) Status {
	result := m.facade.ProbeHealth(ctx)

	status := Status{
		Connected:   result.IsLive(),
		LastChecked: time.Now(),
		Diagnostic:  result.Diagnostic,
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(status)
	}
	return status
}

// Run probes immediately, then on every interval tick until ctx is
// cancelled. Blocks; run it in its own goroutine.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
