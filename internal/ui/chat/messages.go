// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea messages that cross goroutine
// boundaries into the chat update loop.
package chat

import (
	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/config"
	"github.com/chatfs/chatfs-tui/internal/session"
)

// StreamEventMsg carries one streaming progress event from the render
// goroutine. Delivered through Program.Send; applied on the update loop.
type StreamEventMsg struct {
	Event session.StreamEvent
}

// HealthMsg carries a backend health transition from the monitor.
type HealthMsg struct {
	Status backend.Status
}

// PreviewResolvedMsg carries a resolved mention preview back to the
// message that requested it.
type PreviewResolvedMsg struct {
	MessageID string
	Path      string
	Result    backend.FetchResult[string]
}

// ConfigReloadedMsg carries a hot-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ErrorMsg carries a fatal-to-this-operation error for display.
type ErrorMsg struct {
	Err error
}
