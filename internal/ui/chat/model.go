// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/config"
	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/session"
	"github.com/chatfs/chatfs-tui/internal/ui/components"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateStreaming              // Receiving a simulated response
	StateError                  // Showing an error
)

// ThreadSaver persists a thread snapshot. Satisfied by
// storage.ThreadStore; nil disables persistence.
type ThreadSaver interface {
	Save(*model.Thread) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Session controller: threads, streaming, reactions, previews
	ctrl *session.Controller

	// Thread persistence (nil = in-memory only)
	saver ThreadSaver

	// Backend health, fed by the monitor
	backendStatus backend.Status

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Emoji picker overlay
	picker     components.EmojiPicker
	pickerOpen bool

	// Rendered previews per message id and path. Filled on demand when
	// a mention is expanded.
	previews map[string]map[string]components.Preview

	// Overlays
	showSidebar bool
	showHelp    bool
	showBadge   bool

	// Error state
	lastError error
}

// New creates a new chat model around the given session controller.
func New(theme *styles.Theme, ctrl *session.Controller, saver ThreadSaver) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Message, @path to mention a file..."
	ti.CharLimit = session.MaxInputLen
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 30,
	}

	if ctrl == nil {
		ctrl = session.NewController(nil)
	}

	return Model{
		state:       StateReady,
		theme:       theme,
		ctrl:        ctrl,
		saver:       saver,
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
		picker:      components.NewEmojiPicker(),
		previews:    make(map[string]map[string]components.Preview),
		showSidebar: true,
		showBadge:   true,
	}
}

// ApplyConfig applies the user-facing configuration settings: default
// model, status badge visibility and compact mode. Backend and storage
// settings are wired at startup and need a restart.
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.ctrl.SetModel(cfg.DefaultModel)
	m.showBadge = cfg.UI.ShowStatusBadge
	m.showSidebar = !cfg.UI.CompactMode
}

// Controller exposes the session controller, mainly so the program can
// wire its sink before starting.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// SetBackendStatus seeds the backend badge before the first health tick.
func (m *Model) SetBackendStatus(status backend.Status) {
	m.backendStatus = status
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}
