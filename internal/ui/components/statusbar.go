// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom status bar: backend badge, model, thread
// count and shortcut hints.
type StatusBar struct {
	Backend       backend.Status
	ShowBadge     bool
	ModelName     string
	ThreadCount   int
	Streaming     bool
	Width         int
	ShowShortcuts bool
}

// Render renders the status bar to fit the configured width.
func (s StatusBar) Render(theme *styles.Theme) string {
	var left []string

	if s.ShowBadge {
		left = append(left, s.renderBadge(theme))
	}
	if s.ModelName != "" {
		left = append(left, theme.ModelBadge.Render(s.ModelName))
	}
	if s.ThreadCount > 0 {
		left = append(left, theme.ShortcutDesc.Render(itoa(s.ThreadCount)+" threads"))
	}
	if s.Streaming {
		left = append(left, theme.ShortcutDesc.Render("responding..."))
	}

	line := strings.Join(left, "  ")
	if s.ShowShortcuts {
		// lipgloss.Width measures printable width, ignoring ANSI codes.
		hints := s.renderShortcuts(theme)
		gap := s.Width - lipgloss.Width(line) - lipgloss.Width(hints) - 2
		if gap > 0 {
			line += strings.Repeat(" ", gap) + hints
		}
	}
	return theme.StatusBar.Render(line)
}

// renderBadge renders the backend connectivity badge. The badge tracks
// provenance: live means real backend data, degraded means canned
// fallback content.
func (s StatusBar) renderBadge(theme *styles.Theme) string {
	if s.Backend.Connected {
		return theme.BackendLive.Render(styles.StatusIndicators.Active + " live")
	}
	return theme.BackendDegraded.Render(styles.StatusIndicators.Warning + " degraded")
}

// renderShortcuts renders the key hint cluster.
func (s StatusBar) renderShortcuts(theme *styles.Theme) string {
	hints := []struct{ key, desc string }{
		{"Enter", "send"},
		{"C-n", "new chat"},
		{"C-e", "react"},
		{"C-/", "help"},
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, theme.ShortcutKey.Render(h.key)+" "+theme.ShortcutDesc.Render(h.desc))
	}
	return strings.Join(parts, "  ")
}
