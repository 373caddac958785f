// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
	"github.com/chatfs/chatfs-tui/internal/util"
)

// =============================================================================
// SIDEBAR (THREAD LIST) COMPONENT
// =============================================================================

// Sidebar renders the thread list pane. Threads come pre-ordered from
// the store (newest first); the sidebar only draws them.
type Sidebar struct {
	Threads  []*model.Thread
	ActiveID string
	Width    int
	Height   int
}

// Render renders the sidebar to the configured dimensions.
func (s Sidebar) Render(theme *styles.Theme) string {
	inner := s.Width - 4
	if inner < 8 {
		inner = 8
	}

	var lines []string
	lines = append(lines, theme.HeaderTitle.Render("Chats"))

	for _, th := range s.Threads {
		title := util.TruncateWidth(th.Title, inner)
		item := theme.ThreadItem
		if th.ID == s.ActiveID {
			item = theme.ThreadItemSelected
		}
		lines = append(lines, item.Render(title))

		if th.LastMessage != "" {
			lines = append(lines, theme.ThreadMeta.Render(util.TruncateWidth(th.LastMessage, inner)))
		}
	}

	if len(s.Threads) == 0 {
		lines = append(lines, theme.ThreadMeta.Render("No chats yet"))
	}

	// Clamp to the pane height, keeping the header.
	if s.Height > 0 && len(lines) > s.Height {
		lines = lines[:s.Height]
	}

	return theme.Sidebar.Width(s.Width).Render(strings.Join(lines, "\n"))
}
