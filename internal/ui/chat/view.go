// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatfs/chatfs-tui/internal/ui/components"
)

// sidebarWidth is the fixed width of the thread list pane.
const sidebarWidth = 28

// =============================================================================
// VIEW
// =============================================================================

// View renders the complete chat screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var rows []string
	rows = append(rows, m.renderHeader())

	body := m.viewport.View()
	if m.showSidebar {
		sidebar := components.Sidebar{
			Threads:  m.ctrl.Store().Threads(),
			ActiveID: m.ctrl.Store().ActiveThreadID(),
			Width:    sidebarWidth,
			Height:   m.viewport.Height,
		}.Render(m.theme)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}
	rows = append(rows, body)

	if m.showHelp {
		rows = append(rows, m.renderHelp())
	}
	if m.pickerOpen {
		rows = append(rows, m.picker.Render(m.theme))
	}
	if m.lastError != nil {
		rows = append(rows, m.theme.CharCountDanger.Render(m.lastError.Error()))
	}

	rows = append(rows, m.renderInput())
	rows = append(rows, m.renderStatusBar())

	return strings.Join(rows, "\n")
}

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderBrand.Render("chatfs")
	if th := m.ctrl.Store().ActiveThread(); th != nil {
		title += m.theme.MessageMeta.Render("  " + th.Title)
	}
	return m.theme.Header.Width(m.width).Render(title)
}

// renderInput renders the input row with a spinner while streaming and
// a character counter as the limit nears.
func (m Model) renderInput() string {
	row := m.input.View()
	if m.ctrl.Store().IsStreaming() {
		row = m.spinner.View() + " " + row
	}

	remaining := m.input.CharLimit - len([]rune(m.input.Value()))
	if remaining < 200 {
		counter := m.theme.CharCount
		if remaining < 40 {
			counter = m.theme.CharCountDanger
		}
		row += "  " + counter.Render(itoa(remaining)+" left")
	}
	return m.theme.InputContainer.Width(m.width).Render(row)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	modelName := ""
	if th := m.ctrl.Store().ActiveThread(); th != nil {
		modelName = th.Model.DisplayName()
	}
	return components.StatusBar{
		Backend:       m.backendStatus,
		ShowBadge:     m.showBadge,
		ModelName:     modelName,
		ThreadCount:   m.ctrl.Store().ThreadCount(),
		Streaming:     m.ctrl.Store().IsStreaming(),
		Width:         m.width,
		ShowShortcuts: m.width > 70,
	}.Render(m.theme)
}

// renderHelp renders the full key binding reference.
func (m Model) renderHelp() string {
	var lines []string
	for _, group := range m.keyMap.FullHelp() {
		var parts []string
		for _, b := range group {
			parts = append(parts, m.theme.ShortcutKey.Render(b.Help().Key)+" "+
				m.theme.ShortcutDesc.Render(b.Help().Desc))
		}
		lines = append(lines, strings.Join(parts, "   "))
	}
	return m.theme.PreviewBox.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport rebuilds the transcript for the active thread and
// keeps the view pinned to the newest message.
func (m *Model) refreshViewport() {
	th := m.ctrl.Store().ActiveThread()
	if th == nil {
		m.viewport.SetContent(m.theme.MessageMeta.Render("Start a new chat with Ctrl+N"))
		return
	}

	width := m.chatWidth()
	var blocks []string
	for _, msg := range th.Messages {
		view := components.NewMessageView(msg)
		view.MaxWidth = width
		view.Previews = m.expandedPreviews(msg.ID)
		blocks = append(blocks, view.Render(m.theme))
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

// expandedPreviews returns the cached previews for paths the user has
// expanded on this message.
func (m *Model) expandedPreviews(messageID string) map[string]components.Preview {
	cached := m.previews[messageID]
	if len(cached) == 0 {
		return nil
	}

	out := make(map[string]components.Preview, len(cached))
	for path, preview := range cached {
		if m.ctrl.IsMentionExpanded(messageID, path) {
			out[path] = preview
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// itoa converts a small non-negative int without fmt.
func itoa(n int) string {
	if n <= 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
