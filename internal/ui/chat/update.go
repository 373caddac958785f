// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatfs/chatfs-tui/internal/mention"
	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		return m.handleStreamEvent(msg)

	case HealthMsg:
		m.backendStatus = msg.Status
		return m, nil

	case PreviewResolvedMsg:
		return m.handlePreviewResolved(msg)

	case ConfigReloadedMsg:
		m.ApplyConfig(msg.Config)
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case ErrorMsg:
		m.lastError = msg.Err
		m.state = StateError
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Store().IsStreaming() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleResize recomputes the layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	chatWidth := m.chatWidth()
	m.viewport.Width = chatWidth
	m.viewport.Height = m.height - 5 // header, input, status bar
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = chatWidth - 4

	m.refreshViewport()
	return m, nil
}

// chatWidth returns the width of the message pane.
func (m Model) chatWidth() int {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.ctrl.CancelStream()
		m.state = StateReady
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.ctrl.NewChat()
		m.state = StateReady
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NextThread):
		m.selectNextThread()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.CycleModel):
		m.cycleModel()
		return m, nil

	case key.Matches(msg, m.keyMap.React):
		m.openReactionPicker()
		return m, nil

	case key.Matches(msg, m.keyMap.TogglePrev):
		return m.togglePreviews()

	case key.Matches(msg, m.keyMap.Sidebar):
		m.showSidebar = !m.showSidebar
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePickerKey routes keys while the emoji picker is open.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "shift+tab":
		m.picker.Prev()
	case "right", "tab":
		m.picker.Next()
	case "enter":
		if p := m.ctrl.Picker(); p != nil && !p.ForInput() {
			m.ctrl.ToggleReaction(p.MessageID, m.picker.Current())
		} else {
			m.input.SetValue(m.input.Value() + m.picker.Current())
		}
		m.closePicker()
		m.refreshViewport()
	case "esc":
		m.closePicker()
	}
	return m, nil
}

// submitInput sends the typed message and starts the response stream.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if _, _, err := m.ctrl.Send(text); err != nil {
		m.lastError = err
		m.state = StateError
		return m, nil
	}

	m.input.Reset()
	m.lastError = nil
	m.state = StateStreaming
	m.refreshViewport()
	return m, tea.Batch(textinput.Blink, m.spinner.Tick)
}

// selectNextThread cycles through threads, wrapping at the end.
func (m *Model) selectNextThread() {
	threads := m.ctrl.Store().Threads()
	if len(threads) < 2 {
		return
	}
	activeID := m.ctrl.Store().ActiveThreadID()
	for i, th := range threads {
		if th.ID == activeID {
			m.ctrl.SwitchThread(threads[(i+1)%len(threads)].ID)
			m.state = StateReady
			return
		}
	}
	m.ctrl.SwitchThread(threads[0].ID)
}

// cycleModel advances the active thread's model through the known set.
func (m *Model) cycleModel() {
	th := m.ctrl.Store().ActiveThread()
	if th == nil {
		return
	}
	all := model.AllModels()
	for i, id := range all {
		if id == th.Model {
			m.ctrl.SetModel(all[(i+1)%len(all)].String())
			return
		}
	}
	m.ctrl.SetModel(model.DefaultModel.String())
}

// openReactionPicker opens the picker on the newest settled message.
func (m *Model) openReactionPicker() {
	th := m.ctrl.Store().ActiveThread()
	if th == nil || len(th.Messages) == 0 {
		return
	}
	for i := len(th.Messages) - 1; i >= 0; i-- {
		if !th.Messages[i].IsStreaming {
			m.ctrl.OpenPicker(th.Messages[i].ID, 0, 0)
			m.picker = components.NewEmojiPicker()
			m.pickerOpen = true
			return
		}
	}
}

// closePicker closes the picker overlay and the controller's record of it.
func (m *Model) closePicker() {
	m.ctrl.ClosePicker()
	m.pickerOpen = false
}

// togglePreviews flips preview expansion for every mention in the
// newest mention-bearing message, resolving content for newly expanded
// paths.
func (m Model) togglePreviews() (tea.Model, tea.Cmd) {
	th := m.ctrl.Store().ActiveThread()
	if th == nil {
		return m, nil
	}

	var target *model.Message
	var mentions []mention.Mention
	for i := len(th.Messages) - 1; i >= 0; i-- {
		if ms := mention.Extract(th.Messages[i].Content); len(ms) > 0 {
			target = th.Messages[i]
			mentions = ms
			break
		}
	}
	if target == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	for _, mn := range mentions {
		path := mn.Path
		expanded := m.ctrl.ToggleMentionPreview(target.ID, path)
		if !expanded {
			continue
		}
		if _, cached := m.previews[target.ID][path]; cached {
			continue
		}
		msgID := target.ID
		cmds = append(cmds, func() tea.Msg {
			res := m.ctrl.ResolvePreview(context.Background(), path)
			return PreviewResolvedMsg{MessageID: msgID, Path: path, Result: res}
		})
	}

	m.refreshViewport()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// ASYNC MESSAGE HANDLERS
// =============================================================================

// handleStreamEvent applies one streaming event to the store and
// refreshes the transcript. Stale events are swallowed by the store.
func (m Model) handleStreamEvent(msg StreamEventMsg) (tea.Model, tea.Cmd) {
	if err := m.ctrl.HandleStreamEvent(msg.Event); err != nil {
		m.lastError = err
		m.state = StateError
		return m, nil
	}

	if msg.Event.Done {
		if !m.ctrl.Store().IsStreaming() {
			m.state = StateReady
		}
		if m.saver != nil {
			if th := m.ctrl.Store().Thread(msg.Event.ThreadID); th != nil {
				m.saver.Save(th)
			}
		}
	}

	m.refreshViewport()
	return m, nil
}

// handlePreviewResolved caches a rendered preview for its message.
func (m Model) handlePreviewResolved(msg PreviewResolvedMsg) (tea.Model, tea.Cmd) {
	if m.previews[msg.MessageID] == nil {
		m.previews[msg.MessageID] = make(map[string]components.Preview)
	}
	preview := components.NewPreview(msg.Path, msg.Result.Payload)
	preview.Degraded = !msg.Result.IsLive()
	m.previews[msg.MessageID][msg.Path] = preview

	m.refreshViewport()
	return m, nil
}
