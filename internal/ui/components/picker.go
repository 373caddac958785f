// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// =============================================================================
// EMOJI PICKER COMPONENT
// =============================================================================

// DefaultEmojis is the fixed picker palette.
var DefaultEmojis = []string{"👍", "❤️", "😄", "🎉", "🤔", "👀", "🚀", "👎"}

// EmojiPicker renders the reaction picker overlay. Selection state lives
// here; which message it targets is the session controller's concern.
type EmojiPicker struct {
	Emojis   []string
	Selected int
}

// NewEmojiPicker creates a picker over the default palette.
func NewEmojiPicker() EmojiPicker {
	return EmojiPicker{Emojis: DefaultEmojis}
}

// Next moves the selection right, wrapping around.
func (p *EmojiPicker) Next() {
	if len(p.Emojis) == 0 {
		return
	}
	p.Selected = (p.Selected + 1) % len(p.Emojis)
}

// Prev moves the selection left, wrapping around.
func (p *EmojiPicker) Prev() {
	if len(p.Emojis) == 0 {
		return
	}
	p.Selected = (p.Selected - 1 + len(p.Emojis)) % len(p.Emojis)
}

// Current returns the selected emoji, or "" when the palette is empty.
func (p *EmojiPicker) Current() string {
	if len(p.Emojis) == 0 {
		return ""
	}
	return p.Emojis[p.Selected]
}

// Render renders the picker row.
func (p EmojiPicker) Render(theme *styles.Theme) string {
	var cells []string
	for i, emoji := range p.Emojis {
		style := theme.PickerItem
		if i == p.Selected {
			style = theme.PickerSelected
		}
		cells = append(cells, style.Render(emoji))
	}
	return theme.PickerBox.Render(strings.Join(cells, ""))
}
