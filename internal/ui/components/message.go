// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatfs/chatfs-tui/internal/mention"
	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// MessageView renders a single chat message: the bubble, reaction badges
// and any expanded mention previews.
type MessageView struct {
	Message  *model.Message
	MaxWidth int

	// Previews holds rendered previews for expanded mentions, keyed by
	// path. Paths absent from the map render as collapsed mentions.
	Previews map[string]Preview
}

// NewMessageView creates a view for one message.
func NewMessageView(msg *model.Message) MessageView {
	return MessageView{
		Message:  msg,
		MaxWidth: 80,
	}
}

// Render renders the complete message block.
func (v MessageView) Render(theme *styles.Theme) string {
	msg := v.Message

	var parts []string
	parts = append(parts, v.renderHeader(theme))
	parts = append(parts, v.renderBubble(theme))

	if badges := v.renderReactions(theme); badges != "" {
		parts = append(parts, badges)
	}
	parts = append(parts, v.renderPreviews(theme)...)

	block := strings.Join(parts, "\n")
	if msg.Role == model.RoleUser {
		return lipgloss.NewStyle().Align(lipgloss.Right).Width(v.MaxWidth).Render(block)
	}
	return block
}

// renderHeader renders the role label and timestamp line.
func (v MessageView) renderHeader(theme *styles.Theme) string {
	ts := v.Message.Timestamp.Format("15:04")
	return theme.MessageMeta.Render(v.Message.Role.DisplayName() + " " + ts)
}

// renderBubble renders the message bubble with highlighted mentions and
// a streaming cursor while the response is still arriving.
func (v MessageView) renderBubble(theme *styles.Theme) string {
	content := highlightMentions(v.Message.Content, theme)
	if v.Message.IsStreaming {
		content += theme.StreamingCursor.Render("▌")
	}

	bubbleWidth := v.MaxWidth - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	style := theme.AssistantBubble
	if v.Message.Role == model.RoleUser {
		style = theme.UserBubble
	}
	return style.MaxWidth(bubbleWidth).Render(content)
}

// renderReactions renders one badge per emoji with its count.
func (v MessageView) renderReactions(theme *styles.Theme) string {
	if len(v.Message.Reactions) == 0 {
		return ""
	}

	var badges []string
	for _, emoji := range sortedEmojis(v.Message.Reactions) {
		count := len(v.Message.Reactions[emoji])
		if count == 0 {
			continue
		}
		label := emoji
		if count > 1 {
			label += " " + itoa(count)
		}
		badges = append(badges, theme.ReactionBadge.Render(label))
	}
	return strings.Join(badges, " ")
}

// renderPreviews renders the expanded mention previews in mention order.
func (v MessageView) renderPreviews(theme *styles.Theme) []string {
	if len(v.Previews) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, m := range mention.Extract(v.Message.Content) {
		if _, done := seen[m.Path]; done {
			continue
		}
		seen[m.Path] = struct{}{}

		preview, ok := v.Previews[m.Path]
		if !ok {
			continue
		}
		preview.MaxWidth = v.MaxWidth
		out = append(out, preview.Render(theme))
	}
	return out
}

// highlightMentions styles every @path mention in the content.
func highlightMentions(content string, theme *styles.Theme) string {
	mentions := mention.Extract(content)
	if len(mentions) == 0 {
		return content
	}

	var sb strings.Builder
	last := 0
	for _, m := range mentions {
		sb.WriteString(content[last:m.Start])
		sb.WriteString(theme.MentionText.Render(content[m.Start:m.End]))
		last = m.End
	}
	sb.WriteString(content[last:])
	return sb.String()
}

// sortedEmojis returns the reaction emojis in a stable order.
func sortedEmojis(reactions map[string]map[string]struct{}) []string {
	emojis := make([]string, 0, len(reactions))
	for emoji := range reactions {
		emojis = append(emojis, emoji)
	}
	// Insertion sort; reaction sets are tiny.
	for i := 1; i < len(emojis); i++ {
		for j := i; j > 0 && emojis[j] < emojis[j-1]; j-- {
			emojis[j], emojis[j-1] = emojis[j-1], emojis[j]
		}
	}
	return emojis
}

// itoa converts a small positive int without fmt.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
