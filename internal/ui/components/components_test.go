// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// MESSAGE VIEW TESTS
// =============================================================================

func TestMessageView_RendersContent(t *testing.T) {
	msg := model.NewUserMessage("Check @README.md please")
	view := NewMessageView(msg)

	out := view.Render(testTheme())
	if !strings.Contains(out, "README.md") {
		t.Error("rendered message should contain the mention text")
	}
	if !strings.Contains(out, "You") {
		t.Error("rendered message should contain the role label")
	}
}

func TestMessageView_StreamingCursor(t *testing.T) {
	msg := model.NewAssistantMessage()
	msg.SetStreamContent("partial resp")

	out := NewMessageView(msg).Render(testTheme())
	if !strings.Contains(out, "▌") {
		t.Error("streaming message should show a cursor")
	}

	msg.FinalizeStream("full response")
	out = NewMessageView(msg).Render(testTheme())
	if strings.Contains(out, "▌") {
		t.Error("settled message should not show a cursor")
	}
}

func TestMessageView_ReactionBadges(t *testing.T) {
	msg := model.NewUserMessage("hello")
	msg.ToggleReaction("👍", "user-1")
	msg.ToggleReaction("👍", "user-2")
	msg.ToggleReaction("🎉", "user-1")

	out := NewMessageView(msg).Render(testTheme())
	if !strings.Contains(out, "👍 2") {
		t.Errorf("expected count badge for doubled reaction, got %q", out)
	}
	if !strings.Contains(out, "🎉") {
		t.Error("expected badge for single reaction")
	}
}

func TestMessageView_ExpandedPreview(t *testing.T) {
	msg := model.NewUserMessage("see @README.md")
	view := NewMessageView(msg)
	view.Previews = map[string]Preview{
		"README.md": NewPreview("README.md", "# ChatFS"),
	}

	out := view.Render(testTheme())
	if !strings.Contains(out, "ChatFS") {
		t.Error("expanded mention should render its preview content")
	}
}

// =============================================================================
// PREVIEW TESTS
// =============================================================================

func TestPreview_HeaderShowsDegraded(t *testing.T) {
	p := NewPreview("notes.txt", "plain text")
	p.Degraded = true

	out := p.Render(testTheme())
	if !strings.Contains(out, "offline preview") {
		t.Error("degraded preview should be labeled")
	}
	if !strings.Contains(out, "notes.txt") {
		t.Error("preview header should show the path")
	}
}

func TestPreview_PlainTextPassthrough(t *testing.T) {
	out := NewPreview("data.bin", "File: data.bin").Render(testTheme())
	if !strings.Contains(out, "File: data.bin") {
		t.Error("unknown extensions should render as plain text")
	}
}

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"app.tsx", "typescript"},
		{"script.py", "python"},
		{"lib.rs", "rust"},
		{"notes.txt", ""},
	}
	for _, tt := range tests {
		if got := languageFor(tt.path); got != tt.want {
			t.Errorf("languageFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_Badges(t *testing.T) {
	theme := testTheme()

	live := StatusBar{Backend: backend.Status{Connected: true}, ShowBadge: true, ModelName: "gpt-4", Width: 80}
	out := live.Render(theme)
	if !strings.Contains(out, "live") {
		t.Error("connected backend should show the live badge")
	}
	if !strings.Contains(out, "gpt-4") {
		t.Error("status bar should show the model name")
	}

	degraded := StatusBar{Backend: backend.Status{Connected: false}, ShowBadge: true, Width: 80}
	out = degraded.Render(theme)
	if !strings.Contains(out, "degraded") {
		t.Error("disconnected backend should show the degraded badge")
	}

	hidden := StatusBar{Backend: backend.Status{Connected: false}, Width: 80}
	if strings.Contains(hidden.Render(theme), "degraded") {
		t.Error("badge should be suppressible")
	}
}

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func TestSidebar_MarksActiveThread(t *testing.T) {
	first := model.NewThread()
	first.AddUserMessage("first thread topic")
	second := model.NewThread()
	second.AddUserMessage("second thread topic")

	sb := Sidebar{
		Threads:  []*model.Thread{second, first},
		ActiveID: second.ID,
		Width:    30,
		Height:   20,
	}
	out := sb.Render(testTheme())
	if !strings.Contains(out, "first thread topic") || !strings.Contains(out, "second thread topic") {
		t.Error("sidebar should list every thread title")
	}
}

func TestSidebar_EmptyState(t *testing.T) {
	out := Sidebar{Width: 30, Height: 10}.Render(testTheme())
	if !strings.Contains(out, "No chats yet") {
		t.Error("empty sidebar should show a hint")
	}
}

// =============================================================================
// EMOJI PICKER TESTS
// =============================================================================

func TestEmojiPicker_Navigation(t *testing.T) {
	p := NewEmojiPicker()
	if p.Current() != DefaultEmojis[0] {
		t.Fatalf("initial selection = %q", p.Current())
	}

	p.Next()
	if p.Current() != DefaultEmojis[1] {
		t.Errorf("after Next, selection = %q", p.Current())
	}

	p.Prev()
	p.Prev()
	if p.Current() != DefaultEmojis[len(DefaultEmojis)-1] {
		t.Errorf("Prev should wrap, selection = %q", p.Current())
	}
}
