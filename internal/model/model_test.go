// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// THREAD TESTS
// =============================================================================

func TestNewThread_Defaults(t *testing.T) {
	th := NewThread()

	if !strings.HasPrefix(th.ID, "thread_") {
		t.Errorf("ID = %q, want thread_ prefix", th.ID)
	}
	if th.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", th.Title, DefaultTitle)
	}
	if th.Model != DefaultModel {
		t.Errorf("Model = %v, want %v", th.Model, DefaultModel)
	}
	if !th.IsEmpty() {
		t.Error("new thread should be empty")
	}
}

func TestThread_TitleDerivation(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{
			name:  "short message kept as-is",
			first: "Check @README.md please",
			want:  "Check @README.md please",
		},
		{
			name:  "exactly thirty chars kept as-is",
			first: strings.Repeat("a", 30),
			want:  strings.Repeat("a", 30),
		},
		{
			name:  "long message truncated with ellipsis",
			first: strings.Repeat("a", 31),
			want:  strings.Repeat("a", 30) + "...",
		},
		{
			name:  "unicode counted by rune",
			first: strings.Repeat("日", 31),
			want:  strings.Repeat("日", 30) + "...",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := NewThread()
			th.AddUserMessage(tc.first)
			if th.Title != tc.want {
				t.Errorf("Title = %q, want %q", th.Title, tc.want)
			}
		})
	}
}

func TestThread_TitleOnlyFromFirstMessage(t *testing.T) {
	th := NewThread()
	th.AddUserMessage("first")
	th.AddUserMessage("second message that is much longer than the first")

	if th.Title != "first" {
		t.Errorf("Title = %q, want %q", th.Title, "first")
	}
}

func TestThread_LastMessageSummary(t *testing.T) {
	th := NewThread()
	th.AddUserMessage("hello there")

	if th.LastMessage != "hello there" {
		t.Errorf("LastMessage = %q, want %q", th.LastMessage, "hello there")
	}

	msg := th.AddAssistantMessage()
	msg.SetStreamContent("partial reply")
	th.TouchLastMessage(msg)

	if th.LastMessage != "partial reply" {
		t.Errorf("LastMessage = %q, want %q", th.LastMessage, "partial reply")
	}
}

func TestThread_GetMessageByID(t *testing.T) {
	th := NewThread()
	msg := th.AddUserMessage("find me")

	if got := th.GetMessageByID(msg.ID); got != msg {
		t.Errorf("GetMessageByID(%q) = %v, want %v", msg.ID, got, msg)
	}
	if got := th.GetMessageByID("msg_nope"); got != nil {
		t.Errorf("GetMessageByID(unknown) = %v, want nil", got)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_StreamingLifecycle(t *testing.T) {
	msg := NewAssistantMessage()

	if !msg.IsStreaming {
		t.Fatal("new assistant message should be streaming")
	}
	if !msg.IsEmpty() {
		t.Error("new assistant message should be empty")
	}

	msg.SetStreamContent("He")
	msg.SetStreamContent("Hello")
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello")
	}

	msg.FinalizeStream("Hello, world")
	if msg.IsStreaming {
		t.Error("message should have settled")
	}
	if msg.Content != "Hello, world" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello, world")
	}

	// Settled messages ignore further stream writes.
	msg.SetStreamContent("corrupted")
	if msg.Content != "Hello, world" {
		t.Errorf("settled content mutated to %q", msg.Content)
	}
}

func TestMessage_ToggleReaction(t *testing.T) {
	msg := NewUserMessage("hi")

	msg.ToggleReaction("👍", "user-1")
	if !msg.HasReaction("👍", "user-1") {
		t.Fatal("expected reaction after first toggle")
	}

	msg.ToggleReaction("👍", "user-2")
	if msg.ReactionCount("👍") != 2 {
		t.Errorf("ReactionCount = %d, want 2", msg.ReactionCount("👍"))
	}

	// Involution: toggling twice restores the prior state.
	msg.ToggleReaction("👍", "user-2")
	msg.ToggleReaction("👍", "user-1")
	if _, ok := msg.Reactions["👍"]; ok {
		t.Error("emoji key should be deleted when the last reactor leaves")
	}
}

func TestMessage_ToggleReaction_NoEmptySet(t *testing.T) {
	msg := NewUserMessage("hi")
	msg.ToggleReaction("🎉", "user-1")
	msg.ToggleReaction("🎉", "user-1")

	if len(msg.Reactions) != 0 {
		t.Errorf("Reactions = %v, want empty mapping", msg.Reactions)
	}
}

// =============================================================================
// MODEL ID TESTS
// =============================================================================

func TestParseModelID(t *testing.T) {
	tests := []struct {
		id     string
		want   ModelID
		wantOK bool
	}{
		{"gpt-4", ModelGPT4, true},
		{"claude", ModelClaude, true},
		{"perplexity", ModelPerplexity, true},
		{"gpt-5", DefaultModel, false},
		{"", DefaultModel, false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			got, ok := ParseModelID(tc.id)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ParseModelID(%q) = (%v, %v), want (%v, %v)",
					tc.id, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestModelID_RoundTrip(t *testing.T) {
	for _, m := range AllModels() {
		got, ok := ParseModelID(m.String())
		if !ok || got != m {
			t.Errorf("ParseModelID(%q) = (%v, %v), want (%v, true)", m.String(), got, ok, m)
		}
	}
}

func TestModelID_PacingDefaults(t *testing.T) {
	unknown := ModelID(99)
	if unknown.Pacing() != DefaultModel.Pacing() {
		t.Error("unknown model should use the default pacing profile")
	}
	for _, m := range AllModels() {
		p := m.Pacing()
		if p.Min <= 0 || p.Max < p.Min {
			t.Errorf("%v pacing %+v is not a valid range", m, p)
		}
	}
}
