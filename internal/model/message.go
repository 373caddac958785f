// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message. ChatFS has exactly two authors:
// the user and the simulated assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// CurrentUserID identifies the local user in reaction sets.
const CurrentUserID = "user-1"

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a thread.
//
// Content is mutable while IsStreaming is true and frozen once streaming
// settles. Reactions map an emoji to the set of user IDs that reacted with
// it; an emoji key is never kept around with an empty set.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Streaming state (not persisted)
	IsStreaming bool `json:"-"`

	// Reactions: emoji -> set of user IDs
	Reactions map[string]map[string]struct{} `json:"reactions,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an empty assistant message in streaming state.
func NewAssistantMessage() *Message {
	return &Message{
		ID:          generateMessageID(),
		Role:        RoleAssistant,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// =============================================================================
// STREAMING
// =============================================================================

// SetStreamContent replaces the message content with a partial prefix of the
// final response. Only valid while the message is streaming.
func (m *Message) SetStreamContent(partial string) {
	if m.IsStreaming {
		m.Content = partial
	}
}

// FinalizeStream settles the message with its complete content. After this
// call the content is immutable.
func (m *Message) FinalizeStream(content string) {
	if !m.IsStreaming {
		return
	}
	m.Content = content
	m.IsStreaming = false
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen]) + "..."
}

// =============================================================================
// REACTIONS
// =============================================================================

// ToggleReaction flips membership of userID in the reaction set for emoji.
// When removal empties the set, the emoji key is deleted entirely so the
// mapping never holds an observably empty entry.
func (m *Message) ToggleReaction(emoji, userID string) {
	if m.Reactions == nil {
		m.Reactions = make(map[string]map[string]struct{})
	}

	users, ok := m.Reactions[emoji]
	if !ok {
		m.Reactions[emoji] = map[string]struct{}{userID: {}}
		return
	}

	if _, reacted := users[userID]; reacted {
		delete(users, userID)
		if len(users) == 0 {
			delete(m.Reactions, emoji)
		}
		return
	}
	users[userID] = struct{}{}
}

// HasReaction reports whether userID has reacted with emoji.
func (m *Message) HasReaction(emoji, userID string) bool {
	users, ok := m.Reactions[emoji]
	if !ok {
		return false
	}
	_, reacted := users[userID]
	return reacted
}

// ReactionCount returns the number of users that reacted with emoji.
func (m *Message) ReactionCount(emoji string) int {
	return len(m.Reactions[emoji])
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateMessageID creates a unique message ID.
func generateMessageID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
