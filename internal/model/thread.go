// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TitleMaxLen is the maximum thread title length, derived from the first
// user message. Longer messages are truncated with a trailing ellipsis.
const TitleMaxLen = 30

// DefaultTitle is shown for threads that have no messages yet.
const DefaultTitle = "New Chat"

// =============================================================================
// THREAD TYPE
// =============================================================================

// Thread holds one conversation: an ordered message sequence plus the model
// selected for simulated responses. Messages are append-only and never
// reordered.
type Thread struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LastMessage is a short summary of the most recent message, kept for
	// sidebar display without walking the message slice.
	LastMessage string `json:"last_message"`

	// Messages in conversation order.
	Messages []*Message `json:"messages"`

	// Model selected for this thread's responses.
	Model ModelID `json:"model"`
}

// NewThread creates an empty thread with the default model.
func NewThread() *Thread {
	return &Thread{
		ID:        generateThreadID(),
		Title:     DefaultTitle,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
		Model:     DefaultModel,
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddUserMessage appends a user message, refreshes the last-message summary
// and derives the title if this is the first message.
func (t *Thread) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	t.addMessage(msg)
	if len(t.Messages) == 1 {
		t.Title = deriveTitle(content)
	}
	return msg
}

// AddAssistantMessage appends an empty streaming assistant message.
func (t *Thread) AddAssistantMessage() *Message {
	msg := NewAssistantMessage()
	t.addMessage(msg)
	return msg
}

func (t *Thread) addMessage(msg *Message) {
	t.Messages = append(t.Messages, msg)
	t.LastMessage = msg.Preview(50)
	t.UpdatedAt = time.Now()
}

// TouchLastMessage refreshes the last-message summary from msg. Called when
// a streaming message's content changes after it was appended.
func (t *Thread) TouchLastMessage(msg *Message) {
	if len(t.Messages) > 0 && t.Messages[len(t.Messages)-1] == msg {
		t.LastMessage = msg.Preview(50)
		t.UpdatedAt = time.Now()
	}
}

// GetMessageByID returns a message by its ID, or nil if absent.
func (t *Thread) GetMessageByID(id string) *Message {
	for _, msg := range t.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// GetLastMessage returns the most recent message, or nil if empty.
func (t *Thread) GetLastMessage() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// MessageCount returns the number of messages.
func (t *Thread) MessageCount() int {
	return len(t.Messages)
}

// IsEmpty returns true if there are no messages.
func (t *Thread) IsEmpty() bool {
	return len(t.Messages) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// deriveTitle builds a thread title from the first user message: the text
// unchanged when it fits, otherwise the first TitleMaxLen runes plus "...".
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleMaxLen {
		return content
	}
	return string(runes[:TitleMaxLen]) + "..."
}

// generateThreadID creates a unique thread ID.
func generateThreadID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "thread_" + hex.EncodeToString(bytes)
}
