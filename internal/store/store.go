// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the collection of chat threads and is the only
// component allowed to mutate them.
package store

import (
	"errors"

	"github.com/chatfs/chatfs-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// Programming-misuse errors. Backend failures never surface here; these
// fire only when a caller addresses state that does not exist.
var (
	ErrUnknownThread  = errors.New("unknown thread id")
	ErrUnknownMessage = errors.New("unknown message id")
)

// =============================================================================
// STORE
// =============================================================================

// Store holds every thread, the active-thread pointer and the current
// stream target. All mutation goes through its methods.
//
// The store is not locked: every mutation happens on the single event
// loop (user actions and simulator callbacks are both delivered as loop
// events), so ordering is program order.
type Store struct {
	threads []*model.Thread // newest first
	byID    map[string]*model.Thread

	activeID string

	// Stream target: the one assistant message allowed to receive
	// content updates. Updates addressed to any other message are stale
	// callbacks from an abandoned stream and are dropped.
	streamThreadID  string
	streamMessageID string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		byID: make(map[string]*model.Thread),
	}
}

// =============================================================================
// THREAD OPERATIONS
// =============================================================================

// CreateThread inserts a new empty thread at the head of the collection,
// makes it active and returns its id. Cannot fail.
func (s *Store) CreateThread() string {
	th := model.NewThread()
	s.threads = append([]*model.Thread{th}, s.threads...)
	s.byID[th.ID] = th
	s.activeID = th.ID
	return th.ID
}

// Restore seeds the store with previously persisted threads, newest
// first, and makes the newest one active. Intended for startup, before
// any other mutation; threads already present keep their position.
func (s *Store) Restore(threads []*model.Thread) {
	for i := len(threads) - 1; i >= 0; i-- {
		th := threads[i]
		if th == nil || th.ID == "" {
			continue
		}
		if _, ok := s.byID[th.ID]; ok {
			continue
		}
		s.threads = append([]*model.Thread{th}, s.threads...)
		s.byID[th.ID] = th
	}
	if s.activeID == "" && len(s.threads) > 0 {
		s.activeID = s.threads[0].ID
	}
}

// SelectThread sets the active thread pointer. Intentionally permissive: a
// no-op, not an error, when id is unknown; callers are expected to pass
// only ids they obtained from the store.
func (s *Store) SelectThread(id string) {
	if _, ok := s.byID[id]; ok {
		s.activeID = id
	}
}

// ActiveThreadID returns the id of the active thread, or "" when none.
func (s *Store) ActiveThreadID() string {
	return s.activeID
}

// ActiveThread returns the active thread, or nil when none.
func (s *Store) ActiveThread() *model.Thread {
	return s.byID[s.activeID]
}

// Thread returns the thread with the given id, or nil.
func (s *Store) Thread(id string) *model.Thread {
	return s.byID[id]
}

// Threads returns all threads, newest first.
func (s *Store) Threads() []*model.Thread {
	return s.threads
}

// ThreadCount returns the number of threads.
func (s *Store) ThreadCount() int {
	return len(s.threads)
}

// SetModel replaces the thread's model.
func (s *Store) SetModel(threadID string, m model.ModelID) error {
	th, ok := s.byID[threadID]
	if !ok {
		return ErrUnknownThread
	}
	th.Model = m
	return nil
}

// SetModelByName parses a model identifier string and sets it on the
// thread. Identifiers outside the known set are accepted and normalize to
// the default model; ParseModelID is the single normalization point, so
// the store and the renderer agree on the behavior.
func (s *Store) SetModelByName(threadID, name string) error {
	m, _ := model.ParseModelID(name)
	return s.SetModel(threadID, m)
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// AppendUserMessage appends a user message to the thread, updating the
// thread's summary, timestamp and (for a first message) its title.
func (s *Store) AppendUserMessage(threadID, text string) (*model.Message, error) {
	th, ok := s.byID[threadID]
	if !ok {
		return nil, ErrUnknownThread
	}
	return th.AddUserMessage(text), nil
}

// BeginAssistantMessage appends an empty streaming assistant message and
// marks it as the current stream target. Returns the new message id.
func (s *Store) BeginAssistantMessage(threadID string) (string, error) {
	th, ok := s.byID[threadID]
	if !ok {
		return "", ErrUnknownThread
	}
	msg := th.AddAssistantMessage()
	s.streamThreadID = threadID
	s.streamMessageID = msg.ID
	return msg.ID, nil
}

// UpdateMessageContent replaces the content of a streaming message with a
// longer prefix of the final response.
//
// Updates addressed to a message that is not the current stream target are
// stale callbacks from an abandoned stream; they are dropped without error
// so they cannot corrupt an unrelated message. Addressing a message that
// does not exist at all is misuse and fails loudly.
func (s *Store) UpdateMessageContent(threadID, messageID, partial string) error {
	th, ok := s.byID[threadID]
	if !ok {
		return ErrUnknownThread
	}
	msg := th.GetMessageByID(messageID)
	if msg == nil {
		return ErrUnknownMessage
	}
	if !s.isStreamTarget(threadID, messageID) {
		return nil // stale stream, dropped
	}
	msg.SetStreamContent(partial)
	th.TouchLastMessage(msg)
	return nil
}

// FinalizeAssistantMessage settles the stream target with its complete
// text. Stale completions are dropped the same way stale updates are.
func (s *Store) FinalizeAssistantMessage(threadID, messageID, content string) error {
	th, ok := s.byID[threadID]
	if !ok {
		return ErrUnknownThread
	}
	msg := th.GetMessageByID(messageID)
	if msg == nil {
		return ErrUnknownMessage
	}
	if !s.isStreamTarget(threadID, messageID) {
		return nil
	}
	msg.FinalizeStream(content)
	th.TouchLastMessage(msg)
	s.streamThreadID = ""
	s.streamMessageID = ""
	return nil
}

// IsStreaming reports whether a stream target is currently set.
func (s *Store) IsStreaming() bool {
	return s.streamMessageID != ""
}

// AbandonStream clears the stream target so any in-flight callbacks for it
// become stale. Called when the user navigates away mid-stream.
func (s *Store) AbandonStream() {
	s.streamThreadID = ""
	s.streamMessageID = ""
}

func (s *Store) isStreamTarget(threadID, messageID string) bool {
	return s.streamThreadID == threadID && s.streamMessageID == messageID
}

// =============================================================================
// REACTIONS
// =============================================================================

// ToggleReaction flips membership of userID in the emoji's reaction set on
// the given message.
func (s *Store) ToggleReaction(threadID, messageID, emoji, userID string) error {
	th, ok := s.byID[threadID]
	if !ok {
		return ErrUnknownThread
	}
	msg := th.GetMessageByID(messageID)
	if msg == nil {
		return ErrUnknownMessage
	}
	msg.ToggleReaction(emoji, userID)
	return nil
}
