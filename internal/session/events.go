// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// StreamEvent is delivered by the render goroutine to the event loop. The
// loop hands it back to the controller (HandleStreamEvent), which is the
// only place the store is mutated, keeping all mutation in program order
// on the single logical thread.
type StreamEvent struct {
	ThreadID  string
	MessageID string

	// Prefix is the partial content revealed so far.
	Prefix string

	// Done marks the completion signal; Prefix then holds the full text.
	Done bool
}
