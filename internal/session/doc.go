// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session wires the interaction engine together for the
// presentation layer.
//
// The Controller owns the thread store, the response renderer, the
// backend facade and the mention resolver. It also owns the transient
// per-session state that must have exactly one holder: the active emoji
// picker and the set of expanded mention previews per message.
//
// # Streaming
//
// Send starts a render goroutine that reveals the simulated response
// incrementally. The goroutine never mutates the store; it emits
// StreamEvent values into the sink registered with SetSink, which a
// Bubble Tea program forwards with Program.Send. The event loop applies
// them through HandleStreamEvent, so every store mutation happens in
// program order on one logical thread.
//
// Switching threads, starting a new chat or sending again abandons the
// in-flight stream: its context is cancelled and the store's stream
// target is cleared, so events that were already queued arrive stale and
// are dropped rather than applied to an inactive message.
package session
