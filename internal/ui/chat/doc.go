// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The chat Model is a Bubble Tea model composed around the session
// controller. All application state lives in the controller and its
// store; the chat model holds only presentation state (viewport,
// input, overlays, cached preview renders).
//
// # Message Flow
//
// Typed input goes to the controller's Send, which starts the response
// stream on a goroutine. Stream progress re-enters the update loop as
// StreamEventMsg values delivered through Program.Send, is applied to
// the store, and re-renders the transcript. Events from an abandoned
// stream are dropped by the store, so switching threads mid-response
// never corrupts an inactive thread.
package chat
