// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the chatfs TUI.
//
// Components are pure render helpers: they take state and a theme and
// return styled strings. None of them own application state; the chat
// model composes them each frame.
//
//   - MessageView: chat bubbles with mentions, reactions and previews
//   - StatusBar: backend badge, model name and shortcut hints
//   - Sidebar: the thread list pane
//   - EmojiPicker: the reaction picker overlay
//   - RenderPreview: file preview rendering (markdown and code)
package components
