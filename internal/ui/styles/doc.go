// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatfs TUI.
//
// All colors are defined as lipgloss.AdaptiveColor pairs so every style
// works on both light and dark terminals. The Theme type bundles every
// configured style the presentation layer needs; construct one with
// NewTheme at startup and pass it down.
package styles
