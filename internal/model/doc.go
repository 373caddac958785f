// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
//
// A Thread is one conversation: an ordered, append-only sequence of
// Messages plus the ModelID selected for simulated responses. Messages are
// authored by exactly two roles (user and assistant) and carry an emoji
// reaction mapping whose entries are removed the moment they empty.
//
// ModelID is a closed enum over the simulated models, carrying the pacing
// profile used by the response renderer. Unknown identifiers normalize to
// DefaultModel in one place (ParseModelID) so the store and the renderer
// agree on how out-of-set values behave.
package model
