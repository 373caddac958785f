// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides thread persistence for the chatfs TUI.
//
// Threads are stored in a local SQLite database (default
// ~/.chatfs/threads.db). Each Save writes a full snapshot of the
// thread: metadata plus every settled message with its reactions.
// Streaming messages are never persisted.
//
// # Usage
//
//	store, err := storage.Open(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	store.Save(thread)
//	threads, _ := store.LoadAll()
package storage
