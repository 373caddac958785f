// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/chatfs/chatfs-tui/internal/model"
)

func newTestStore(t *testing.T) *ThreadStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "threads.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleThread(t *testing.T) *model.Thread {
	t.Helper()
	th := model.NewThread()
	th.Model = model.ModelClaude
	th.AddUserMessage("Check @README.md please")

	reply := model.NewAssistantMessage()
	reply.FinalizeStream("Here is what I found.")
	th.Messages = append(th.Messages, reply)
	th.TouchLastMessage(reply)
	return th
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	th := sampleThread(t)

	if err := store.Save(th); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(th.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Title != th.Title {
		t.Errorf("Title = %q, want %q", loaded.Title, th.Title)
	}
	if loaded.Model != model.ModelClaude {
		t.Errorf("Model = %v, want claude", loaded.Model)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(loaded.Messages))
	}
	if loaded.Messages[0].Role != model.RoleUser {
		t.Errorf("first message role = %v, want user", loaded.Messages[0].Role)
	}
	if loaded.Messages[1].Content != "Here is what I found." {
		t.Errorf("assistant content = %q", loaded.Messages[1].Content)
	}
}

func TestSave_SkipsStreamingMessages(t *testing.T) {
	store := newTestStore(t)

	th := model.NewThread()
	th.AddUserMessage("hello")
	th.Messages = append(th.Messages, model.NewAssistantMessage()) // still streaming

	if err := store.Save(th); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(th.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Messages) != 1 {
		t.Errorf("Messages = %d, want 1 (partial response must not persist)", len(loaded.Messages))
	}
}

func TestSave_Upserts(t *testing.T) {
	store := newTestStore(t)
	th := sampleThread(t)

	if err := store.Save(th); err != nil {
		t.Fatal(err)
	}
	th.AddUserMessage("And @package.json too")
	if err := store.Save(th); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Fatalf("List = %d threads, want 1", len(metas))
	}
	if metas[0].MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", metas[0].MessageCount)
	}
}

func TestSave_PreservesReactions(t *testing.T) {
	store := newTestStore(t)
	th := sampleThread(t)
	th.Messages[1].ToggleReaction("👍", model.CurrentUserID)

	if err := store.Save(th); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(th.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Messages[1].HasReaction("👍", model.CurrentUserID) {
		t.Error("reaction should survive the round trip")
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	first := model.NewThread()
	first.AddUserMessage("older thread")
	second := model.NewThread()
	second.AddUserMessage("newer thread")
	// Timestamps persist at second resolution; force a visible gap.
	second.UpdatedAt = first.UpdatedAt.Add(5 * time.Second)

	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 {
		t.Fatalf("List = %d threads, want 2", len(metas))
	}
	if metas[0].ID != second.ID {
		t.Error("most recently updated thread should list first")
	}
}

func TestLoadAll_SeedsEveryThread(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		th := model.NewThread()
		th.AddUserMessage("thread content")
		if err := store.Save(th); err != nil {
			t.Fatal(err)
		}
	}

	threads, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(threads) != 3 {
		t.Fatalf("LoadAll = %d threads, want 3", len(threads))
	}
	for _, th := range threads {
		if len(th.Messages) != 1 {
			t.Errorf("thread %s has %d messages, want 1", th.ID, len(th.Messages))
		}
	}
}

func TestSearch_TitleAndContent(t *testing.T) {
	store := newTestStore(t)

	th := model.NewThread()
	th.AddUserMessage("How do I configure the watcher?")
	if err := store.Save(th); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"configure", 1},
		{"CONFIGURE", 1},
		{"watcher", 1},
		{"zzzzzz", 0},
		{"", 1},
	}
	for _, tt := range tests {
		got, err := store.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	th := sampleThread(t)
	if err := store.Save(th); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(th.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(th.ID); !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("Load after delete = %v, want ErrThreadNotFound", err)
	}
	if err := store.Delete(th.ID); !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("double delete = %v, want ErrThreadNotFound", err)
	}
}

func TestEnforceLimit(t *testing.T) {
	store := newTestStore(t)
	store.MaxThreads = 2

	var ids []string
	for i := 0; i < 4; i++ {
		th := model.NewThread()
		th.AddUserMessage("thread")
		th.UpdatedAt = th.UpdatedAt.Add(time.Duration(i) * 5 * time.Second)
		if err := store.Save(th); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, th.ID)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 {
		t.Fatalf("List = %d threads, want 2 after limit", len(metas))
	}
	if _, err := store.Load(ids[0]); !errors.Is(err, ErrThreadNotFound) {
		t.Error("oldest thread should have been evicted")
	}
}
