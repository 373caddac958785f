// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention provides the @ mention system for referencing workspace
// files in message text.
package mention

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/fallback"
)

// =============================================================================
// EXTRACTION TESTS
// =============================================================================

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Mention
	}{
		{
			name: "no mentions",
			text: "just plain text",
			want: nil,
		},
		{
			name: "single filename",
			text: "Check @README.md please",
			want: []Mention{{Raw: "@README.md", Path: "README.md", Start: 6, End: 16}},
		},
		{
			name: "absolute and nested paths",
			text: "@/docs/plan.txt and @src/components/App.tsx",
			want: []Mention{
				{Raw: "@/docs/plan.txt", Path: "/docs/plan.txt", Start: 0, End: 15},
				{Raw: "@src/components/App.tsx", Path: "src/components/App.tsx", Start: 20, End: 43},
			},
		},
		{
			name: "repeated path yields distinct mentions",
			text: "@a.md then @a.md",
			want: []Mention{
				{Raw: "@a.md", Path: "a.md", Start: 0, End: 5},
				{Raw: "@a.md", Path: "a.md", Start: 11, End: 16},
			},
		},
		{
			name: "underscores dashes and dots",
			text: "see @my_file-v2.test.go",
			want: []Mention{{Raw: "@my_file-v2.test.go", Path: "my_file-v2.test.go", Start: 4, End: 23}},
		},
		{
			name: "bare sigil is not a mention",
			text: "email me @ home",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Extract(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "mix of @a.md, @b/c.txt and @a.md again"
	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("Extract is not deterministic across calls")
	}

	// Ordered by ascending start offset, no overlap.
	for i := 1; i < len(first); i++ {
		if first[i].Start < first[i-1].End {
			t.Errorf("mentions %d and %d overlap or are out of order", i-1, i)
		}
	}
}

func TestHasMentions(t *testing.T) {
	if !HasMentions("ping @file.txt") {
		t.Error("expected mention to be detected")
	}
	if HasMentions("nothing here") {
		t.Error("expected no mention")
	}
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolvePreview_FallbackWithoutBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resolver := NewResolver(backend.NewFacade(backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: url,
		Timeout: time.Second,
	})))

	result := resolver.ResolvePreview(context.Background(), "README.md")
	if result.Provenance != backend.ProvenanceFallback {
		t.Fatalf("provenance = %v, want fallback", result.Provenance)
	}
	if result.Payload != fallback.Preview("README.md") {
		t.Error("payload should be the exact fixed README.md content")
	}
}

func TestResolvePreview_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("real content"))
	}))
	defer srv.Close()

	resolver := NewResolver(backend.NewFacade(backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
	})))

	result := resolver.ResolvePreview(context.Background(), "any.go")
	if !result.IsLive() || result.Payload != "real content" {
		t.Errorf("got (%v, %q), want live real content", result.Provenance, result.Payload)
	}
}

// =============================================================================
// EXPANSION TESTS
// =============================================================================

func TestExpansionSet_ToggleByPath(t *testing.T) {
	set := NewExpansionSet()

	if set.IsExpanded("a.md") {
		t.Error("fresh set should have nothing expanded")
	}
	if !set.Toggle("a.md") {
		t.Error("first toggle should expand")
	}
	if !set.IsExpanded("a.md") {
		t.Error("a.md should be expanded")
	}
	if set.Toggle("a.md") {
		t.Error("second toggle should collapse")
	}
	if set.Len() != 0 {
		t.Errorf("Len = %d, want 0", set.Len())
	}
}

// =============================================================================
// INPUT HELPER TESTS
// =============================================================================

func TestAppendMention(t *testing.T) {
	tests := []struct {
		input string
		name  string
		want  string
	}{
		{"", "a.md", "@a.md "},
		{"look at", "a.md", "look at @a.md "},
		{"trailing space ", "a.md", "trailing space @a.md "},
	}

	for _, tc := range tests {
		if got := AppendMention(tc.input, tc.name); got != tc.want {
			t.Errorf("AppendMention(%q, %q) = %q, want %q", tc.input, tc.name, got, tc.want)
		}
	}
}
