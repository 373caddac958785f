// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client and resilient facade for the
// ChatFS backend process.
package backend

import (
	"context"
	"strings"

	"golang.org/x/time/rate"

	"github.com/chatfs/chatfs-tui/internal/fallback"
)

// =============================================================================
// PROVENANCE
// =============================================================================

// Provenance tags a fetched result with where its payload came from.
type Provenance string

const (
	// ProvenanceLive means the payload came from the real backend.
	ProvenanceLive Provenance = "live"

	// ProvenanceFallback means the payload is a deterministic local
	// substitute produced after a backend failure.
	ProvenanceFallback Provenance = "fallback"
)

// FetchResult is the shape every facade operation returns: a payload that
// is always present, its provenance, and a diagnostic set only when the
// payload is a fallback.
type FetchResult[T any] struct {
	Payload    T
	Provenance Provenance
	Diagnostic string
}

// IsLive reports whether the payload came from the real backend.
func (r FetchResult[T]) IsLive() bool {
	return r.Provenance == ProvenanceLive
}

// live wraps a payload from a successful backend call.
func live[T any](payload T) FetchResult[T] {
	return FetchResult[T]{Payload: payload, Provenance: ProvenanceLive}
}

// fellBack wraps a deterministic substitute with the error that forced it.
func fellBack[T any](payload T, cause error) FetchResult[T] {
	return FetchResult[T]{
		Payload:    payload,
		Provenance: ProvenanceFallback,
		Diagnostic: cause.Error(),
	}
}

// =============================================================================
// FACADE
// =============================================================================

// Facade wraps every backend operation in the same resilient pattern:
// attempt the real call, classify the failure, substitute deterministic
// fallback data, and tag the result with its provenance. Callers never see
// a backend failure as an error; they see a fallback-provenance result.
type Facade struct {
	client  *Client
	limiter *rate.Limiter
}

// NewFacade creates a facade over client. A nil client gets the default
// configuration.
func NewFacade(client *Client) *Facade {
	if client == nil {
		client = NewClient()
	}
	return &Facade{
		client: client,
		// Data-fetching calls are user-driven (hover previews, searches);
		// 10 rps with a small burst keeps a wedged UI from hammering the
		// backend while it is struggling.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// FetchFile returns the content of path. On any backend failure the
// payload is the deterministic synthetic preview for path.
func (f *Facade) FetchFile(ctx context.Context, path string) FetchResult[string] {
	if err := f.limiter.Wait(ctx); err != nil {
		return fellBack(fallback.Preview(path), err)
	}

	content, err := f.client.ReadFile(ctx, path)
	if err != nil {
		return fellBack(fallback.Preview(path), err)
	}
	return live(content)
}

// SearchFiles returns ranked search hits for query. On any backend failure
// the payload is the fixed fallback corpus filtered by a case-insensitive
// substring match against path and snippet.
func (f *Facade) SearchFiles(ctx context.Context, query string, topK int) FetchResult[[]SearchResult] {
	if err := f.limiter.Wait(ctx); err != nil {
		return fellBack(fallbackSearch(query), err)
	}

	results, err := f.client.Search(ctx, query, topK)
	if err != nil {
		return fellBack(fallbackSearch(query), err)
	}
	return live(results)
}

// ProbeHealth reports backend connectivity. Expected absence (the sentinel
// probe file not existing) is success: the backend answered, so the result
// is live. Only process-level failures degrade the probe.
func (f *Facade) ProbeHealth(ctx context.Context) FetchResult[struct{}] {
	if err := f.client.Probe(ctx); err != nil {
		return fellBack(struct{}{}, err)
	}
	return live(struct{}{})
}

// =============================================================================
// SEARCH FALLBACK CORPUS
// =============================================================================

// fallbackResults is the small fixed corpus served when real search is
// unavailable.
var fallbackResults = []SearchResult{
	{
		Path:    "src/components/ChatWindow.tsx",
		Snippet: "React component for the main chat interface with semantic search integration...",
		Score:   0.95,
	},
	{
		Path:    "src/hooks/useFileContent.ts",
		Snippet: "Custom hook for loading file content with caching and error handling...",
		Score:   0.87,
	},
	{
		Path:    "README.md",
		Snippet: "ChatFS - A native app for chatting with your files using semantic search...",
		Score:   0.82,
	},
}

// fallbackSearch filters the fixed corpus by case-insensitive substring
// match against the query.
func fallbackSearch(query string) []SearchResult {
	q := strings.ToLower(query)
	var hits []SearchResult
	for _, r := range fallbackResults {
		if strings.Contains(strings.ToLower(r.Path), q) ||
			strings.Contains(strings.ToLower(r.Snippet), q) {
			hits = append(hits, r)
		}
	}
	return hits
}
