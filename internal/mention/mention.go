// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention provides the @ mention system for referencing workspace
// files in message text.
package mention

import (
	"context"
	"regexp"

	"github.com/chatfs/chatfs-tui/internal/backend"
)

// =============================================================================
// MENTION TYPE
// =============================================================================

// Mention is a parsed, in-text reference to a file path. Mentions are
// derived from message content on demand and never stored on the message.
type Mention struct {
	// Raw is the matched text including the sigil (e.g. "@README.md").
	Raw string

	// Path is the referenced file path without the sigil.
	Path string

	// Start and End are byte offsets of Raw in the source string.
	Start int
	End   int
}

// mentionPattern matches @filename or @/path/to/file.ext.
// Supports: @README.md, @/docs/plan.txt, @src/components/App.tsx, etc.
var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9/_.-]+)`)

// Extract scans text for file mentions, left to right with no overlap.
// Pure and deterministic: the same input always yields the same sequence.
// The same path may appear multiple times as distinct mentions.
func Extract(text string) []Mention {
	matches := mentionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	mentions := make([]Mention, 0, len(matches))
	for _, match := range matches {
		mentions = append(mentions, Mention{
			Raw:   text[match[0]:match[1]],
			Path:  text[match[2]:match[3]],
			Start: match[0],
			End:   match[1],
		})
	}
	return mentions
}

// HasMentions reports whether text contains at least one file mention.
func HasMentions(text string) bool {
	return mentionPattern.MatchString(text)
}

// =============================================================================
// PREVIEW RESOLUTION
// =============================================================================

// Resolver resolves mention previews through the backend facade. It caches
// nothing: every call reaches the facade, which always produces a result.
type Resolver struct {
	facade *backend.Facade
}

// NewResolver creates a resolver over facade.
func NewResolver(facade *backend.Facade) *Resolver {
	return &Resolver{facade: facade}
}

// ResolvePreview fetches preview content for path. The result is always
// usable; its provenance says whether the real backend supplied it.
func (r *Resolver) ResolvePreview(ctx context.Context, path string) backend.FetchResult[string] {
	return r.facade.FetchFile(ctx, path)
}

// =============================================================================
// EXPANSION TRACKING
// =============================================================================

// ExpansionSet tracks which mention paths are expanded for inline preview
// within one message's render. Expansion is keyed by path, not by mention
// occurrence: expanding one occurrence of a repeated path expands them all.
type ExpansionSet struct {
	paths map[string]struct{}
}

// NewExpansionSet creates an empty expansion set.
func NewExpansionSet() *ExpansionSet {
	return &ExpansionSet{paths: make(map[string]struct{})}
}

// Toggle flips whether path is expanded and returns the new state.
func (e *ExpansionSet) Toggle(path string) bool {
	if _, ok := e.paths[path]; ok {
		delete(e.paths, path)
		return false
	}
	e.paths[path] = struct{}{}
	return true
}

// IsExpanded reports whether path is currently expanded.
func (e *ExpansionSet) IsExpanded(path string) bool {
	_, ok := e.paths[path]
	return ok
}

// Len returns the number of expanded paths.
func (e *ExpansionSet) Len() int {
	return len(e.paths)
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// AppendMention appends "@name " to input, inserting a separating space
// when the input does not already end with one. Used by the presentation
// layer for drag-and-drop file mentions.
func AppendMention(input, name string) string {
	if input != "" && input[len(input)-1] != ' ' {
		input += " "
	}
	return input + "@" + name + " "
}
