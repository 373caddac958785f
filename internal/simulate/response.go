// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package simulate turns a complete response string into an incremental,
// punctuation-paced reveal that stands in for a live model.
package simulate

import (
	"strings"

	"github.com/chatfs/chatfs-tui/internal/mention"
	"github.com/chatfs/chatfs-tui/internal/model"
)

// =============================================================================
// RESPONSE COMPOSITION
// =============================================================================

// ComposeResponse builds the full response text for a user message before
// rendering begins. Each model answers in its own voice; the switch is
// exhaustive over the known models with an explicit default arm so unknown
// ids visibly take the default voice.
//
// Deterministic: the same (model, userText) pair always yields the same
// response.
func ComposeResponse(modelID model.ModelID, userText string) string {
	mentions := mention.Extract(userText)

	switch modelID {
	case model.ModelGPT4:
		return composeGPT4(userText, mentions)
	case model.ModelClaude:
		return composeClaude(userText, mentions)
	case model.ModelPerplexity:
		return composePerplexity(userText, mentions)
	default:
		return composeGPT4(userText, mentions)
	}
}

func composeGPT4(userText string, mentions []mention.Mention) string {
	var b strings.Builder
	b.WriteString("I've taken a careful look at your question. ")
	if len(mentions) > 0 {
		b.WriteString("You referenced ")
		b.WriteString(mentionList(mentions))
		b.WriteString(", so I examined the relevant content first.\n\n")
		b.WriteString("The file structure suggests a few things worth noting:\n")
		b.WriteString("1. The referenced files fit the usual layout for this kind of project.\n")
		b.WriteString("2. I can walk through any of them in more detail if you expand the preview.\n\n")
	} else {
		b.WriteString("Here is my analysis:\n\n")
	}
	b.WriteString("In short, the answer depends on the files involved; point me at a specific path with an @mention and I'll dig into it.")
	return b.String()
}

func composeClaude(userText string, mentions []mention.Mention) string {
	var b strings.Builder
	b.WriteString("Happy to help with that! ")
	if len(mentions) > 0 {
		b.WriteString("I see you mentioned ")
		b.WriteString(mentionList(mentions))
		b.WriteString(" — nice, that gives me something concrete to work with.\n\n")
		b.WriteString("From a quick read, everything looks reasonable; hover any mention to peek at its preview.\n\n")
	}
	b.WriteString("Let me know if you'd like me to compare files, summarize a folder, or search for something specific.")
	return b.String()
}

func composePerplexity(userText string, mentions []mention.Mention) string {
	var b strings.Builder
	b.WriteString("Quick answer: ")
	if len(mentions) > 0 {
		b.WriteString(mentionList(mentions))
		b.WriteString(" found. Key points:\n")
		b.WriteString("- Content resolved via the workspace backend.\n")
		b.WriteString("- Previews available inline; expand to read.\n")
	} else {
		b.WriteString("no files referenced.\n")
		b.WriteString("- Add @path mentions to ground the answer in real files.\n")
	}
	b.WriteString("Sources: local workspace index.")
	return b.String()
}

// mentionList renders mention paths as a comma-separated list.
func mentionList(mentions []mention.Mention) string {
	paths := make([]string, 0, len(mentions))
	for _, m := range mentions {
		paths = append(paths, m.Path)
	}
	return strings.Join(paths, ", ")
}
