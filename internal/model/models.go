// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
package model

import "time"

// =============================================================================
// MODEL ID TYPE
// =============================================================================

// ModelID identifies one of the simulated models. It is a closed enum:
// every consumer switches exhaustively over the known values with an
// explicit default arm, so "unknown model" handling is visible at the
// switch site instead of hiding inside a string-keyed lookup.
type ModelID int

const (
	ModelGPT4 ModelID = iota
	ModelClaude
	ModelPerplexity
)

// DefaultModel is used for new threads and for identifiers outside the
// known set.
const DefaultModel = ModelGPT4

// ParseModelID maps a model identifier string to its ModelID. Unknown
// identifiers map to DefaultModel; ok reports whether the identifier was
// recognized.
func ParseModelID(id string) (ModelID, bool) {
	switch id {
	case "gpt-4":
		return ModelGPT4, true
	case "claude":
		return ModelClaude, true
	case "perplexity":
		return ModelPerplexity, true
	default:
		return DefaultModel, false
	}
}

// String returns the canonical identifier for the model.
func (m ModelID) String() string {
	switch m {
	case ModelGPT4:
		return "gpt-4"
	case ModelClaude:
		return "claude"
	case ModelPerplexity:
		return "perplexity"
	default:
		return DefaultModel.String()
	}
}

// DisplayName returns the human-readable model name.
func (m ModelID) DisplayName() string {
	switch m {
	case ModelGPT4:
		return "GPT-4"
	case ModelClaude:
		return "Claude"
	case ModelPerplexity:
		return "Perplexity"
	default:
		return DefaultModel.DisplayName()
	}
}

// Description returns the short persona description shown in the selector.
func (m ModelID) Description() string {
	switch m {
	case ModelGPT4:
		return "Most capable, thoughtful responses"
	case ModelClaude:
		return "Conversational, friendly analysis"
	case ModelPerplexity:
		return "Fast, research-focused answers"
	default:
		return DefaultModel.Description()
	}
}

// AllModels returns the known models in selector order.
func AllModels() []ModelID {
	return []ModelID{ModelGPT4, ModelClaude, ModelPerplexity}
}

// =============================================================================
// PACING PROFILES
// =============================================================================

// PacingProfile holds the per-character delay range used by the response
// renderer to simulate a live model. Delays are drawn uniformly from
// [Min, Max] and stretched after punctuation and line breaks.
type PacingProfile struct {
	Min time.Duration
	Max time.Duration
}

// Pacing returns the pacing profile for the model. The default arm covers
// any value outside the known set.
func (m ModelID) Pacing() PacingProfile {
	switch m {
	case ModelGPT4:
		return PacingProfile{Min: 30 * time.Millisecond, Max: 80 * time.Millisecond}
	case ModelClaude:
		return PacingProfile{Min: 20 * time.Millisecond, Max: 60 * time.Millisecond}
	case ModelPerplexity:
		return PacingProfile{Min: 10 * time.Millisecond, Max: 40 * time.Millisecond}
	default:
		return DefaultModel.Pacing()
	}
}
