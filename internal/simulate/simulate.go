// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package simulate turns a complete response string into an incremental,
// punctuation-paced reveal that stands in for a live model.
package simulate

import (
	"context"
	"math/rand"
	"time"

	"github.com/chatfs/chatfs-tui/internal/model"
)

// Pacing multipliers applied to the base delay after certain characters.
const (
	sentenceFactor = 3.0 // after . ! ?
	clauseFactor   = 1.5 // after , ;
	newlineFactor  = 2.0 // after a line break
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer reveals response text one rune at a time. The delay between
// emissions is drawn uniformly from the model's pacing range and stretched
// after sentence punctuation, clause separators and line breaks.
//
// Rendering is cancellable through the context: once the context is done,
// no further onUpdate or onComplete calls are made.
type Renderer struct {
	// sleep and uniform are swappable for tests.
	sleep   func(ctx context.Context, d time.Duration) error
	uniform func() float64
}

// NewRenderer creates a renderer with real timing.
func NewRenderer() *Renderer {
	return &Renderer{
		sleep:   sleepCtx,
		uniform: rand.Float64,
	}
}

// Render emits strictly growing prefixes of text via onUpdate, one rune at
// a time, then calls onComplete exactly once. The model selects the pacing
// profile; unknown models use the default profile.
//
// Returns ctx.Err() when cancelled mid-stream, in which case onComplete is
// never called and no further onUpdate calls are made.
func (r *Renderer) Render(ctx context.Context, text string, modelID model.ModelID, onUpdate func(prefix string), onComplete func()) error {
	pacing := modelID.Pacing()
	runes := []rune(text)

	for i := range runes {
		if err := ctx.Err(); err != nil {
			return err
		}
		onUpdate(string(runes[:i+1]))

		if i == len(runes)-1 {
			break
		}
		if err := r.sleep(ctx, r.delayAfter(runes[i], pacing)); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	onComplete()
	return nil
}

// delayAfter computes the pause following an emitted rune: a uniform draw
// from the pacing range, stretched after punctuation.
func (r *Renderer) delayAfter(ch rune, pacing model.PacingProfile) time.Duration {
	base := float64(pacing.Min) + r.uniform()*float64(pacing.Max-pacing.Min)

	switch ch {
	case '.', '!', '?':
		base *= sentenceFactor
	case ',', ';':
		base *= clauseFactor
	case '\n':
		base *= newlineFactor
	}

	return time.Duration(base)
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
