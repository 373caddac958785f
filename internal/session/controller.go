// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/mention"
	"github.com/chatfs/chatfs-tui/internal/model"
	"github.com/chatfs/chatfs-tui/internal/simulate"
	"github.com/chatfs/chatfs-tui/internal/store"
	"github.com/chatfs/chatfs-tui/internal/util"
)

// MaxInputLen is the maximum accepted user message length in runes.
const MaxInputLen = 2000

// =============================================================================
// CONTROLLER
// =============================================================================

// responseRenderer is the slice of simulate.Renderer the controller needs;
// an interface so tests can substitute instantaneous rendering.
type responseRenderer interface {
	Render(ctx context.Context, text string, modelID model.ModelID, onUpdate func(string), onComplete func()) error
}

// Controller owns the session: the thread store, the one active emoji
// picker, per-message mention expansion state and the in-flight response
// stream. The presentation layer calls its methods from the event loop and
// receives stream progress through the sink callback.
type Controller struct {
	store    *store.Store
	renderer responseRenderer
	facade   *backend.Facade
	resolver *mention.Resolver

	picker *ActivePicker

	// defaultModel is applied to newly created threads.
	defaultModel model.ModelID

	// expansions tracks expanded mention previews per message id.
	expansions map[string]*mention.ExpansionSet

	cancelMgr *cancelManager

	// sink receives stream events from the render goroutine. It must be
	// safe to call from another goroutine; a Bubble Tea program's Send
	// is. Events come back in via HandleStreamEvent on the event loop.
	sink func(StreamEvent)
}

// NewController creates a controller over the given facade.
func NewController(facade *backend.Facade) *Controller {
	if facade == nil {
		facade = backend.NewFacade(nil)
	}
	return &Controller{
		store:        store.New(),
		renderer:     simulate.NewRenderer(),
		facade:       facade,
		resolver:     mention.NewResolver(facade),
		expansions:   make(map[string]*mention.ExpansionSet),
		cancelMgr:    newCancelManager(),
		defaultModel: model.DefaultModel,
	}
}

// SetSink registers the stream event sink. Must be set before Send.
func (c *Controller) SetSink(fn func(StreamEvent)) {
	c.sink = fn
}

// Store exposes the thread store for read access by the presentation
// layer. Mutation still goes through controller/store operations only.
func (c *Controller) Store() *store.Store {
	return c.store
}

// =============================================================================
// THREAD NAVIGATION
// =============================================================================

// NewChat cancels any in-flight stream and creates a fresh active thread
// using the session's default model.
func (c *Controller) NewChat() string {
	c.abandonStream()
	id := c.store.CreateThread()
	c.store.SetModel(id, c.defaultModel)
	return id
}

// SwitchThread cancels any in-flight stream and selects the given thread.
// Unknown ids are a no-op, matching the store's permissive selection.
func (c *Controller) SwitchThread(id string) {
	c.abandonStream()
	c.store.SelectThread(id)
}

// SetModel sets the model for new threads and, when a thread is active,
// for that thread too. Unknown identifiers normalize to the default model.
func (c *Controller) SetModel(name string) error {
	id, _ := model.ParseModelID(name)
	c.defaultModel = id
	if c.store.ActiveThreadID() == "" {
		return nil
	}
	return c.store.SetModelByName(c.store.ActiveThreadID(), name)
}

// CancelStream stops the in-flight response, if any. The assistant
// message keeps whatever prefix was already applied.
func (c *Controller) CancelStream() {
	c.abandonStream()
}

// abandonStream cancels the render goroutine and clears the store's
// stream target. Both halves matter: cancellation stops new emissions,
// and the cleared target makes any already-queued callback stale so the
// store drops it instead of corrupting an inactive message.
func (c *Controller) abandonStream() {
	c.cancelMgr.cancel()
	c.store.AbandonStream()
}

// =============================================================================
// SENDING
// =============================================================================

// Send appends the user's message to the active thread and starts the
// simulated response stream. Input longer than MaxInputLen runes is
// truncated. Creates a thread first when none exists.
func (c *Controller) Send(text string) (threadID, messageID string, err error) {
	if c.store.ActiveThreadID() == "" {
		c.store.SetModel(c.store.CreateThread(), c.defaultModel)
	}
	threadID = c.store.ActiveThreadID()

	text = util.TruncateRunes(text, MaxInputLen)
	if _, err = c.store.AppendUserMessage(threadID, text); err != nil {
		return "", "", err
	}

	// Starting a new message abandons any stream still in flight.
	c.abandonStream()

	messageID, err = c.store.BeginAssistantMessage(threadID)
	if err != nil {
		return "", "", err
	}

	if c.sink == nil {
		c.sink = func(StreamEvent) {}
	}

	th := c.store.Thread(threadID)
	response := simulate.ComposeResponse(th.Model, text)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelMgr.set(cancel)

	go c.renderStream(ctx, threadID, messageID, response, th.Model)
	return threadID, messageID, nil
}

// renderStream runs the renderer and forwards its callbacks to the sink.
// Runs on its own goroutine; it never touches the store directly.
func (c *Controller) renderStream(ctx context.Context, threadID, messageID, response string, modelID model.ModelID) {
	c.renderer.Render(ctx, response, modelID,
		func(prefix string) {
			c.sink(StreamEvent{ThreadID: threadID, MessageID: messageID, Prefix: prefix})
		},
		func() {
			c.sink(StreamEvent{ThreadID: threadID, MessageID: messageID, Prefix: response, Done: true})
		},
	)
}

// HandleStreamEvent applies a stream event to the store. Called on the
// event loop. Stale events (from a stream that was abandoned after the
// event was queued) are dropped by the store's target check.
func (c *Controller) HandleStreamEvent(ev StreamEvent) error {
	if ev.Done {
		return c.store.FinalizeAssistantMessage(ev.ThreadID, ev.MessageID, ev.Prefix)
	}
	return c.store.UpdateMessageContent(ev.ThreadID, ev.MessageID, ev.Prefix)
}

// =============================================================================
// REACTIONS
// =============================================================================

// ToggleReaction flips the local user's reaction on a message in the
// active thread.
func (c *Controller) ToggleReaction(messageID, emoji string) error {
	return c.store.ToggleReaction(c.store.ActiveThreadID(), messageID, emoji, model.CurrentUserID)
}

// =============================================================================
// MENTION PREVIEWS
// =============================================================================

// ToggleMentionPreview flips the expanded state of path's preview within
// the given message's render and returns the new state. Keyed by path:
// repeated mentions of one path expand and collapse together.
func (c *Controller) ToggleMentionPreview(messageID, path string) bool {
	set, ok := c.expansions[messageID]
	if !ok {
		set = mention.NewExpansionSet()
		c.expansions[messageID] = set
	}
	return set.Toggle(path)
}

// IsMentionExpanded reports whether path's preview is expanded within the
// given message's render.
func (c *Controller) IsMentionExpanded(messageID, path string) bool {
	set, ok := c.expansions[messageID]
	return ok && set.IsExpanded(path)
}

// ResolvePreview fetches preview content for a mentioned path. Always
// returns a usable result; check its provenance for degraded mode.
func (c *Controller) ResolvePreview(ctx context.Context, path string) backend.FetchResult[string] {
	return c.resolver.ResolvePreview(ctx, path)
}

// =============================================================================
// SEARCH
// =============================================================================

// Search runs a semantic search through the facade.
func (c *Controller) Search(ctx context.Context, query string, topK int) backend.FetchResult[[]backend.SearchResult] {
	return c.facade.SearchFiles(ctx, query, topK)
}
