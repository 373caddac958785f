// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// ActivePicker describes the one emoji picker that may be open at a time.
// It is an explicit value owned by the Controller rather than ambient
// package state: whichever message requests the picker receives a
// reference through the controller, and closing it drops the value.
type ActivePicker struct {
	// MessageID is the message the picker reacts to, or "" when the
	// picker feeds the input box instead.
	MessageID string

	// X, Y anchor the picker in the presentation layer's coordinates.
	X, Y int
}

// ForInput reports whether the picker targets the input box.
func (p *ActivePicker) ForInput() bool {
	return p.MessageID == ""
}

// OpenPicker opens a picker for the given target, replacing any picker
// that was already open.
func (c *Controller) OpenPicker(messageID string, x, y int) *ActivePicker {
	c.picker = &ActivePicker{MessageID: messageID, X: x, Y: y}
	return c.picker
}

// ClosePicker closes the open picker, if any.
func (c *Controller) ClosePicker() {
	c.picker = nil
}

// Picker returns the open picker, or nil when none is open.
func (c *Controller) Picker() *ActivePicker {
	return c.picker
}
