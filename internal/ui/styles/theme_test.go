// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme_StylesInitialized(t *testing.T) {
	theme := NewTheme()

	// Rendering with an uninitialized style would drop the content
	// styling entirely; spot-check a few load-bearing styles.
	if got := theme.UserBubble.Render("hi"); got == "" {
		t.Error("UserBubble should render content")
	}
	if got := theme.StatusBar.Render("status"); got == "" {
		t.Error("StatusBar should render content")
	}
	if got := theme.MentionText.Render("@README.md"); !strings.Contains(got, "README.md") {
		t.Errorf("MentionText should preserve content, got %q", got)
	}
}

func TestStatusIndicators_AreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Active,
	}
	for _, ind := range indicators {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderHelpers_IncludeIndicator(t *testing.T) {
	if got := RenderSuccess("saved"); !strings.Contains(got, "[OK]") {
		t.Errorf("RenderSuccess = %q, want [OK] indicator", got)
	}
	if got := RenderError("failed"); !strings.Contains(got, "[X]") {
		t.Errorf("RenderError = %q, want [X] indicator", got)
	}
	if got := RenderWarning("degraded"); !strings.Contains(got, "[!]") {
		t.Errorf("RenderWarning = %q, want [!] indicator", got)
	}
}
