// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fallback generates deterministic synthetic file content.
package fallback

import (
	"strings"
	"testing"
)

func TestPreview_KnownFiles(t *testing.T) {
	readme := Preview("README.md")
	if !strings.HasPrefix(readme, "# ChatFS") {
		t.Errorf("README.md preview starts with %q", strings.SplitN(readme, "\n", 2)[0])
	}

	// Known files match on bare filename even when given as a path.
	if Preview("docs/README.md") != readme {
		t.Error("path-qualified README.md should resolve to the exact known content")
	}

	pkg := Preview("package.json")
	if !strings.Contains(pkg, `"name": "chatfs"`) {
		t.Error("package.json preview should be the fixed known content, not the template")
	}
}

func TestPreview_Deterministic(t *testing.T) {
	paths := []string{"README.md", "a/b/c.md", "notes/plan.xyz", "main.rs", "x.py"}
	for _, p := range paths {
		if Preview(p) != Preview(p) {
			t.Errorf("Preview(%q) is not stable across calls", p)
		}
	}
}

func TestPreview_Templates(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		contains []string
	}{
		{
			name:     "markdown template",
			path:     "docs/guide.md",
			contains: []string{"# guide.md", "## Section 1"},
		},
		{
			name:     "json template uses stem",
			path:     "config.json",
			contains: []string{`"name": "config"`, `"version": "1.0.0"`},
		},
		{
			name:     "text template underlines filename",
			path:     "notes.txt",
			contains: []string{"notes.txt\n=========", "End of file."},
		},
		{
			name:     "python template",
			path:     "scripts/run.py",
			contains: []string{"# run.py", "def main():"},
		},
		{
			name:     "typescript template",
			path:     "src/app.tsx",
			contains: []string{"// app.tsx", "class Application"},
		},
		{
			name:     "rust template",
			path:     "src/main.rs",
			contains: []string{"// main.rs", "fn main()"},
		},
		{
			name:     "unknown extension gets binary template",
			path:     "notes/plan.xyz",
			contains: []string{"File: plan.xyz", "Binary or unknown file type."},
		},
		{
			name:     "no extension gets binary template",
			path:     "Makefile",
			contains: []string{"File: Makefile"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Preview(tc.path)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Preview(%q) missing %q\ngot: %s", tc.path, want, got)
				}
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"README.md", "md"},
		{"src/Main.RS", "rs"},
		{"Makefile", "file"},
		{"archive.tar.gz", "gz"},
	}

	for _, tc := range tests {
		if got := Extension(tc.path); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
