// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the chatfs TUI.
package components

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// =============================================================================
// FILE PREVIEW RENDERER
// =============================================================================

// Preview represents a rendered file preview attached to a mention.
type Preview struct {
	Path     string
	Content  string
	Degraded bool // fallback provenance, shown in the header
	MaxWidth int
}

// NewPreview creates a preview for a mentioned file.
func NewPreview(path, content string) Preview {
	return Preview{
		Path:     path,
		Content:  content,
		MaxWidth: 80,
	}
}

// Render renders the preview box with a path header. Markdown files get
// glamour rendering, code files get chroma highlighting, everything else
// is shown as plain text.
func (p Preview) Render(theme *styles.Theme) string {
	header := p.Path
	if p.Degraded {
		header += "  (offline preview)"
	}

	body := renderBody(p.Path, strings.TrimRight(p.Content, "\n"), p.MaxWidth)

	maxWidth := p.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return theme.PreviewBox.MaxWidth(maxWidth).Render(
		theme.PreviewHeader.Render(header) + "\n" + body,
	)
}

// renderBody picks a renderer by file extension.
func renderBody(path, content string, maxWidth int) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return renderMarkdown(content, maxWidth)
	case ".go", ".py", ".js", ".ts", ".tsx", ".jsx", ".rs", ".json", ".toml", ".yaml", ".yml", ".sh":
		return highlightCode(content, languageFor(path))
	default:
		return content
	}
}

// renderMarkdown renders markdown through glamour, falling back to the
// raw text on error.
func renderMarkdown(content string, maxWidth int) string {
	wrap := maxWidth - 6
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting to code using the chroma
// library. Returns the original text if highlighting fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// languageFor maps a file path to a chroma lexer name.
func languageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".jsx":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rs":
		return "rust"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".sh":
		return "bash"
	default:
		return ""
	}
}

// RenderInlineCode renders inline code with a subtle background.
func RenderInlineCode(code string) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.Cyan).
		Padding(0, 1).
		Render(code)
}
