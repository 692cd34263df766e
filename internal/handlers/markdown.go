package handlers

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Blog posts and custom pages are authored in markdown by content editors.
// Rendered output passes through bluemonday because editor accounts are not
// trusted to inject script.
var (
	markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	markdownPolicy   = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown to sanitized HTML for templates.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
		slog.Error("Failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(markdownPolicy.SanitizeBytes(buf.Bytes()))
}
