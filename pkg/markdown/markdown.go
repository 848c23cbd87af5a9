// Package markdown renders blog content for the draft preview.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Render converts markdown to HTML. Raw HTML in the source is dropped.
func Render(markdownText string) (string, error) {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt returns the first paragraph of plain text, cut at limit runes.
func Excerpt(markdownText string, limit int) string {
	for _, block := range strings.Split(strings.TrimSpace(markdownText), "\n\n") {
		line := strings.TrimSpace(block)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "![") || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		runes := []rune(line)
		if limit > 0 && len(runes) > limit {
			return strings.TrimSpace(string(runes[:limit])) + "..."
		}
		return line
	}
	return ""
}
