package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertMarkdown_TitleAndTOC(t *testing.T) {
	cfg := testConfig(t)
	md := newMarkdown(cfg)

	source := []byte("# Widgets\n\nIntro text.\n\n## Usage\n\nMore text.\n\n## Styling\n")
	conv, err := convertMarkdown(md, source)
	require.NoError(t, err)

	require.Equal(t, "Widgets", conv.Title)
	require.Contains(t, conv.HTML, "<h1 id=\"widgets\">Widgets</h1>")

	require.Len(t, conv.TOC, 3)
	require.Equal(t, "usage", conv.TOC[1].ID)
	require.Equal(t, 2, conv.TOC[1].Level)
}

func TestConvertMarkdown_GFMTable(t *testing.T) {
	cfg := testConfig(t)
	md := newMarkdown(cfg)

	source := []byte("# T\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	conv, err := convertMarkdown(md, source)
	require.NoError(t, err)
	require.Contains(t, conv.HTML, "<table>")
}

func TestConvertMarkdown_RawHTMLRespectsAllowFlag(t *testing.T) {
	cfg := testConfig(t)
	source := []byte("# T\n\n<img src=\"shot.png\" alt=\"x\">\n")

	conv, err := convertMarkdown(newMarkdown(cfg), source)
	require.NoError(t, err)
	require.NotContains(t, conv.HTML, "<img")

	cfg.Render.AllowHTML = true
	conv, err = convertMarkdown(newMarkdown(cfg), source)
	require.NoError(t, err)
	require.Contains(t, conv.HTML, "<img src=\"shot.png\"")
}

func TestConvertMarkdown_HighlightedCode(t *testing.T) {
	cfg := testConfig(t)
	md := newMarkdown(cfg)

	source := []byte("# T\n\n```go\npackage main\n```\n")
	conv, err := convertMarkdown(md, source)
	require.NoError(t, err)
	// Chroma emits inline-styled spans instead of a bare code block.
	require.Contains(t, conv.HTML, "<pre")
	require.Contains(t, conv.HTML, "style=")
}

func TestConvertLiteral(t *testing.T) {
	conv := convertLiteral([]byte("Overview\n========\n\nBody <text>.\n"))
	require.Equal(t, "Overview", conv.Title)
	require.True(t, strings.HasPrefix(conv.HTML, "<pre class=\"literal\">"))
	require.Contains(t, conv.HTML, "&lt;text&gt;")
}
