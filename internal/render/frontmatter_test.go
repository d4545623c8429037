package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter_NoBlock(t *testing.T) {
	source := []byte("# Title\n\nBody.\n")
	meta, body, err := splitFrontmatter(source)
	require.NoError(t, err)
	require.Equal(t, source, body)
	require.Empty(t, meta.Title)
	require.Empty(t, meta.Description)
}

func TestSplitFrontmatter_TitleAndDescription(t *testing.T) {
	source := []byte("---\ntitle: Custom Title\ndescription: A short summary.\n---\n# Heading\n")
	meta, body, err := splitFrontmatter(source)
	require.NoError(t, err)
	require.Equal(t, "Custom Title", meta.Title)
	require.Equal(t, "A short summary.", meta.Description)
	require.Equal(t, "# Heading\n", string(body))
}

func TestSplitFrontmatter_CRLF(t *testing.T) {
	source := []byte("---\r\ntitle: Windows Page\r\n---\r\nBody.\r\n")
	meta, body, err := splitFrontmatter(source)
	require.NoError(t, err)
	require.Equal(t, "Windows Page", meta.Title)
	require.Equal(t, "Body.\r\n", string(body))
}

func TestSplitFrontmatter_EmptyBlock(t *testing.T) {
	meta, body, err := splitFrontmatter([]byte("---\n---\nBody.\n"))
	require.NoError(t, err)
	require.Empty(t, meta.Title)
	require.Equal(t, "Body.\n", string(body))
}

func TestSplitFrontmatter_Unclosed(t *testing.T) {
	_, _, err := splitFrontmatter([]byte("---\ntitle: Oops\n"))
	require.ErrorIs(t, err, errUnclosedFrontmatter)
}

func TestSplitFrontmatter_BadYAML(t *testing.T) {
	_, _, err := splitFrontmatter([]byte("---\n{not yaml\n---\nBody.\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse frontmatter")
}

func TestEngineRender_FrontmatterTitleAndDescription(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md",
		"---\ntitle: Lumino Manual\ndescription: Widgets for the browser.\n---\n# Welcome\n\nHello.\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	outDir := t.TempDir()
	_, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	html := string(index)
	require.Contains(t, html, "<title>Lumino Manual &#8212; Lumino 2024.3.0 documentation</title>")
	require.Contains(t, html, `<meta name="description" content="Widgets for the browser.">`)
}
