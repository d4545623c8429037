package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineRender_WritesPagesAndAssets(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md", "# Welcome\n\nHello.\n")
	writeSource(t, cfg, "guides/install.md", "# Installation\n\nSteps.\n")
	writeSource(t, cfg, "_static/css/custom.css", "body { color: red; }\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	outDir := t.TempDir()
	sum, err := engine.Render(context.Background(), outDir)
	require.NoError(t, err)
	require.Equal(t, 2, sum.Pages)
	require.Zero(t, sum.Skipped)
	// theme.css plus the user's custom.css
	require.Equal(t, 2, sum.Assets)

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	html := string(index)
	require.Contains(t, html, "<title>Welcome &#8212; Lumino 2024.3.0 documentation</title>")
	require.Contains(t, html, "_static/css/theme.css")
	require.Contains(t, html, "_static/css/custom.css")
	require.Contains(t, html, "Navigation")

	nested, err := os.ReadFile(filepath.Join(outDir, "guides", "install.html"))
	require.NoError(t, err)
	require.Contains(t, string(nested), "../_static/css/theme.css")

	require.FileExists(t, filepath.Join(outDir, "_static", "css", "theme.css"))
	require.FileExists(t, filepath.Join(outDir, "_static", "css", "custom.css"))
	require.FileExists(t, filepath.Join(outDir, fingerprintManifestName))
}

func TestEngineRender_SkipsUnchangedPages(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md", "# Welcome\n")
	writeSource(t, cfg, "about.md", "# About\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	outDir := t.TempDir()
	sum, err := engine.Render(context.Background(), outDir)
	require.NoError(t, err)
	require.Equal(t, 2, sum.Pages)

	// Unchanged rerun skips everything.
	sum, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)
	require.Zero(t, sum.Pages)
	require.Equal(t, 2, sum.Skipped)

	// Touching one page re-renders only that page.
	writeSource(t, cfg, "about.md", "# About\n\nUpdated.\n")
	sum, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Pages)
	require.Equal(t, 1, sum.Skipped)
}

func TestEngineRender_ChromeChangeInvalidatesAll(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md", "# Welcome\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	outDir := t.TempDir()
	_, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)

	// A version bump changes the chrome fingerprint.
	cfg.Version = "2024.4.0"
	engine, err = NewEngine(cfg)
	require.NoError(t, err)
	sum, err := engine.Render(context.Background(), outDir)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Pages)
	require.Zero(t, sum.Skipped)
}

func TestEngineRender_MissingMasterDocFails(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "other.md", "# Other\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	_, err = engine.Render(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "master document")
}

func TestEngineRender_EditLinks(t *testing.T) {
	cfg := testConfig(t)
	cfg.Context.Display = true
	cfg.Context.Owner = "jupyterlab"
	cfg.Context.Repo = "lumino"
	cfg.Context.Branch = "main"
	cfg.Context.DocsPath = "/docs/source/"
	writeSource(t, cfg, "index.md", "# Welcome\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	outDir := t.TempDir()
	_, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "https://github.com/jupyterlab/lumino/blob/main/docs/source/index.md")
}

func TestEngineRender_LayoutOverride(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md", "# Welcome\n")

	overrides := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(overrides, "layout.html"),
		[]byte("<html><body data-custom=\"1\">{{.Content}}</body></html>"), 0o644))
	cfg.Theme.Path = overrides

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	outDir := t.TempDir()
	_, err = engine.Render(context.Background(), outDir)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "data-custom=\"1\"")
}

func TestNewEngine_UnknownTheme(t *testing.T) {
	cfg := testConfig(t)
	cfg.Theme.Name = "no-such-theme"
	_, err := NewEngine(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme")
}

func TestEngineRender_Canceled(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "index.md", "# Welcome\n")

	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Render(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
