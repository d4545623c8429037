package linkcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSiteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func buildTestSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSiteFile(t, root, "index.html", `<html><body>
<h1 id="intro">Intro</h1>
<a href="guides/install.html">Install</a>
<a href="#intro">Top</a>
<a href="api/">API</a>
<a href="api/classes.html#section">Classes</a>
<img src="_static/logo.png" alt="logo">
<link rel="stylesheet" href="_static/css/custom.css">
<a href="https://docs.python.org/3/library/functions.html">Python</a>
<a href="https://example.com/page">Elsewhere</a>
<a href="mailto:dev@example.com">Mail</a>
</body></html>`)
	writeSiteFile(t, root, "guides/install.html", `<html><body>
<h1 id="install">Install</h1>
<a href="../index.html#intro">Home</a>
</body></html>`)
	writeSiteFile(t, root, "api/index.html", `<html><body>API overview</body></html>`)
	writeSiteFile(t, root, "api/classes.html", `<html><body>
<h2 id="section">Section</h2>
<a href="broken-inside-generated-tree.html">generated link</a>
</body></html>`)
	writeSiteFile(t, root, "_static/logo.png", "png bytes")
	writeSiteFile(t, root, "_static/css/custom.css", "body {}")
	return root
}

func TestRun_CleanSite(t *testing.T) {
	root := buildTestSite(t)
	c := New(root, Options{KnownPrefixes: []string{"https://docs.python.org/3"}})

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Truef(t, res.Ok(), "unexpected issues: %v", res.Issues)
	// The generated api tree is not scanned as a source, so its broken link
	// does not count against the site.
	require.Equal(t, 2, res.Pages)
	require.Equal(t, 2, res.External)
	require.Equal(t, 1, res.KnownExternal)
}

func TestRun_ReportsBrokenReferences(t *testing.T) {
	root := buildTestSite(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	writeSiteFile(t, root, "broken.html", `<html><body>
<a href="missing.html">gone</a>
<a href="#nope">no anchor</a>
<a href="guides/install.html#absent">bad target anchor</a>
<a href="../outside.html">escape</a>
<a href="empty/">no index</a>
</body></html>`)

	c := New(root, Options{})
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	wantReasons := []string{
		"target not found",
		"anchor not found",
		"anchor not found in target",
		"escapes site root",
		"directory without index.html",
	}
	require.Len(t, res.Issues, len(wantReasons))
	for i, want := range wantReasons {
		require.Equalf(t, want, res.Issues[i].Reason, "issue %d: %v", i, res.Issues[i])
		require.Equal(t, "broken.html", res.Issues[i].Page)
	}
}

func TestRun_AbsoluteReferencesResolveFromSiteRoot(t *testing.T) {
	root := buildTestSite(t)
	writeSiteFile(t, root, "guides/deep.html", `<html><body>
<a href="/index.html">home</a>
<a href="/api/classes.html#section">classes</a>
</body></html>`)

	c := New(root, Options{})
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Truef(t, res.Ok(), "unexpected issues: %v", res.Issues)
}

func TestRun_QueryStringsIgnored(t *testing.T) {
	root := buildTestSite(t)
	writeSiteFile(t, root, "search.html", `<html><body>
<a href="index.html?highlight=widget#intro">result</a>
</body></html>`)

	c := New(root, Options{})
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Truef(t, res.Ok(), "unexpected issues: %v", res.Issues)
}

func TestRun_Canceled(t *testing.T) {
	root := buildTestSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root, Options{}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIssueString(t *testing.T) {
	i := Issue{Page: "index.html", URL: "gone.html", Reason: "target not found"}
	require.Equal(t, "index.html: gone.html (target not found)", i.String())
}
