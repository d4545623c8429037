package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyDir_CopiesNestedTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(src, "index.html"), "<html>root</html>")
	writeFile(t, filepath.Join(src, "sub", "page.html"), "<html>sub</html>")

	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>root</html>", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "sub", "page.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>sub</html>", string(got))
}

func TestCopyDir_SourceMissing_ReturnsError(t *testing.T) {
	err := CopyDir(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}

func TestCopyDir_SourceIsFile_ReturnsError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "f.txt")
	writeFile(t, src, "x")
	err := CopyDir(src, t.TempDir())
	require.Error(t, err)
}

func TestReplaceDir_RemovesStaleFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(src, "fresh.html"), "fresh")
	writeFile(t, filepath.Join(dst, "stale.html"), "stale")
	writeFile(t, filepath.Join(dst, "deep", "leftover.js"), "old")

	require.NoError(t, ReplaceDir(src, dst))

	require.True(t, Exists(filepath.Join(dst, "fresh.html")))
	require.False(t, Exists(filepath.Join(dst, "stale.html")))
	require.False(t, Exists(filepath.Join(dst, "deep")))
}

func TestReplaceDir_NoPreexistingDestination(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "a")

	dst := filepath.Join(t.TempDir(), "fresh")
	require.NoError(t, ReplaceDir(src, dst))
	require.True(t, Exists(filepath.Join(dst, "a.txt")))
}

func TestCopyFile_PreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.css")
	dst := filepath.Join(dir, "dst.css")
	writeFile(t, src, "body { margin: 0 }")

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "body { margin: 0 }", string(got))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	require.True(t, Exists(dir))
	require.True(t, IsDir(dir))
	require.False(t, Exists(filepath.Join(dir, "missing")))

	f := filepath.Join(dir, "f")
	writeFile(t, f, "")
	require.True(t, Exists(f))
	require.False(t, IsDir(f))
}
