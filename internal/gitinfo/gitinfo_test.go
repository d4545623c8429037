package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initTestRepo(t *testing.T, remoteURL string) (string, string) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("# Test\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("add: %v", err)
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if remoteURL != "" {
		if _, err := repo.CreateRemote(&gitcfg.RemoteConfig{Name: "origin", URLs: []string{remoteURL}}); err != nil {
			t.Fatalf("create remote: %v", err)
		}
	}
	return root, hash.String()
}

func TestDetect_ReadsHeadBranchAndRemote(t *testing.T) {
	root, commit := initTestRepo(t, "git@github.com:jupyterlab/lumino.git")

	info, err := Detect(root)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if info.Commit != commit {
		t.Fatalf("commit mismatch: want %s, got %s", commit, info.Commit)
	}
	if info.Branch != "master" {
		t.Fatalf("expected default branch master, got %q", info.Branch)
	}
	if info.Owner != "jupyterlab" || info.Repo != "lumino" {
		t.Fatalf("owner/repo mismatch: %s/%s", info.Owner, info.Repo)
	}
}

func TestDetect_NoRemote(t *testing.T) {
	root, _ := initTestRepo(t, "")

	info, err := Detect(root)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if info.Owner != "" || info.Repo != "" {
		t.Fatalf("expected empty owner/repo, got %s/%s", info.Owner, info.Repo)
	}
	if info.Commit == "" {
		t.Fatalf("expected commit hash")
	}
}

func TestDetect_NotARepository(t *testing.T) {
	if _, err := Detect(t.TempDir()); err == nil {
		t.Fatalf("expected error for plain directory")
	}
}

func TestOwnerRepoFromURL(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/jupyterlab/lumino.git", "jupyterlab", "lumino"},
		{"https://github.com/jupyterlab/lumino", "jupyterlab", "lumino"},
		{"git@github.com:jupyterlab/lumino.git", "jupyterlab", "lumino"},
		{"ssh://git@github.com/jupyterlab/lumino", "jupyterlab", "lumino"},
		{"lumino", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		owner, repo := ownerRepoFromURL(tc.url)
		if owner != tc.owner || repo != tc.repo {
			t.Fatalf("%q: want %s/%s, got %s/%s", tc.url, tc.owner, tc.repo, owner, repo)
		}
	}
}
