// Package gitinfo resolves metadata from the local toolkit checkout: the
// HEAD commit, the branch name and the owner/name pair parsed from the
// origin remote. Builds work from a plain directory too; callers treat a
// detection failure as "no repository information".
package gitinfo

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Info describes the state of a local git checkout.
type Info struct {
	Commit string
	Branch string
	Owner  string
	Repo   string
}

// Detect opens the repository at root and collects the HEAD commit, branch
// and origin owner/name. A missing repository or unborn HEAD is an error;
// partial data, e.g. no origin remote, is not.
func Detect(root string) (*Info, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := &Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if remote, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.Owner, info.Repo = ownerRepoFromURL(urls[0])
		}
	}
	return info, nil
}

// ownerRepoFromURL extracts the owner and repository name from the common
// remote URL shapes:
//
//	https://github.com/jupyterlab/lumino.git
//	git@github.com:jupyterlab/lumino.git
//	ssh://git@github.com/jupyterlab/lumino
func ownerRepoFromURL(url string) (string, string) {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	} else if i := strings.Index(s, "@"); i >= 0 {
		// scp-like syntax: user@host:path
		s = strings.Replace(s[i+1:], ":", "/", 1)
	}
	parts := strings.Split(s, "/")
	if len(parts) < 3 {
		return "", ""
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", ""
	}
	return owner, repo
}
