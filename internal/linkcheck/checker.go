// Package linkcheck verifies the internal consistency of a rendered manual:
// every relative reference must point at an existing file and every fragment
// at an existing anchor. Nothing is fetched over the network; external URLs
// are tallied, and those under the configured reference prefixes (the
// cross-reference inventories) are counted as known.
package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

// Issue is one broken reference.
type Issue struct {
	Page   string // site-relative page the reference appears on
	URL    string // reference as written
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Page, i.URL, i.Reason)
}

// Result summarizes a verification run.
type Result struct {
	Pages         int     // pages scanned as link sources
	Links         int     // references examined
	External      int     // absolute URLs, never fetched
	KnownExternal int     // external URLs under a known prefix
	Issues        []Issue // broken references
}

// Ok reports whether the site passed without broken references.
func (r *Result) Ok() bool { return len(r.Issues) == 0 }

// Options adjust a Checker.
type Options struct {
	// KnownPrefixes lists URL prefixes considered resolvable without
	// fetching, typically the configured cross-reference inventories.
	KnownPrefixes []string
	// SkipDirs names top-level directories whose pages are not scanned as
	// link sources. Files inside them still count as valid link targets.
	// Defaults to the static assets and the generated API and example trees.
	SkipDirs []string
}

// Checker verifies one rendered site tree.
type Checker struct {
	root  string
	opts  Options
	cache map[string]*pageIndex // parsed pages keyed by cleaned path
}

// New creates a Checker rooted at the rendered site directory.
func New(root string, opts Options) *Checker {
	if opts.SkipDirs == nil {
		opts.SkipDirs = []string{"_static", "api", "examples"}
	}
	return &Checker{root: filepath.Clean(root), opts: opts, cache: make(map[string]*pageIndex)}
}

// Run walks the site and verifies every reference of every source page.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	pages, err := c.sourcePages()
	if err != nil {
		return nil, fmt.Errorf("discover pages under %s: %w", c.root, err)
	}

	res := &Result{}
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		idx, err := c.index(filepath.Join(c.root, page))
		if err != nil {
			res.Issues = append(res.Issues, Issue{Page: page, Reason: fmt.Sprintf("parse: %v", err)})
			continue
		}
		res.Pages++
		for _, link := range idx.Links {
			c.verify(page, link, idx, res)
		}
	}

	slog.Info("Link check finished",
		"pages", res.Pages,
		"links", res.Links,
		"external", res.External,
		"broken", len(res.Issues))
	return res, nil
}

// sourcePages returns the site-relative paths of all pages to scan, sorted
// for deterministic issue ordering.
func (c *Checker) sourcePages() ([]string, error) {
	skip := make(map[string]bool, len(c.opts.SkipDirs))
	for _, d := range c.opts.SkipDirs {
		skip[d] = true
	}

	var pages []string
	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(c.root, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		top := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		if d.IsDir() {
			if skip[top] {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == ".html" {
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

func (c *Checker) verify(page string, link Link, idx *pageIndex, res *Result) {
	res.Links++
	ref := strings.TrimSpace(link.URL)

	switch {
	case ref == "":
		return
	case strings.HasPrefix(ref, "mailto:"),
		strings.HasPrefix(ref, "tel:"),
		strings.HasPrefix(ref, "javascript:"),
		strings.HasPrefix(ref, "data:"):
		return
	case strings.HasPrefix(ref, "//"), strings.Contains(ref, "://"):
		res.External++
		for _, prefix := range c.opts.KnownPrefixes {
			if prefix != "" && strings.HasPrefix(ref, prefix) {
				res.KnownExternal++
				break
			}
		}
		return
	}

	pathPart, frag := ref, ""
	if i := strings.IndexByte(pathPart, '#'); i >= 0 {
		pathPart, frag = pathPart[:i], pathPart[i+1:]
	}
	if i := strings.IndexByte(pathPart, '?'); i >= 0 {
		pathPart = pathPart[:i]
	}

	if pathPart == "" {
		if frag != "" {
			if _, ok := idx.Anchors[frag]; !ok {
				res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: "anchor not found"})
			}
		}
		return
	}

	target := c.resolve(page, pathPart)
	if !strings.HasPrefix(target, c.root+string(filepath.Separator)) {
		res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: "escapes site root"})
		return
	}

	fi, err := os.Stat(target)
	if err != nil {
		res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: "target not found"})
		return
	}
	if fi.IsDir() {
		target = filepath.Join(target, "index.html")
		if _, err := os.Stat(target); err != nil {
			res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: "directory without index.html"})
			return
		}
	}

	if frag != "" && strings.HasSuffix(target, ".html") {
		tidx, err := c.index(target)
		if err != nil {
			res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: fmt.Sprintf("parse target: %v", err)})
			return
		}
		if _, ok := tidx.Anchors[frag]; !ok {
			res.Issues = append(res.Issues, Issue{Page: page, URL: link.URL, Reason: "anchor not found in target"})
		}
	}
}

// resolve turns a page-relative or site-absolute reference into a filesystem
// path under the site root.
func (c *Checker) resolve(page, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return filepath.Join(c.root, filepath.FromSlash(ref))
	}
	return filepath.Join(c.root, filepath.Dir(filepath.FromSlash(page)), filepath.FromSlash(ref))
}

func (c *Checker) index(path string) (*pageIndex, error) {
	clean := filepath.Clean(path)
	if idx, ok := c.cache[clean]; ok {
		return idx, nil
	}
	idx, err := indexFile(clean)
	if err != nil {
		return nil, err
	}
	c.cache[clean] = idx
	slog.Debug("Indexed page", logfields.Path(clean))
	return idx, nil
}
