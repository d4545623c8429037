// Package render turns the manual sources into the HTML site: markdown
// pages through goldmark, wrapped in the configured theme's layout, with
// unchanged pages skipped via content fingerprints.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/refman/internal/config"
	"git.home.luguber.info/inful/refman/internal/fsops"
	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/theme"
	_ "git.home.luguber.info/inful/refman/internal/theme/themes/manual"
	"git.home.luguber.info/inful/refman/internal/version"
)

// Renderer produces the HTML site from the manual sources.
type Renderer interface {
	Render(ctx context.Context, outDir string) (Summary, error)
}

// Summary reports what a render pass did.
type Summary struct {
	Pages   int // pages rendered and written
	Skipped int // pages skipped via unchanged fingerprint
	Assets  int // static files copied
}

// NavItem is one entry in the page navigation sidebar.
type NavItem struct {
	Title   string
	Href    string
	Current bool
}

// Engine is the default Renderer implementation.
type Engine struct {
	cfg      *config.Config
	md       goldmark.Markdown
	layout   *template.Template
	sidebars []*template.Template
	theme    theme.Theme
	chrome   string
}

// NewEngine resolves the configured theme and compiles its templates.
func NewEngine(cfg *config.Config) (*Engine, error) {
	t := theme.Get(cfg.Theme.Name)
	if t == nil {
		return nil, fmt.Errorf("unknown theme %q (registered: %s)", cfg.Theme.Name, strings.Join(theme.Names(), ", "))
	}

	e := &Engine{cfg: cfg, md: newMarkdown(cfg), theme: t}

	layoutText, err := e.resolveLayout()
	if err != nil {
		return nil, err
	}
	e.layout, err = template.New("layout").Parse(layoutText)
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}

	chromeParts := []string{layoutText}
	for _, name := range cfg.Theme.Sidebars {
		text, ok := e.resolveSidebar(name)
		if !ok {
			slog.Debug("Sidebar template not provided by theme, skipping", logfields.Path(name))
			continue
		}
		tpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse sidebar template %s: %w", name, err)
		}
		e.sidebars = append(e.sidebars, tpl)
		chromeParts = append(chromeParts, text)
	}

	identity := strings.Join([]string{
		cfg.Site.Project,
		cfg.Version,
		cfg.Site.Copyright,
		cfg.Site.Language,
		strings.Join(cfg.Theme.Stylesheets, ","),
		cfg.Render.HighlightStyle,
		fmt.Sprint(cfg.Render.Math),
		fmt.Sprint(cfg.Render.CopyButton),
	}, "|")
	e.chrome = mdfp.CalculateFingerprintFromParts(strings.Join(chromeParts, "\n"), identity)

	return e, nil
}

// resolveLayout prefers a layout.html in the theme override dir over the
// built-in theme layout.
func (e *Engine) resolveLayout() (string, error) {
	if e.cfg.Theme.Path != "" {
		override := filepath.Join(e.cfg.Theme.Path, "layout.html")
		if fsops.Exists(override) {
			data, err := os.ReadFile(override)
			if err != nil {
				return "", fmt.Errorf("read layout override: %w", err)
			}
			return string(data), nil
		}
	}
	layout := e.theme.Layout()
	if layout == "" {
		return "", fmt.Errorf("theme %q provides no layout", e.theme.Name())
	}
	return layout, nil
}

func (e *Engine) resolveSidebar(name string) (string, bool) {
	if e.cfg.Theme.Path != "" {
		override := filepath.Join(e.cfg.Theme.Path, name)
		if data, err := os.ReadFile(override); err == nil {
			return string(data), true
		}
	}
	return e.theme.Sidebar(name)
}

// pageView is the data handed to the layout and sidebar templates.
type pageView struct {
	Title       string
	Description string
	Content     template.HTML
	Project     string
	Version     string
	Copyright   string
	Language    string
	RootPrefix  string
	Stylesheets []string
	Math        bool
	CopyButton  bool
	EditURL     string
	Nav         []NavItem
	Prev        *NavItem
	Next        *NavItem
	TOC         []TOCEntry
	Sidebars    []template.HTML
	Generator   string
}

// renderedPage pairs a discovered page with its conversion result.
type renderedPage struct {
	page Page
	conv *converted // nil when the page was fingerprint-skipped
	skip bool
}

// Render discovers, converts and writes every page, copies static assets and
// persists the fingerprint manifest.
func (e *Engine) Render(ctx context.Context, outDir string) (Summary, error) {
	var s Summary

	pages, err := DiscoverPages(e.cfg)
	if err != nil {
		return s, err
	}
	if err := e.requireMasterDoc(pages); err != nil {
		return s, err
	}

	assets, err := e.copyStaticAssets(outDir)
	if err != nil {
		return s, err
	}
	s.Assets = assets

	prev := loadFingerprintManifest(outDir)
	cur := newFingerprintManifest(e.chrome)

	rendered := make([]renderedPage, 0, len(pages))
	for i := range pages {
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		default:
		}
		rp, err := e.convertPage(&pages[i], prev, cur, outDir)
		if err != nil {
			return s, err
		}
		rendered = append(rendered, rp)
	}

	nav := buildNav(rendered)

	for i := range rendered {
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		default:
		}
		rp := &rendered[i]
		if rp.skip {
			s.Skipped++
			continue
		}
		if err := e.writePage(rp, rendered, i, nav, outDir); err != nil {
			return s, err
		}
		s.Pages++
	}

	if err := cur.save(outDir); err != nil {
		slog.Warn("Failed to persist fingerprint manifest", logfields.Error(err))
	}

	slog.Info("Rendered manual pages",
		logfields.Dest(outDir),
		slog.Int("pages", s.Pages),
		slog.Int("skipped", s.Skipped),
		slog.Int("assets", s.Assets))
	return s, nil
}

func (e *Engine) requireMasterDoc(pages []Page) error {
	for i := range pages {
		if pages[i].IsMaster(e.cfg.Render.MasterDoc) {
			return nil
		}
	}
	return fmt.Errorf("master document %q not found under %s", e.cfg.Render.MasterDoc, e.cfg.SourceDir())
}

// convertPage computes the page fingerprint and converts the source unless
// both fingerprint and chrome are unchanged from the previous run.
func (e *Engine) convertPage(p *Page, prev, cur *fingerprintManifest, outDir string) (renderedPage, error) {
	source, err := p.readSource()
	if err != nil {
		return renderedPage{}, err
	}
	fp := mdfp.CalculateFingerprintFromParts("", string(source))
	outFile := filepath.Join(outDir, filepath.FromSlash(p.OutPath))

	if cur.unchanged(prev, p.RelPath, fp, outFile) {
		p.Title = prev.Pages[p.RelPath].Title
		if p.Title == "" {
			p.Title = titleFromDocName(p.DocName)
		}
		cur.Pages[p.RelPath] = pageRecord{Fingerprint: fp, Title: p.Title}
		slog.Debug("Page unchanged, skipping render", logfields.Page(p.RelPath))
		return renderedPage{page: *p, skip: true}, nil
	}

	var conv converted
	switch p.Flavor {
	case FlavorMarkdown:
		meta, body, metaErr := splitFrontmatter(source)
		if metaErr != nil {
			return renderedPage{}, fmt.Errorf("page %s: %w", p.RelPath, metaErr)
		}
		conv, err = convertMarkdown(e.md, body)
		if err != nil {
			return renderedPage{}, fmt.Errorf("page %s: %w", p.RelPath, err)
		}
		if meta.Title != "" {
			conv.Title = meta.Title
		}
		p.Description = meta.Description
	default:
		conv = convertLiteral(source)
	}

	p.Title = conv.Title
	if p.Title == "" {
		p.Title = titleFromDocName(p.DocName)
	}
	cur.Pages[p.RelPath] = pageRecord{Fingerprint: fp, Title: p.Title}
	return renderedPage{page: *p, conv: &conv}, nil
}

// writePage executes the sidebar and layout templates and writes the page.
func (e *Engine) writePage(rp *renderedPage, all []renderedPage, idx int, nav []NavItem, outDir string) error {
	p := &rp.page
	view := pageView{
		Title:       p.Title,
		Description: p.Description,
		Content:     template.HTML(rp.conv.HTML),
		Project:     e.cfg.Site.Project,
		Version:     e.cfg.Version,
		Copyright:   e.cfg.Site.Copyright,
		Language:    e.cfg.Site.Language,
		RootPrefix:  rootPrefix(p.OutPath),
		Stylesheets: e.cfg.Theme.Stylesheets,
		Math:        e.cfg.Render.Math,
		CopyButton:  e.cfg.Render.CopyButton,
		EditURL:     e.editURL(p.RelPath),
		Nav:         markCurrent(nav, p.OutPath),
		TOC:         rp.conv.TOC,
		Generator:   "refman " + version.Version,
	}
	if idx > 0 {
		prevPage := &all[idx-1].page
		view.Prev = &NavItem{Title: prevPage.Title, Href: prevPage.OutPath}
	}
	if idx+1 < len(all) {
		nextPage := &all[idx+1].page
		view.Next = &NavItem{Title: nextPage.Title, Href: nextPage.OutPath}
	}

	for _, tpl := range e.sidebars {
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, &view); err != nil {
			return fmt.Errorf("render sidebar %s for %s: %w", tpl.Name(), p.RelPath, err)
		}
		view.Sidebars = append(view.Sidebars, template.HTML(buf.String()))
	}

	var buf bytes.Buffer
	if err := e.layout.Execute(&buf, &view); err != nil {
		return fmt.Errorf("render page %s: %w", p.RelPath, err)
	}

	outFile := filepath.Join(outDir, filepath.FromSlash(p.OutPath))
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return fmt.Errorf("create page dir: %w", err)
	}
	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", p.OutPath, err)
	}
	return nil
}

// editURL builds the "edit on forge" link for a page, or "" when repository
// context display is disabled or incomplete.
func (e *Engine) editURL(relPath string) string {
	rc := e.cfg.Context
	if !rc.Display || rc.Owner == "" || rc.Repo == "" {
		return ""
	}
	branch := rc.Branch
	if branch == "" {
		branch = "main"
	}
	docsPath := rc.DocsPath
	if docsPath == "" {
		docsPath = "/"
	}
	if !strings.HasSuffix(docsPath, "/") {
		docsPath += "/"
	}
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s%s%s", rc.Owner, rc.Repo, branch, docsPath, relPath)
}

// buildNav collects the top-level documents (master first, by discovery
// order) into the sidebar navigation.
func buildNav(rendered []renderedPage) []NavItem {
	var nav []NavItem
	for i := range rendered {
		p := &rendered[i].page
		if strings.Contains(p.DocName, "/") {
			continue
		}
		nav = append(nav, NavItem{Title: p.Title, Href: p.OutPath})
	}
	return nav
}

// markCurrent returns a copy of nav with the entry for outPath flagged.
func markCurrent(nav []NavItem, outPath string) []NavItem {
	out := make([]NavItem, len(nav))
	copy(out, nav)
	for i := range out {
		out[i].Current = out[i].Href == outPath
	}
	return out
}

// copyStaticAssets writes the theme's bundled assets and then overlays the
// user's static dir, so user files override theme files of the same name.
func (e *Engine) copyStaticAssets(outDir string) (int, error) {
	staticOut := filepath.Join(outDir, "_static")
	count := 0

	for rel, content := range e.theme.StaticAssets() {
		dst := filepath.Join(staticOut, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return count, fmt.Errorf("create static dir: %w", err)
		}
		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			return count, fmt.Errorf("write theme asset %s: %w", rel, err)
		}
		count++
	}

	userStatic := e.cfg.StaticDir()
	if fsops.IsDir(userStatic) {
		n, err := copyTree(userStatic, staticOut)
		if err != nil {
			return count, fmt.Errorf("copy static assets: %w", err)
		}
		count += n
	}
	return count, nil
}

// copyTree copies every regular file under src into dst, returning the count.
func copyTree(src, dst string) (int, error) {
	count := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := fsops.CopyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}
