package render

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/refman/internal/config"
)

// Flavors of documentation sources.
const (
	FlavorMarkdown         = "markdown"
	FlavorRestructuredText = "restructuredtext"
)

// Page is one documentation source file discovered under the source tree.
type Page struct {
	// SourcePath is the absolute path of the source file.
	SourcePath string
	// RelPath is the source path relative to the source dir, slash-separated.
	RelPath string
	// OutPath is the rendered file path relative to the output dir.
	OutPath string
	// DocName is RelPath without its extension.
	DocName string
	// Flavor is the source flavor from the configured suffix map.
	Flavor string
	// Title is filled during rendering (frontmatter title, else first
	// heading, else derived from the file name).
	Title string
	// Description is the page's frontmatter description, if any.
	Description string
}

// IsMaster reports whether the page is the configured root document.
func (p *Page) IsMaster(masterDoc string) bool { return p.DocName == masterDoc }

// DiscoverPages walks the source tree and collects every file whose extension
// appears in the configured suffix map. The static and template directories
// are skipped, as is anything matching an exclude pattern.
func DiscoverPages(cfg *config.Config) ([]Page, error) {
	sourceDir := cfg.SourceDir()
	skipDirs := map[string]bool{
		cfg.Theme.StaticPath:    true,
		cfg.Theme.TemplatesPath: true,
	}

	var pages []Page
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skipDirs[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		flavor, ok := cfg.Render.SourceSuffix[filepath.Ext(path)]
		if !ok {
			return nil
		}
		if excluded(rel, cfg.Render.ExcludePatterns) {
			return nil
		}
		docName := strings.TrimSuffix(rel, filepath.Ext(rel))
		pages = append(pages, Page{
			SourcePath: path,
			RelPath:    rel,
			OutPath:    docName + ".html",
			DocName:    docName,
			Flavor:     flavor,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}

	sortPages(pages, cfg.Render.MasterDoc)
	return pages, nil
}

// sortPages orders pages with the master document first, then by path.
func sortPages(pages []Page, masterDoc string) {
	sort.Slice(pages, func(i, j int) bool {
		im, jm := pages[i].IsMaster(masterDoc), pages[j].IsMaster(masterDoc)
		if im != jm {
			return im
		}
		return pages[i].RelPath < pages[j].RelPath
	})
}

func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		// Allow directory patterns to cover nested files.
		if strings.HasSuffix(pat, "/**") {
			if strings.HasPrefix(rel, strings.TrimSuffix(pat, "/**")+"/") {
				return true
			}
		}
	}
	return false
}

// rootPrefix returns the "../" chain that leads from the page's directory
// back to the site root.
func rootPrefix(outPath string) string {
	depth := strings.Count(outPath, "/")
	if depth == 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}

var titleCaser = cases.Title(language.English)

// titleFromDocName derives a presentable fallback title from a document name,
// e.g. "guides/getting-started" becomes "Getting Started".
func titleFromDocName(docName string) string {
	base := filepath.Base(docName)
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(base)
}

// readSource reads a page's source bytes.
func (p *Page) readSource() ([]byte, error) {
	data, err := os.ReadFile(p.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", p.RelPath, err)
	}
	return data, nil
}
