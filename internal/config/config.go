// Package config defines the declarative site configuration for refman.
//
// The configuration is pure data: it is loaded once at startup, defaulted,
// validated, and never mutated afterwards. The project version is not part of
// the file; it is resolved from the toolkit's package.json manifest during
// Load and a missing or malformed manifest aborts loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refman/internal/manifest"
)

// Config is the root configuration consumed by every command.
type Config struct {
	Site        Site              `yaml:"site"`
	Paths       Paths             `yaml:"paths"`
	Theme       Theme             `yaml:"theme"`
	Render      Render            `yaml:"render"`
	Context     RepoContext       `yaml:"repo_context"`
	API         API               `yaml:"api"`
	Examples    Examples          `yaml:"examples"`
	Outputs     Outputs           `yaml:"outputs"`
	Intersphinx map[string]string `yaml:"intersphinx,omitempty"`
	Serve       Serve             `yaml:"serve"`
	Events      Events            `yaml:"events"`
	History     History           `yaml:"history"`

	// Version is resolved from the toolkit manifest, never from YAML.
	Version string `yaml:"-"`
}

// Site carries general project information.
type Site struct {
	Project   string `yaml:"project"`
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
	Language  string `yaml:"language,omitempty"`
}

// Paths locates the toolkit repository and the manual sources inside it.
type Paths struct {
	// Root is the toolkit repository root (location of package.json and the
	// yarn build scripts).
	Root string `yaml:"root"`
	// Docs is the manual directory relative to Root.
	Docs string `yaml:"docs"`
	// Source is the manual source directory relative to Root.
	Source string `yaml:"source"`
	// Output is the default build output directory; the CLI flag wins.
	Output string `yaml:"output,omitempty"`
	// Changelog is the changelog file relative to Root, staged into Source
	// at the start of every build.
	Changelog string `yaml:"changelog"`
}

// Theme selects the page chrome and its assets.
type Theme struct {
	Name string `yaml:"name"`
	// Path is an optional directory searched for theme overrides before the
	// built-in themes.
	Path     string   `yaml:"path,omitempty"`
	Sidebars []string `yaml:"sidebars"`
	// StaticPath is the static asset directory relative to Source.
	StaticPath string `yaml:"static_path"`
	// TemplatesPath is the custom template directory relative to Source.
	TemplatesPath string `yaml:"templates_path"`
	// Stylesheets are extra stylesheet references (relative to StaticPath)
	// injected into every rendered page.
	Stylesheets []string `yaml:"stylesheets"`
}

// Render controls markdown page rendering.
type Render struct {
	// MasterDoc is the root document name without extension.
	MasterDoc string `yaml:"master_doc"`
	// SourceSuffix maps file extensions to source flavors.
	SourceSuffix map[string]string `yaml:"source_suffix"`
	// ExcludePatterns are glob patterns (relative to Source) skipped during
	// page discovery.
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`
	// HighlightStyle names the chroma style used for fenced code blocks.
	HighlightStyle string `yaml:"highlight_style"`
	// IncludeTodos controls whether todo admonitions render or are dropped.
	IncludeTodos bool `yaml:"include_todos"`
	// Math injects the math typesetting script into rendered pages.
	Math bool `yaml:"math"`
	// CopyButton injects the code copy-button script into rendered pages.
	CopyButton bool `yaml:"copy_button"`
	// AllowHTML permits raw HTML (e.g. images) embedded in markdown sources.
	AllowHTML bool `yaml:"allow_html"`
}

// RepoContext feeds the "edit on forge" links of rendered pages. Unset fields
// are filled from the local git checkout when Display is true.
type RepoContext struct {
	Display  bool   `yaml:"display"`
	Owner    string `yaml:"owner,omitempty"`
	Repo     string `yaml:"repo,omitempty"`
	Branch   string `yaml:"branch,omitempty"`
	DocsPath string `yaml:"docs_path,omitempty"`
}

// API configures the API documentation build step.
type API struct {
	// Dir is the generated API tree relative to Source.
	Dir string `yaml:"dir"`
	// Marker is the sentinel file relative to Dir whose presence means the
	// API docs are already built. Presence only; content is not verified.
	Marker string `yaml:"marker"`
	// IndexPage is the fixed index file (relative to Source) overlaid onto
	// the copied API tree as index.html.
	IndexPage string `yaml:"index_page"`
	// Script is the yarn script that generates the API docs.
	Script string `yaml:"script"`
}

// Examples configures the interactive example applications build step.
type Examples struct {
	// Names lists the examples staged into the manual. Exactly these are
	// copied; there is no directory globbing.
	Names []string `yaml:"names"`
	// Dir is the example sources directory relative to Root.
	Dir string `yaml:"dir"`
	// Prefix is the per-example directory prefix under Dir.
	Prefix string `yaml:"prefix"`
	// Scripts are the yarn scripts, in order, that build the toolkit and its
	// examples.
	Scripts []string `yaml:"scripts"`
}

// Outputs carries the auxiliary builder settings: output basenames and
// document tuples for the HTML-help, LaTeX, man page, Texinfo and Epub
// targets. Pure data handed through to the build report.
type Outputs struct {
	HTMLHelpBasename string            `yaml:"htmlhelp_basename"`
	LaTeXElements    map[string]string `yaml:"latex_elements,omitempty"`
	LaTeXDocuments   []LaTeXDocument   `yaml:"latex_documents"`
	ManPages         []ManPage         `yaml:"man_pages"`
	TexinfoDocuments []TexinfoDocument `yaml:"texinfo_documents"`
	Epub             Epub              `yaml:"epub"`
}

// LaTeXDocument describes one LaTeX build target.
type LaTeXDocument struct {
	StartDoc string `yaml:"start_doc"`
	Target   string `yaml:"target"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Class    string `yaml:"class"`
}

// ManPage describes one manual page target.
type ManPage struct {
	StartDoc    string   `yaml:"start_doc"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Authors     []string `yaml:"authors"`
	Section     int      `yaml:"section"`
}

// TexinfoDocument describes one Texinfo build target.
type TexinfoDocument struct {
	StartDoc    string `yaml:"start_doc"`
	Target      string `yaml:"target"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	DirEntry    string `yaml:"dir_entry"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// Epub carries the Epub bibliographic metadata.
type Epub struct {
	Title        string   `yaml:"title,omitempty"`
	Author       string   `yaml:"author,omitempty"`
	Publisher    string   `yaml:"publisher,omitempty"`
	Copyright    string   `yaml:"copyright,omitempty"`
	Identifier   string   `yaml:"identifier,omitempty"`
	UID          string   `yaml:"uid,omitempty"`
	ExcludeFiles []string `yaml:"exclude_files"`
}

// Serve configures the local site server.
type Serve struct {
	Addr string `yaml:"addr"`
	// RebuildEvery schedules periodic full rebuilds when non-zero, e.g. "1h".
	RebuildEvery string `yaml:"rebuild_every,omitempty"`
	Metrics      bool   `yaml:"metrics"`
	MetricsPath  string `yaml:"metrics_path"`
}

// Events configures optional build event publishing over NATS. Disabled
// unless URL is set.
type Events struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject"`
}

// History configures the build history store.
type History struct {
	Path     string `yaml:"path"`
	Keep     int    `yaml:"keep"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// RootDir returns the cleaned toolkit repository root.
func (c *Config) RootDir() string { return filepath.Clean(c.Paths.Root) }

// DocsDir returns the manual directory.
func (c *Config) DocsDir() string { return filepath.Join(c.RootDir(), c.Paths.Docs) }

// SourceDir returns the manual source directory.
func (c *Config) SourceDir() string { return filepath.Join(c.RootDir(), c.Paths.Source) }

// StaticDir returns the static asset directory inside the source tree.
func (c *Config) StaticDir() string { return filepath.Join(c.SourceDir(), c.Theme.StaticPath) }

// ChangelogPath returns the changelog file location at the repo root.
func (c *Config) ChangelogPath() string { return filepath.Join(c.RootDir(), c.Paths.Changelog) }

// APIDir returns the generated API tree inside the source tree.
func (c *Config) APIDir() string { return filepath.Join(c.SourceDir(), c.API.Dir) }

// APIMarkerPath returns the sentinel file that marks the API docs as built.
func (c *Config) APIMarkerPath() string { return filepath.Join(c.APIDir(), c.API.Marker) }

// ExamplesSourceDir returns the staged examples directory inside the source tree.
func (c *Config) ExamplesSourceDir() string { return filepath.Join(c.SourceDir(), "examples") }

// ExamplesMarkerPath returns the sentinel file that marks the examples as
// built: the index page of the first configured example.
func (c *Config) ExamplesMarkerPath() string {
	if len(c.Examples.Names) == 0 {
		return ""
	}
	return filepath.Join(c.ExamplesSourceDir(), c.Examples.Names[0], "index.html")
}

// ExampleBuildDir returns the build output of one example app inside the
// toolkit repository.
func (c *Config) ExampleBuildDir(name string) string {
	return filepath.Join(c.RootDir(), c.Examples.Dir, c.Examples.Prefix+name)
}

// Load reads, defaults and validates the configuration at configPath, then
// resolves the project version from the toolkit manifest.
func Load(configPath string) (*Config, error) {
	// Best-effort .env so ${VAR} references in the YAML resolve.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	m, err := manifest.LoadFromRoot(cfg.RootDir())
	if err != nil {
		return nil, fmt.Errorf("resolve version: %w", err)
	}
	cfg.Version = m.Version
	if cfg.Site.Project == "" {
		cfg.Site.Project = projectNameFromManifest(m.Name)
	}
	applyDerivedDefaults(&cfg)

	return &cfg, nil
}
