package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default example applications staged into the manual. These match the
// toolkit's shipped interactive demos.
var defaultExamples = []string{"accordionpanel", "datagrid", "dockpanel"}

// Default sidebar templates rendered on every page.
var defaultSidebars = []string{
	"about.html",
	"navigation.html",
	"relations.html",
	"searchbox.html",
	"donate.html",
}

// applyDefaults fills every unset field with its documented default. Called
// before validation so validators see the effective configuration.
func applyDefaults(cfg *Config) {
	if cfg.Paths.Root == "" {
		cfg.Paths.Root = "."
	}
	if cfg.Paths.Docs == "" {
		cfg.Paths.Docs = "docs"
	}
	if cfg.Paths.Source == "" {
		cfg.Paths.Source = "docs/source"
	}
	if cfg.Paths.Changelog == "" {
		cfg.Paths.Changelog = "CHANGELOG.md"
	}

	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "manual"
	}
	if len(cfg.Theme.Sidebars) == 0 {
		cfg.Theme.Sidebars = append([]string(nil), defaultSidebars...)
	}
	if cfg.Theme.StaticPath == "" {
		cfg.Theme.StaticPath = "_static"
	}
	if cfg.Theme.TemplatesPath == "" {
		cfg.Theme.TemplatesPath = "_templates"
	}
	if len(cfg.Theme.Stylesheets) == 0 {
		cfg.Theme.Stylesheets = []string{"css/custom.css"}
	}

	if cfg.Render.MasterDoc == "" {
		cfg.Render.MasterDoc = "index"
	}
	if len(cfg.Render.SourceSuffix) == 0 {
		cfg.Render.SourceSuffix = map[string]string{
			".md":  "markdown",
			".rst": "restructuredtext",
		}
	}
	if cfg.Render.HighlightStyle == "" {
		cfg.Render.HighlightStyle = "friendly"
	}

	if cfg.API.Dir == "" {
		cfg.API.Dir = "api"
	}
	if cfg.API.Marker == "" {
		cfg.API.Marker = "algorithm/index.html"
	}
	if cfg.API.IndexPage == "" {
		cfg.API.IndexPage = "api_index.html"
	}
	if cfg.API.Script == "" {
		cfg.API.Script = "docs"
	}

	if len(cfg.Examples.Names) == 0 {
		cfg.Examples.Names = append([]string(nil), defaultExamples...)
	}
	if cfg.Examples.Dir == "" {
		cfg.Examples.Dir = "examples"
	}
	if cfg.Examples.Prefix == "" {
		cfg.Examples.Prefix = "example-"
	}
	if len(cfg.Examples.Scripts) == 0 {
		cfg.Examples.Scripts = []string{"build", "build:examples"}
	}

	if len(cfg.Outputs.Epub.ExcludeFiles) == 0 {
		cfg.Outputs.Epub.ExcludeFiles = []string{"search.html"}
	}

	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8000"
	}
	if cfg.Serve.MetricsPath == "" {
		cfg.Serve.MetricsPath = "/metrics"
	}

	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "refman.builds"
	}

	if cfg.History.Path == "" {
		cfg.History.Path = ".refman/history.db"
	}
	if cfg.History.Keep <= 0 {
		cfg.History.Keep = 50
	}
}

// applyDerivedDefaults fills output tuples that default from the project
// identity, so it runs after the manifest resolved project name and version.
func applyDerivedDefaults(cfg *Config) {
	project := cfg.Site.Project
	author := cfg.Site.Author
	title := project + " Documentation"

	if cfg.Outputs.HTMLHelpBasename == "" {
		cfg.Outputs.HTMLHelpBasename = project + "doc"
	}
	if len(cfg.Outputs.LaTeXDocuments) == 0 {
		cfg.Outputs.LaTeXDocuments = []LaTeXDocument{{
			StartDoc: cfg.Render.MasterDoc,
			Target:   project + ".tex",
			Title:    title,
			Author:   author,
			Class:    "manual",
		}}
	}
	if len(cfg.Outputs.ManPages) == 0 {
		cfg.Outputs.ManPages = []ManPage{{
			StartDoc:    cfg.Render.MasterDoc,
			Name:        strings.ToLower(project),
			Description: title,
			Authors:     []string{author},
			Section:     1,
		}}
	}
	if len(cfg.Outputs.TexinfoDocuments) == 0 {
		cfg.Outputs.TexinfoDocuments = []TexinfoDocument{{
			StartDoc:    cfg.Render.MasterDoc,
			Target:      project,
			Title:       title,
			Author:      author,
			DirEntry:    project,
			Description: "One line description of project.",
			Category:    "Miscellaneous",
		}}
	}

	epub := &cfg.Outputs.Epub
	if epub.Title == "" {
		epub.Title = project
	}
	if epub.Author == "" {
		epub.Author = author
	}
	if epub.Publisher == "" {
		epub.Publisher = author
	}
	if epub.Copyright == "" {
		epub.Copyright = cfg.Site.Copyright
	}
}

// projectNameFromManifest derives a presentable project name from an npm
// package name: the scope is dropped and the bare name is title-cased.
func projectNameFromManifest(pkgName string) string {
	name := pkgName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return cases.Title(language.English, cases.NoLower).String(name)
}
