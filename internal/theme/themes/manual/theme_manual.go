// Package manual provides the default refman theme: a light two-column
// manual layout with the classic sidebar blocks.
package manual

import (
	th "git.home.luguber.info/inful/refman/internal/theme"
)

type Theme struct{}

func (Theme) Name() string { return "manual" }

func (Theme) Features() th.Features {
	return th.Features{
		Name:              "manual",
		ShowsSidebars:     true,
		SupportsEditLinks: true,
		ProvidesSearchBox: true,
	}
}

func (Theme) Layout() string { return layoutHTML }

func (Theme) Sidebar(file string) (string, bool) {
	s, ok := sidebars[file]
	return s, ok
}

func (Theme) StaticAssets() map[string]string {
	return map[string]string{"css/theme.css": themeCSS}
}

func init() { th.Register(Theme{}) }

const layoutHTML = `<!DOCTYPE html>
<html lang="{{if .Language}}{{.Language}}{{else}}en{{end}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="{{.Generator}}">
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
<title>{{.Title}} &#8212; {{.Project}} {{.Version}} documentation</title>
<link rel="stylesheet" href="{{.RootPrefix}}_static/css/theme.css">
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{$.RootPrefix}}_static/{{.}}">
{{- end}}
{{- if .Math}}
<script defer src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"></script>
{{- end}}
</head>
<body>
<div class="document">
<aside class="sidebar">
{{- range .Sidebars}}
{{.}}
{{- end}}
</aside>
<main class="body" role="main">
{{- if .EditURL}}
<div class="edit-link"><a href="{{.EditURL}}" rel="nofollow">Edit on GitHub</a></div>
{{- end}}
{{.Content}}
</main>
</div>
<footer class="footer">
<p>&copy; {{.Copyright}}. Built with {{.Generator}}.</p>
</footer>
{{- if .CopyButton}}
<script>
document.querySelectorAll("div.body pre").forEach(function (block) {
  var button = document.createElement("button");
  button.className = "copy-button";
  button.textContent = "Copy";
  button.addEventListener("click", function () {
    navigator.clipboard.writeText(block.textContent).then(function () {
      button.textContent = "Copied";
      setTimeout(function () { button.textContent = "Copy"; }, 1500);
    });
  });
  block.parentNode.insertBefore(button, block);
});
</script>
{{- end}}
</body>
</html>
`

var sidebars = map[string]string{
	"about.html": `<div class="sidebar-block about">
<h1 class="logo"><a href="{{.RootPrefix}}index.html">{{.Project}}</a></h1>
<p class="version">{{.Version}}</p>
</div>`,
	"navigation.html": `<div class="sidebar-block navigation">
<h3>Navigation</h3>
<ul>
{{- range .Nav}}
<li{{if .Current}} class="current"{{end}}><a href="{{$.RootPrefix}}{{.Href}}">{{.Title}}</a></li>
{{- end}}
</ul>
</div>`,
	"relations.html": `<div class="sidebar-block relations">
<h3>Related pages</h3>
<ul>
{{- if .Prev}}
<li>Previous: <a href="{{.RootPrefix}}{{.Prev.Href}}">{{.Prev.Title}}</a></li>
{{- end}}
{{- if .Next}}
<li>Next: <a href="{{.RootPrefix}}{{.Next.Href}}">{{.Next.Title}}</a></li>
{{- end}}
</ul>
</div>`,
	"searchbox.html": `<div class="sidebar-block searchbox">
<h3>Quick search</h3>
<form action="{{.RootPrefix}}search.html" method="get">
<input type="text" name="q" aria-label="Search the manual">
<input type="submit" value="Go">
</form>
</div>`,
	"donate.html": `<div class="sidebar-block donate">
<h3>Support</h3>
<p>{{.Project}} is developed in the open. Issues and contributions are welcome.</p>
</div>`,
}

const themeCSS = `/* refman "manual" theme */
html { font-size: 16px; }
body {
  margin: 0;
  font-family: Georgia, serif;
  color: #3e4349;
  background: #fff;
}
.document {
  display: flex;
  max-width: 60rem;
  margin: 0 auto;
  padding: 1.5rem 1rem;
  gap: 2rem;
}
.sidebar {
  flex: 0 0 14rem;
  font-size: 0.9rem;
}
.sidebar h1.logo {
  margin: 0 0 0.25rem;
  font-size: 1.5rem;
}
.sidebar h1.logo a { color: #444; text-decoration: none; }
.sidebar p.version { margin-top: 0; color: #999; }
.sidebar h3 {
  margin: 1.5rem 0 0.5rem;
  font-size: 1.1rem;
  color: #444;
}
.sidebar ul { list-style: none; margin: 0; padding: 0; }
.sidebar li { margin: 0.2rem 0; }
.sidebar li.current > a { font-weight: bold; }
.sidebar a { color: #004b6b; text-decoration: none; }
.sidebar a:hover { border-bottom: 1px solid #004b6b; }
.searchbox input[type="text"] { width: 9rem; }
main.body {
  flex: 1;
  min-width: 0;
  line-height: 1.5;
}
main.body h1, main.body h2, main.body h3 {
  font-weight: normal;
  color: #212224;
}
main.body a { color: #004b6b; }
main.body img { max-width: 100%; }
main.body pre {
  position: relative;
  padding: 0.7rem 1rem;
  overflow-x: auto;
  background: #eee;
  border-radius: 2px;
}
main.body code { font-size: 0.9em; }
main.body table { border-collapse: collapse; }
main.body th, main.body td {
  border: 1px solid #ddd;
  padding: 0.3rem 0.6rem;
}
.edit-link { float: right; font-size: 0.85rem; }
.copy-button {
  float: right;
  margin: 0.2rem;
  font-size: 0.75rem;
  cursor: pointer;
}
footer.footer {
  max-width: 60rem;
  margin: 0 auto;
  padding: 1rem;
  border-top: 1px solid #eee;
  color: #888;
  font-size: 0.85rem;
}
@media (max-width: 50rem) {
  .document { flex-direction: column; }
  .sidebar { flex: none; }
}
`
