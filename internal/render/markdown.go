package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/refman/internal/config"
)

// TOCEntry is one heading collected while rendering a page.
type TOCEntry struct {
	Title string
	ID    string
	Level int
}

// converted is the result of turning one source file into body HTML.
type converted struct {
	HTML  string
	Title string
	TOC   []TOCEntry
}

// newMarkdown builds the goldmark instance from the render configuration.
func newMarkdown(cfg *config.Config) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle(cfg.Render.HighlightStyle)),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if cfg.Render.AllowHTML {
		options = append(options, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	return goldmark.New(options...)
}

// convertMarkdown renders a markdown source to HTML and extracts the title
// and table of contents from its headings.
func convertMarkdown(md goldmark.Markdown, source []byte) (converted, error) {
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var toc []TOCEntry
	title := ""
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		headingText := string(heading.Text(source))
		if title == "" && heading.Level == 1 {
			title = headingText
		}
		if idVal, found := heading.Attribute([]byte("id")); found {
			if id, ok := idVal.([]byte); ok {
				toc = append(toc, TOCEntry{Title: headingText, ID: string(id), Level: heading.Level})
			}
		}
		return gmast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return converted{}, fmt.Errorf("render markdown: %w", err)
	}
	return converted{HTML: buf.String(), Title: title, TOC: toc}, nil
}

// convertLiteral renders a non-markdown source as an escaped literal block.
// The first non-empty line doubles as the page title.
func convertLiteral(source []byte) converted {
	title := ""
	for _, line := range strings.Split(string(source), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			title = trimmed
			break
		}
	}
	body := "<pre class=\"literal\">" + html.EscapeString(string(source)) + "</pre>"
	return converted{HTML: body, Title: title}
}
