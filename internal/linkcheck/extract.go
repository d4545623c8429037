package linkcheck

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Link is one outgoing reference extracted from a rendered page.
type Link struct {
	URL       string // attribute value as written
	Text      string // anchor text or alt text
	Tag       string // a, img, link, script, ...
	Attribute string // href or src
}

// pageIndex holds what the checker needs from one HTML file: the outgoing
// links and the anchor ids defined on the page.
type pageIndex struct {
	Links   []Link
	Anchors map[string]struct{}
}

func indexFile(path string) (*pageIndex, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return indexReader(f)
}

func indexReader(r io.Reader) (*pageIndex, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	idx := &pageIndex{Anchors: make(map[string]struct{})}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := getAttr(n, "id"); id != "" {
				idx.Anchors[id] = struct{}{}
			}
			// Legacy anchor syntax still appears in hand-written pages.
			if n.Data == "a" {
				if name := getAttr(n, "name"); name != "" {
					idx.Anchors[name] = struct{}{}
				}
			}
			collectLinks(n, idx)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return idx, nil
}

func collectLinks(n *html.Node, idx *pageIndex) {
	switch n.Data {
	case "a":
		if href := getAttr(n, "href"); href != "" {
			idx.Links = append(idx.Links, Link{URL: href, Text: extractText(n), Tag: "a", Attribute: "href"})
		}
	case "img":
		if src := getAttr(n, "src"); src != "" {
			idx.Links = append(idx.Links, Link{URL: src, Text: getAttr(n, "alt"), Tag: "img", Attribute: "src"})
		}
	case "link":
		if href := getAttr(n, "href"); href != "" {
			idx.Links = append(idx.Links, Link{URL: href, Text: getAttr(n, "rel"), Tag: "link", Attribute: "href"})
		}
	case "script", "source", "video", "audio":
		if src := getAttr(n, "src"); src != "" {
			idx.Links = append(idx.Links, Link{URL: src, Tag: n.Data, Attribute: "src"})
		}
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
	}
	return strings.TrimSpace(b.String())
}
