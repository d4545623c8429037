package render

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// pageMeta is the YAML metadata a markdown page may carry ahead of its body,
// delimited by --- lines.
type pageMeta struct {
	// Title overrides the title extracted from the first heading.
	Title string `yaml:"title"`
	// Description feeds the page's meta description tag.
	Description string `yaml:"description"`
}

var errUnclosedFrontmatter = errors.New("frontmatter block opened but never closed")

// splitFrontmatter separates a leading YAML metadata block from the page
// body. Pages without one come back with the body untouched.
func splitFrontmatter(source []byte) (pageMeta, []byte, error) {
	var meta pageMeta

	nl := detectNewline(source)
	delim := []byte("---" + nl)
	if !bytes.HasPrefix(source, delim) {
		return meta, source, nil
	}

	rest := source[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		// Empty block.
		return meta, rest[len(delim):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return meta, nil, errUnclosedFrontmatter
	}

	raw := rest[:idx+len(nl)]
	body := rest[idx+len(closeSeq):]
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// detectNewline picks the newline flavor of the first line so CRLF sources
// split cleanly.
func detectNewline(source []byte) string {
	if i := bytes.IndexByte(source, '\n'); i > 0 && source[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
