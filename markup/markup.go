// Package markup is the read-only document tree the scrapers walk. Node is
// the narrow query surface the translators need; HTMLParser backs it with
// goquery.
package markup

import (
	"bytes"
	"io"
)

// Node is one element of a parsed document.
type Node interface {
	// Find returns the descendants matching tag and class, in document
	// order. An empty tag or class matches any.
	Find(tag, class string) []Node
	// FindID returns the first descendant with the given id.
	FindID(id string) (Node, bool)
	// Text is the concatenated text of the node and its descendants.
	Text() string
	// OwnText returns the node's direct text children, unmodified and in
	// order. Whitespace-only fragments are kept.
	OwnText() []string
	Attr(name string) (string, bool)
	Classes() []string
	Parent() (Node, bool)
}

// Parser turns raw markup into a Node tree.
type Parser interface {
	Parse(r io.Reader) (Node, error)
}

// ParseBytes is a convenience for parsing an in-memory body.
func ParseBytes(p Parser, body []byte) (Node, error) {
	return p.Parse(bytes.NewReader(body))
}

// First returns the first match of Find, if any.
func First(n Node, tag, class string) (Node, bool) {
	found := n.Find(tag, class)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}
