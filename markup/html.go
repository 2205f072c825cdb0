package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLParser parses HTML with goquery.
type HTMLParser struct{}

func (HTMLParser) Parse(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &htmlNode{sel: doc.Selection}, nil
}

// htmlNode wraps a selection of exactly one node.
type htmlNode struct {
	sel *goquery.Selection
}

func selector(tag, class string) string {
	switch {
	case tag == "" && class == "":
		return "*"
	case class == "":
		return tag
	default:
		return tag + "." + class
	}
}

func (n *htmlNode) Find(tag, class string) []Node {
	found := n.sel.Find(selector(tag, class))
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &htmlNode{sel: s})
	})
	return nodes
}

func (n *htmlNode) FindID(id string) (Node, bool) {
	var match *goquery.Selection
	n.sel.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			match = s
			return false
		}
		return true
	})
	if match == nil {
		return nil, false
	}
	return &htmlNode{sel: match}, true
}

func (n *htmlNode) Text() string {
	return n.sel.Text()
}

func (n *htmlNode) OwnText() []string {
	if len(n.sel.Nodes) == 0 {
		return nil
	}
	var texts []string
	for c := n.sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			texts = append(texts, c.Data)
		}
	}
	return texts
}

func (n *htmlNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *htmlNode) Classes() []string {
	class, ok := n.sel.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

func (n *htmlNode) Parent() (Node, bool) {
	p := n.sel.Parent()
	if p.Length() == 0 || p.Nodes[0].Type != html.ElementNode {
		return nil, false
	}
	return &htmlNode{sel: p}, true
}
