// Package goquery provides tree-based listing extraction rules backed by
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Attr is an attribute predicate used by FindFirst and FindAll.
//
// For the class attribute, a value without whitespace matches when it is one
// of the element's class tokens. A value containing whitespace must equal the
// whole attribute, compared after collapsing whitespace, so signatures such as
// "divObject  listitem_new_wrap" or "list-details-ad-wrapper CLR " match the
// markup they were written against. Every other attribute matches by exact
// value.
type Attr struct {
	Name  string
	Value string
}

// Class returns a class attribute predicate.
func Class(value string) Attr {
	return Attr{Name: "class", Value: value}
}

// ID returns an id attribute predicate.
func ID(value string) Attr {
	return Attr{Name: "id", Value: value}
}

// Document is a parsed markup tree.
// A Document is only read after parsing and is safe for concurrent queries.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses html into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// FindFirst returns the first element in document order with the given tag
// that satisfies every attribute predicate, or nil if there is none.
func (d *Document) FindFirst(tag string, attrs ...Attr) *Node {
	return findFirst(d.doc.Selection, tag, attrs)
}

// FindAll returns every matching element in document order.
func (d *Document) FindAll(tag string, attrs ...Attr) []*Node {
	return findAll(d.doc.Selection, tag, attrs)
}

// Node is a single element of a Document.
type Node struct {
	sel *goquery.Selection
}

// FindFirst returns the first matching descendant of n, or nil.
func (n *Node) FindFirst(tag string, attrs ...Attr) *Node {
	return findFirst(n.sel, tag, attrs)
}

// FindAll returns every matching descendant of n in document order.
func (n *Node) FindAll(tag string, attrs ...Attr) []*Node {
	return findAll(n.sel, tag, attrs)
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the concatenated text of n and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// JoinedText returns the text nodes below n joined with sep.
func (n *Node) JoinedText(sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			parts = append(parts, cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range n.sel.Nodes {
		walk(node)
	}
	return strings.Join(parts, sep)
}

func findFirst(sel *goquery.Selection, tag string, attrs []Attr) *Node {
	match := sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return matches(s, attrs)
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return &Node{sel: match}
}

func findAll(sel *goquery.Selection, tag string, attrs []Attr) []*Node {
	var nodes []*Node
	sel.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if matches(s, attrs) {
			nodes = append(nodes, &Node{sel: s})
		}
	})
	return nodes
}

func matches(s *goquery.Selection, attrs []Attr) bool {
	for _, a := range attrs {
		value, ok := s.Attr(a.Name)
		if !ok {
			return false
		}
		if a.Name == "class" && !strings.ContainsAny(a.Value, " \t\n") {
			if !hasToken(value, a.Value) {
				return false
			}
			continue
		}
		if a.Name == "class" {
			if collapse(value) != collapse(a.Value) {
				return false
			}
			continue
		}
		if value != a.Value {
			return false
		}
	}
	return true
}

func hasToken(value, token string) bool {
	for _, t := range strings.Fields(value) {
		if t == token {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
