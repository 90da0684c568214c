// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns one HTML document into the flat item collections
// the scorer consumes: text nodes, plain attributes, and script entries.
package extract

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrReadFailure reports a source file that could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrParseFailure reports input that cannot be interpreted as markup.
	ErrParseFailure = errors.New("parse failure")
)

// UnknownParent is the parent name of text that has no enclosing element.
const UnknownParent = "unknown"

// ScriptKind distinguishes external script references from inline bodies.
type ScriptKind string

const (
	ScriptExternal ScriptKind = "external"
	ScriptInline   ScriptKind = "inline"
)

// TextItem is one non-blank text or comment node.
type TextItem struct {
	Text   string
	Parent string
}

// AttributeItem is one single-valued attribute of one element.
type AttributeItem struct {
	Tag   string
	Name  string
	Value string
}

// ScriptItem is either the src of a <script> or its literal body.
type ScriptItem struct {
	Kind    ScriptKind
	Content string

	// Type is the script's type attribute, if any.
	Type string
}

// Document holds the items extracted from one page, each in document order.
type Document struct {
	Texts      []TextItem
	Attributes []AttributeItem
	Scripts    []ScriptItem

	root *html.Node
}

// Query returns a goquery view of the parsed tree for structural lookups.
func (d *Document) Query() *goquery.Document {
	return goquery.NewDocumentFromNode(d.root)
}

// ReadFile reads and parses the document at path. Unreadable files wrap
// ErrReadFailure; binary content wraps ErrParseFailure.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	return Parse(data)
}

// Parse decodes raw bytes and extracts items. Malformed markup never fails;
// only content that sniffs as non-text does.
func Parse(data []byte) (*Document, error) {
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "text/") {
		return nil, fmt.Errorf("%w: content looks like %s", ErrParseFailure, ct)
	}

	root, err := html.Parse(strings.NewReader(Decode(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	doc := &Document{root: root}
	doc.walk(root)
	return doc, nil
}

// ParseString parses an already decoded HTML string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

func (d *Document) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		if strings.TrimSpace(n.Data) != "" {
			d.Texts = append(d.Texts, TextItem{Text: n.Data, Parent: parentName(n)})
		}
	case html.ElementNode:
		d.collectAttributes(n)
		if n.DataAtom == atom.Script {
			d.collectScript(n)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c)
	}
}

func (d *Document) collectAttributes(n *html.Node) {
	for _, a := range n.Attr {
		name := attrName(a)
		if multiValued(n.Data, name) {
			continue
		}
		d.Attributes = append(d.Attributes, AttributeItem{Tag: n.Data, Name: name, Value: a.Val})
	}
}

func (d *Document) collectScript(n *html.Node) {
	typ, _ := attr(n, "type")
	if src, ok := attr(n, "src"); ok {
		d.Scripts = append(d.Scripts, ScriptItem{Kind: ScriptExternal, Content: src, Type: typ})
	}
	if body := scriptBody(n); body != "" {
		d.Scripts = append(d.Scripts, ScriptItem{Kind: ScriptInline, Content: body, Type: typ})
	}
}

// scriptBody returns the text of a script whose only child is a text node.
func scriptBody(n *html.Node) string {
	c := n.FirstChild
	if c == nil || c.NextSibling != nil || c.Type != html.TextNode {
		return ""
	}
	return c.Data
}

func parentName(n *html.Node) string {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return UnknownParent
	}
	return n.Parent.Data
}

func attrName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attributes that HTML tree builders split into token lists. They are
// not plain strings and are left out of the attribute items.
var (
	multiValuedAny = map[string]bool{"class": true, "accesskey": true, "dropzone": true}
	multiValuedTag = map[string]map[string]bool{
		"a":      {"rel": true, "rev": true},
		"link":   {"rel": true, "rev": true},
		"area":   {"rel": true},
		"td":     {"headers": true},
		"th":     {"headers": true},
		"form":   {"accept-charset": true},
		"object": {"archive": true},
		"icon":   {"sizes": true},
		"iframe": {"sandbox": true},
		"output": {"for": true},
	}
)

func multiValued(tag, name string) bool {
	return multiValuedAny[name] || multiValuedTag[tag][name]
}
