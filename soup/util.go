package soup

import (
	"regexp"
	"strings"
	"unsafe"

	"golang.org/x/net/html"

	"github.com/niklasfasching/themecss/css"
)

type Node html.Node
type Nodes []*Node

func AsHTMLNode(n *Node) *html.Node  { return (*html.Node)(unsafe.Pointer(n)) }
func AsNode(n *html.Node) *Node      { return (*Node)(unsafe.Pointer(n)) }
func AsNodes(ns *[]*html.Node) Nodes { return *(*[]*Node)(unsafe.Pointer(ns)) }

// Context returns n as a selector context. n must be an element.
func (n *Node) Context() css.Context { return element{AsHTMLNode(n)} }

// HTMLStates maps pseudo-classes to the html attributes that set them. Any
// pseudo-class can also be set with a data-state-<name> attribute.
var HTMLStates = map[string]string{
	"disabled":  "disabled",
	"checked":   "checked",
	"selected":  "selected",
	"required":  "required",
	"read-only": "readonly",
	"expanded":  "open",
}

// element adapts an html element node to css.Context and css.Tree.
type element struct{ n *html.Node }

func (e element) Type() string                    { return e.n.Data }
func (e element) ID() (string, bool)              { return attribute(e.n, "id") }
func (e element) Attr(a *css.Attr) (string, bool) { return attribute(e.n, a.Name) }

func (e element) Namespace() (string, bool) { return e.n.Namespace, e.n.Namespace != "" }

func (e element) Pseudo(p *css.Pseudo) bool {
	if key, ok := HTMLStates[p.Name]; ok {
		if _, ok := attribute(e.n, key); ok {
			return true
		}
	}
	_, ok := attribute(e.n, "data-state-"+p.Name)
	return ok
}

func (e element) Parent() css.Context {
	if p := e.n.Parent; p != nil && p.Type == html.ElementNode {
		return element{p}
	}
	return nil
}

func (e element) PrevSibling() css.Context { return elementOrNil(e.n.PrevSibling, prevSibling) }
func (e element) NextSibling() css.Context { return elementOrNil(e.n.NextSibling, nextSibling) }
func (e element) FirstChild() css.Context  { return elementOrNil(e.n.FirstChild, nextSibling) }

// Empty reports whether the element has neither element nor text children.
func (e element) Empty() bool {
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			return false
		}
	}
	return true
}

func prevSibling(n *html.Node) *html.Node { return n.PrevSibling }
func nextSibling(n *html.Node) *html.Node { return n.NextSibling }

func elementOrNil(n *html.Node, next func(*html.Node) *html.Node) css.Context {
	for ; n != nil; n = next(n) {
		if n.Type == html.ElementNode {
			return element{n}
		}
	}
	return nil
}

func attribute(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

var duplicateWhitespace = regexp.MustCompile(`\s+(\n)\s*|\s*(\n)\s+|(\s)\s+`)

func appendText(out *strings.Builder, n *html.Node) {
	switch {
	case n == nil || n.Type == html.CommentNode:
		return
	case n.Type == html.TextNode:
		out.WriteString(n.Data)
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendText(out, c)
		}
	}
}

func trimmed(s string) string {
	return duplicateWhitespace.ReplaceAllString(strings.TrimSpace(s), "$1")
}
