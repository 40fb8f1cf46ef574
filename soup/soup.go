// Package soup queries html documents with theme selectors.
package soup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/niklasfasching/themecss/cache"
	"github.com/niklasfasching/themecss/css"
)

// Selectors compiles the selector strings passed to First and All.
var Selectors = cache.New(css.DefaultParser(), nil)

func Parse(r io.Reader) (*Node, error) {
	htmlNode, err := html.Parse(r)
	return AsNode(htmlNode), err
}

func MustParse(r io.Reader) *Node {
	n, err := Parse(r)
	if err != nil {
		panic(err)
	}
	return n
}

// First returns the first element in document order, n included, that
// matches s.
func (n *Node) First(s string) *Node { return n.FirstSel(Selectors.MustGet(s)) }
func (n *Node) FirstSel(s css.Selector) *Node {
	if n == nil {
		return nil
	}
	return AsNode(first(s, AsHTMLNode(n)))
}

func (n *Node) All(s string) Nodes { return n.AllSel(Selectors.MustGet(s)) }
func (n *Node) AllSel(s css.Selector) Nodes {
	if n == nil {
		return nil
	}
	htmlNodes := all(s, AsHTMLNode(n), nil)
	return AsNodes(&htmlNodes)
}

// Matches reports whether the element n matches s.
func (n *Node) Matches(s css.Selector) bool {
	return n != nil && n.Type == html.ElementNode && s.Match(n.Context())
}

func (n *Node) Text() string {
	var out strings.Builder
	appendText(&out, AsHTMLNode(n))
	return out.String()
}

func (n *Node) TrimmedText() string {
	return trimmed(n.Text())
}

func (n *Node) OuterHTML() string {
	if n == nil {
		return ""
	}
	var out strings.Builder
	if err := html.Render(&out, AsHTMLNode(n)); err != nil {
		panic(fmt.Sprintf("Could not render html: %s", err))
	}
	return out.String()
}

func (n *Node) HTML() string {
	if n == nil {
		return ""
	}
	var out strings.Builder
	for n := n.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&out, n); err != nil {
			panic(fmt.Sprintf("Could not render html: %s", err))
		}
	}
	return out.String()
}

func (n *Node) Attribute(key string) string {
	v, _ := attribute(AsHTMLNode(n), key)
	return v
}

func (ns Nodes) Eq(i int) *Node {
	if i < 0 || i >= len(ns) {
		return nil
	}
	return ns[i]
}

func (ns Nodes) Len() int {
	return len(ns)
}

func (ns Nodes) Text(sep string) string {
	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = n.Text()
	}
	return strings.Join(ss, sep)
}

func (ns Nodes) Attribute(key string) []string {
	as := make([]string, len(ns))
	for i, n := range ns {
		as[i] = n.Attribute(key)
	}
	return as
}

func (ns Nodes) First(s string) *Node { return ns.FirstSel(Selectors.MustGet(s)) }
func (ns Nodes) FirstSel(s css.Selector) *Node {
	for _, n := range ns {
		if f := n.FirstSel(s); f != nil {
			return f
		}
	}
	return nil
}

func (ns Nodes) All(s string) Nodes { return ns.AllSel(Selectors.MustGet(s)) }
func (ns Nodes) AllSel(s css.Selector) Nodes {
	all := []*Node{}
	for _, n := range ns {
		all = append(all, n.AllSel(s)...)
	}
	return all
}

func (ns Nodes) HTML() string {
	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = n.OuterHTML()
	}
	return strings.Join(ss, "\n")
}

func first(s css.Selector, n *html.Node) *html.Node {
	if n.Type == html.ElementNode && s.Match(element{n}) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if n := first(s, c); n != nil {
			return n
		}
	}
	return nil
}

func all(s css.Selector, n *html.Node, ns []*html.Node) []*html.Node {
	if n.Type == html.ElementNode && s.Match(element{n}) {
		ns = append(ns, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ns = all(s, c, ns)
	}
	return ns
}
