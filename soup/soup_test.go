package soup

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	ericchiang "github.com/ericchiang/css"
	"golang.org/x/net/html"

	"github.com/niklasfasching/themecss/css"
)

var document = `<!DOCTYPE html><html><head><title>t</title></head><body>` +
	`<div id="main" class="box wide" lang="en">` +
	`<p class="intro">hello</p><p title="a b c">world</p><span></span>` +
	`<ul><li>one</li><li class="x">two</li><li>three</li><li lang="en-gb">four</li></ul>` +
	`<input type="checkbox" name="agree" checked><input type="text" name="q" disabled>` +
	`</div>` +
	`<div class="box"><em></em></div>` +
	`<svg><circle title="dot"></circle></svg>` +
	`</body></html>`

var cascadiaSelectors = []string{
	"div", "*", "#main", ".box", ".box.wide", "div > p", "div p", "p + span", "p ~ ul",
	"li:first-child", "li:last-child", "li:only-child", "em:only-child", "li:nth-child(2n+1)",
	"li:nth-child(even)", "li:nth-last-child(2)", "p:nth-of-type(2)", "p:first-of-type",
	"p:last-of-type", "span:empty", ":empty", "[title]", "[title~=b]", "[title^=a]", "[title$=c]",
	`[title*="b c"]`, "[lang|=en]", "input[type=checkbox]", "input:checked", "input:disabled",
	"li:not(.x)", "div :not(li, p)", "ul li.x, #main > p", "body > div + div > em", "li:lang(en)",
}

var ericchiangSelectors = []string{
	"div", "#main", ".box", "div > p", "div p", "p + span", "p ~ ul", "li:first-child",
	"li:nth-child(2n+1)", "[title~=b]", "input[type=checkbox]", "li:last-child",
}

func TestSoup(t *testing.T) {
	d := MustParse(strings.NewReader(`<ul><li>foo</li><li>bar</li></ul>`))
	if actual := d.All("li").Text("\n"); actual != "foo\nbar" {
		t.Errorf("Got %s, expected foo\\nbar", actual)
	}
	if actual := d.First("li:last-child").Text(); actual != "bar" {
		t.Errorf("Got %s, expected bar", actual)
	}
	if d.First("p") != nil || d.All("p").Len() != 0 || d.All("li").Eq(2) != nil {
		t.Error("expected empty selection")
	}
}

func TestCascadia(t *testing.T) {
	body := MustParse(strings.NewReader(document)).First("body")
	for _, selector := range cascadiaSelectors {
		expected := cascadia.MustCompile(selector).MatchAll(AsHTMLNode(body))
		if actual := body.All(selector); !sameNodes(actual, expected) {
			t.Errorf("%s\ngot:\n\t%s\n\nexpected:\n\t%s", selector, actual.HTML(), render(expected))
		}
	}
}

func TestEricChiang(t *testing.T) {
	body := MustParse(strings.NewReader(document)).First("body")
	for _, selector := range ericchiangSelectors {
		expected := unique(ericchiang.MustParse(selector).Select(AsHTMLNode(body)))
		if actual := body.All(selector); !sameNodes(actual, expected) {
			t.Errorf("%s\ngot:\n\t%s\n\nexpected:\n\t%s", selector, actual.HTML(), render(expected))
		}
	}
}

func TestSpecificity(t *testing.T) {
	for _, selector := range []string{"*", "div", "#main p.intro", "div > p + span", "[title]", ".a.b", "li:nth-child(2)", "#a #b"} {
		expected, err := cascadia.Parse(selector)
		if err != nil {
			t.Fatal(err)
		}
		s := css.MustCompile(selector).Specificity()
		if actual := (cascadia.Specificity{s.ID, s.Class, s.Type}); actual != expected.Specificity() {
			t.Errorf("%s: got %v, expected %v", selector, actual, expected.Specificity())
		}
	}
}

func TestContext(t *testing.T) {
	d := MustParse(strings.NewReader(document))
	if n := d.First(":root"); n == nil || n.Data != "html" {
		t.Errorf("expected html root, got %v", n.OuterHTML())
	}
	if n := d.First("svg|circle"); n == nil || n.Attribute("title") != "dot" {
		t.Errorf("expected namespaced circle, got %v", n.OuterHTML())
	}
	if n := d.First("|circle"); n != nil {
		t.Errorf("expected circle to be namespaced, got %v", n.OuterHTML())
	}
	if actual := d.All("input:enabled").Attribute("name"); len(actual) != 1 || actual[0] != "agree" {
		t.Errorf("got %v", actual)
	}

	d = MustParse(strings.NewReader(`<button data-state-hover>a</button><button>b</button>`))
	if actual := d.All("button:hover").Text(","); actual != "a" {
		t.Errorf("got %q", actual)
	}
	if actual := d.All("button:not(:hover)").Text(","); actual != "b" {
		t.Errorf("got %q", actual)
	}
	if !d.First("button").Matches(css.MustCompile("body > button:first-child")) {
		t.Error("expected first button to match")
	}
}

func BenchmarkThemeCSS(b *testing.B) {
	benchmark(b, func(selector string) func(*html.Node) []*html.Node {
		s := css.MustCompile(selector)
		return func(n *html.Node) []*html.Node { return all(s, n, nil) }
	})
}

func BenchmarkEricChiangCSS(b *testing.B) {
	benchmark(b, func(selector string) func(*html.Node) []*html.Node {
		s := ericchiang.MustParse(selector)
		return func(n *html.Node) []*html.Node { return s.Select(n) }
	})
}

func BenchmarkAndyBalholmCSS(b *testing.B) {
	benchmark(b, func(selector string) func(*html.Node) []*html.Node {
		s := cascadia.MustCompile(selector)
		return func(n *html.Node) []*html.Node { return s.MatchAll(n) }
	})
}

func benchmark(b *testing.B, compile func(string) func(*html.Node) []*html.Node) {
	body := AsHTMLNode(MustParse(strings.NewReader(strings.Repeat(document, 20))).First("body"))
	for _, selector := range ericchiangSelectors {
		matchAll := compile(selector)
		for n := 0; n < b.N; n++ {
			matchAll(body)
		}
	}
}

func sameNodes(actual Nodes, expected []*html.Node) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if AsHTMLNode(actual[i]) != expected[i] {
			return false
		}
	}
	return true
}

// unique drops repeated nodes; ericchiang/css returns a node once per
// matching path for sibling combinators.
func unique(ns []*html.Node) []*html.Node {
	seen, out := map[*html.Node]bool{}, []*html.Node{}
	for _, n := range ns {
		if !seen[n] {
			seen[n], out = true, append(out, n)
		}
	}
	return out
}

func render(ns []*html.Node) string { return AsNodes(&ns).HTML() }
