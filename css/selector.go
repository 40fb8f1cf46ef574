package css

import (
	"strings"

	"github.com/niklasfasching/themecss/token"
)

type Selector interface {
	Match(Context) bool
	String() string
	Specificity() Specificity
	selector()
}

type Universal struct{}

type TypeName struct{ Name string }

type ID struct{ Name string }

// Class matches against the registry's class attribute, which is treated as
// a whitespace separated list.
type Class struct {
	Name string
	Attr *Attr
}

type NamespaceMode int

const (
	// NamespaceIn requires the context to be in the named namespace.
	NamespaceIn NamespaceMode = iota
	// NamespaceAny matches any context (`*|`).
	NamespaceAny
	// NamespaceNone requires the context to have no namespace (`|`).
	NamespaceNone
)

type Namespace struct {
	Mode NamespaceMode
	Name string
}

type And struct{ Left, Right Selector }

type All struct{ Selectors []Selector }

type Combinator string

const (
	Descendant        Combinator = " "
	Child             Combinator = ">"
	NextSibling       Combinator = "+"
	SubsequentSibling Combinator = "~"
)

var Combinators = map[string]Combinator{
	">": Child,
	"+": NextSibling,
	"~": SubsequentSibling,
}

// Complex matches Right against the context and Left against a relative
// reached through Combinator.
type Complex struct {
	Left       Selector
	Combinator Combinator
	Right      Selector
}

// List matches when any member matches. Warnings holds the components a
// lenient parse skipped.
type List struct {
	Selectors []Selector
	Warnings  []string
}

func (*Universal) selector() {}
func (*TypeName) selector()  {}
func (*ID) selector()        {}
func (*Class) selector()     {}
func (*Namespace) selector() {}
func (*And) selector()       {}
func (*All) selector()       {}
func (*Complex) selector()   {}
func (*List) selector()      {}

func (s *Universal) Match(Context) bool    { return true }
func (s *TypeName) Match(ctx Context) bool { return ctx.Type() == s.Name }
func (s *And) Match(ctx Context) bool      { return s.Left.Match(ctx) && s.Right.Match(ctx) }

func (s *Class) Match(ctx Context) bool {
	v, ok := ctx.Attr(s.Attr)
	return ok && includeMatch(v, s.Name)
}

func (s *ID) Match(ctx Context) bool {
	id, ok := ctx.ID()
	return ok && id == s.Name
}

func (s *Namespace) Match(ctx Context) bool {
	ns, ok := ctx.Namespace()
	switch s.Mode {
	case NamespaceAny:
		return true
	case NamespaceNone:
		return !ok || ns == ""
	default:
		return ok && ns == s.Name
	}
}

func (s *All) Match(ctx Context) bool {
	for _, s := range s.Selectors {
		if !s.Match(ctx) {
			return false
		}
	}
	return true
}

func (s *Complex) Match(ctx Context) bool {
	if !s.Right.Match(ctx) {
		return false
	}
	switch s.Combinator {
	case Descendant:
		for p := parentOf(ctx); p != nil; p = parentOf(p) {
			if s.Left.Match(p) {
				return true
			}
		}
		return false
	case Child:
		p := parentOf(ctx)
		return p != nil && s.Left.Match(p)
	case NextSibling:
		p := prevSiblingOf(ctx)
		return p != nil && s.Left.Match(p)
	case SubsequentSibling:
		for p := prevSiblingOf(ctx); p != nil; p = prevSiblingOf(p) {
			if s.Left.Match(p) {
				return true
			}
		}
		return false
	default:
		panic("bad combinator: " + string(s.Combinator))
	}
}

func (s *List) Match(ctx Context) bool {
	ok, _ := s.MatchSpecificity(ctx)
	return ok
}

// MatchSpecificity reports whether any member matches and the highest
// specificity among the matching members.
func (s *List) MatchSpecificity(ctx Context) (bool, Specificity) {
	matched, best := false, Zero
	for _, s := range s.Selectors {
		if s.Match(ctx) {
			if x := s.Specificity(); !matched || best.Less(x) {
				best = x
			}
			matched = true
		}
	}
	return matched, best
}

func (s *Universal) Specificity() Specificity { return Zero }
func (s *TypeName) Specificity() Specificity  { return TypeTier }
func (s *ID) Specificity() Specificity        { return IDTier }
func (s *Class) Specificity() Specificity     { return ClassTier }
func (s *Namespace) Specificity() Specificity { return Zero }
func (s *And) Specificity() Specificity       { return s.Left.Specificity().Add(s.Right.Specificity()) }
func (s *All) Specificity() Specificity       { return sumSpecificity(s.Selectors) }
func (s *Complex) Specificity() Specificity   { return s.Left.Specificity().Add(s.Right.Specificity()) }
func (s *List) Specificity() Specificity      { return maxSpecificity(s.Selectors) }

func (s *Universal) String() string { return "*" }
func (s *TypeName) String() string  { return token.EscapeIdent(s.Name) }
func (s *ID) String() string        { return "#" + token.EscapeIdent(s.Name) }
func (s *Class) String() string     { return "." + token.EscapeIdent(s.Name) }
func (s *And) String() string       { return s.Left.String() + s.Right.String() }

func (s *Namespace) String() string {
	switch s.Mode {
	case NamespaceAny:
		return "*|"
	case NamespaceNone:
		return "|"
	default:
		return token.EscapeIdent(s.Name) + "|"
	}
}

func (s *All) String() string {
	var b strings.Builder
	for _, s := range s.Selectors {
		b.WriteString(s.String())
	}
	return b.String()
}

func (s *Complex) String() string {
	if s.Combinator == Descendant {
		return s.Left.String() + " " + s.Right.String()
	}
	return s.Left.String() + " " + string(s.Combinator) + " " + s.Right.String()
}

func (s *List) String() string {
	parts := make([]string, len(s.Selectors))
	for i, s := range s.Selectors {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
