package css

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/niklasfasching/themecss/result"
	"github.com/niklasfasching/themecss/token"
)

const (
	// FlagStrictList makes one bad component fail the whole selector list.
	FlagStrictList = "--strict-selector-list"
	// FlagUserActionsOnly restricts pseudo-classes to user actions, as after a pseudo-element.
	FlagUserActionsOnly = "--user-actions-only"
	// FlagNoCombinators restricts complex selectors to a single compound.
	FlagNoCombinators = "--no-combinators"
)

// Flags is an immutable set of named parse options.
type Flags struct{ set map[string]bool }

func NewFlags(names ...string) Flags { return Flags{}.With(names...) }

func (f Flags) Has(name string) bool { return f.set[name] }

func (f Flags) With(names ...string) Flags {
	set := map[string]bool{}
	for k := range f.set {
		set[k] = true
	}
	for _, name := range names {
		set[name] = true
	}
	return Flags{set}
}

func (f Flags) Without(names ...string) Flags {
	set := map[string]bool{}
	for k := range f.set {
		if !slices.Contains(names, k) {
			set[k] = true
		}
	}
	return Flags{set}
}

func (f Flags) Names() []string {
	names := maps.Keys(f.set)
	slices.Sort(names)
	return names
}

func (f Flags) String() string { return strings.Join(f.Names(), " ") }

// Grammar holds the selector productions. Every production consumes from the
// queue only on success.
type Grammar struct{ Registry *Registry }

func NewGrammar(r *Registry) *Grammar { return &Grammar{Registry: r} }

// NameFactory turns the name of a qualified name into a selector and may
// consume the tokens that belong to it.
type NameFactory func(name string, pos int, q *token.Queue) result.Result[Selector]

func (g *Grammar) Namespace(q *token.Queue, flags Flags) result.Result[*Namespace] {
	return token.Attempt(q, func(v *token.Queue) result.Result[*Namespace] {
		pos := v.Offset()
		t, ok := v.TryPoll()
		if !ok {
			return result.Failf[*Namespace](nil, result.Mismatch, pos, "not a namespace prefix")
		} else if t.IsDelim('|') {
			return result.OK(&Namespace{Mode: NamespaceNone})
		} else if bar, ok := v.TryPoll(); !ok || !bar.IsDelim('|') {
			return result.Failf[*Namespace](nil, result.Mismatch, pos, "not a namespace prefix")
		}
		switch {
		case t.Kind == token.Ident:
			return result.OK(&Namespace{Mode: NamespaceIn, Name: t.Value})
		case t.IsDelim('*'):
			return result.OK(&Namespace{Mode: NamespaceAny})
		default:
			return result.Failf[*Namespace](nil, result.Mismatch, pos, "not a namespace prefix")
		}
	})
}

// WqName parses an optionally namespace qualified name. The qualified form
// is tried first, so `x|=` falls back to the bare name x.
func (g *Grammar) WqName(q *token.Queue, flags Flags, factory NameFactory) result.Result[Selector] {
	return result.FirstSuccess("qualified name", q.Offset(),
		func() result.Result[Selector] {
			return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
				ns := g.Namespace(v, flags)
				if !ns.OK() {
					return result.Cast[Selector](ns, nil)
				}
				r := bareName(v, factory)
				if !r.OK() {
					return r
				}
				return result.OK[Selector](&And{Left: ns.Get(), Right: r.Get()})
			})
		},
		func() result.Result[Selector] {
			return token.Attempt(q, func(v *token.Queue) result.Result[Selector] { return bareName(v, factory) })
		})
}

func bareName(q *token.Queue, factory NameFactory) result.Result[Selector] {
	pos := q.Offset()
	if t, ok := q.TryPoll(); !ok || t.Kind != token.Ident {
		return result.Failf[Selector](nil, result.Mismatch, pos, "not a name")
	} else {
		return factory(t.Value, pos, q)
	}
}

// TypeSelector tries `ns|*` before the qualified name, whose bare fallback
// would otherwise take the prefix of `ns|*` as a type name.
func (g *Grammar) TypeSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return result.FirstSuccess("type selector", q.Offset(),
		func() result.Result[Selector] {
			return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
				ns := g.Namespace(v, flags)
				pos := v.Offset()
				if t, ok := v.TryPoll(); !ok || !t.IsDelim('*') {
					return result.Failf[Selector](nil, result.Mismatch, pos, "not a universal selector")
				} else if !ns.OK() {
					return result.OK[Selector](&Universal{})
				}
				return result.OK[Selector](&And{Left: ns.Get(), Right: &Universal{}})
			})
		},
		func() result.Result[Selector] { return g.WqName(q, flags, g.typeName) })
}

func (g *Grammar) typeName(name string, pos int, q *token.Queue) result.Result[Selector] {
	if !g.Registry.Type(name) {
		return result.Failf[Selector](nil, result.Unknown, pos, "unknown type %q", name)
	}
	return result.OK[Selector](&TypeName{Name: name})
}

func (g *Grammar) IDSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
		pos := v.Offset()
		if t, ok := v.TryPoll(); !ok || t.Kind != token.Hash {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not an id selector")
		} else if !token.StartsIdent(t.Raw[1:]) {
			return result.Failf[Selector](nil, result.Structural, pos, "bad id selector %q", t.Raw)
		} else {
			return result.OK[Selector](&ID{Name: t.Value})
		}
	})
}

func (g *Grammar) ClassSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
		pos := v.Offset()
		if t, ok := v.TryPoll(); !ok || !t.IsDelim('.') {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not a class selector")
		}
		t, ok := v.TryPoll()
		if !ok || t.Kind != token.Ident {
			return result.Failf[Selector](nil, result.Structural, pos, "expected class name after '.'")
		}
		attr, ok := g.Registry.Attr("class")
		if !ok {
			return result.Failf[Selector](nil, result.Unknown, pos, "unknown attribute \"class\"")
		}
		return result.OK[Selector](&Class{Name: t.Value, Attr: attr})
	})
}

func (g *Grammar) AttributeSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
		pos := v.Offset()
		if t, ok := v.TryPoll(); !ok || t.Kind != token.OpenBracket {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not an attribute selector")
		}
		v.ConsumeWhitespace()
		r := g.WqName(v, flags, g.attribute)
		if r.Mismatched() {
			return result.Failf[Selector](nil, result.Structural, v.Offset(), "expected attribute name")
		} else if !r.OK() {
			return r
		}
		// the namespace prefix of an attribute belongs to the attribute selector
		if and, ok := r.Get().(*And); ok {
			switch s := and.Right.(type) {
			case *AttrExists:
				s.Namespace = and.Left.(*Namespace)
				return result.OK[Selector](s)
			case *AttrMatch:
				s.Namespace = and.Left.(*Namespace)
				return result.OK[Selector](s)
			}
		}
		return r
	})
}

// attribute parses what follows the attribute name up to and including the
// closing bracket.
func (g *Grammar) attribute(name string, pos int, q *token.Queue) result.Result[Selector] {
	attr, ok := g.Registry.Attr(name)
	if !ok {
		return result.Failf[Selector](nil, result.Unknown, pos, "unknown attribute %q", name)
	}
	q.ConsumeWhitespace()
	t, ok := q.TryPoll()
	if !ok || t.Kind == token.EOF {
		return result.Failf[Selector](nil, result.Structural, pos, "unterminated attribute selector")
	} else if t.Kind == token.CloseBracket {
		return result.OK[Selector](&AttrExists{Attr: attr})
	}
	op, ok := attrOp(t, q)
	if !ok {
		return result.Failf[Selector](nil, result.Structural, t.Pos, "bad attribute operator %q", t.Raw)
	}
	q.ConsumeWhitespace()
	value, ok := q.TryPoll()
	if !ok || value.Kind != token.Ident && value.Kind != token.String {
		return result.Failf[Selector](nil, result.Structural, t.Pos, "expected attribute value after %s", op)
	}
	q.ConsumeWhitespace()
	mod := CaseDefault
	if t, ok := q.TryPeek(); ok && t.Kind == token.Ident {
		switch strings.ToLower(t.Value) {
		case "i":
			mod = CaseInsensitive
		case "s":
			mod = CaseSensitive
		default:
			return result.Failf[Selector](nil, result.Structural, t.Pos, "bad attribute modifier %q", t.Value)
		}
		q.Poll()
		q.ConsumeWhitespace()
	}
	if t, ok := q.TryPoll(); !ok || t.Kind != token.CloseBracket {
		return result.Failf[Selector](nil, result.Structural, pos, "unterminated attribute selector")
	}
	return result.OK[Selector](NewAttrMatch(attr, op, value.Value, mod))
}

func attrOp(t token.Token, q *token.Queue) (AttrOp, bool) {
	if t.IsDelim('=') {
		return Equals, true
	} else if t.Kind != token.Delim || !strings.Contains("~|^$*", t.Value) {
		return "", false
	} else if eq, ok := q.TryPeek(); !ok || !eq.IsDelim('=') {
		return "", false
	}
	q.Poll()
	return AttrOp(t.Value + "="), true
}

// PseudoClassSelector parses `:name` and `:name(args)`. A double colon is
// left for PseudoElementSelector.
func (g *Grammar) PseudoClassSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
		pos := v.Offset()
		if t, ok := v.TryPoll(); !ok || t.Kind != token.Colon {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not a pseudo-class")
		}
		t, ok := v.TryPoll()
		if !ok {
			return result.Failf[Selector](nil, result.Structural, pos, "expected pseudo-class name")
		}
		switch t.Kind {
		case token.Colon:
			return result.Failf[Selector](nil, result.Mismatch, pos, "not a pseudo-class")
		case token.Ident:
			p, ok := g.Registry.Pseudo(t.Value)
			if !ok {
				return result.Failf[Selector](nil, result.Unknown, pos, "unknown pseudo-class :%s", t.Value)
			} else if flags.Has(FlagUserActionsOnly) && !p.UserAction {
				return result.Failf[Selector](nil, result.Structural, pos, ":%s is not a user action pseudo-class", t.Value)
			}
			return result.OK[Selector](&PseudoClass{Pseudo: p})
		case token.Function:
			f, ok := g.Registry.Func(t.Value)
			if !ok {
				return result.Failf[Selector](nil, result.Unknown, pos, "unknown pseudo-class :%s()", t.Value)
			} else if flags.Has(FlagUserActionsOnly) {
				return result.Failf[Selector](nil, result.Structural, pos, ":%s() is not a user action pseudo-class", t.Value)
			}
			args, ok := functionArgs(v)
			if !ok {
				return result.Failf[Selector](nil, result.Structural, pos, "unterminated :%s(", t.Value)
			}
			r := f.Prepare(g, token.NewQueue(args), flags)
			if !r.OK() {
				k := r.Kind()
				if k == result.Mismatch {
					k = result.Structural
				}
				return result.Failf[Selector](nil, k, pos, "bad arguments to :%s(): %v", t.Value, r.Err())
			}
			return result.OK[Selector](&PseudoFunction{Func: f, Raw: token.Text(args), Args: r.Get()})
		default:
			return result.Failf[Selector](nil, result.Structural, pos, "expected pseudo-class name")
		}
	})
}

// functionArgs consumes up to the parenthesis closing the current function
// and returns the tokens in between.
func functionArgs(q *token.Queue) ([]token.Token, bool) {
	depth, args := 0, []token.Token{}
	for {
		t, ok := q.TryPoll()
		if !ok || t.Kind == token.EOF {
			return nil, false
		}
		switch t.Kind {
		case token.Function, token.OpenParen:
			depth++
		case token.CloseParen:
			if depth == 0 {
				return args, true
			}
			depth--
		}
		args = append(args, t)
	}
}

func (g *Grammar) PseudoElementSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return token.Attempt(q, func(v *token.Queue) result.Result[Selector] {
		pos := v.Offset()
		if t, ok := v.TryPoll(); !ok || t.Kind != token.Colon {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not a pseudo-element")
		} else if t, ok := v.TryPoll(); !ok || t.Kind != token.Colon {
			return result.Failf[Selector](nil, result.Mismatch, pos, "not a pseudo-element")
		}
		t, ok := v.TryPoll()
		if !ok || t.Kind != token.Ident {
			return result.Failf[Selector](nil, result.Structural, pos, "expected pseudo-element name")
		}
		p, ok := g.Registry.Element(t.Value)
		if !ok {
			return result.Failf[Selector](nil, result.Unknown, pos, "unknown pseudo-element ::%s", t.Value)
		}
		return result.OK[Selector](&PseudoElement{Pseudo: p})
	})
}

func (g *Grammar) SubclassSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	return result.FirstSuccess("subclass selector", q.Offset(),
		func() result.Result[Selector] { return g.IDSelector(q, flags) },
		func() result.Result[Selector] { return g.ClassSelector(q, flags) },
		func() result.Result[Selector] { return g.AttributeSelector(q, flags) },
		func() result.Result[Selector] { return g.PseudoClassSelector(q, flags) })
}

func describe(q *token.Queue) string {
	if t, ok := q.TryPeek(); ok && t.Kind != token.EOF {
		return fmt.Sprintf("%q", t.Raw)
	}
	return "end of input"
}
