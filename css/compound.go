package css

import (
	"fmt"
	"strings"

	"github.com/niklasfasching/themecss/result"
	"github.com/niklasfasching/themecss/token"
)

// CompoundSelector parses an optional type selector followed by any number
// of subclass selectors. It succeeds with an empty All when nothing matches;
// a subclass selector that fails after recognising its leading token fails
// the compound.
func (g *Grammar) CompoundSelector(q *token.Queue, flags Flags) result.Result[*All] {
	if !q.CanPoll() {
		return result.Failf[*All](nil, result.Structural, q.Offset(), "empty compound selector")
	}
	s := &All{}
	if r := g.TypeSelector(q, flags); r.OK() {
		s.Selectors = append(s.Selectors, r.Get())
	} else if !r.Mismatched() {
		return result.Cast[*All](r, nil)
	}
	for q.CanPoll() {
		r := g.SubclassSelector(q, flags)
		if r.Mismatched() {
			break
		} else if !r.OK() {
			return result.Cast[*All](r, nil)
		}
		s.Selectors = append(s.Selectors, r.Get())
	}
	return result.OK(s)
}

// PseudoCompound parses a pseudo-element followed by the user action
// pseudo-classes that may qualify it, e.g. `::before:hover`. The extension
// stops at the first pseudo-class that is not allowed there.
func (g *Grammar) PseudoCompound(q *token.Queue, flags Flags) result.Result[Selector] {
	if !q.CanPoll() {
		return result.Failf[Selector](nil, result.Structural, q.Offset(), "empty pseudo-compound selector")
	}
	r := g.PseudoElementSelector(q, flags)
	if !r.OK() {
		return r
	}
	s, userActions := &All{Selectors: []Selector{r.Get()}}, flags.With(FlagUserActionsOnly)
	for q.CanPoll() {
		r := g.PseudoClassSelector(q, userActions)
		if r.Kind() == result.Unknown {
			return r
		} else if !r.OK() {
			break
		}
		s.Selectors = append(s.Selectors, r.Get())
	}
	if len(s.Selectors) == 1 {
		return result.OK(s.Selectors[0])
	}
	return result.OK[Selector](s)
}

// ComplexSelector parses compounds joined by combinators. It must consume
// the whole queue.
func (g *Grammar) ComplexSelector(q *token.Queue, flags Flags) result.Result[Selector] {
	q.ConsumeWhitespace()
	if !q.CanPoll() || q.Peek().Kind == token.EOF {
		return result.Failf[Selector](nil, result.Structural, q.Offset(), "empty selector")
	}
	r := g.complexUnit(q, flags)
	if !r.OK() {
		return r
	}
	s := r.Get()
	for {
		sawWhitespace := q.CanPoll() && q.Peek().Kind == token.Whitespace
		q.ConsumeWhitespace()
		if !q.CanPoll() || q.Peek().Kind == token.EOF {
			return result.OK(s)
		}
		c, ok := Combinators[q.Peek().Value]
		if q.Peek().Kind == token.Delim && ok {
			q.Poll()
			q.ConsumeWhitespace()
		} else if sawWhitespace {
			c = Descendant
		} else {
			return result.Failf[Selector](nil, result.Structural, q.Offset(), "unexpected %s", describe(q))
		}
		if flags.Has(FlagNoCombinators) {
			return result.Failf[Selector](nil, result.Structural, q.Offset(), "combinators are not allowed here")
		} else if !q.CanPoll() || q.Peek().Kind == token.EOF {
			return result.Failf[Selector](nil, result.Structural, q.Offset(), "dangling combinator %q", string(c))
		}
		r := g.complexUnit(q, flags)
		if !r.OK() {
			return r
		}
		s = &Complex{Left: s, Combinator: c, Right: r.Get()}
	}
}

// complexUnit is a compound followed by pseudo-compounds. It must not be empty.
func (g *Grammar) complexUnit(q *token.Queue, flags Flags) result.Result[Selector] {
	pos := q.Offset()
	r := g.CompoundSelector(q, flags)
	if !r.OK() {
		return result.Cast[Selector](r, nil)
	}
	s := r.Get()
	for q.CanPoll() {
		r := g.PseudoCompound(q, flags)
		if r.Mismatched() {
			break
		} else if !r.OK() {
			return r
		}
		if all, ok := r.Get().(*All); ok {
			s.Selectors = append(s.Selectors, all.Selectors...)
		} else {
			s.Selectors = append(s.Selectors, r.Get())
		}
	}
	if len(s.Selectors) == 0 {
		return result.Failf[Selector](nil, result.Structural, pos, "expected selector, got %s", describe(q))
	}
	return result.OK[Selector](s)
}

// ComponentValueList splits the queue at top level commas. Commas nested in
// functions or parentheses do not split. Brackets are not tracked so that an
// unterminated attribute selector does not swallow the following components.
func (g *Grammar) ComponentValueList(q *token.Queue, flags Flags) result.Result[[]*token.Queue] {
	if !q.CanPoll() {
		return result.Failf[[]*token.Queue](nil, result.Structural, q.Offset(), "empty selector list")
	}
	qs, current, depth := []*token.Queue{}, []token.Token{}, 0
	for q.CanPoll() {
		t := q.Poll()
		switch t.Kind {
		case token.EOF:
			return result.OK(append(qs, token.NewQueue(current)))
		case token.Comma:
			if depth == 0 {
				qs, current = append(qs, token.NewQueue(current)), []token.Token{}
				continue
			}
		case token.Function, token.OpenParen:
			depth++
		case token.CloseParen:
			if depth > 0 {
				depth--
			}
		}
		current = append(current, t)
	}
	return result.OK(append(qs, token.NewQueue(current)))
}

// SelectorList parses comma separated complex selectors. With
// FlagStrictList any bad component fails the list, otherwise bad components
// are skipped and described in List.Warnings.
func (g *Grammar) SelectorList(q *token.Queue, flags Flags) result.Result[*List] {
	if !q.CanPoll() {
		return result.Failf[*List](nil, result.Structural, q.Offset(), "empty selector list")
	}
	r := g.ComponentValueList(q, flags)
	if !r.OK() {
		return result.Cast[*List](r, nil)
	}
	l := &List{}
	for _, component := range r.Get() {
		text := strings.TrimSpace(component.String())
		s := g.ComplexSelector(component, flags)
		if s.OK() {
			l.Selectors = append(l.Selectors, s.Get())
		} else if flags.Has(FlagStrictList) {
			return result.Fail[*List](nil, fmt.Errorf("selector %q: %w", text, s.Err()))
		} else {
			l.Warnings = append(l.Warnings, fmt.Sprintf("skipped %q: %v", text, s.Err()))
		}
	}
	return result.OK(l)
}
