package css

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/niklasfasching/themecss/token"
)

type AttrOp string

const (
	Equals    AttrOp = "="
	Includes  AttrOp = "~="
	DashMatch AttrOp = "|="
	Prefix    AttrOp = "^="
	Suffix    AttrOp = "$="
	Substring AttrOp = "*="
)

// CaseMod is the trailing i / s modifier of an attribute selector.
type CaseMod byte

const (
	CaseDefault     CaseMod = 0
	CaseInsensitive CaseMod = 'i'
	CaseSensitive   CaseMod = 's'
)

// Matchers compare an actual attribute value against the selector value.
// Operators that look for a piece of the value never match an empty one.
var Matchers = map[AttrOp]func(actual, expected string) bool{
	Equals:    func(av, sv string) bool { return av == sv },
	Includes:  includeMatch,
	DashMatch: func(av, sv string) bool { return av == sv || strings.HasPrefix(av, sv+"-") },
	Prefix:    func(av, sv string) bool { return sv != "" && strings.HasPrefix(av, sv) },
	Suffix:    func(av, sv string) bool { return sv != "" && strings.HasSuffix(av, sv) },
	Substring: func(av, sv string) bool { return sv != "" && strings.Contains(av, sv) },
}

// AttrExists matches when the context has the attribute at all.
type AttrExists struct {
	Attr      *Attr
	Namespace *Namespace
}

type AttrMatch struct {
	Attr      *Attr
	Namespace *Namespace
	Op        AttrOp
	Value     string
	Case      CaseMod

	insensitive bool
	expected    string
}

func NewAttrMatch(a *Attr, op AttrOp, value string, mod CaseMod) *AttrMatch {
	if Matchers[op] == nil {
		panic("invalid attribute operator: " + string(op))
	}
	s := &AttrMatch{Attr: a, Op: op, Value: value, Case: mod, expected: value}
	s.insensitive = mod == CaseInsensitive || mod == CaseDefault && !a.CaseSensitive
	if s.insensitive {
		s.expected = fold(value)
	}
	return s
}

func (*AttrExists) selector() {}
func (*AttrMatch) selector()  {}

func (s *AttrExists) Specificity() Specificity { return ClassTier }
func (s *AttrMatch) Specificity() Specificity  { return ClassTier }

func (s *AttrExists) Match(ctx Context) bool {
	if s.Namespace != nil && !s.Namespace.Match(ctx) {
		return false
	}
	_, ok := ctx.Attr(s.Attr)
	return ok
}

func (s *AttrMatch) Match(ctx Context) bool {
	if s.Namespace != nil && !s.Namespace.Match(ctx) {
		return false
	}
	v, ok := ctx.Attr(s.Attr)
	if !ok {
		return false
	} else if s.insensitive {
		v = fold(v)
	}
	return Matchers[s.Op](v, s.expected)
}

func (s *AttrExists) String() string { return "[" + attrName(s.Namespace, s.Attr) + "]" }

func (s *AttrMatch) String() string {
	out := "[" + attrName(s.Namespace, s.Attr) + string(s.Op) + token.QuoteString(s.Value)
	if s.Case != CaseDefault {
		out += " " + string(s.Case)
	}
	return out + "]"
}

func attrName(ns *Namespace, a *Attr) string {
	if ns == nil {
		return token.EscapeIdent(a.Name)
	}
	return ns.String() + token.EscapeIdent(a.Name)
}

// includeMatch reports whether sv is one of the whitespace separated words
// of av. A value that is empty or itself contains whitespace never matches.
func includeMatch(av, sv string) bool {
	if sv == "" || strings.ContainsAny(sv, " \t\r\n\f") {
		return false
	}
	for {
		if i := strings.IndexAny(av, " \t\r\n\f"); i == -1 {
			return av == sv
		} else if av[:i] == sv {
			return true
		} else {
			av = av[i+1:]
		}
	}
}

var folder = cases.Fold()

func fold(s string) string { return folder.String(s) }
