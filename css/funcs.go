package css

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/niklasfasching/themecss/result"
	"github.com/niklasfasching/themecss/token"
)

var (
	complexNthRegexp = regexp.MustCompile(`^\s*([+-]?\d*)?n\s*([+-]?\s*\d+)?\s*$`)
	simpleNthRegexp  = regexp.MustCompile(`^\s*([+-]?\d+)\s*$`)
	whitespaceRegexp = regexp.MustCompile(`\s`)
)

type listArgs struct {
	list   *List
	negate bool
	zero   bool
}

type nthArgs struct {
	a, b         int
	last, ofType bool
}

type langArgs struct {
	attr *Attr
	lang string
}

func (a *listArgs) Match(ctx Context) bool { return a.list.Match(ctx) != a.negate }
func (a *listArgs) Specificity() Specificity {
	if a.zero {
		return Zero
	}
	return a.list.Specificity()
}

// prepareList parses a nested selector list. :not takes a strict list, :is
// and :where a forgiving one.
func prepareList(strict, negate, zero bool) PrepareFunc {
	return func(g *Grammar, args *token.Queue, flags Flags) result.Result[FuncArgs] {
		if strict {
			flags = flags.With(FlagStrictList)
		} else {
			flags = flags.Without(FlagStrictList)
		}
		r := g.SelectorList(args, flags)
		if !r.OK() {
			return result.Cast[FuncArgs](r, nil)
		}
		return result.OK[FuncArgs](&listArgs{list: r.Get(), negate: negate, zero: zero})
	}
}

func (a *nthArgs) Specificity() Specificity { return ClassTier }
func (a *nthArgs) Match(ctx Context) bool {
	if _, ok := ctx.(Tree); !ok {
		return false
	}
	next := prevSiblingOf
	if a.last {
		next = nextSiblingOf
	}
	nth := 1
	for s := next(ctx); s != nil; s = next(s) {
		if !a.ofType || s.Type() == ctx.Type() {
			nth++
		}
	}
	return isNth(a.a, a.b, nth)
}

func prepareNth(last, ofType bool) PrepareFunc {
	return func(g *Grammar, args *token.Queue, flags Flags) result.Result[FuncArgs] {
		pos := args.Offset()
		a, b, err := parseNthArgs(token.Text(args.Rest()))
		if err != nil {
			return result.Failf[FuncArgs](nil, result.Structural, pos, "%s", err)
		}
		return result.OK[FuncArgs](&nthArgs{a, b, last, ofType})
	}
}

func (a *langArgs) Specificity() Specificity { return ClassTier }
func (a *langArgs) Match(ctx Context) bool {
	for c := ctx; c != nil; c = parentOf(c) {
		if v, ok := c.Attr(a.attr); ok {
			v = fold(v)
			return v == a.lang || strings.HasPrefix(v, a.lang+"-")
		}
	}
	return false
}

func prepareLang(g *Grammar, args *token.Queue, flags Flags) result.Result[FuncArgs] {
	pos := args.Offset()
	attr, ok := g.Registry.Attr("lang")
	if !ok {
		return result.Failf[FuncArgs](nil, result.Unknown, pos, "unknown attribute \"lang\"")
	}
	args.ConsumeWhitespace()
	t, ok := args.TryPoll()
	if !ok || t.Kind != token.Ident && t.Kind != token.String || t.Value == "" {
		return result.Failf[FuncArgs](nil, result.Structural, pos, "expected language")
	}
	args.ConsumeWhitespace()
	if args.CanPoll() {
		return result.Failf[FuncArgs](nil, result.Structural, args.Offset(), "unexpected %s", describe(args))
	}
	return result.OK[FuncArgs](&langArgs{attr, fold(t.Value)})
}

func parseNthArgs(args string) (int, int, error) {
	if args = strings.TrimSpace(args); args == "odd" {
		return 2, 1, nil
	} else if args == "even" {
		return 2, 0, nil
	} else if m := simpleNthRegexp.FindStringSubmatch(args); m != nil {
		b, err := atoi(m[1], "0")
		return 0, b, err
	} else if m := complexNthRegexp.FindStringSubmatch(args); m != nil {
		a, err := atoi(m[1], "1")
		if err != nil {
			return 0, 0, err
		}
		b, err := atoi(m[2], "0")
		if err != nil {
			return 0, 0, err
		}
		return a, b, nil
	}
	return 0, 0, fmt.Errorf("bad nth arguments: %q", args)
}

func atoi(s, fallback string) (int, error) {
	s = whitespaceRegexp.ReplaceAllString(s, "")
	if s == "" || s == "+" || s == "-" {
		s = s + fallback
	}
	return strconv.Atoi(s)
}

// isNth checks whether y is a valid result for the given a and b.
// The formula is y = (a*n+b) with n being any non-negative integer.
// If a is 0 a*n is 0 and y must be b - otherwise a must fit into y-b n times
// without any remainder.
func isNth(a, b, y int) bool {
	an := (y - b)
	return (a == 0 && b == y) || (a != 0 && an/a >= 0 && an%a == 0)
}
