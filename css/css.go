// Package css parses theme selectors against a registry of known names and
// matches them against host contexts.
package css

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/niklasfasching/themecss/result"
	"github.com/niklasfasching/themecss/token"
)

var ErrNoSelectors = errors.New("no valid selector")

// Parser tokenizes selector text and runs the selector list grammar.
type Parser struct {
	Grammar *Grammar
	flags   Flags
	log     *zap.Logger
}

func NewParser(r *Registry, log *zap.Logger, flags ...string) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{Grammar: NewGrammar(r), flags: NewFlags(flags...), log: log.Named("selector-parser")}
}

// Parse parses a selector list. flags are added to the parser's default flags.
func (p *Parser) Parse(text string, flags ...string) (*List, error) {
	ts, err := token.Tokenize(text)
	if err != nil {
		return nil, err
	}
	fs := p.flags.With(flags...)
	r := p.Grammar.SelectorList(token.NewQueue(ts), fs)
	if !r.OK() {
		p.log.Debug("rejected selector", zap.String("selector", text), zap.Stringer("flags", fs), zap.Error(r.Err()))
		return nil, fmt.Errorf("parse %q: %w", text, r.Err())
	}
	l := r.Get()
	for _, w := range l.Warnings {
		p.log.Debug("skipped selector", zap.String("selector", text), zap.String("reason", w))
	}
	if len(l.Selectors) == 0 {
		return nil, fmt.Errorf("parse %q: %w", text, ErrNoSelectors)
	}
	return l, nil
}

func (p *Parser) Registry() *Registry { return p.Grammar.Registry }

// DefaultParser is a strict parser over the sealed default registry.
var DefaultParser = sync.OnceValue(func() *Parser {
	return NewParser(DefaultRegistry().Seal(), nil, FlagStrictList)
})

// Compile parses a strict selector list against the default registry.
func Compile(selector string) (*List, error) { return DefaultParser().Parse(selector) }

func MustCompile(selector string) *List {
	s, err := Compile(selector)
	if err != nil {
		panic(err)
	}
	return s
}

// ErrorKind reports the grammar error kind of a Parse error.
func ErrorKind(err error) result.Kind { return result.KindOf(err) }
