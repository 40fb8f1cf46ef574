package css

import (
	"github.com/niklasfasching/themecss/token"
)

type PseudoClass struct{ Pseudo *Pseudo }

type PseudoElement struct{ Pseudo *Pseudo }

// PseudoFunction is a functional pseudo-class. Raw is the argument text as
// written, Args its prepared form.
type PseudoFunction struct {
	Func *Func
	Raw  string
	Args FuncArgs
}

func (*PseudoClass) selector()    {}
func (*PseudoElement) selector()  {}
func (*PseudoFunction) selector() {}

func (s *PseudoClass) Match(ctx Context) bool    { return matchPseudo(s.Pseudo, ctx) }
func (s *PseudoElement) Match(ctx Context) bool  { return matchPseudo(s.Pseudo, ctx) }
func (s *PseudoFunction) Match(ctx Context) bool { return s.Args.Match(ctx) }

func (s *PseudoClass) Specificity() Specificity    { return ClassTier }
func (s *PseudoElement) Specificity() Specificity  { return TypeTier }
func (s *PseudoFunction) Specificity() Specificity { return s.Args.Specificity() }

func (s *PseudoClass) String() string   { return ":" + token.EscapeIdent(s.Pseudo.Name) }
func (s *PseudoElement) String() string { return "::" + token.EscapeIdent(s.Pseudo.Name) }
func (s *PseudoFunction) String() string {
	return ":" + token.EscapeIdent(s.Func.Name) + "(" + s.Raw + ")"
}

func matchPseudo(p *Pseudo, ctx Context) bool {
	if p.Getter != nil {
		return p.Getter(ctx)
	}
	return ctx.Pseudo(p)
}
