// Package token holds the lexical units selector grammars consume and the
// backtrackable queue they consume them from.
package token

import (
	"fmt"
	"strings"
)

type Kind int

const (
	EOF Kind = iota
	Whitespace
	Ident
	Function
	Hash
	String
	Number
	Percentage
	Dimension
	Delim
	Colon
	Comma
	OpenBracket
	CloseBracket
	OpenParen
	CloseParen
	Other
)

// Token is immutable once produced. Value is the unescaped payload (name
// without '#' or '(' and strings without quotes), Raw the source text.
type Token struct {
	Kind  Kind
	Value string
	Raw   string
	Pos   int
}

func (t Token) Is(k Kind, value string) bool { return t.Kind == k && t.Value == value }
func (t Token) IsDelim(r rune) bool          { return t.Kind == Delim && t.Value == string(r) }

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("%s@%d", t.Kind, t.Pos)
	}
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Pos)
}

// Text renders tokens back into selector text.
func Text(ts []Token) string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Raw)
	}
	return b.String()
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Whitespace:
		return "Whitespace"
	case Ident:
		return "Ident"
	case Function:
		return "Function"
	case Hash:
		return "Hash"
	case String:
		return "String"
	case Number:
		return "Number"
	case Percentage:
		return "Percentage"
	case Dimension:
		return "Dimension"
	case Delim:
		return "Delim"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case OpenBracket:
		return "OpenBracket"
	case CloseBracket:
		return "CloseBracket"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case Other:
		return "Other"
	default:
		panic(fmt.Errorf("bad kind: %d", k))
	}
}
