package token

import (
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Tokenize turns selector text into tokens terminated by a single EOF token.
// The legacy match tokens (~= |= ^= $= *=) and || are split into separate
// delims as css-syntax-3 does, so the grammar decides what they mean.
func Tokenize(text string) ([]Token, error) {
	l := css.NewLexer(parse.NewInputString(text))
	ts, pos := []Token{}, 0
	for {
		tt, data := l.Next()
		raw := string(data)
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("tokenize at %d: %w", pos, err)
			}
			return append(ts, Token{Kind: EOF, Pos: pos}), nil
		case css.CommentToken:
		case css.BadStringToken:
			return nil, fmt.Errorf("tokenize at %d: unterminated string %q", pos, raw)
		case css.BadURLToken:
			return nil, fmt.Errorf("tokenize at %d: bad url %q", pos, raw)
		case css.IncludeMatchToken, css.DashMatchToken, css.PrefixMatchToken,
			css.SuffixMatchToken, css.SubstringMatchToken, css.ColumnToken:
			ts = append(ts,
				Token{Kind: Delim, Value: raw[:1], Raw: raw[:1], Pos: pos},
				Token{Kind: Delim, Value: raw[1:], Raw: raw[1:], Pos: pos + 1})
		default:
			ts = append(ts, convert(tt, raw, pos))
		}
		pos += len(raw)
	}
}

func convert(tt css.TokenType, raw string, pos int) Token {
	t := Token{Raw: raw, Pos: pos}
	switch tt {
	case css.IdentToken, css.CustomPropertyNameToken:
		t.Kind, t.Value = Ident, Unescape(raw)
	case css.FunctionToken:
		t.Kind, t.Value = Function, Unescape(raw[:len(raw)-1])
	case css.HashToken:
		t.Kind, t.Value = Hash, Unescape(raw[1:])
	case css.StringToken:
		t.Kind, t.Value = String, Unescape(unquote(raw))
	case css.NumberToken:
		t.Kind, t.Value = Number, raw
	case css.PercentageToken:
		t.Kind, t.Value = Percentage, raw
	case css.DimensionToken:
		t.Kind, t.Value = Dimension, raw
	case css.DelimToken:
		t.Kind, t.Value = Delim, raw
	case css.WhitespaceToken:
		t.Kind = Whitespace
	case css.ColonToken:
		t.Kind, t.Value = Colon, raw
	case css.CommaToken:
		t.Kind, t.Value = Comma, raw
	case css.LeftBracketToken:
		t.Kind = OpenBracket
	case css.RightBracketToken:
		t.Kind = CloseBracket
	case css.LeftParenthesisToken:
		t.Kind = OpenParen
	case css.RightParenthesisToken:
		t.Kind = CloseParen
	default:
		t.Kind, t.Value = Other, raw
	}
	return t
}

// unquote strips the quotes of a string token. A string left open at the end
// of input has no closing quote.
func unquote(raw string) string {
	if len(raw) < 2 || raw[len(raw)-1] != raw[0] {
		return raw[1:]
	}
	n := 0
	for i := len(raw) - 2; i > 0 && raw[i] == '\\'; i-- {
		n++
	}
	if n%2 == 1 {
		return raw[1:]
	}
	return raw[1 : len(raw)-1]
}
