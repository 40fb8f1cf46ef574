package token

import (
	"reflect"
	"testing"
)

type lexTest struct {
	input    string
	expected []Token
}

func k(kind Kind, value string) Token { return Token{Kind: kind, Value: value} }

var lexTests = []lexTest{
	{"button", []Token{k(Ident, "button"), k(EOF, "")}},
	{"#main.big", []Token{k(Hash, "main"), k(Delim, "."), k(Ident, "big"), k(EOF, "")}},
	{`[lang|="en" i]`, []Token{
		k(OpenBracket, ""), k(Ident, "lang"), k(Delim, "|"), k(Delim, "="), k(String, "en"),
		k(Whitespace, ""), k(Ident, "i"), k(CloseBracket, ""), k(EOF, ""),
	}},
	{`[x~='a b']`, []Token{
		k(OpenBracket, ""), k(Ident, "x"), k(Delim, "~"), k(Delim, "="), k(String, "a b"),
		k(CloseBracket, ""), k(EOF, ""),
	}},
	{"ns|*", []Token{k(Ident, "ns"), k(Delim, "|"), k(Delim, "*"), k(EOF, "")}},
	{"::before:hover", []Token{
		k(Colon, ":"), k(Colon, ":"), k(Ident, "before"), k(Colon, ":"), k(Ident, "hover"), k(EOF, ""),
	}},
	{":not(.a, b)", []Token{
		k(Colon, ":"), k(Function, "not"), k(Delim, "."), k(Ident, "a"), k(Comma, ","),
		k(Whitespace, ""), k(Ident, "b"), k(CloseParen, ""), k(EOF, ""),
	}},
	{"a/* comment */ > b", []Token{
		k(Ident, "a"), k(Whitespace, ""), k(Delim, ">"), k(Whitespace, ""), k(Ident, "b"), k(EOF, ""),
	}},
	{`.\31 23`, []Token{k(Delim, "."), k(Ident, "123"), k(EOF, "")}},
}

func TestTokenize(t *testing.T) {
	for _, lt := range lexTests {
		ts, err := Tokenize(lt.input)
		if err != nil {
			t.Errorf("%s: %s", lt.input, err)
			continue
		}
		actual := make([]Token, len(ts))
		for i, tok := range ts {
			actual[i] = k(tok.Kind, tok.Value)
		}
		if !reflect.DeepEqual(actual, lt.expected) {
			t.Errorf("%s\ngot:\n\t%v\n\nexpected:\n\t%v", lt.input, actual, lt.expected)
		}
		if text := Text(ts); text != lt.input && lt.input != "a/* comment */ > b" {
			t.Errorf("%s: raw text not preserved: %q", lt.input, text)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	ts, err := Tokenize("a *= b")
	if err != nil {
		t.Fatal(err)
	}
	positions := []int{}
	for _, tok := range ts {
		positions = append(positions, tok.Pos)
	}
	if expected := []int{0, 1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(positions, expected) {
		t.Errorf("got %v, expected %v", positions, expected)
	}
}

func TestTokenizeBadString(t *testing.T) {
	if _, err := Tokenize("[x=\"a\nb\"]"); err == nil {
		t.Error("expected error for string containing a newline")
	}
}
