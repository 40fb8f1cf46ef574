// https://drafts.csswg.org/cssom/#common-serializing-idioms

package token

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EscapeIdent serializes s so that it tokenizes back into a single ident.
func EscapeIdent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r >= 0x01 && r <= 0x1F, r == 0x7F,
			i == 0 && r >= '0' && r <= '9',
			i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		case i == 0 && len(s) == 1 && r == '-':
			b.WriteString(`\-`)
		case r == '-' || r == '_' || r >= 0x80 ||
			r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			b.WriteRune(r)
		default:
			b.WriteString(`\` + string(r))
		}
		i += w
	}
	return b.String()
}

// EscapeString serializes s for use between double quotes.
func EscapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r >= 0x01 && r <= 0x1F, r == 0x7F:
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		case r == '"' || r == '\\':
			b.WriteString(`\` + string(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func QuoteString(s string) string { return `"` + EscapeString(s) + `"` }

// StartsIdent reports whether raw css text starts with an identifier, i.e.
// whether a hash token built from it is of id type.
func StartsIdent(raw string) bool {
	if strings.HasPrefix(raw, "-") {
		if raw = raw[1:]; strings.HasPrefix(raw, "-") {
			return true
		}
	}
	r, _ := utf8.DecodeRuneInString(raw)
	switch {
	case raw == "":
		return false
	case r == '\\':
		return len(raw) > 1 && raw[1] != '\n'
	default:
		return r == '_' || r >= 0x80 || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
	}
}

// Unescape resolves css escapes (\XXXXXX hex and \c literal). An escaped
// newline is a line continuation inside strings and is dropped.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		i += w
		switch {
		case r != '\\':
			b.WriteRune(r)
		case i >= len(s):
			b.WriteRune(utf8.RuneError)
		case s[i] == '\n':
			i++
		case !isHexDigit(rune(s[i])):
			r, w := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += w
		default:
			j := i
			for ; j < i+6 && j < len(s) && isHexDigit(rune(s[j])); j++ {
			}
			v, _ := strconv.ParseUint(s[i:j], 16, 32)
			if v == 0 || v > unicode.MaxRune || v >= 0xD800 && v <= 0xDFFF {
				v = utf8.RuneError
			}
			b.WriteRune(rune(v))
			if i = j; i < len(s) && isWhitespace(rune(s[i])) {
				i++
			}
		}
	}
	return b.String()
}

func isHexDigit(r rune) bool {
	return 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F' || '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool { return strings.ContainsRune(" \t\f\r\n", r) }
