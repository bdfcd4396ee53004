package service

import (
	"strings"
	"unicode"
)

// fold canonicalizes text before every containment or boundary test.
// Only case is folded; accents and punctuation are kept as-is.
func fold(s string) string {
	return strings.ToLower(s)
}

// isSeparator reports whether r may flank a delimited token: whitespace, '_' or '-'.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// compact drops whitespace, '_' and '-': "SX-230 HS" -> "SX230HS".
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, s)
}

// splitKinds concatenates the digit runs and the letter runs of a model into
// two tokens. Anything else is dropped: "D.7000" -> ("7000", "D").
func splitKinds(s string) (digits, letters string) {
	var d, l strings.Builder
	for _, r := range s {
		switch {
		case isASCIIDigit(r):
			d.WriteRune(r)
		case isASCIILetter(r):
			l.WriteRune(r)
		}
	}
	return d.String(), l.String()
}

func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
