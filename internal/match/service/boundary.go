package service

import (
	"strings"
	"unicode/utf8"
)

// containsDelimited reports whether tok occurs in s with a separator (or the
// edge of s) on both sides. Every occurrence is tried: "d7000 d700" still
// finds "d700" after rejecting the hit inside "d7000".
//
// The check is done on characters, never by building a pattern from tok,
// so model codes like "EOS-1D (X)" need no escaping.
func containsDelimited(s, tok string) bool {
	if tok == "" {
		return false
	}
	for from := 0; from <= len(s)-len(tok); {
		i := strings.Index(s[from:], tok)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(tok)
		if leftDelimited(s, start) && rightDelimited(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return false
}

func leftDelimited(s string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return isSeparator(r)
}

func rightDelimited(s string, end int) bool {
	if end == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return isSeparator(r)
}
