package service

import (
	"strings"

	"match-service/internal/match/model"
)

// classify sorts a model code into one of the four shapes. Order matters:
// anything with both a letter and a digit is Mixed, whatever else it holds.
func classify(code string) model.Shape {
	var letters, digits, other bool
	for _, r := range code {
		switch {
		case isASCIILetter(r):
			letters = true
		case isASCIIDigit(r):
			digits = true
		default:
			other = true
		}
	}
	switch {
	case letters && digits:
		return model.ShapeMixed
	case letters && !other:
		return model.ShapeLettersOnly
	case digits && !other:
		return model.ShapeDigitsOnly
	default:
		return model.ShapeOther
	}
}

// modelPoints scores the product model against a folded title.
func modelPoints(code, title string, shape model.Shape, w model.Weights) float64 {
	m := fold(code)
	switch shape {
	case model.ShapeMixed:
		if matchMixed(m, title) {
			return w.MixedModel
		}
	case model.ShapeLettersOnly, model.ShapeDigitsOnly:
		if containsDelimited(title, m) {
			return w.SingleKindModel
		}
	default:
		if strings.Contains(title, m) {
			return w.OtherModel
		}
	}
	return 0
}

// matchMixed tries, in order: verbatim substring, the compact form as a
// delimited token, then the digit and letter parts as separate delimited
// tokens ("d7000" against "nikon d 7000").
func matchMixed(m, title string) bool {
	if strings.Contains(title, m) {
		return true
	}
	if containsDelimited(title, compact(m)) {
		return true
	}
	digits, letters := splitKinds(m)
	return containsDelimited(title, digits) && containsDelimited(title, letters)
}
