package service

import (
	"strings"

	"match-service/internal/match/model"
)

// manufacturerPoints awards the manufacturer weight once: either the listing's
// manufacturer field or, failing that, its title names the product maker.
func manufacturerPoints(p model.Product, l model.Listing, title string, w model.Weights) float64 {
	mf := fold(p.Manufacturer)
	if strings.Contains(fold(l.Manufacturer), mf) || strings.Contains(title, mf) {
		return w.Manufacturer
	}
	return 0
}

// familyPoints is zero for products without a family.
func familyPoints(p model.Product, title string, w model.Weights) float64 {
	if p.Family == "" {
		return 0
	}
	if strings.Contains(title, fold(p.Family)) {
		return w.Family
	}
	return 0
}
