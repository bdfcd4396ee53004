package service

import "match-service/internal/match/model"

// tolerance keeps float rounding of tuned weights from pushing a sum that is
// meant to equal the threshold over it.
const tolerance = 1e-9

// Scorer applies one weight table to (product, listing) pairs.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	w model.Weights
}

func NewScorer(w model.Weights) Scorer { return Scorer{w: w} }

func (s Scorer) Weights() model.Weights { return s.w }

// Score returns the per-rule breakdown and the match outcome.
func (s Scorer) Score(p model.Product, l model.Listing) model.Decision {
	return s.score(p, classify(p.Model), l)
}

func (s Scorer) IsMatch(p model.Product, l model.Listing) bool {
	return s.Score(p, l).Match
}

// score takes the precomputed shape so the batch driver classifies each
// product once, not once per listing.
func (s Scorer) score(p model.Product, shape model.Shape, l model.Listing) model.Decision {
	title := fold(l.Title)
	d := model.Decision{
		Manufacturer: manufacturerPoints(p, l, title, s.w),
		Family:       familyPoints(p, title, s.w),
		Model:        modelPoints(p.Model, title, shape, s.w),
		Shape:        shape,
	}
	d.Points = d.Manufacturer + d.Family + d.Model
	d.Match = d.Points-s.w.Threshold > tolerance
	return d
}
