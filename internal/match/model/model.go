package model

import "fmt"

type Product struct {
	ProductName   string `json:"product_name"`
	Manufacturer  string `json:"manufacturer"`
	Family        string `json:"family,omitempty"` // optional; empty means absent
	Model         string `json:"model"`
	AnnouncedDate string `json:"announced_date,omitempty"`
}

type Listing struct {
	Title        string `json:"title"`
	Manufacturer string `json:"manufacturer"`
	Currency     string `json:"currency"`
	Price        string `json:"price"`
}

// Result is one product with every listing judged to advertise it.
// Listings is unordered and never nil once produced by the batch driver.
type Result struct {
	ProductName string    `json:"product_name"`
	Listings    []Listing `json:"listings"`
}

// Shape is the structural class of a model code.
type Shape int

const (
	ShapeMixed       Shape = iota // letters and digits
	ShapeLettersOnly              // ^[A-Za-z]+$
	ShapeDigitsOnly               // ^[0-9]+$
	ShapeOther
)

func (s Shape) String() string {
	switch s {
	case ShapeMixed:
		return "mixed"
	case ShapeLettersOnly:
		return "letters"
	case ShapeDigitsOnly:
		return "digits"
	default:
		return "other"
	}
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Shape) UnmarshalText(b []byte) error {
	switch string(b) {
	case "mixed":
		*s = ShapeMixed
	case "letters":
		*s = ShapeLettersOnly
	case "digits":
		*s = ShapeDigitsOnly
	case "other":
		*s = ShapeOther
	default:
		return fmt.Errorf("unknown model shape %q", b)
	}
	return nil
}

// Decision is the outcome of scoring one (product, listing) pair.
type Decision struct {
	Manufacturer float64 `json:"manufacturer"`
	Family       float64 `json:"family"`
	Model        float64 `json:"model"`
	Points       float64 `json:"points"`
	Shape        Shape   `json:"shape"`
	Match        bool    `json:"match"`
}

// Weights is the point table. A pair matches when its points are strictly
// greater than Threshold.
type Weights struct {
	Manufacturer    float64 `json:"manufacturer" yaml:"manufacturer"`
	Family          float64 `json:"family" yaml:"family"`
	MixedModel      float64 `json:"mixedModel" yaml:"mixedModel"`           // letters+digits model found
	SingleKindModel float64 `json:"singleKindModel" yaml:"singleKindModel"` // letters-only or digits-only model found
	OtherModel      float64 `json:"otherModel" yaml:"otherModel"`           // punctuation-only etc., plain substring
	Threshold       float64 `json:"threshold" yaml:"threshold"`
}

func DefaultWeights() Weights {
	return Weights{
		Manufacturer:    0.1,
		Family:          0.2,
		MixedModel:      1.0,
		SingleKindModel: 0.8,
		OtherModel:      1.0,
		Threshold:       1.0,
	}
}
