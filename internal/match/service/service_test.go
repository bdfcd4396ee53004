package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/match/model"
)

func defaultScorer() Scorer { return NewScorer(model.DefaultWeights()) }

func TestClassify(t *testing.T) {
	cases := map[string]model.Shape{
		"D7000":              model.ShapeMixed,
		"PowerShot SX230 HS": model.ShapeMixed,
		"EOS-1D (X)":         model.ShapeMixed,
		"Rebel":              model.ShapeLettersOnly,
		"100":                model.ShapeDigitsOnly,
		"Mark-II":            model.ShapeOther,
		"10 20":              model.ShapeOther,
		"--":                 model.ShapeOther,
		"αβ":                 model.ShapeOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, classify(in), in)
	}
}

func TestContainsDelimited(t *testing.T) {
	cases := []struct {
		s, tok string
		want   bool
	}{
		{"nikon d7000 body", "d7000", true},
		{"nikon d7000 body", "d700", false},
		{"nikon d7000 d700 bundle", "d700", true},
		{"lens 10000 mm", "100", false},
		{"lens_100-kit", "100", true},
		{"100 zoom", "100", true},
		{"zoom 100", "100", true},
		{"canon\trebel\tt3i", "rebel", true},
		{"canonrebelt3i", "rebel", false},
		{"canon 1d (x) body", "(x)", true},
		{"canon 1d (x)body", "(x)", false},
		{"anything", "", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, containsDelimited(c.s, c.tok), "%q in %q", c.tok, c.s)
	}
}

func TestCompactAndSplit(t *testing.T) {
	assert.Equal(t, "sx230hs", compact("sx-230 hs"))
	assert.Equal(t, "ab12", compact("a_b 1-2"))

	digits, letters := splitKinds("d-7000")
	assert.Equal(t, "7000", digits)
	assert.Equal(t, "d", letters)

	digits, letters = splitKinds("tz 10 ab 5")
	assert.Equal(t, "105", digits)
	assert.Equal(t, "tzab", letters)

	digits, letters = splitKinds("eos-1d (x)")
	assert.Equal(t, "1", digits)
	assert.Equal(t, "eosdx", letters)
}

func TestScore_MixedVerbatim(t *testing.T) {
	p := model.Product{ProductName: "Canon_PowerShot_SX230_HS", Manufacturer: "Canon", Model: "PowerShot SX230 HS"}
	l := model.Listing{Title: "Canon PowerShot SX230 HS Digital Camera", Manufacturer: "Canon"}

	d := defaultScorer().Score(p, l)
	assert.Equal(t, model.ShapeMixed, d.Shape)
	assert.Equal(t, 1.0, d.Model)
	assert.Equal(t, 0.1, d.Manufacturer)
	assert.True(t, d.Match)
}

func TestScore_MixedSplitTokens(t *testing.T) {
	p := model.Product{Manufacturer: "Nikon", Model: "D7000"}

	d := defaultScorer().Score(p, model.Listing{Title: "Nikon D 7000 DSLR", Manufacturer: "Nikon"})
	assert.Equal(t, 1.0, d.Model)
	assert.True(t, d.Match)

	// letters present only inside another word
	d = defaultScorer().Score(p, model.Listing{Title: "Nikon Dslr 7000 kit", Manufacturer: "Nikon"})
	assert.Zero(t, d.Model)
	assert.False(t, d.Match)
}

func TestScore_MixedSplitTokensIgnorePunctuation(t *testing.T) {
	p := model.Product{Manufacturer: "Nikon", Model: "D.7000"}

	d := defaultScorer().Score(p, model.Listing{Title: "Nikon D 7000 DSLR", Manufacturer: "Nikon"})
	assert.Equal(t, model.ShapeMixed, d.Shape)
	assert.Equal(t, 1.0, d.Model)
	assert.True(t, d.Match)

	// letter runs are joined, so split letters only help when there is one run
	p = model.Product{Manufacturer: "Canon", Model: "EOS-1D (X)"}
	d = defaultScorer().Score(p, model.Listing{Title: "Canon EOS 1D X body", Manufacturer: "Canon"})
	assert.Zero(t, d.Model)
	assert.False(t, d.Match)

	d = defaultScorer().Score(p, model.Listing{Title: "Canon EOS-1D (X) body", Manufacturer: "Canon"})
	assert.Equal(t, 1.0, d.Model)
	assert.True(t, d.Match)
}

func TestScore_MixedCompactForm(t *testing.T) {
	p := model.Product{Manufacturer: "Sony", Model: "DSC-W310"}

	d := defaultScorer().Score(p, model.Listing{Title: "Sony Cyber-shot DSCW310 12MP", Manufacturer: "Sony"})
	assert.Equal(t, 1.0, d.Model)
	assert.True(t, d.Match)

	d = defaultScorer().Score(p, model.Listing{Title: "Sony Cyber-shot DSCW3100 12MP", Manufacturer: "Sony"})
	assert.Zero(t, d.Model)
}

func TestScore_LettersOnlyBoundary(t *testing.T) {
	p := model.Product{Manufacturer: "Canon", Family: "EOS", Model: "Rebel"}

	d := defaultScorer().Score(p, model.Listing{Title: "Canon EOS Rebel T3i Kit", Manufacturer: "Canon"})
	assert.Equal(t, model.ShapeLettersOnly, d.Shape)
	assert.Equal(t, 0.8, d.Model)
	assert.True(t, d.Match)

	d = defaultScorer().Score(p, model.Listing{Title: "CanonEOSRebelT3i", Manufacturer: "Canon"})
	assert.Zero(t, d.Model)
	assert.False(t, d.Match)
}

func TestScore_DigitsOnlyBoundary(t *testing.T) {
	p := model.Product{Manufacturer: "Pentax", Family: "Optio", Model: "100"}

	assert.True(t, defaultScorer().IsMatch(p, model.Listing{Title: "Pentax Optio 100 silver", Manufacturer: "Pentax"}))
	assert.False(t, defaultScorer().IsMatch(p, model.Listing{Title: "Pentax Optio 10000 silver", Manufacturer: "Pentax"}))
}

func TestScore_ModelAtStartOfTitle(t *testing.T) {
	p := model.Product{Manufacturer: "Pentax", Family: "Optio", Model: "100"}
	d := defaultScorer().Score(p, model.Listing{Title: "100 Optio by Pentax"})
	assert.Equal(t, 0.8, d.Model)
	assert.True(t, d.Match)
}

func TestScore_OtherShapeSubstring(t *testing.T) {
	p := model.Product{Manufacturer: "Leica", Model: "Mark-II"}
	d := defaultScorer().Score(p, model.Listing{Title: "Leica M Mark-II body", Manufacturer: "Leica"})
	assert.Equal(t, model.ShapeOther, d.Shape)
	assert.Equal(t, 1.0, d.Model)
	assert.True(t, d.Match)
}

func TestScore_ThresholdIsExclusive(t *testing.T) {
	sc := defaultScorer()

	// family 0.2 + letters-only model 0.8 == 1.0
	p := model.Product{Manufacturer: "Canon", Family: "EOS", Model: "Rebel"}
	d := sc.Score(p, model.Listing{Title: "EOS Rebel camera bag", Manufacturer: "Lowepro"})
	assert.InDelta(t, 1.0, d.Points, 1e-12)
	assert.False(t, d.Match)

	// mixed model alone == 1.0
	p = model.Product{Manufacturer: "Nikon", Model: "D7000"}
	d = sc.Score(p, model.Listing{Title: "Battery grip for D7000", Manufacturer: "Vello"})
	assert.Equal(t, 1.0, d.Points)
	assert.False(t, d.Match)

	// plus manufacturer == 1.1
	d = sc.Score(p, model.Listing{Title: "Battery grip for D7000", Manufacturer: "Nikon"})
	assert.InDelta(t, 1.1, d.Points, 1e-12)
	assert.True(t, d.Match)
}

func TestScore_ManufacturerAwardedOnce(t *testing.T) {
	p := model.Product{Manufacturer: "Canon", Model: "Zzz9"}

	d := defaultScorer().Score(p, model.Listing{Title: "Canon something", Manufacturer: "Canon Canada"})
	assert.Equal(t, 0.1, d.Manufacturer)

	// empty listing manufacturer falls back to the title
	d = defaultScorer().Score(p, model.Listing{Title: "Canon something"})
	assert.Equal(t, 0.1, d.Manufacturer)

	d = defaultScorer().Score(p, model.Listing{Title: "something", Manufacturer: ""})
	assert.Zero(t, d.Manufacturer)
}

func TestScore_NegativeControl(t *testing.T) {
	p := model.Product{Manufacturer: "Canon", Family: "PowerShot", Model: "SX230 HS"}
	d := defaultScorer().Score(p, model.Listing{Title: "Nikon Coolpix P500 12MP", Manufacturer: "Nikon"})
	assert.LessOrEqual(t, d.Points, 1.0)
	assert.False(t, d.Match)
}

func TestScore_CaseInsensitiveAndDeterministic(t *testing.T) {
	sc := defaultScorer()
	p := model.Product{Manufacturer: "canon", Family: "eos", Model: "rebel t3i"}
	l := model.Listing{Title: "Canon EOS Rebel T3i 18-55mm", Manufacturer: "Canon"}
	upper := l
	upper.Title = strings.ToUpper(l.Title)

	first := sc.Score(p, l)
	assert.Equal(t, first, sc.Score(p, l))
	assert.Equal(t, first, sc.Score(p, upper))
	assert.True(t, first.Match)
}

func TestScore_CustomWeights(t *testing.T) {
	w := model.DefaultWeights()
	w.SingleKindModel = 0.9
	sc := NewScorer(w)

	// family 0.2 + 0.9 clears the threshold once single-kind models weigh 0.9
	p := model.Product{Manufacturer: "Canon", Family: "EOS", Model: "Rebel"}
	assert.True(t, sc.IsMatch(p, model.Listing{Title: "EOS Rebel camera bag", Manufacturer: "Lowepro"}))
	assert.Equal(t, w, sc.Weights())
}

func TestRun(t *testing.T) {
	products := []model.Product{
		{ProductName: "Nikon_D7000", Manufacturer: "Nikon", Model: "D7000"},
		{ProductName: "Canon_Rebel", Manufacturer: "Canon", Family: "EOS", Model: "Rebel"},
		{ProductName: "Olympus_Nothing", Manufacturer: "Olympus", Model: "XZ-1"},
		{ProductName: "Nikon_D7000_again", Manufacturer: "Nikon", Model: "D 7000"},
	}
	listings := []model.Listing{
		{Title: "Nikon D7000 DSLR Body", Manufacturer: "Nikon"},
		{Title: "Canon EOS Rebel T3i", Manufacturer: "Canon"},
		{Title: "Nikon D 7000 with 18-105 lens", Manufacturer: "Nikon"},
	}

	for _, workers := range []int{0, 1, 3, 16} {
		res, err := Run(context.Background(), products, listings, defaultScorer(), Options{Workers: workers})
		require.NoError(t, err)
		require.Len(t, res, len(products))

		for i, r := range res {
			assert.Equal(t, products[i].ProductName, r.ProductName)
			assert.NotNil(t, r.Listings)
		}
		assert.ElementsMatch(t, []model.Listing{listings[0], listings[2]}, res[0].Listings)
		assert.Equal(t, []model.Listing{listings[1]}, res[1].Listings)
		assert.Empty(t, res[2].Listings)
		// one listing may belong to several products
		assert.ElementsMatch(t, []model.Listing{listings[0], listings[2]}, res[3].Listings)
	}
}

func TestRun_EmptyInputs(t *testing.T) {
	res, err := Run(context.Background(), nil, nil, defaultScorer(), Options{})
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = Run(context.Background(), []model.Product{{ProductName: "x", Manufacturer: "m", Model: "a1"}}, nil, defaultScorer(), Options{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []model.Listing{}, res[0].Listings)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products := []model.Product{{ProductName: "x", Manufacturer: "m", Model: "a1"}}
	_, err := Run(ctx, products, nil, defaultScorer(), Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
