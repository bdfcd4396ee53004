package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"match-service/internal/fileio"
	"match-service/internal/match/catalog"
	"match-service/internal/match/model"
)

type issueJSON struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

func issuesJSON(in []fileio.Issue) []issueJSON {
	out := make([]issueJSON, 0, len(in))
	for _, is := range in {
		out = append(out, issueJSON{Line: is.Line, Error: is.Err.Error()})
	}
	return out
}

// productColumns applies p_* form overrides to the default column names.
func productColumns(r *http.Request) catalog.ProductColumns {
	c := catalog.DefaultProductColumns()
	override(&c.ProductName, r.FormValue("p_name"))
	override(&c.Manufacturer, r.FormValue("p_manufacturer"))
	override(&c.Family, r.FormValue("p_family"))
	override(&c.Model, r.FormValue("p_model"))
	override(&c.AnnouncedDate, r.FormValue("p_announced"))
	return c
}

func listingColumns(r *http.Request) catalog.ListingColumns {
	c := catalog.DefaultListingColumns()
	override(&c.Title, r.FormValue("l_title"))
	override(&c.Manufacturer, r.FormValue("l_manufacturer"))
	override(&c.Currency, r.FormValue("l_currency"))
	override(&c.Price, r.FormValue("l_price"))
	return c
}

// weightsFrom lays w_* and threshold form values over base; bad or negative
// numbers keep the base value.
func weightsFrom(r *http.Request, base model.Weights) model.Weights {
	w := base
	w.Manufacturer = toWeight(r.FormValue("w_manufacturer"), w.Manufacturer)
	w.Family = toWeight(r.FormValue("w_family"), w.Family)
	w.MixedModel = toWeight(r.FormValue("w_mixed"), w.MixedModel)
	w.SingleKindModel = toWeight(r.FormValue("w_single"), w.SingleKindModel)
	w.OtherModel = toWeight(r.FormValue("w_other"), w.OtherModel)
	w.Threshold = toWeight(r.FormValue("threshold"), w.Threshold)
	return w
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toWeight(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return def
	}
	return f
}
