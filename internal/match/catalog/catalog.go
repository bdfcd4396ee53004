package catalog

import (
	"errors"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
)

var (
	ErrMissingModel        = errors.New("product has no model")
	ErrMissingManufacturer = errors.New("product has no manufacturer")
	ErrMissingTitle        = errors.New("listing has no title")
)

// ProductColumns names the source column for each product field; each entry
// may hold '|'-separated alternatives.
type ProductColumns struct {
	ProductName   string
	Manufacturer  string
	Family        string
	Model         string
	AnnouncedDate string
}

type ListingColumns struct {
	Title        string
	Manufacturer string
	Currency     string
	Price        string
}

func DefaultProductColumns() ProductColumns {
	return ProductColumns{
		ProductName:   "product_name|product name|name",
		Manufacturer:  "manufacturer|brand|maker",
		Family:        "family|series",
		Model:         "model|model number",
		AnnouncedDate: "announced_date|announced",
	}
}

func DefaultListingColumns() ListingColumns {
	return ListingColumns{
		Title:        "title|listing title",
		Manufacturer: "manufacturer|brand|seller",
		Currency:     "currency",
		Price:        "price",
	}
}

// Products converts loaded rows into products. Rows without a model or a
// manufacturer are left out and reported, so they never reach scoring.
func Products(t fileio.Table, cols ProductColumns) ([]model.Product, []fileio.Issue) {
	out := make([]model.Product, 0, len(t.Records))
	issues := append([]fileio.Issue(nil), t.Issues...)
	for _, rec := range t.Records {
		p := model.Product{
			ProductName:   field(rec.Fields, cols.ProductName),
			Manufacturer:  field(rec.Fields, cols.Manufacturer),
			Family:        field(rec.Fields, cols.Family),
			Model:         field(rec.Fields, cols.Model),
			AnnouncedDate: field(rec.Fields, cols.AnnouncedDate),
		}
		switch {
		case p.Model == "":
			issues = append(issues, fileio.Issue{Line: rec.Line, Err: ErrMissingModel})
		case p.Manufacturer == "":
			issues = append(issues, fileio.Issue{Line: rec.Line, Err: ErrMissingManufacturer})
		default:
			out = append(out, p)
		}
	}
	return out, issues
}

// Listings converts loaded rows into listings. An empty manufacturer is
// fine; an empty title is not.
func Listings(t fileio.Table, cols ListingColumns) ([]model.Listing, []fileio.Issue) {
	out := make([]model.Listing, 0, len(t.Records))
	issues := append([]fileio.Issue(nil), t.Issues...)
	for _, rec := range t.Records {
		l := model.Listing{
			Title:        field(rec.Fields, cols.Title),
			Manufacturer: field(rec.Fields, cols.Manufacturer),
			Currency:     field(rec.Fields, cols.Currency),
			Price:        field(rec.Fields, cols.Price),
		}
		if l.Title == "" {
			issues = append(issues, fileio.Issue{Line: rec.Line, Err: ErrMissingTitle})
			continue
		}
		out = append(out, l)
	}
	return out, issues
}
