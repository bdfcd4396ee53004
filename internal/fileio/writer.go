package fileio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/match/model"
)

// WriteJSONLines writes one result object per line.
func WriteJSONLines(w io.Writer, results []model.Result) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, r := range results {
		if r.Listings == nil {
			r.Listings = []model.Listing{}
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode %q: %w", r.ProductName, err)
		}
	}
	return bw.Flush()
}

var xlsxHeader = []any{"product_name", "title", "manufacturer", "currency", "price"}

const resultsSheet = "results"

// WriteXLSX writes a flat workbook: one row per matched (product, listing)
// pair, and a bare product row for products that matched nothing.
func WriteXLSX(w io.Writer, results []model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}

	row := 1
	put := func(vals []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(resultsSheet, cell, &vals)
	}

	if err := put(xlsxHeader); err != nil {
		return err
	}
	for _, r := range results {
		if len(r.Listings) == 0 {
			if err := put([]any{r.ProductName}); err != nil {
				return err
			}
			continue
		}
		for _, l := range r.Listings {
			if err := put([]any{r.ProductName, l.Title, l.Manufacturer, l.Currency, l.Price}); err != nil {
				return err
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
