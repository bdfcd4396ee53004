package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
)

func TestResolveKey(t *testing.T) {
	rec := map[string]string{"Product Name": "", "Manufacturer ": "", "model_number": "", "Family": ""}

	assert.Equal(t, "Product Name", resolveKey(rec, "product_name|name"))
	assert.Equal(t, "Manufacturer ", resolveKey(rec, "manufacturer|brand"))
	assert.Equal(t, "model_number", resolveKey(rec, "model|model number"))
	assert.Equal(t, "Family", resolveKey(rec, "Family"))
	assert.Equal(t, "", resolveKey(rec, "price"))
	assert.Equal(t, "", resolveKey(rec, ""))
}

func TestProducts(t *testing.T) {
	tbl := fileio.Table{
		Records: []fileio.Record{
			{Line: 1, Fields: map[string]string{"product_name": "Nikon_D7000", "manufacturer": "Nikon", "model": "D7000", "announced_date": "2010"}},
			{Line: 2, Fields: map[string]string{"product_name": "No_Model", "manufacturer": "Canon"}},
			{Line: 3, Fields: map[string]string{"product_name": "No_Maker", "model": "X1"}},
			{Line: 5, Fields: map[string]string{"product_name": "Canon_T3i", "manufacturer": "Canon", "family": " EOS ", "model": "Rebel T3i"}},
		},
		Issues: []fileio.Issue{{Line: 4}},
	}

	products, issues := Products(tbl, DefaultProductColumns())
	require.Len(t, products, 2)
	assert.Equal(t, model.Product{ProductName: "Nikon_D7000", Manufacturer: "Nikon", Model: "D7000", AnnouncedDate: "2010"}, products[0])
	assert.Equal(t, "EOS", products[1].Family)

	require.Len(t, issues, 3)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, 2, issues[1].Line)
	assert.ErrorIs(t, issues[1].Err, ErrMissingModel)
	assert.Equal(t, 3, issues[2].Line)
	assert.ErrorIs(t, issues[2].Err, ErrMissingManufacturer)
}

func TestListings(t *testing.T) {
	tbl := fileio.Table{Records: []fileio.Record{
		{Line: 1, Fields: map[string]string{"Title": "Nikon D7000", "Brand": "", "Currency": "USD", "Price": "999.00"}},
		{Line: 2, Fields: map[string]string{"Title": "  ", "Brand": "Nikon"}},
	}}

	listings, issues := Listings(tbl, DefaultListingColumns())
	require.Len(t, listings, 1)
	assert.Equal(t, model.Listing{Title: "Nikon D7000", Currency: "USD", Price: "999.00"}, listings[0])

	require.Len(t, issues, 1)
	assert.ErrorIs(t, issues[0].Err, ErrMissingTitle)
}
