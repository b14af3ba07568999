package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/palstyle/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRow_QuotedDelimiterAndEscapedQuotes(t *testing.T) {
	fields := splitRow(`"Acme, Inc.","Desc with ""quotes""",9.99`)

	require.Len(t, fields, 3)
	assert.Equal(t, `Acme, Inc.`, fields[0])
	assert.Equal(t, `Desc with "quotes"`, fields[1])
	assert.Equal(t, "9.99", fields[2])
}

func TestSplitRow_PlainRow(t *testing.T) {
	fields := splitRow("a,b,,d")

	assert.Equal(t, []string{"a", "b", "", "d"}, fields)
}

func TestParseProductsCSV_MapsKnownColumns(t *testing.T) {
	input := strings.Join([]string{
		"Handle,Title,Body (HTML),Variant Price,Variant Inventory Qty,Image Src,Product Category",
		`PLS-TSH-900,"STREET TEE","<p>Bold <b>print</b></p>",599,12,https://img.example/tee.jpg,T-Shirts`,
	}, "\n")

	products, rowErrs, err := ParseProductsCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "PLS-TSH-900", p.ID)
	assert.Equal(t, "STREET TEE", p.Name)
	assert.Equal(t, "Bold print", p.Description, "HTML tags must be stripped")
	assert.InDelta(t, 599.0, p.Price, 1e-9)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, "T-Shirts", p.Category)
	assert.Equal(t, "https://img.example/tee.jpg", p.ImageURL)
}

func TestParseProductsCSV_TypeColumnWhenCategoryAbsent(t *testing.T) {
	input := strings.Join([]string{
		"Title,Variant Price,Type",
		"HOODIE,899,Hoodies",
	}, "\n")

	products, _, err := ParseProductsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Hoodies", products[0].Category)
}

func TestParseProductsCSV_MissingHandleGeneratesID(t *testing.T) {
	input := strings.Join([]string{
		"Title,Variant Price",
		"NO HANDLE TEE,100",
	}, "\n")

	products, _, err := ParseProductsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.NotEmpty(t, products[0].ID)
}

func TestParseProductsCSV_ReportsRowErrors(t *testing.T) {
	input := strings.Join([]string{
		"Title,Variant Price",
		"GOOD,100",
		",100",
		"BAD PRICE,not-a-number",
		"",
		"ALSO GOOD,50",
	}, "\n")

	products, rowErrs, err := ParseProductsCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, products, 2)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Equal(t, 4, rowErrs[1].Line)
}

func TestParseProductsCSV_MissingRequiredColumns(t *testing.T) {
	_, _, err := ParseProductsCSV(strings.NewReader("Handle,Vendor\nX,Y"))
	require.Error(t, err)
}

func TestWriteProductsCSV_FixedHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, 16, len(splitRow(lines[0])))
}

// Export then import reproduces the same (name, price, category) tuples.
func TestCSV_RoundTrip(t *testing.T) {
	original := []*domain.Product{
		{ID: "A-1", Name: "PLAIN TEE", Price: 599, Category: "T-Shirts", Description: "Heavy cotton.", Stock: 10},
		{ID: "A-2", Name: `Says "Resist", Loudly`, Price: 899.5, Category: "Hoodies", Description: `Line one, with comma and "quotes".`, Stock: 3},
		{ID: "A-3", Name: "MAP NECKLACE", Price: 1499, Category: "Accessories", Description: "", Stock: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, original))

	parsed, rowErrs, err := ParseProductsCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, parsed, len(original))

	for i, want := range original {
		got := parsed[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.InDelta(t, want.Price, got.Price, 1e-9)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Stock, got.Stock)
	}
}
