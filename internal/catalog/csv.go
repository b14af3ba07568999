package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

// exportHeader is the fixed column schema of a common commerce-platform
// product export. Only a subset carries meaningful data; the rest is
// emitted so the file round-trips through third-party tooling untouched.
var exportHeader = []string{
	"Handle", "Title", "Body (HTML)", "Vendor", "Product Category", "Type",
	"Tags", "Published", "Option1 Name", "Option1 Value", "Variant SKU",
	"Variant Grams", "Variant Inventory Tracker", "Variant Inventory Qty",
	"Variant Price", "Image Src",
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// RowError reports a single import row that could not be turned into a
// product. Import continues past bad rows.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseProductsCSV reads a delimited product export. Quoted fields may
// contain commas; doubled quotes unescape to a literal quote. Unknown
// columns are ignored, so full platform exports import cleanly.
func ParseProductsCSV(r io.Reader) ([]*domain.Product, []RowError, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("read header: %w", err)
		}
		return nil, nil, fmt.Errorf("empty import file")
	}
	headers := splitRow(scanner.Text())

	cols := columnIndex(headers)
	if cols.title < 0 || cols.price < 0 {
		return nil, nil, fmt.Errorf("missing required columns Title / Variant Price")
	}

	var (
		products []*domain.Product
		rowErrs  []RowError
	)

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		fields := splitRow(raw)
		p, err := productFromRow(fields, cols)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Reason: err.Error()})
			continue
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read import rows: %w", err)
	}

	return products, rowErrs, nil
}

// WriteProductsCSV serializes the catalog in the fixed export schema. The
// output round-trips through ParseProductsCSV.
func WriteProductsCSV(w io.Writer, products []*domain.Product) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(exportHeader, ",") + "\n"); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, p := range products {
		row := []string{
			quoteField(p.ID),
			quoteField(p.Name),
			quoteField(p.Description),
			"Palstyle",
			quoteField(p.Category),
			quoteField(p.Category),
			"dark-luxury",
			"TRUE",
			"Size",
			"M",
			quoteField(p.ID),
			"500",
			"shopify",
			strconv.Itoa(p.Stock),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			quoteField(p.ImageURL),
		}
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	return bw.Flush()
}

type columns struct {
	handle, title, body, price, stock, image, category int
}

func columnIndex(headers []string) columns {
	idx := func(name string) int {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
		return -1
	}

	c := columns{
		handle: idx("Handle"),
		title:  idx("Title"),
		body:   idx("Body (HTML)"),
		price:  idx("Variant Price"),
		stock:  idx("Variant Inventory Qty"),
		image:  idx("Image Src"),
	}

	// First present wins between the two category spellings.
	c.category = idx("Product Category")
	if c.category < 0 {
		c.category = idx("Type")
	}
	return c
}

func productFromRow(fields []string, cols columns) (*domain.Product, error) {
	get := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return fields[i]
	}

	name := get(cols.title)
	if name == "" {
		return nil, fmt.Errorf("missing Title")
	}

	priceRaw := get(cols.price)
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("bad Variant Price %q", priceRaw)
	}
	if price < 0 {
		return nil, fmt.Errorf("negative Variant Price %q", priceRaw)
	}

	id := get(cols.handle)
	if id == "" {
		id = uuid.NewString()
	}

	// Stock is informational; an unparseable quantity degrades to zero.
	stock, _ := strconv.Atoi(get(cols.stock))

	description := "Imported via CSV"
	if cols.body >= 0 {
		description = stripHTML(get(cols.body))
	}

	category := "General"
	if cols.category >= 0 {
		category = get(cols.category)
	}

	return &domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Category:    category,
		Description: description,
		ImageURL:    get(cols.image),
		Stock:       stock,
	}, nil
}

// splitRow tokenizes one delimited row: a quote toggles the in-quotes
// flag, commas split only outside quotes, and surrounding quotes plus
// doubled-quote escapes are removed from each cell.
func splitRow(row string) []string {
	var (
		fields   []string
		cell     strings.Builder
		inQuotes bool
	)

	for _, ch := range row {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			cell.WriteRune(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, cleanCell(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(ch)
		}
	}
	fields = append(fields, cleanCell(cell.String()))
	return fields
}

func cleanCell(cell string) string {
	cell = strings.TrimPrefix(cell, `"`)
	cell = strings.TrimSuffix(cell, `"`)
	cell = strings.ReplaceAll(cell, `""`, `"`)
	return strings.TrimSpace(cell)
}

func quoteField(field string) string {
	if !strings.ContainsAny(field, `",`) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}
