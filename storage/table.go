package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"brokeragebd-scraper/models"
)

// Table is an in-memory CSV table with a header row. The dataset-cleaning
// pass operates on tables so it can carry any source schema through
// unchanged, only adding its derived columns.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a CSV file into a Table. Rows shorter than the header are
// padded so every row has one cell per column.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("csv: %q has no header row", path)
	}

	t := &Table{Header: all[0]}
	for _, row := range all[1:] {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteTable writes a Table to a CSV file, creating intermediate
// directories as needed.
func WriteTable(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Column returns the index of the named column, matched case-insensitively,
// or -1 when absent.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// EnsureColumn returns the index of the named column, appending it to the
// header (and padding every row) when it does not exist yet.
func (t *Table) EnsureColumn(name string) int {
	if i := t.Column(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, "")
	}
	return len(t.Header) - 1
}

// ListingsFromTable converts a cleaned table into typed listings for
// Postgres storage and reporting. Unparseable or marker cells become zero
// values; rows without a numeric price are skipped.
func ListingsFromTable(t *Table) []*models.CleanListing {
	var (
		locIdx   = t.Column("Location")
		areaIdx  = t.Column("area_sqft")
		priceIdx = t.Column("Price")
		cleanIdx = t.Column("price_clean")
		bedIdx   = t.Column("Bedroom")
		bathIdx  = t.Column("Bathroom")
		floorIdx = t.Column("Floor")
		forIdx   = t.Column("For")
		typeIdx  = t.Column("Property_Type")
		urlIdx   = t.Column("URL")
	)
	if cleanIdx < 0 {
		cleanIdx = t.Column("Price_BDT")
	}

	var listings []*models.CleanListing
	for _, row := range t.Rows {
		price := cellFloat(row, cleanIdx)
		if price == 0 {
			continue
		}
		listings = append(listings, &models.CleanListing{
			Location:     cellString(row, locIdx),
			AreaSqft:     cellInt(row, areaIdx),
			PriceText:    cellString(row, priceIdx),
			PriceBDT:     price,
			Bedroom:      cellInt(row, bedIdx),
			Bathroom:     cellInt(row, bathIdx),
			Floor:        cellInt(row, floorIdx),
			For:          cellString(row, forIdx),
			PropertyType: cellString(row, typeIdx),
			URL:          cellString(row, urlIdx),
		})
	}
	return listings
}

func cellString(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[idx])
	if v == models.Unknown {
		return ""
	}
	return v
}

func cellInt(row []string, idx int) int {
	n, err := strconv.Atoi(cellString(row, idx))
	if err != nil {
		return 0
	}
	return n
}

func cellFloat(row []string, idx int) float64 {
	v, err := strconv.ParseFloat(cellString(row, idx), 64)
	if err != nil {
		return 0
	}
	return v
}
