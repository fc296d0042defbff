package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"brokeragebd-scraper/models"
)

// rawHeader is the fixed schema of the raw dataset.
var rawHeader = []string{
	"Location", "Area_sqft", "Price", "Price_BDT",
	"Bedroom", "Bathroom", "Floor", "For", "Property_Type", "URL",
}

// RawWriter writes collected records to the raw CSV dataset. The whole run
// is flushed once via WriteAll; there is no incremental persistence.
type RawWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewRawWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewRawWriter(path string) (*RawWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rawHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &RawWriter{file: f, writer: w}, nil
}

// WriteAll writes one row per record. Unset fields are serialized as the
// Unknown marker so every column is populated.
func (r *RawWriter) WriteAll(records []*models.Record) error {
	for _, rec := range records {
		row := []string{
			rec.Location,
			naInt(rec.AreaSqft),
			rec.Price,
			naFloat(rec.PriceBDT),
			naInt(rec.Bedroom),
			naInt(rec.Bathroom),
			naInt(rec.Floor),
			rec.For,
			rec.PropertyType,
			rec.URL,
		}
		if err := r.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	r.writer.Flush()
	return r.writer.Error()
}

// Close flushes and closes the underlying file.
func (r *RawWriter) Close() error {
	r.writer.Flush()
	return r.file.Close()
}

func naInt(v int) string {
	if v == 0 {
		return models.Unknown
	}
	return strconv.Itoa(v)
}

func naFloat(v float64) string {
	if v == 0 {
		return models.Unknown
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
