package services

import (
	"reflect"
	"testing"

	"brokeragebd-scraper/storage"
	"brokeragebd-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func sampleTable() *storage.Table {
	return &storage.Table{
		Header: []string{"title", "price", "location"},
		Rows: [][]string{
			{"1437 sqft flat for sale in Uttara", "Tk 1.2 Crore", "  Uttara  "},
			{"2 bedroom flat", "45 lakh", "Dhanmondi"},
			{"2 bedroom flat", "45 lakh", "Dhanmondi"}, // exact duplicate
			{"nice view", "Negotiable", "Banani"},      // no numeric price
		},
	}
}

func TestCleanerDerivesColumns(t *testing.T) {
	c := NewCleaner(newTestLogger())

	out, err := c.Clean(sampleTable())
	if err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}

	cleanIdx := out.Column("price_clean")
	areaIdx := out.Column("area_sqft")
	if cleanIdx < 0 || areaIdx < 0 {
		t.Fatalf("derived columns missing, header = %v", out.Header)
	}

	if len(out.Rows) != 2 {
		t.Fatalf("got %d rows; want 2 (duplicate and priceless rows dropped)", len(out.Rows))
	}

	first := out.Rows[0]
	if first[cleanIdx] != "12000000" {
		t.Errorf("price_clean = %q; want 12000000", first[cleanIdx])
	}
	if first[areaIdx] != "1437" {
		t.Errorf("area_sqft = %q; want 1437", first[areaIdx])
	}
	if first[out.Column("location")] != "Uttara" {
		t.Errorf("location = %q; want trimmed %q", first[out.Column("location")], "Uttara")
	}
}

func TestCleanerInvariants(t *testing.T) {
	c := NewCleaner(newTestLogger())

	out, err := c.Clean(sampleTable())
	if err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}

	cleanIdx := out.Column("price_clean")
	seen := make(map[string]struct{})
	for _, row := range out.Rows {
		if row[cleanIdx] == "" {
			t.Errorf("row with empty price_clean survived: %v", row)
		}
		key := row[0] + "|" + row[1] + "|" + row[2]
		if _, dup := seen[key]; dup {
			t.Errorf("duplicate row survived: %v", row)
		}
		seen[key] = struct{}{}
	}
}

func TestCleanerIdempotent(t *testing.T) {
	c := NewCleaner(newTestLogger())

	once, err := c.Clean(sampleTable())
	if err != nil {
		t.Fatalf("first Clean: %v", err)
	}
	twice, err := c.Clean(once)
	if err != nil {
		t.Fatalf("second Clean: %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("cleaning its own output changed it:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestCleanerCaseInsensitiveColumns(t *testing.T) {
	c := NewCleaner(newTestLogger())

	// The raw collection schema uses capitalized column names.
	in := &storage.Table{
		Header: []string{"Location", "Price", "URL"},
		Rows: [][]string{
			{" Gulshan ", "Tk 90 Lakh", "https://brokeragebd.com/property/a/"},
		},
	}

	out, err := c.Clean(in)
	if err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(out.Rows))
	}
	if got := out.Rows[0][out.Column("price_clean")]; got != "9000000" {
		t.Errorf("price_clean = %q; want 9000000", got)
	}
	if got := out.Rows[0][out.Column("Location")]; got != "Gulshan" {
		t.Errorf("Location = %q; want trimmed %q", got, "Gulshan")
	}
}

func TestCleanerRequiresPriceColumn(t *testing.T) {
	c := NewCleaner(newTestLogger())

	_, err := c.Clean(&storage.Table{Header: []string{"title", "location"}})
	if err == nil {
		t.Fatal("expected error for table without price column")
	}
}
