package services

import (
	"fmt"
	"strconv"
	"strings"

	"brokeragebd-scraper/extract"
	"brokeragebd-scraper/storage"
	"brokeragebd-scraper/utils"
)

// Cleaner runs the dataset-cleaning pass over a previously collected raw
// table: it re-derives the numeric price and the area from text, trims
// locations, and drops duplicate rows and rows without a valid price.
// The pass is idempotent: cleaning its own output changes nothing.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean returns a new cleaned table; the input table is not modified.
// Columns are resolved case-insensitively. A price column is required;
// the title and location transforms are skipped when their source column
// is absent. The derived columns price_clean and area_sqft are added
// (or overwritten when already present).
func (c *Cleaner) Clean(t *storage.Table) (*storage.Table, error) {
	if t.Column("price") < 0 {
		return nil, fmt.Errorf("cleaner: input table has no price column")
	}

	out := copyTable(t)
	priceIdx := out.Column("price")
	titleIdx := out.Column("title")
	locIdx := out.Column("location")
	cleanIdx := out.EnsureColumn("price_clean")
	areaIdx := out.EnsureColumn("area_sqft")

	for _, row := range out.Rows {
		if v, ok := extract.CleanPrice(row[priceIdx]); ok {
			row[cleanIdx] = strconv.FormatFloat(v, 'f', -1, 64)
		} else {
			row[cleanIdx] = ""
		}

		if titleIdx >= 0 {
			if a := extract.ExtractArea(row[titleIdx], extract.CleanAreaUnits); a > 0 {
				row[areaIdx] = strconv.Itoa(a)
			} else {
				row[areaIdx] = ""
			}
		}

		if locIdx >= 0 {
			row[locIdx] = strings.TrimSpace(row[locIdx])
		}
	}

	total := len(out.Rows)
	out.Rows = dedupRows(out.Rows)
	dupes := total - len(out.Rows)

	kept := out.Rows[:0]
	for _, row := range out.Rows {
		if row[cleanIdx] != "" {
			kept = append(kept, row)
		}
	}
	noPrice := len(out.Rows) - len(kept)
	out.Rows = kept

	c.logger.Info("[cleaner] %d rows in, %d out (dropped %d duplicates, %d without price)",
		total, len(out.Rows), dupes, noPrice)
	return out, nil
}

func copyTable(t *storage.Table) *storage.Table {
	out := &storage.Table{Header: append([]string(nil), t.Header...)}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out
}

// dedupRows drops rows that are exact duplicates across all columns,
// keeping the first occurrence.
func dedupRows(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	result := rows[:0]
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, row)
	}
	return result
}
