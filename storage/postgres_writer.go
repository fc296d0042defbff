package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"brokeragebd-scraper/models"
)

// PostgresWriter persists cleaned listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id            SERIAL PRIMARY KEY,
			location      TEXT          NOT NULL DEFAULT '',
			area_sqft     INTEGER       NOT NULL DEFAULT 0,
			price_text    TEXT          NOT NULL DEFAULT '',
			price_bdt     NUMERIC(14,2) NOT NULL,
			bedroom       INTEGER       NOT NULL DEFAULT 0,
			bathroom      INTEGER       NOT NULL DEFAULT 0,
			floor         INTEGER       NOT NULL DEFAULT 0,
			listing_for   VARCHAR(10)   NOT NULL DEFAULT '',
			property_type VARCHAR(20)   NOT NULL DEFAULT '',
			url           TEXT          UNIQUE NOT NULL,
			created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_price_bdt ON listings(price_bdt);
		CREATE INDEX IF NOT EXISTS idx_listings_location  ON listings(location);
		CREATE INDEX IF NOT EXISTS idx_listings_for       ON listings(listing_for);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	if _, err := pw.db.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts all cleaned listings, clearing old data first.
func (pw *PostgresWriter) Write(listings []*models.CleanListing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.CleanListing) error {
	const cols = 10
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.Location, l.AreaSqft, l.PriceText, l.PriceBDT,
			l.Bedroom, l.Bathroom, l.Floor, l.For, l.PropertyType, l.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (location, area_sqft, price_text, price_bdt,
			bedroom, bathroom, floor, listing_for, property_type, url)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings, used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.CleanListing, error) {
	rows, err := pw.db.Query(`
		SELECT id, location, area_sqft, price_text, price_bdt,
		       bedroom, bathroom, floor, listing_for, property_type, url, created_at
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.CleanListing
	for rows.Next() {
		l := &models.CleanListing{}
		if err := rows.Scan(
			&l.ID, &l.Location, &l.AreaSqft, &l.PriceText, &l.PriceBDT,
			&l.Bedroom, &l.Bathroom, &l.Floor, &l.For, &l.PropertyType,
			&l.URL, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
