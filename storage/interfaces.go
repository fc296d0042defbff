package storage

import "brokeragebd-scraper/models"

// RecordWriter persists the raw collection output.
type RecordWriter interface {
	WriteAll(records []*models.Record) error
	Close() error
}

// CleanListingWriter is the interface any cleaned-data backend must satisfy.
type CleanListingWriter interface {
	Write(listings []*models.CleanListing) error
	Close() error
}
