package models

import "time"

// Unknown is the marker written to the raw dataset for fields no source
// could provide. The output schema stays uniform: a column is never empty.
const Unknown = "N/A"

// Listing intent values.
const (
	IntentRent = "Rent"
	IntentSell = "Sell"
)

// Property type values.
const (
	TypeFlat      = "Flat"
	TypeApartment = "Apartment"
	TypeHouse     = "House"
)

// CardData holds the summary-card texts captured next to a listing link
// during discovery. Any field may be empty.
type CardData struct {
	Title    string
	Location string
	Price    string
}

// Candidate holds the fields extracted from one source (title, URL slug, or
// detail page). Zero values mean the pattern did not match; absence is
// valid, not an error.
type Candidate struct {
	AreaSqft     int
	Bedrooms     int
	Bathrooms    int
	Floor        int
	Location     string
	Price        string
	Intent       string
	PropertyType string
}

// Record is the reconciled unit persisted to the raw dataset, one row per
// distinct listing URL. Integer zero and empty string fields are serialized
// as the Unknown marker.
type Record struct {
	Location     string
	AreaSqft     int
	Price        string
	PriceBDT     float64
	Bedroom      int
	Bathroom     int
	Floor        int
	For          string
	PropertyType string
	URL          string
	ScrapedAt    time.Time
}

// CleanListing is a cleaned row ready for Postgres storage and reporting.
// Every CleanListing carries a valid PriceBDT.
type CleanListing struct {
	ID           int64
	Location     string
	AreaSqft     int
	PriceText    string
	PriceBDT     float64
	Bedroom      int
	Bathroom     int
	Floor        int
	For          string
	PropertyType string
	URL          string
	CreatedAt    time.Time
}

// Report holds the computed analytics over the cleaned dataset.
type Report struct {
	TotalListings      int
	WithArea           int
	WithBedrooms       int
	AveragePrice       float64
	MinPrice           float64
	MaxPrice           float64
	MostExpensive      *CleanListing
	ByIntent           map[string]int
	ByPropertyType     map[string]int
	ListingsByLocation map[string]int
}
