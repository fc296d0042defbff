package extract

import (
	"time"

	"brokeragebd-scraper/models"
)

// Reconcile merges the candidates for one listing into a single record.
// Each field independently takes the first non-empty value in precedence
// order detail page > title > URL > card; price comes from the detail page
// or the summary card only. Any subset of sources may be absent (zero) and
// a best-effort record is still produced. Fields with no candidate anywhere
// get the Unknown marker so the persisted schema stays uniform.
func Reconcile(url string, detail, title, slug models.Candidate, card models.CardData) *models.Record {
	cardC := models.Candidate{
		Location: card.Location,
		Price:    card.Price,
	}

	rec := &models.Record{
		AreaSqft:     firstInt(detail.AreaSqft, title.AreaSqft, slug.AreaSqft, cardC.AreaSqft),
		Bedroom:      firstInt(detail.Bedrooms, title.Bedrooms, slug.Bedrooms, cardC.Bedrooms),
		Bathroom:     firstInt(detail.Bathrooms, title.Bathrooms, slug.Bathrooms, cardC.Bathrooms),
		Floor:        firstInt(detail.Floor, title.Floor, slug.Floor, cardC.Floor),
		Location:     orUnknown(firstString(detail.Location, title.Location, slug.Location, cardC.Location)),
		For:          orUnknown(firstString(detail.Intent, title.Intent, slug.Intent)),
		PropertyType: orUnknown(firstString(detail.PropertyType, title.PropertyType, slug.PropertyType)),
		URL:          url,
		ScrapedAt:    time.Now(),
	}

	price := firstString(detail.Price, cardC.Price)
	rec.Price = orUnknown(price)
	if price != "" {
		if v, ok := NormalizePrice(price); ok {
			rec.PriceBDT = v
		}
	}

	return rec
}

func firstInt(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" && v != models.Unknown {
			return v
		}
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return models.Unknown
	}
	return s
}
