package extract

import (
	"testing"

	"brokeragebd-scraper/models"
)

func TestReconcileTitleWinsOverURL(t *testing.T) {
	detail := models.Candidate{} // detail-page fetch failed
	title := models.Candidate{AreaSqft: 1200}
	slug := models.Candidate{AreaSqft: 1100}

	rec := Reconcile("https://brokeragebd.com/property/x/", detail, title, slug, models.CardData{})
	if rec.AreaSqft != 1200 {
		t.Errorf("AreaSqft = %d; want 1200 (title over URL)", rec.AreaSqft)
	}
}

func TestReconcileDetailWins(t *testing.T) {
	detail := models.Candidate{AreaSqft: 1437, Bedrooms: 3, Location: "Uttara Sector 4"}
	title := models.Candidate{AreaSqft: 1200, Bedrooms: 2, Location: "Uttara"}

	rec := Reconcile("u", detail, title, models.Candidate{}, models.CardData{Location: "Dhaka"})
	if rec.AreaSqft != 1437 || rec.Bedroom != 3 {
		t.Errorf("got area=%d bed=%d; want detail values 1437, 3", rec.AreaSqft, rec.Bedroom)
	}
	if rec.Location != "Uttara Sector 4" {
		t.Errorf("Location = %q; want detail value", rec.Location)
	}
}

func TestReconcilePriceFromCardOnly(t *testing.T) {
	// Price precedence is detail > card; title/URL are not price sources.
	rec := Reconcile("u", models.Candidate{}, models.Candidate{}, models.Candidate{},
		models.CardData{Price: "Tk 45 Lakh"})

	if rec.Price != "Tk 45 Lakh" {
		t.Errorf("Price = %q; want original card text", rec.Price)
	}
	if rec.PriceBDT != 4_500_000 {
		t.Errorf("PriceBDT = %v; want 4500000", rec.PriceBDT)
	}
}

func TestReconcileAllSourcesAbsent(t *testing.T) {
	rec := Reconcile("u", models.Candidate{}, models.Candidate{}, models.Candidate{}, models.CardData{})

	for name, got := range map[string]string{
		"Location":     rec.Location,
		"Price":        rec.Price,
		"For":          rec.For,
		"PropertyType": rec.PropertyType,
	} {
		if got != models.Unknown {
			t.Errorf("%s = %q; want %q", name, got, models.Unknown)
		}
	}
	if rec.AreaSqft != 0 || rec.Bedroom != 0 || rec.Bathroom != 0 || rec.Floor != 0 {
		t.Errorf("numeric fields should stay zero, got %+v", rec)
	}
	if rec.PriceBDT != 0 {
		t.Errorf("PriceBDT = %v; want 0", rec.PriceBDT)
	}
}

func TestReconcileUnparseablePrice(t *testing.T) {
	rec := Reconcile("u", models.Candidate{Price: "Negotiable"}, models.Candidate{},
		models.Candidate{}, models.CardData{})

	if rec.Price != "Negotiable" {
		t.Errorf("Price = %q; want original text kept", rec.Price)
	}
	if rec.PriceBDT != 0 {
		t.Errorf("PriceBDT = %v; want 0 for unparseable price", rec.PriceBDT)
	}
}
