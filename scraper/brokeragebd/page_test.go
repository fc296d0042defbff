package brokeragebd

import (
	"testing"

	"brokeragebd-scraper/models"
)

const listingPageHTML = `
<html><body>
<div class="listings">
  <div class="item-listing-wrap">
    <h2 class="item-title">
      <a href="/property/1437-sft-3-bedroom-flat-is-ready-for-sale-in-uttara-k4/">1437 sft 3-bedroom flat is ready for sale in Uttara</a>
    </h2>
    <address class="item-address">Uttara, Dhaka</address>
    <span class="item-price">Tk 1.2 Crore</span>
  </div>
  <div class="item-listing-wrap">
    <h2 class="item-title">
      <a href="https://brokeragebd.com/property/1200-sft-2-bedroom-flat-for-rent-in-dhanmondi-k8/">1200 sft 2-bedroom flat for rent in Dhanmondi</a>
    </h2>
    <address class="item-address">Dhanmondi, Dhaka</address>
    <span class="item-price">Tk 45,000 per month</span>
  </div>
</div>
<p>Also featured: <a href="/property/house-for-sale-in-banani-h2/#gallery">House in Banani</a></p>
<nav class="pagination">
  <a href="/page/1/">1</a>
  <a href="/page/2/">2</a>
  <a href="/page/2/" class="next">Next</a>
</nav>
</body></html>`

func TestParseListingPage(t *testing.T) {
	cards, err := parseListingPage(listingPageHTML, "https://brokeragebd.com/")
	if err != nil {
		t.Fatalf("parseListingPage: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("got %d cards; want 3 (2 structured + 1 direct link)", len(cards))
	}

	first := cards[0]
	if first.URL != "https://brokeragebd.com/property/1437-sft-3-bedroom-flat-is-ready-for-sale-in-uttara-k4/" {
		t.Errorf("first URL = %q", first.URL)
	}
	if first.Card.Title != "1437 sft 3-bedroom flat is ready for sale in Uttara" {
		t.Errorf("first title = %q", first.Card.Title)
	}
	if first.Card.Location != "Uttara, Dhaka" {
		t.Errorf("first location = %q", first.Card.Location)
	}
	if first.Card.Price != "Tk 1.2 Crore" {
		t.Errorf("first price = %q", first.Card.Price)
	}

	// The bare direct link has no surrounding card data but keeps its text
	// as a title; the URL fragment must be stripped.
	direct := cards[2]
	if direct.URL != "https://brokeragebd.com/property/house-for-sale-in-banani-h2/" {
		t.Errorf("direct URL = %q", direct.URL)
	}
	if direct.Card.Title != "House in Banani" {
		t.Errorf("direct title = %q", direct.Card.Title)
	}
	if direct.Card.Price != "" {
		t.Errorf("direct price = %q; want empty", direct.Card.Price)
	}
}

func TestParseListingPageDeduplicates(t *testing.T) {
	cards, err := parseListingPage(listingPageHTML, "https://brokeragebd.com/")
	if err != nil {
		t.Fatalf("parseListingPage: %v", err)
	}

	seen := make(map[string]struct{})
	for _, c := range cards {
		if _, dup := seen[c.URL]; dup {
			t.Errorf("duplicate URL in result: %s", c.URL)
		}
		seen[c.URL] = struct{}{}
	}
}

func TestFindNextPageURL(t *testing.T) {
	next := findNextPageURL(listingPageHTML, "https://brokeragebd.com/", 1)
	if next != "https://brokeragebd.com/page/2/" {
		t.Errorf("next = %q; want %q", next, "https://brokeragebd.com/page/2/")
	}
}

func TestFindNextPageURLNumberedFallback(t *testing.T) {
	html := `<html><body>
	<nav class="pagination"><a href="/page/1/">1</a><a href="/page/2/">2</a></nav>
	</body></html>`

	next := findNextPageURL(html, "https://brokeragebd.com/", 1)
	if next != "https://brokeragebd.com/page/2/" {
		t.Errorf("next = %q; want numbered link to page 2", next)
	}

	if got := findNextPageURL(html, "https://brokeragebd.com/page/2/", 2); got != "" {
		t.Errorf("next after last page = %q; want empty", got)
	}
}

const detailPageHTML = `
<html><body>
<h1>1437 sft 3-bedroom flat is ready for sale in Uttara</h1>
<address class="item-address">House 12, Road 7, Uttara Sector 4, Dhaka</address>
<span class="item-price">Tk 1.2 Crore</span>
<div class="property-features">
  <span>Apartment size: 1,437 sft</span>
  <span>3 Bedroom</span>
  <span>3 Bathroom</span>
  <span>Floor: 5</span>
</div>
</body></html>`

func TestParseDetail(t *testing.T) {
	c, err := parseDetail(detailPageHTML,
		"https://brokeragebd.com/property/1437-sft-3-bedroom-flat-is-ready-for-sale-in-uttara-k4/")
	if err != nil {
		t.Fatalf("parseDetail: %v", err)
	}

	if c.AreaSqft != 1437 {
		t.Errorf("AreaSqft = %d; want 1437", c.AreaSqft)
	}
	if c.Bedrooms != 3 {
		t.Errorf("Bedrooms = %d; want 3", c.Bedrooms)
	}
	if c.Bathrooms != 3 {
		t.Errorf("Bathrooms = %d; want 3", c.Bathrooms)
	}
	if c.Floor != 5 {
		t.Errorf("Floor = %d; want 5", c.Floor)
	}
	if c.Price != "Tk 1.2 Crore" {
		t.Errorf("Price = %q; want %q", c.Price, "Tk 1.2 Crore")
	}
	if c.Location != "House 12, Road 7, Uttara Sector 4, Dhaka" {
		t.Errorf("Location = %q", c.Location)
	}
	if c.Intent != models.IntentSell {
		t.Errorf("Intent = %q; want Sell", c.Intent)
	}
}

func TestParseDetailRentFromPrice(t *testing.T) {
	html := `<html><body>
	<span class="item-price">Tk 45,000 per month</span>
	<p>2 bedroom unit, Floor 3</p>
	</body></html>`

	c, err := parseDetail(html, "https://brokeragebd.com/property/flat-in-mirpur-x1/")
	if err != nil {
		t.Fatalf("parseDetail: %v", err)
	}
	if c.Intent != models.IntentRent {
		t.Errorf("Intent = %q; want Rent (monthly price wording)", c.Intent)
	}
}
