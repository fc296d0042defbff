package brokeragebd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"brokeragebd-scraper/extract"
	"brokeragebd-scraper/models"
)

// pageCard pairs a discovered listing URL with the summary-card texts found
// around its link.
type pageCard struct {
	URL  string
	Card models.CardData
}

// Selector fallback chains for the listing site's markup. Tried in order,
// first hit wins.
var (
	cardSelectors = []string{
		"div.item-listing-wrap",
		".item-listing-wrap",
		"[class*='item-listing']",
		"[class*='listing-item']",
		".property-item",
		"[class*='property-card']",
	}
	cardLinkSelectors = []string{
		"h2.item-title a",
		"h2 a",
		".item-title a",
		"a[href*='/property/']",
		"a",
	}
	locationSelectors = []string{
		"address.item-address",
		"address",
		".item-address",
		"[class*='address']",
		"[class*='location']",
	}
	priceSelectors = []string{
		"span.item-price",
		".item-price",
		"[class*='price']",
	}
	nextLinkSelectors = []string{
		"a[rel='next']",
		"li.next a",
		"a.next",
		"[class*='pagination'] a",
		".page-numbers a",
		"nav a",
	}
)

var currencyTokens = []string{"bdt", "tk", "lakh", "crore", "৳"}

// parseListingPage extracts listing cards from a results page. Cards found
// via the card selectors come first; a direct sweep over /property/ links
// catches anything the card markup missed.
func parseListingPage(html, pageURL string) ([]pageCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url %q: %w", pageURL, err)
	}

	var cards []pageCard
	seen := make(map[string]struct{})

	doc.Find(bestCardSelector(doc)).Each(func(_ int, sel *goquery.Selection) {
		link, href := findCardLink(sel, base)
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = strings.TrimSpace(link.AttrOr("title", ""))
		}
		if title == "" {
			title = models.Unknown
		}

		cards = append(cards, pageCard{
			URL: href,
			Card: models.CardData{
				Title:    title,
				Location: firstText(sel, locationSelectors),
				Price:    firstText(sel, priceSelectors),
			},
		})
	})

	// Direct link sweep catches listings outside any recognized card markup.
	doc.Find("a[href*='/property/']").Each(func(_ int, link *goquery.Selection) {
		href := resolveListingURL(base, link.AttrOr("href", ""))
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = strings.TrimSpace(link.AttrOr("title", ""))
		}
		if title == "" {
			title = models.Unknown
		}
		cards = append(cards, pageCard{URL: href, Card: models.CardData{Title: title}})
	})

	return cards, nil
}

// bestCardSelector picks the selector matching the most elements, the way
// the site's inconsistent markup demands.
func bestCardSelector(doc *goquery.Document) string {
	best := cardSelectors[0]
	bestCount := 0
	for _, sel := range cardSelectors {
		if n := doc.Find(sel).Length(); n > bestCount {
			best = sel
			bestCount = n
		}
	}
	return best
}

func findCardLink(card *goquery.Selection, base *url.URL) (*goquery.Selection, string) {
	for _, sel := range cardLinkSelectors {
		link := card.Find(sel).First()
		if link.Length() == 0 {
			continue
		}
		if href := resolveListingURL(base, link.AttrOr("href", "")); href != "" {
			return link, href
		}
	}
	return nil, ""
}

// resolveListingURL makes href absolute, strips fragments, and keeps only
// listing URLs.
func resolveListingURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	abs := u.String()
	if !strings.Contains(abs, "/property/") {
		return ""
	}
	return abs
}

// findNextPageURL locates the link to the page after pageNum: an explicit
// next control first, then a numbered pagination link.
func findNextPageURL(html, pageURL string, pageNum int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	nextTexts := []string{"next", ">", "›", "»", "→"}
	var next string

	for _, sel := range nextLinkSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			text := strings.ToLower(strings.TrimSpace(link.Text()))
			for _, t := range nextTexts {
				if text == t {
					if u, err := base.Parse(link.AttrOr("href", "")); err == nil {
						next = u.String()
						return false
					}
				}
			}
			return true
		})
		if next != "" {
			return next
		}
	}

	// Fall back to the link labelled with the following page number.
	want := strconv.Itoa(pageNum + 1)
	doc.Find("[class*='pagination'] a, .page-numbers a, nav a").
		EachWithBreak(func(_ int, link *goquery.Selection) bool {
			if strings.TrimSpace(link.Text()) != want {
				return true
			}
			if u, err := base.Parse(link.AttrOr("href", "")); err == nil {
				next = u.String()
				return false
			}
			return true
		})
	return next
}

// parseDetail extracts a field candidate from a detail page.
func parseDetail(html, pageURL string) (models.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Candidate{}, fmt.Errorf("parse detail page: %w", err)
	}

	body := doc.Find("body").Text()

	c := models.Candidate{
		AreaSqft:  extract.DetailArea(body),
		Bedrooms:  extract.ExtractBedrooms(body),
		Bathrooms: extract.ExtractBathrooms(body),
		Floor:     extract.ExtractFloor(body),
		Price:     findDetailPrice(doc),
		Location:  findDetailLocation(doc),
	}

	c.Intent = extract.ClassifyIntent(pageURL)
	if c.Intent == "" {
		c.Intent = extract.IntentFromPageText(body)
	}
	if c.Price != "" {
		switch extract.IntentFromPrice(c.Price) {
		case models.IntentRent:
			// Monthly wording in the price is decisive.
			c.Intent = models.IntentRent
		case models.IntentSell:
			if c.Intent == "" {
				c.Intent = models.IntentSell
			}
		}
	}

	c.PropertyType = extract.ClassifyPropertyType(body)
	if c.PropertyType == "" {
		c.PropertyType = extract.ClassifyPropertyType(pageURL)
	}

	return c, nil
}

// findDetailPrice walks the price selector chain and returns the first
// element text carrying a currency token.
func findDetailPrice(doc *goquery.Document) string {
	for _, sel := range priceSelectors {
		var price string
		doc.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			lower := strings.ToLower(text)
			for _, tok := range currencyTokens {
				if strings.Contains(lower, tok) {
					price = text
					return false
				}
			}
			return true
		})
		if price != "" {
			return price
		}
	}
	return ""
}

// findDetailLocation returns the first non-trivial text from the location
// selector chain.
func findDetailLocation(doc *goquery.Document) string {
	for _, sel := range locationSelectors {
		var loc string
		doc.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if len(text) > 2 && text != models.Unknown {
				loc = text
				return false
			}
			return true
		})
		if loc != "" {
			return loc
		}
	}
	return ""
}

func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
