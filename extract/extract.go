// Package extract turns messy listing text (titles, URL slugs, detail-page
// text) into typed field candidates. Every function is a pure function of its
// input: a pattern that does not match leaves the field unset, it never
// returns an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"brokeragebd-scraper/models"
)

// Area unit token sets for the two extraction call sites. The collection
// pass only ever sees "sft" on this site; the cleaning pass accepts the
// wider set found in historical data.
var (
	ScrapeAreaUnits = []string{"sft"}
	CleanAreaUnits  = []string{"sqft", "sft", "ft"}
)

// Plausible square-feet range enforced on detail-page text, where stray
// numbers (IDs, phone fragments) sit next to unit tokens.
const (
	minPlausibleArea = 100
	maxPlausibleArea = 10000
)

var (
	bedroomRegexp  = regexp.MustCompile(`(\d+)[-\s]*bedroom`)
	bathroomRegexp = regexp.MustCompile(`(\d+)[-\s]*(?:bathroom|bath)`)

	// "Floor: 5" / "floor 5" tried first, "5th Floor" as fallback.
	floorAfterRegexp  = regexp.MustCompile(`(?:floor|level)[\s:]*(\d+)`)
	floorBeforeRegexp = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)?\s*(?:floor|level)`)

	urlAreaRegexp     = regexp.MustCompile(`(\d+)-sft`)
	urlBedroomRegexp  = regexp.MustCompile(`(\d+)-bedroom`)
	urlLocationRegexp = regexp.MustCompile(`in-([^/]+)`)

	// Location in a title is the text after "in", up to the next comma,
	// period, or whitespace.
	titleLocationRegexp = regexp.MustCompile(`(?i)in\s+([^,]+?)(?:\s|$|,|\.)`)
)

var (
	areaMu    sync.Mutex
	areaCache = map[string]*regexp.Regexp{}
)

func areaRegexp(units []string) *regexp.Regexp {
	key := strings.Join(units, "|")
	areaMu.Lock()
	defer areaMu.Unlock()
	re, ok := areaCache[key]
	if !ok {
		re = regexp.MustCompile(`(\d+)\s*(?:` + key + `)`)
		areaCache[key] = re
	}
	return re
}

// ExtractArea returns the first integer immediately followed by one of the
// given unit tokens, or 0 if none. Matching is case-insensitive via
// lower-casing the input; no plausibility check is applied here.
func ExtractArea(text string, units []string) int {
	m := areaRegexp(units).FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// DetailArea scans detail-page text for an area value and applies the
// plausibility range, skipping matches outside it.
func DetailArea(text string) int {
	lower := strings.ReplaceAll(strings.ToLower(text), ",", "")
	re := areaRegexp([]string{"sq\\s*ft", "sqft", "sft"})
	for _, m := range re.FindAllStringSubmatch(lower, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n >= minPlausibleArea && n <= maxPlausibleArea {
			return n
		}
	}
	return 0
}

// ExtractBedrooms returns the integer preceding "bedroom", or 0.
func ExtractBedrooms(text string) int {
	return firstGroupInt(bedroomRegexp, strings.ToLower(text))
}

// ExtractBathrooms returns the integer preceding "bathroom" or "bath", or 0.
func ExtractBathrooms(text string) int {
	return firstGroupInt(bathroomRegexp, strings.ToLower(text))
}

// ExtractFloor finds a floor number adjacent to "floor" or "level" in either
// order. Floor 0 is indistinguishable from absent.
func ExtractFloor(text string) int {
	lower := strings.ToLower(text)
	if n := firstGroupInt(floorAfterRegexp, lower); n != 0 {
		return n
	}
	return firstGroupInt(floorBeforeRegexp, lower)
}

// ClassifyIntent labels text as Rent or Sell by substring presence. Rent is
// checked first, so text mentioning both rents.
func ClassifyIntent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "rent"):
		return models.IntentRent
	case strings.Contains(lower, "sale"), strings.Contains(lower, "sell"):
		return models.IntentSell
	}
	return ""
}

// IntentFromPageText is the stricter variant used on whole-page text, where
// a bare "rent" substring would misfire on unrelated copy.
func IntentFromPageText(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "for rent"), strings.Contains(lower, "available for rent"):
		return models.IntentRent
	case strings.Contains(lower, "for sale"), strings.Contains(lower, "available for sale"):
		return models.IntentSell
	}
	return ""
}

// IntentFromPrice infers intent from a price string: monthly wording means
// rent, crore/lakh magnitudes mean sale.
func IntentFromPrice(price string) string {
	lower := strings.ToLower(price)
	switch {
	case strings.Contains(lower, "per month"), strings.Contains(lower, "monthly"),
		strings.Contains(lower, "rent"):
		return models.IntentRent
	case strings.Contains(lower, "crore"), strings.Contains(lower, "lakh"):
		return models.IntentSell
	}
	return ""
}

// ClassifyPropertyType checks Flat, then Apartment, then House; first match
// wins.
func ClassifyPropertyType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "flat"):
		return models.TypeFlat
	case strings.Contains(lower, "apartment"):
		return models.TypeApartment
	case strings.Contains(lower, "house"):
		return models.TypeHouse
	}
	return ""
}

// LocationFromTitle returns the word following "in", e.g.
// "flat for sale in Uttara" yields "Uttara".
func LocationFromTitle(title string) string {
	m := titleLocationRegexp.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// LocationFromURL decodes a slug segment like "in-west-dhanmondi-k8" into
// "West Dhanmondi". Trailing tokens carrying digits are slug IDs, not part
// of the place name.
func LocationFromURL(url string) string {
	m := urlLocationRegexp.FindStringSubmatch(strings.ToLower(url))
	if m == nil {
		return ""
	}
	words := strings.Split(m[1], "-")
	for len(words) > 0 && strings.ContainsAny(words[len(words)-1], "0123456789") {
		words = words[:len(words)-1]
	}
	return titleCase(strings.Join(words, " "))
}

// FromTitle extracts every field a listing title can carry.
// Example: "1437 sft 3-bedroom flat is ready for sale in Uttara".
func FromTitle(title string) models.Candidate {
	if title == "" || title == models.Unknown {
		return models.Candidate{}
	}
	return models.Candidate{
		AreaSqft:     ExtractArea(title, ScrapeAreaUnits),
		Bedrooms:     ExtractBedrooms(title),
		Location:     LocationFromTitle(title),
		Intent:       ClassifyIntent(title),
		PropertyType: ClassifyPropertyType(title),
	}
}

// FromURL extracts fields from a listing URL slug.
// Example: ".../1200-sft-2-bedroom-flat-for-rent-in-dhanmondi-k8/".
func FromURL(url string) models.Candidate {
	if url == "" || url == models.Unknown {
		return models.Candidate{}
	}
	lower := strings.ToLower(url)
	c := models.Candidate{
		Location:     LocationFromURL(lower),
		Intent:       ClassifyIntent(lower),
		PropertyType: ClassifyPropertyType(lower),
	}
	if m := urlAreaRegexp.FindStringSubmatch(lower); m != nil {
		c.AreaSqft, _ = strconv.Atoi(m[1])
	}
	if m := urlBedroomRegexp.FindStringSubmatch(lower); m != nil {
		c.Bedrooms, _ = strconv.Atoi(m[1])
	}
	return c
}

func firstGroupInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
