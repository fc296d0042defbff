package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberRegexp matches the first decimal-or-integer token in a price string.
var numberRegexp = regexp.MustCompile(`[\d.]+`)

type multiplier struct {
	tokens []string
	factor float64
}

// priceRules parameterize the two historical call sites of price
// normalization. Multiplier tokens are matched as plain substrings, checked
// in order, first hit wins.
type priceRules struct {
	strip       []string
	multipliers []multiplier
	round       bool
}

// Collection-run rules. The bare "k" token is a known fragility: any
// remaining "k" in the text selects the thousand multiplier.
var scrapeRules = priceRules{
	strip: []string{"bdt", "tk"},
	multipliers: []multiplier{
		{tokens: []string{"crore"}, factor: 10_000_000},
		{tokens: []string{"lakh", "lac"}, factor: 100_000},
		{tokens: []string{"thousand", "k"}, factor: 1_000},
	},
	round: true,
}

// Cleaning-run rules: crore and lakh only, no rounding.
var cleanRules = priceRules{
	multipliers: []multiplier{
		{tokens: []string{"crore"}, factor: 10_000_000},
		{tokens: []string{"lakh"}, factor: 100_000},
	},
}

// NormalizePrice converts a free-text price like "Tk 1.2 Crore" into BDT,
// rounded to 2 decimal places. The second return is false when no numeric
// token could be extracted.
func NormalizePrice(raw string) (float64, bool) {
	return normalizePrice(raw, scrapeRules)
}

// CleanPrice is the dataset-cleaning variant: it recognizes only crore and
// lakh multipliers and does not round.
func CleanPrice(raw string) (float64, bool) {
	return normalizePrice(raw, cleanRules)
}

func normalizePrice(raw string, rules priceRules) (float64, bool) {
	s := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	for _, tok := range rules.strip {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	factor := 1.0
	for _, m := range rules.multipliers {
		if containsAny(s, m.tokens) {
			factor = m.factor
			break
		}
	}

	numTok := numberRegexp.FindString(s)
	if numTok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(numTok, 64)
	if err != nil {
		return 0, false
	}

	v *= factor
	if rules.round {
		v = math.Round(v*100) / 100
	}
	return v, true
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
