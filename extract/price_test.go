package extract

import "testing"

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1.2 Crore", 12_000_000, true},
		{"Tk 1.2 Crore", 12_000_000, true},
		{"45 lakh", 4_500_000, true},
		{"Tk 45 Lakh", 4_500_000, true},
		{"60 Lac", 6_000_000, true},
		{"BDT 35,00,000", 3_500_000, true},
		{"25 thousand per month", 25_000, true},
		{"80k", 80_000, true},
		{"15000", 15_000, true},
		{"3.14159k", 3141.59, true}, // rounded to 2 decimals
		{"Negotiable", 0, false},
		{"", 0, false},
		{"Tk", 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizePrice(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizePrice(%q) = %v, %v; want %v, %v",
				tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

// The bare "k" multiplier is matched as a substring, so any stray "k" in the
// text triggers the thousand multiplier. This pins the legacy behavior.
func TestNormalizePriceBareKSubstring(t *testing.T) {
	got, ok := NormalizePrice("500 per week")
	if !ok || got != 500_000 {
		t.Errorf("NormalizePrice(%q) = %v, %v; want 500000, true", "500 per week", got, ok)
	}
}

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"Tk 1.2 Crore", 12_000_000, true},
		{"45 lakh", 4_500_000, true},
		{"12,00,000", 1_200_000, true},
		{"50 thousand", 50, true}, // cleaning variant knows no thousand multiplier
		{"80k", 80, true},         // nor bare k
		{"Negotiable", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := CleanPrice(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CleanPrice(%q) = %v, %v; want %v, %v",
				tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
