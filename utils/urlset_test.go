package utils

import "testing"

func TestURLSetAdd(t *testing.T) {
	s := NewURLSet()

	if !s.Add("https://brokeragebd.com/property/a/") {
		t.Error("first Add returned false")
	}
	if s.Add("https://brokeragebd.com/property/a/") {
		t.Error("duplicate Add returned true")
	}
	if !s.Contains("https://brokeragebd.com/property/a/") {
		t.Error("Contains returned false for tracked URL")
	}
	if s.Size() != 1 {
		t.Errorf("Size = %d; want 1", s.Size())
	}
}

func TestURLSetPreservesOrder(t *testing.T) {
	s := NewURLSet()
	s.Add("b")
	s.Add("a")
	s.Add("b")
	s.Add("c")

	got := s.URLs()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("URLs = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("URLs = %v; want %v", got, want)
		}
	}
}
