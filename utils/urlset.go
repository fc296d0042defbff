package utils

import "time"

// URLSet tracks discovered URLs in insertion order. Collection is strictly
// sequential, so no locking is needed; the set has a single owner.
type URLSet struct {
	seen  map[string]struct{}
	order []string
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Contains returns true if the URL has already been seen.
func (s *URLSet) Contains(url string) bool {
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	return len(s.seen)
}

// URLs returns the tracked URLs in the order they were added.
func (s *URLSet) URLs() []string {
	return s.order
}

// RateLimiter enforces a minimum interval between page visits.
type RateLimiter struct {
	minInterval time.Duration
	last        time.Time
}

// NewRateLimiter creates a RateLimiter with the given interval in
// milliseconds.
func NewRateLimiter(ms int) *RateLimiter {
	return &RateLimiter{minInterval: time.Duration(ms) * time.Millisecond}
}

// Wait sleeps until at least the configured interval has passed since the
// previous call.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		if elapsed := time.Since(r.last); elapsed < r.minInterval {
			time.Sleep(r.minInterval - elapsed)
		}
	}
	r.last = time.Now()
}
