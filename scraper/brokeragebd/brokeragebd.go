// Package brokeragebd drives browser-based collection of property listings
// from brokeragebd.com. Discovery walks the paginated result pages and
// records every listing URL with its summary-card texts; processing then
// visits each detail page and reconciles all sources into one record per
// listing. Processing is strictly sequential: a listing is fully assembled
// before the next one starts.
package brokeragebd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"brokeragebd-scraper/config"
	"brokeragebd-scraper/extract"
	"brokeragebd-scraper/models"
	"brokeragebd-scraper/utils"
)

// Scraper orchestrates the collection run.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	visited *utils.URLSet
	retry   *utils.RetryConfig
	limiter *utils.RateLimiter

	cards   map[string]models.CardData
	records []*models.Record
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		visited: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		limiter: utils.NewRateLimiter(cfg.RateLimitMs),
		cards:   make(map[string]models.CardData),
	}
}

// Scrape runs discovery and then per-listing processing. Only a total
// inability to discover listings is an error; individual listing failures
// degrade to partial records.
func (s *Scraper) Scrape() ([]*models.Record, error) {
	s.logger.Info("[brokeragebd] Starting scrape — start URL: %s, max pages: %d",
		s.cfg.StartURL, s.cfg.MaxPages)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[brokeragebd] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	if err := s.discover(allocCtx); err != nil {
		return nil, err
	}
	if s.visited.Size() == 0 {
		return nil, fmt.Errorf("discovery found no listing URLs")
	}

	urls := s.visited.URLs()
	s.logger.Info("[brokeragebd] Discovery complete — %d unique listings", len(urls))

	for i, u := range urls {
		s.logger.Info("[brokeragebd] [%d/%d] %s", i+1, len(urls), truncateURL(u))
		s.records = append(s.records, s.processListing(allocCtx, u))
	}

	s.logger.Info("[brokeragebd] Scrape complete — %d records", len(s.records))
	return s.records, nil
}

// discover walks the paginated result pages, collecting listing URLs and
// card data until pagination runs out or MaxPages is reached.
func (s *Scraper) discover(allocCtx context.Context) error {
	currentURL := s.cfg.StartURL

	for page := 1; page <= s.cfg.MaxPages; page++ {
		s.limiter.Wait()

		html, err := s.fetchListingPage(allocCtx, currentURL, page)
		if err != nil {
			if page == 1 {
				return fmt.Errorf("load first results page: %w", err)
			}
			s.logger.Error("[brokeragebd] Page %d failed: %v — stopping discovery", page, err)
			return nil
		}

		cards, err := parseListingPage(html, currentURL)
		if err != nil {
			s.logger.Error("[brokeragebd] Page %d parse failed: %v — stopping discovery", page, err)
			return nil
		}

		added := 0
		for _, c := range cards {
			if s.visited.Add(c.URL) {
				s.cards[c.URL] = c.Card
				added++
			}
		}
		s.logger.Info("[brokeragebd] Page %d — %d cards, %d new URLs (total %d)",
			page, len(cards), added, s.visited.Size())

		if added == 0 && page > 1 {
			s.logger.Warn("[brokeragebd] Page %d yielded no new listings — stopping", page)
			return nil
		}

		next := findNextPageURL(html, currentURL, page)
		if next == "" {
			// No pagination control; probe the conventional /page/N path.
			next = guessNextPageURL(s.cfg.StartURL, page+1)
			s.logger.Debug("[brokeragebd] No next link on page %d, trying %s", page, next)
		}
		if next == "" || next == currentURL {
			s.logger.Info("[brokeragebd] No next page after %d — discovery done", page)
			return nil
		}
		currentURL = next
	}
	return nil
}

// fetchListingPage navigates to a results page, scrolls until no more cards
// load, and returns the final HTML.
func (s *Scraper) fetchListingPage(allocCtx context.Context, pageURL string, pageNum int) (string, error) {
	var html string

	err := s.retry.Do(fmt.Sprintf("listing-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		actions := []chromedp.Action{
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4 * time.Second),
		}
		for i := 0; i < s.cfg.MaxScrolls; i++ {
			actions = append(actions,
				chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
				chromedp.Sleep(1500*time.Millisecond),
			)
		}
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
			chromedp.Sleep(time.Second),
			chromedp.OuterHTML("html", &html),
		)

		if err := chromedp.Run(ctx, actions...); err != nil {
			return fmt.Errorf("chromedp listing page: %w", err)
		}
		return nil
	})

	return html, err
}

// processListing assembles one record from all sources. A detail-page
// failure degrades to a record built from title, URL, and card data so the
// listing is not lost.
func (s *Scraper) processListing(allocCtx context.Context, listingURL string) *models.Record {
	card := s.cards[listingURL]
	titleC := extract.FromTitle(card.Title)
	slugC := extract.FromURL(listingURL)

	detailC, err := s.fetchDetail(allocCtx, listingURL)
	if err != nil {
		s.logger.Warn("[brokeragebd] Detail page failed for %s: %v — emitting partial record",
			truncateURL(listingURL), err)
		detailC = models.Candidate{}
	}

	return extract.Reconcile(listingURL, detailC, titleC, slugC, card)
}

// fetchDetail visits a property detail page and extracts a field candidate.
func (s *Scraper) fetchDetail(allocCtx context.Context, listingURL string) (models.Candidate, error) {
	s.limiter.Wait()

	var html string
	err := s.retry.Do("detail-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		if err := chromedp.Run(ctx,
			chromedp.Navigate(listingURL),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		); err != nil {
			return fmt.Errorf("chromedp detail page: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Candidate{}, err
	}

	return parseDetail(html, listingURL)
}

// guessNextPageURL builds the WordPress-style /page/N URL.
func guessNextPageURL(startURL string, page int) string {
	return strings.TrimRight(startURL, "/") + fmt.Sprintf("/page/%d/", page)
}

func truncateURL(u string) string {
	if len(u) <= 80 {
		return u
	}
	return u[:80] + "..."
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
