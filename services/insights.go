package services

import (
	"fmt"
	"sort"
	"strings"

	"brokeragebd-scraper/models"
	"brokeragebd-scraper/utils"
)

// InsightService computes summary analytics over the cleaned dataset.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.CleanListing) *models.Report {
	report := &models.Report{
		ByIntent:           make(map[string]int),
		ByPropertyType:     make(map[string]int),
		ListingsByLocation: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	first := true
	var total float64
	for _, l := range listings {
		if l.AreaSqft > 0 {
			report.WithArea++
		}
		if l.Bedroom > 0 {
			report.WithBedrooms++
		}
		if l.For != "" {
			report.ByIntent[l.For]++
		}
		if l.PropertyType != "" {
			report.ByPropertyType[l.PropertyType]++
		}
		if l.Location != "" {
			report.ListingsByLocation[l.Location]++
		}

		// Every cleaned listing has a valid price.
		total += l.PriceBDT
		if first || l.PriceBDT < report.MinPrice {
			report.MinPrice = l.PriceBDT
		}
		if first || l.PriceBDT > report.MaxPrice {
			report.MaxPrice = l.PriceBDT
			report.MostExpensive = l
		}
		first = false
	}
	report.AveragePrice = round2(total / float64(len(listings)))
	report.MinPrice = round2(report.MinPrice)
	report.MaxPrice = round2(report.MaxPrice)

	return report
}

func (s *InsightService) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 DHAKA REAL ESTATE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Cleaned listings   : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  With area (sqft)   : \033[1m%d\033[0m\n", r.WithArea)
	fmt.Printf("  With bedroom count : \033[1m%d\033[0m\n", r.WithBedrooms)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics (BDT)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Printf("  Average price : \033[1;32m%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Location : %s\n", r.MostExpensive.Location)
		fmt.Printf("  Price    : \033[1;31m%s (%.2f BDT)\033[0m\n",
			r.MostExpensive.PriceText, r.MostExpensive.PriceBDT)
		fmt.Printf("  URL      : %s\n", truncate(r.MostExpensive.URL, 70))
		fmt.Println()
	}

	printBreakdown("Rent vs Sale", r.ByIntent, thin)
	printBreakdown("Property Types", r.ByPropertyType, thin)

	fmt.Printf("\033[1;33m  Listings by Location\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByLocation) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.ListingsByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].count != locs[j].count {
				return locs[i].count > locs[j].count
			}
			return locs[i].loc < locs[j].loc
		})
		for _, lc := range locs {
			bar := strings.Repeat("█", lc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(lc.loc, 28), bar, lc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printBreakdown(title string, counts map[string]int, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n")
	} else {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-15s : \033[1m%d\033[0m\n", k, counts[k])
		}
	}
	fmt.Println()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
