package main

import (
	"fmt"
	"os"

	"brokeragebd-scraper/config"
	"brokeragebd-scraper/scraper/brokeragebd"
	"brokeragebd-scraper/services"
	"brokeragebd-scraper/storage"
	"brokeragebd-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	cmd := "scrape"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "scrape":
		runScrape(cfg, logger)
	case "clean":
		runClean(cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [scrape|clean]\n", os.Args[0])
		os.Exit(2)
	}
}

// runScrape performs the collection run: discover listings, assemble one
// record per URL, and flush everything to the raw CSV once at the end.
func runScrape(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== BrokerageBD collection run starting ===")
	logger.Info("Config — max pages: %d | rate: %dms | retries: %d",
		cfg.MaxPages, cfg.RateLimitMs, cfg.MaxRetries)

	scraper := brokeragebd.New(cfg, logger)
	records, err := scraper.Scrape()
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("No listings were collected. Exiting.")
		os.Exit(1)
	}

	writer, err := storage.NewRawWriter(cfg.RawCSVPath)
	if err != nil {
		logger.Error("Failed to create raw CSV writer: %v", err)
		os.Exit(1)
	}
	defer writer.Close()

	if err := writer.WriteAll(records); err != nil {
		logger.Error("Raw CSV write failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Saved %d raw records → %s", len(records), cfg.RawCSVPath)
}

// runClean performs the dataset-cleaning pass: read the raw CSV, derive the
// cleaned table, persist it to CSV and Postgres, and print insights.
func runClean(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== BrokerageBD cleaning run starting ===")

	table, err := storage.ReadTable(cfg.RawCSVPath)
	if err != nil {
		logger.Error("Failed to read raw dataset: %v", err)
		os.Exit(1)
	}

	cleaner := services.NewCleaner(logger)
	cleaned, err := cleaner.Clean(table)
	if err != nil {
		logger.Error("Cleaning failed: %v", err)
		os.Exit(1)
	}
	if len(cleaned.Rows) == 0 {
		logger.Error("All rows were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	if err := storage.WriteTable(cfg.CleanCSVPath, cleaned); err != nil {
		logger.Error("Cleaned CSV write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Saved cleaned dataset (%d rows) → %s", len(cleaned.Rows), cfg.CleanCSVPath)

	listings := storage.ListingsFromTable(cleaned)

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(listings); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Cleaned listings stored in PostgreSQL (table: listings)")
	}

	dbListings, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch listings from DB for insights: %v", err)
		dbListings = listings
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(dbListings))

	fmt.Printf("  Done. Cleaned CSV → %s | Clean data → PostgreSQL (listings table)\n\n",
		cfg.CleanCSVPath)
}
