package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StartURL string

	MaxPages    int
	MaxScrolls  int
	RateLimitMs int
	MaxRetries  int

	RawCSVPath   string
	CleanCSVPath string
	ChromeBin    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		StartURL: getEnv("START_URL", "https://brokeragebd.com/"),

		MaxPages:    getEnvInt("MAX_PAGES", 500),
		MaxScrolls:  getEnvInt("MAX_SCROLLS", 15),
		RateLimitMs: getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),

		RawCSVPath:   getEnv("RAW_CSV_PATH", "./data/raw/brokeragebd_raw.csv"),
		CleanCSVPath: getEnv("CLEAN_CSV_PATH", "./data/cleaned/brokeragebd_clean.csv"),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "realestate_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
