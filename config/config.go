package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read before the process environment
const DefaultEnvFile = "energy.env"

// Config holds all application-level configuration
type Config struct {
	// Document store (required)
	MongoURI       string
	DatabaseName   string
	CollectionName string

	// Optional relational mirror; empty disables it
	PostgresURL string

	// Portal
	BaseURL string

	// Scraper
	Headless       bool
	MaxConcurrency int
	RateLimitDelay int // milliseconds between page loads
	MaxRetries     int // attempts per page, timeouts excluded
	PageTimeout    int // seconds per country page
	RenderWait     int // seconds to let the portal's JS fill the tables

	// Output
	CSVFilePath string
	ReportPath  string
	Debug       bool
}

// Load reads configuration from energy.env (when present) and the process
// environment; the Mongo connection triple is mandatory, everything else
// falls back to defaults
func Load() (*Config, error) {
	// A missing dotenv file is fine, CI and cron set real env vars
	envFile := getEnv("ENV_FILE", DefaultEnvFile)
	_ = godotenv.Load(envFile)

	cfg := &Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		CollectionName: os.Getenv("COLLECTION_NAME"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		BaseURL:        getEnv("AEP_BASE_URL", "https://africa-energy-portal.org/country/"),
		Headless:       getEnvBool("HEADLESS", true),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),
		RateLimitDelay: getEnvInt("RATE_LIMIT_DELAY_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		PageTimeout:    getEnvInt("PAGE_TIMEOUT_S", 60),
		RenderWait:     getEnvInt("RENDER_WAIT_S", 6),
		CSVFilePath:    getEnv("CSV_FILE_PATH", "output/energy_data_backup.csv"),
		ReportPath:     getEnv("REPORT_PATH", "output/validation_report.json"),
		Debug:          getEnvBool("DEBUG", false),
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if cfg.DatabaseName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.CollectionName == "" {
		missing = append(missing, "COLLECTION_NAME")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s (check your %s file)",
			strings.Join(missing, ", "), envFile)
	}

	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
