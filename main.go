package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"aep-scraper/config"
	"aep-scraper/models"
	"aep-scraper/scraper/aep"
	"aep-scraper/services"
	"aep-scraper/storage"
	"aep-scraper/utils"
)

func main() {
	// ================== Bootstrap ====================
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERROR] "+err.Error())
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("Africa Energy Portal extraction starting")
	logger.Info("Countries: %d | Indicators: %d | Years: %d-%d",
		len(models.Countries()), len(models.Catalog()), models.FirstYear, models.LastYear)
	logger.Info("Concurrency: %d | Rate delay: %dms | Retries: %d | Page timeout: %ds",
		cfg.MaxConcurrency, cfg.RateLimitDelay, cfg.MaxRetries, cfg.PageTimeout)

	ctx := context.Background()

	// =================== MongoDB Setup ========================================
	mongoWriter, err := storage.NewMongoWriter(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.CollectionName, logger)
	if err != nil {
		logger.Error("Cannot connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer mongoWriter.Close()

	// ========= PostgreSQL mirror (optional) ============
	var pgWriter *storage.PostgresWriter
	if cfg.PostgresURL != "" {
		pgWriter, err = storage.NewPostgresWriter(ctx, cfg.PostgresURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL mirror: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()
		if err := pgWriter.EnsureTable(ctx); err != nil {
			logger.Error("Failed to prepare mirror table: %v", err)
			os.Exit(1)
		}
	}

	// =============== Browser & Portal Checks ===================
	scr := aep.NewScraper(cfg, logger)
	if err := scr.CheckBrowser(ctx); err != nil {
		logger.Error("Chrome is not available: %v", err)
		os.Exit(1)
	}
	if err := aep.Preflight(ctx, cfg.BaseURL, logger); err != nil {
		logger.Warn("Portal preflight failed, continuing anyway: %v", err)
	}

	// =============== Scraping ===================================
	started := time.Now()
	result := scr.Run(ctx)

	summary := &models.RunSummary{Started: started, Countries: result.Outcomes}
	for _, item := range result.Items {
		if item.Failed() {
			summary.FailedItems = append(summary.FailedItems, item)
		}
	}
	if len(result.Series) == 0 {
		logger.Warn("No data scraped from any country")
	}

	// =========== Normalization & Validation ======================
	normalizer := services.NewNormalizer(logger)
	records := normalizer.Normalize(result.Series)
	summary.Records = len(records)

	validator := services.NewValidator(logger)
	summary.ValidationIssues = validator.CheckAll(records)

	// ========= CSV: local backup ===========================
	if len(records) > 0 {
		csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
		if err := csvWriter.WriteRecords(records); err != nil {
			logger.Error("Failed to write backup CSV: %v", err)
			// Non-fatal: continue to DB storage
		} else {
			summary.BackupPath = cfg.CSVFilePath
		}
	}

	// ========= MongoDB: store records ============
	stats, err := mongoWriter.UpsertRecords(ctx, records)
	if err != nil {
		logger.Error("MongoDB upsert failed: %v", err)
		stats.Failed = len(records)
	}
	summary.Writes = stats

	if pgWriter != nil && len(records) > 0 {
		if _, err := pgWriter.UpsertRecords(ctx, records); err != nil {
			logger.Error("PostgreSQL mirror upsert failed: %v", err)
		} else {
			summary.MirroredToSQL = true
		}
	}

	// ==== Summary ============================
	summary.Finished = time.Now()
	services.PrintRunSummary(summary)
	logger.Info("Run finished in %v", summary.Duration().Round(time.Second))
}
