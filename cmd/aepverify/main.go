// Command aepverify audits an existing collection without re-scraping,
// printing a summary and writing the full JSON report
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aep-scraper/config"
	"aep-scraper/models"
	"aep-scraper/services"
	"aep-scraper/storage"
	"aep-scraper/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERROR] "+err.Error())
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("Auditing %s.%s", cfg.DatabaseName, cfg.CollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.NewMongoWriter(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.CollectionName, logger)
	if err != nil {
		logger.Error("Cannot connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	docs, err := store.AllDocuments(ctx)
	if err != nil {
		logger.Error("Failed to read collection: %v", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		logger.Warn("Collection is empty, nothing to audit")
	}

	report := services.BuildAuditReport(docs)
	services.PrintAuditSummary(report)

	if err := writeReport(cfg.ReportPath, report); err != nil {
		logger.Error("Failed to write report: %v", err)
		os.Exit(1)
	}
	logger.Info("Validation report saved to %s", cfg.ReportPath)
}

func writeReport(path string, report *models.AuditReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
