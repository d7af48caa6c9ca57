package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"aep-scraper/models"
	"aep-scraper/utils"
)

// CSVWriter handles writing the local flat-file backup, one row per record
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// Header returns the backup's column order: identity and provenance
// fields first, then one column per covered year
func Header() []string {
	head := []string{
		"country", "country_serial", "metric", "unit",
		"sector", "sub_sector", "sub_sub_sector",
		"source_link", "source",
	}
	return append(head, models.YearKeys()...)
}

// WriteRecords writes the whole batch, creating the output directory as
// needed; the file is replaced on every run
func (w *CSVWriter) WriteRecords(records []*models.EnergyRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", rec.IdentityKey(), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Backup written to %s (%d rows)", w.filePath, len(records))
	return nil
}

// recordRow renders one record, years in ascending order, empty string
// for missing values
func recordRow(rec *models.EnergyRecord) []string {
	row := []string{
		rec.Country,
		strconv.Itoa(rec.CountrySerial),
		rec.Metric,
		rec.Unit,
		rec.Sector,
		rec.SubSector,
		rec.SubSubSector,
		rec.SourceLink,
		rec.Source,
	}
	for _, y := range models.Years() {
		if v := rec.Years[y]; v != nil {
			row = append(row, strconv.FormatFloat(*v, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	return row
}
