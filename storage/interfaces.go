package storage

import (
	"context"

	"aep-scraper/models"
)

// RecordWriter defines the interface for storing normalized records
type RecordWriter interface {
	UpsertRecords(ctx context.Context, records []*models.EnergyRecord) (models.WriteStats, error)
	Close() error
}

// BackupWriter defines the interface for local flat-file backups
type BackupWriter interface {
	WriteRecords(records []*models.EnergyRecord) error
}

var (
	_ RecordWriter = (*MongoWriter)(nil)
	_ RecordWriter = (*PostgresWriter)(nil)
	_ BackupWriter = (*CSVWriter)(nil)
)
