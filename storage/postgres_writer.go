package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aep-scraper/models"
	"aep-scraper/utils"

	_ "github.com/lib/pq"
)

const mirrorTable = "energy_indicators"

// PostgresWriter mirrors the collection into a relational table for SQL
// consumers; construct one only when a mirror URL is configured
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens and verifies the mirror connection
func NewPostgresWriter(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("Connected to PostgreSQL mirror")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// EnsureTable creates the mirror table with one numeric column per year
// and the same identity uniqueness the collection enforces
func (w *PostgresWriter) EnsureTable(ctx context.Context) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + mirrorTable + " (\n")
	b.WriteString("\tid SERIAL PRIMARY KEY,\n")
	b.WriteString("\tcountry TEXT NOT NULL,\n")
	b.WriteString("\tcountry_serial INTEGER NOT NULL,\n")
	b.WriteString("\tmetric TEXT NOT NULL,\n")
	b.WriteString("\tunit TEXT,\n")
	b.WriteString("\tsector TEXT NOT NULL,\n")
	b.WriteString("\tsub_sector TEXT NOT NULL DEFAULT '',\n")
	b.WriteString("\tsub_sub_sector TEXT NOT NULL DEFAULT '',\n")
	b.WriteString("\tsource_link TEXT,\n")
	b.WriteString("\tsource TEXT,\n")
	for _, col := range yearCols() {
		b.WriteString("\t" + col + " NUMERIC,\n")
	}
	b.WriteString("\tupdated_at TIMESTAMP NOT NULL DEFAULT NOW(),\n")
	b.WriteString("\tUNIQUE (country, metric, sector, sub_sector, sub_sub_sector)\n")
	b.WriteString(")")

	if _, err := w.db.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("failed to create mirror table: %w", err)
	}
	return nil
}

// UpsertRecords mirrors the batch row by row in autocommit; per-row
// failures are logged and counted, not returned
func (w *PostgresWriter) UpsertRecords(ctx context.Context, records []*models.EnergyRecord) (models.WriteStats, error) {
	var stats models.WriteStats
	if len(records) == 0 {
		return stats, nil
	}

	stmt, err := w.db.PrepareContext(ctx, upsertSQL())
	if err != nil {
		return stats, fmt.Errorf("failed to prepare mirror upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var inserted bool
		if err := stmt.QueryRowContext(ctx, recordArgs(rec)...).Scan(&inserted); err != nil {
			w.logger.Error("Mirror upsert failed for %s: %v", rec.IdentityKey(), err)
			stats.Failed++
			continue
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Updated++
		}
	}

	w.logger.Info("Mirrored %d records to PostgreSQL: %d inserted, %d updated, %d failed",
		len(records), stats.Inserted, stats.Updated, stats.Failed)
	return stats, nil
}

// Close releases the connection pool
func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

// upsertSQL builds the insert-or-replace statement; "xmax = 0" is true
// only for freshly inserted rows, which separates inserts from updates
func upsertSQL() string {
	cols := []string{
		"country", "country_serial", "metric", "unit",
		"sector", "sub_sector", "sub_sub_sector",
		"source_link", "source",
	}
	cols = append(cols, yearCols()...)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var sets []string
	for _, col := range cols {
		switch col {
		case "country", "metric", "sector", "sub_sector", "sub_sub_sector":
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, "updated_at = NOW()")

	return "INSERT INTO " + mirrorTable + " (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" ON CONFLICT (country, metric, sector, sub_sector, sub_sub_sector)" +
		" DO UPDATE SET " + strings.Join(sets, ", ") +
		" RETURNING (xmax = 0)"
}

// recordArgs lays out one record's values in upsertSQL column order;
// missing years pass through as nil pointers and land as SQL NULL
func recordArgs(rec *models.EnergyRecord) []interface{} {
	args := []interface{}{
		rec.Country,
		rec.CountrySerial,
		rec.Metric,
		rec.Unit,
		rec.Sector,
		rec.SubSector,
		rec.SubSubSector,
		rec.SourceLink,
		rec.Source,
	}
	for _, y := range models.Years() {
		args = append(args, rec.Years[y])
	}
	return args
}

// yearCols names the per-year mirror columns ("y2000".."y2024")
func yearCols() []string {
	cols := make([]string, 0, models.YearCount)
	for _, y := range models.Years() {
		cols = append(cols, fmt.Sprintf("y%d", y))
	}
	return cols
}
