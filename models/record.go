package models

import (
	"fmt"
	"strconv"
	"time"
)

// Year range covered by every record; the portal publishes annual series
// from 2000 through 2024
const (
	FirstYear = 2000
	LastYear  = 2024
	YearCount = LastYear - FirstYear + 1
)

// Years returns every covered year in ascending order
func Years() []int {
	years := make([]int, 0, YearCount)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// YearKeys returns the covered years as document keys ("2000".."2024")
func YearKeys() []string {
	keys := make([]string, 0, YearCount)
	for y := FirstYear; y <= LastYear; y++ {
		keys = append(keys, strconv.Itoa(y))
	}
	return keys
}

// RawTable holds one rendered portal table exactly as captured from the page
type RawTable struct {
	Tab     string // portal data tab the table was harvested under
	Caption string
	Headers []string
	Rows    [][]string
}

// RawSeries is the unprocessed (year, value) series extracted for one
// (country, selection) pair, plus the unit text scraped alongside it
type RawSeries struct {
	Country   Country
	Selection Selection
	Unit      string         // as rendered on the page, may be empty
	Values    map[int]string // raw cell text keyed by year; absent = not rendered
	PageURL   string
	ScrapedAt time.Time
}

// EnergyRecord is a normalized indicator series ready for storage; Years
// always carries one entry per covered year, nil where the portal has no
// value
type EnergyRecord struct {
	Country       string
	CountrySerial int
	Metric        string
	Unit          string
	Sector        string
	SubSector     string
	SubSubSector  string
	SourceLink    string
	Source        string
	Years         map[int]*float64
}

// IdentityKey renders the natural key (country, metric, sector path) used
// for upserts and in-run deduplication
func (r *EnergyRecord) IdentityKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", r.Country, r.Metric, r.Sector, r.SubSector, r.SubSubSector)
}

// ItemResult is the per-(country, metric) outcome of an extraction run
type ItemResult struct {
	Country string
	Metric  string
	Err     error
}

// Failed reports whether the item ended in an error
func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// WriteStats counts upsert outcomes for a batch of records
type WriteStats struct {
	Inserted  int
	Updated   int
	Unchanged int
	Failed    int
}

// Merge folds another batch's stats into this one
func (s *WriteStats) Merge(o WriteStats) {
	s.Inserted += o.Inserted
	s.Updated += o.Updated
	s.Unchanged += o.Unchanged
	s.Failed += o.Failed
}

// Total is the number of records covered by the stats
func (s WriteStats) Total() int {
	return s.Inserted + s.Updated + s.Unchanged + s.Failed
}

// CountryOutcome summarizes one country's extraction for the final report
type CountryOutcome struct {
	Country   string
	Serial    int
	Extracted int
	Failed    int
}

// RunSummary is everything the reporter prints once the batch finishes
type RunSummary struct {
	Started          time.Time
	Finished         time.Time
	Countries        []CountryOutcome
	FailedItems      []ItemResult
	Records          int
	Writes           WriteStats
	ValidationIssues int
	MirroredToSQL    bool
	BackupPath       string
}

// Extracted is the total number of successfully extracted items
func (s *RunSummary) Extracted() int {
	n := 0
	for _, c := range s.Countries {
		n += c.Extracted
	}
	return n
}

// Duration is the wall-clock length of the run
func (s *RunSummary) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}

// YearCompleteness is the audit's per-year fill rate
type YearCompleteness struct {
	NonNull int     `json:"non_null"`
	Percent float64 `json:"percent"`
}

// AuditReport is the collection-wide validation artifact, shaped to match
// the JSON report file the audit tool writes
type AuditReport struct {
	TotalDocuments     int                         `json:"total_documents"`
	MissingYears       map[string][]string         `json:"missing_years"`
	InconsistentUnits  map[string][]string         `json:"inconsistent_units"`
	CountriesCount     int                         `json:"countries_count"`
	Countries          []string                    `json:"countries"`
	CompletenessByYear map[string]YearCompleteness `json:"completeness_by_year"`
}
