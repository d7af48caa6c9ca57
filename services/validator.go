package services

import (
	"fmt"
	"strings"

	"aep-scraper/models"
	"aep-scraper/utils"
)

// Validator applies per-record checks between normalization and storage;
// problems are logged and tallied, never blocking
type Validator struct {
	logger *utils.Logger
}

func NewValidator(logger *utils.Logger) *Validator {
	return &Validator{logger: logger}
}

// Check returns every problem found on one record
func (v *Validator) Check(rec *models.EnergyRecord) []string {
	var problems []string

	if strings.TrimSpace(rec.Country) == "" {
		problems = append(problems, "empty country")
	}
	if rec.CountrySerial < 1 {
		problems = append(problems, "missing country serial")
	}
	if strings.TrimSpace(rec.Metric) == "" {
		problems = append(problems, "empty metric")
	}
	if strings.TrimSpace(rec.Unit) == "" {
		problems = append(problems, "empty unit")
	}
	if strings.TrimSpace(rec.Sector) == "" {
		problems = append(problems, "empty sector")
	}
	if strings.TrimSpace(rec.SourceLink) == "" {
		problems = append(problems, "empty source link")
	}

	if len(rec.Years) != models.YearCount {
		problems = append(problems,
			fmt.Sprintf("expected %d year entries, found %d", models.YearCount, len(rec.Years)))
	}
	for _, y := range models.Years() {
		if _, ok := rec.Years[y]; !ok {
			problems = append(problems, fmt.Sprintf("year %d entry missing", y))
		}
	}

	return problems
}

// CheckAll logs every problem found across the batch and returns the total
func (v *Validator) CheckAll(records []*models.EnergyRecord) int {
	total := 0
	for _, rec := range records {
		for _, p := range v.Check(rec) {
			v.logger.Warn("Validation: %s: %s", rec.IdentityKey(), p)
			total++
		}
	}
	if total == 0 {
		v.logger.Info("Validation passed for all %d records", len(records))
	} else {
		v.logger.Warn("Validation found %d problems across %d records", total, len(records))
	}
	return total
}
