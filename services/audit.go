package services

import (
	"math"
	"sort"
	"strings"

	"aep-scraper/models"
)

// BuildAuditReport computes collection-wide health checks over stored
// documents: per-identity year gaps, unit drift per metric, country
// coverage and per-year fill rates
func BuildAuditReport(docs []map[string]interface{}) *models.AuditReport {
	report := &models.AuditReport{
		MissingYears:       make(map[string][]string),
		InconsistentUnits:  make(map[string][]string),
		CompletenessByYear: make(map[string]models.YearCompleteness),
	}
	report.TotalDocuments = len(docs)
	if len(docs) == 0 {
		return report
	}

	yearKeys := models.YearKeys()
	unitsByMetric := make(map[string]map[string]bool)
	countrySet := make(map[string]bool)
	nonNull := make(map[string]int, len(yearKeys))

	for _, doc := range docs {
		var missing []string
		for _, y := range yearKeys {
			v, ok := doc[y]
			if !ok || v == nil {
				missing = append(missing, y)
				continue
			}
			nonNull[y]++
		}
		if len(missing) > 0 {
			report.MissingYears[identityOf(doc)] = missing
		}

		if metric, unit := asString(doc["metric"]), asString(doc["unit"]); metric != "" && unit != "" {
			if unitsByMetric[metric] == nil {
				unitsByMetric[metric] = make(map[string]bool)
			}
			unitsByMetric[metric][unit] = true
		}
		if country := asString(doc["country"]); country != "" {
			countrySet[country] = true
		}
	}

	for metric, units := range unitsByMetric {
		if len(units) < 2 {
			continue
		}
		var list []string
		for u := range units {
			list = append(list, u)
		}
		sort.Strings(list)
		report.InconsistentUnits[metric] = list
	}

	for c := range countrySet {
		report.Countries = append(report.Countries, c)
	}
	sort.Strings(report.Countries)
	report.CountriesCount = len(report.Countries)

	total := float64(len(docs))
	for _, y := range yearKeys {
		report.CompletenessByYear[y] = models.YearCompleteness{
			NonNull: nonNull[y],
			Percent: math.Round(float64(nonNull[y])/total*1000) / 10,
		}
	}
	return report
}

// identityOf renders the full five-field natural key; metric names alone
// repeat across sector paths
func identityOf(doc map[string]interface{}) string {
	parts := []string{
		asString(doc["country"]),
		asString(doc["metric"]),
		asString(doc["sector"]),
		asString(doc["sub_sector"]),
		asString(doc["sub_sub_sector"]),
	}
	return strings.Join(parts, "||")
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
