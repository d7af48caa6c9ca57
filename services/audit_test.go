package services

import (
	"testing"

	"aep-scraper/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func auditDoc(country, metric, unit string, missing ...string) map[string]interface{} {
	doc := map[string]interface{}{
		"country":        country,
		"country_serial": 1,
		"metric":         metric,
		"unit":           unit,
		"sector":         "Electricity",
		"sub_sector":     "Supply",
		"sub_sub_sector": "",
		"source_link":    "https://africa-energy-portal.org/country/x",
		"source":         "Africa Energy Portal",
	}
	skip := make(map[string]bool)
	for _, y := range missing {
		skip[y] = true
	}
	for _, y := range models.YearKeys() {
		if skip[y] {
			doc[y] = nil
		} else {
			doc[y] = 42.0
		}
	}
	return doc
}

func TestBuildAuditReportEmpty(t *testing.T) {
	report := BuildAuditReport(nil)
	require.Equal(t, 0, report.TotalDocuments)
	require.Empty(t, report.MissingYears)
	require.Empty(t, report.Countries)
}

func TestBuildAuditReport(t *testing.T) {
	docs := []map[string]interface{}{
		auditDoc("Kenya", "Electricity generation", "GWh"),
		auditDoc("Ghana", "Electricity generation", "Gigawatt hours", "2001", "2002"),
		auditDoc("Togo", "Clean cooking access", "%"),
	}

	report := BuildAuditReport(docs)
	require.Equal(t, 3, report.TotalDocuments)

	require.Equal(t, 3, report.CountriesCount)
	require.Equal(t, []string{"Ghana", "Kenya", "Togo"}, report.Countries)

	wantMissing := map[string][]string{
		"Ghana||Electricity generation||Electricity||Supply||": {"2001", "2002"},
	}
	if diff := cmp.Diff(wantMissing, report.MissingYears); diff != "" {
		t.Fatalf("missing years mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, map[string][]string{
		"Electricity generation": {"GWh", "Gigawatt hours"},
	}, report.InconsistentUnits)

	require.Equal(t, models.YearCompleteness{NonNull: 3, Percent: 100}, report.CompletenessByYear["2000"])
	require.Equal(t, models.YearCompleteness{NonNull: 2, Percent: 66.7}, report.CompletenessByYear["2001"])
}

func TestBuildAuditReportTreatsAbsentKeysAsMissing(t *testing.T) {
	doc := auditDoc("Mali", "Electricity imports", "GWh")
	delete(doc, "2024")

	report := BuildAuditReport([]map[string]interface{}{doc})
	require.Equal(t,
		[]string{"2024"},
		report.MissingYears["Mali||Electricity imports||Electricity||Supply||"])
}
