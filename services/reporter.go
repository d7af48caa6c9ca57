package services

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"aep-scraper/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintRunSummary formats and prints the end-of-run report to terminal
func PrintRunSummary(sum *models.RunSummary) {
	border := strings.Repeat("═", 55)
	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("AFRICA ENERGY PORTAL EXTRACTION SUMMARY", 55))
	fmt.Printf("╚%s╝\n\n", border)

	countries := table.NewWriter()
	countries.SetOutputMirror(os.Stdout)
	countries.AppendHeader(table.Row{"#", "Country", "Extracted", "Failed"})
	for _, c := range sum.Countries {
		countries.AppendRow(table.Row{c.Serial, c.Country, c.Extracted, c.Failed})
	}
	countries.AppendFooter(table.Row{"", "Total", sum.Extracted(), len(sum.FailedItems)})
	countries.SetStyle(table.StyleRounded)
	countries.Render()

	fmt.Println()
	totals := table.NewWriter()
	totals.SetOutputMirror(os.Stdout)
	totals.AppendHeader(table.Row{"Records", "Inserted", "Updated", "Unchanged", "Write failures", "Validation issues", "Duration"})
	totals.AppendRow(table.Row{
		sum.Records,
		sum.Writes.Inserted,
		sum.Writes.Updated,
		sum.Writes.Unchanged,
		sum.Writes.Failed,
		sum.ValidationIssues,
		sum.Duration().Round(time.Second),
	})
	totals.SetStyle(table.StyleRounded)
	totals.Render()

	if len(sum.FailedItems) > 0 {
		fmt.Println()
		fmt.Printf("Failed items (%d), candidates for a targeted re-run:\n", len(sum.FailedItems))
		failures := table.NewWriter()
		failures.SetOutputMirror(os.Stdout)
		failures.AppendHeader(table.Row{"Country", "Indicator", "Error"})
		for _, item := range sum.FailedItems {
			failures.AppendRow(table.Row{item.Country, item.Metric, item.Err})
		}
		failures.SetStyle(table.StyleRounded)
		failures.Render()
	}

	fmt.Println()
	if sum.BackupPath != "" {
		fmt.Printf("Backup CSV: %s\n", sum.BackupPath)
	}
	if sum.MirroredToSQL {
		fmt.Println("Mirrored to PostgreSQL")
	}
}

// PrintAuditSummary formats and prints the collection audit to terminal;
// full detail lands in the JSON report
func PrintAuditSummary(rep *models.AuditReport) {
	border := strings.Repeat("═", 55)
	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("COLLECTION AUDIT", 55))
	fmt.Printf("╚%s╝\n\n", border)

	totals := table.NewWriter()
	totals.SetOutputMirror(os.Stdout)
	totals.AppendHeader(table.Row{"Documents", "Countries", "Identities with gaps", "Metrics with unit drift"})
	totals.AppendRow(table.Row{
		rep.TotalDocuments,
		rep.CountriesCount,
		len(rep.MissingYears),
		len(rep.InconsistentUnits),
	})
	totals.SetStyle(table.StyleRounded)
	totals.Render()

	if len(rep.InconsistentUnits) > 0 {
		fmt.Println()
		drift := table.NewWriter()
		drift.SetOutputMirror(os.Stdout)
		drift.AppendHeader(table.Row{"Metric", "Units seen"})
		var metrics []string
		for m := range rep.InconsistentUnits {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			drift.AppendRow(table.Row{m, strings.Join(rep.InconsistentUnits[m], ", ")})
		}
		drift.SetStyle(table.StyleRounded)
		drift.Render()
	}

	if len(rep.CompletenessByYear) > 0 {
		fmt.Println()
		years := table.NewWriter()
		years.SetOutputMirror(os.Stdout)
		years.AppendHeader(table.Row{"Year", "Non-null", "Fill %"})
		for _, y := range models.YearKeys() {
			c := rep.CompletenessByYear[y]
			years.AppendRow(table.Row{y, c.NonNull, c.Percent})
		}
		years.SetStyle(table.StyleRounded)
		years.Render()
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}
