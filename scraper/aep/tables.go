package aep

import (
	"regexp"
	"strconv"
	"strings"

	"aep-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearRe     = regexp.MustCompile(`(19|20)\d{2}`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// ParseTables turns captured <table> fragments into RawTables; fragments
// that fail to parse or carry no rows are skipped
func ParseTables(tab string, fragments []string) []models.RawTable {
	var tables []models.RawTable
	for _, fragment := range fragments {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err != nil {
			continue
		}
		doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
			parsed := parseTable(tab, tbl)
			if len(parsed.Headers) > 0 || len(parsed.Rows) > 0 {
				tables = append(tables, parsed)
			}
		})
	}
	return tables
}

// parseTable reads one table into a header slice and row grid; tables
// without a <thead> use their first row as the header
func parseTable(tab string, tbl *goquery.Selection) models.RawTable {
	t := models.RawTable{
		Tab:     tab,
		Caption: cleanCell(tbl.Find("caption").First().Text()),
	}

	headRow := tbl.Find("thead tr").First()
	usedFirstRow := false
	if headRow.Length() == 0 {
		headRow = tbl.Find("tr").First()
		usedFirstRow = true
	}
	headRow.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		t.Headers = append(t.Headers, cleanCell(c.Text()))
	})

	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.ParentsFiltered("thead").Length() > 0 {
			return
		}
		if usedFirstRow && headRow.Length() > 0 && row.Get(0) == headRow.Get(0) {
			return
		}
		var cells []string
		row.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, cleanCell(c.Text()))
		})
		if len(cells) > 0 {
			t.Rows = append(t.Rows, cells)
		}
	})

	return t
}

// FindSeries locates the catalog row for sel among the parsed tables and
// returns its raw year-to-cell values plus the unit column text when the
// table has one. Match preference: exact label in the selection's own tab,
// exact label anywhere, then shortest containing label, tab-local first
func FindSeries(tables []models.RawTable, sel models.Selection) (map[int]string, string, error) {
	query := normalizeLabel(sel.Label())
	if query == "" {
		return nil, "", ErrMetricNotFound
	}

	type match struct {
		score    int
		labelLen int
		row      []string
		years    map[int]int
		unitCol  int
	}
	var best *match

	for ti := range tables {
		tbl := &tables[ti]
		years := yearColumns(tbl.Headers)
		if len(years) == 0 {
			continue
		}
		unitCol := unitColumn(tbl.Headers)

		for _, row := range tbl.Rows {
			if len(row) == 0 {
				continue
			}
			label := normalizeLabel(row[0])
			if label == "" {
				continue
			}

			var score int
			switch {
			case label == query && tbl.Tab == sel.Tab:
				score = 0
			case label == query:
				score = 1
			case strings.Contains(label, query) && tbl.Tab == sel.Tab:
				score = 2
			case strings.Contains(label, query):
				score = 3
			default:
				continue
			}

			if best == nil || score < best.score ||
				(score == best.score && len(label) < best.labelLen) {
				best = &match{score: score, labelLen: len(label), row: row, years: years, unitCol: unitCol}
			}
		}
	}

	if best == nil {
		return nil, "", ErrMetricNotFound
	}

	values := make(map[int]string)
	for col, year := range best.years {
		if col < len(best.row) {
			values[year] = best.row[col]
		}
	}
	unit := ""
	if best.unitCol >= 0 && best.unitCol < len(best.row) {
		unit = best.row[best.unitCol]
	}
	return values, unit, nil
}

// yearColumns maps column index to year for every header cell that carries
// a covered year anywhere in its text (the portal writes "2000 (GWh)")
func yearColumns(headers []string) map[int]int {
	cols := make(map[int]int)
	for i, h := range headers {
		m := yearRe.FindString(h)
		if m == "" {
			continue
		}
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if y >= models.FirstYear && y <= models.LastYear {
			cols[i] = y
		}
	}
	return cols
}

// unitColumn returns the index of the unit column, or -1
func unitColumn(headers []string) int {
	for i, h := range headers {
		if strings.HasPrefix(normalizeLabel(h), "unit") {
			return i
		}
	}
	return -1
}

// normalizeLabel lowercases and strips punctuation so portal wording
// variations ("Access to electricity, urban (%)") still match
func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanCell collapses the whitespace runs left behind by rendered HTML
func cleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
