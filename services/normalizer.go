package services

import (
	"regexp"
	"strconv"
	"strings"

	"aep-scraper/models"
	"aep-scraper/utils"
)

const sourceName = "Africa Energy Portal"

// unitVariants maps the spellings the portal uses onto the canonical unit
// stored on records; matching is case-insensitive substring
var unitVariants = []struct {
	canon    string
	variants []string
}{
	{"%", []string{"%", "percent", "percentage"}},
	{"GWh", []string{"gwh", "gigawatt hour", "gigawatt-hour", "giga watt hour"}},
	{"MW", []string{"mw", "megawatt"}},
	{"kWh per capita", []string{"kwh per capita", "kwh/capita", "kwh per person"}},
	{"kt", []string{"kt", "kiloton", "kilotonne"}},
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.\d+|[-+]?\d+`)

// Normalizer reshapes raw scraped series into storage-ready records
type Normalizer struct {
	logger  *utils.Logger
	tracker *utils.SeenTracker
}

func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{
		logger:  logger,
		tracker: utils.NewSeenTracker(),
	}
}

// Normalize builds one record per raw series, dropping any series whose
// identity was already produced this run; every record carries the full
// year range with nil for unparseable or absent cells
func (n *Normalizer) Normalize(series []models.RawSeries) []*models.EnergyRecord {
	records := make([]*models.EnergyRecord, 0, len(series))
	for i := range series {
		rec := n.normalizeOne(&series[i])
		if !n.tracker.Add(rec.IdentityKey()) {
			n.logger.Warn("Duplicate identity %s, keeping the first extraction", rec.IdentityKey())
			continue
		}
		records = append(records, rec)
	}
	n.logger.Info("Normalized %d records from %d raw series", len(records), len(series))
	return records
}

func (n *Normalizer) normalizeOne(s *models.RawSeries) *models.EnergyRecord {
	rec := &models.EnergyRecord{
		Country:       s.Country.Name,
		CountrySerial: s.Country.Serial,
		Metric:        s.Selection.Metric,
		Unit:          NormalizeUnit(s.Unit),
		Sector:        s.Selection.Sector,
		SubSector:     s.Selection.SubSector,
		SubSubSector:  s.Selection.SubSubSector,
		SourceLink:    s.PageURL,
		Source:        sourceName,
		Years:         make(map[int]*float64, models.YearCount),
	}
	if rec.Unit == "" {
		// Page had no unit column, fall back to the catalog's expected unit
		rec.Unit = s.Selection.Unit
	}

	for _, y := range models.Years() {
		raw, ok := s.Values[y]
		if !ok {
			rec.Years[y] = nil
			continue
		}
		v := ParseNumber(raw)
		if v == nil && !isMissingText(raw) {
			n.logger.Warn("%s / %s: unparseable %d value %q stored as missing",
				rec.Country, rec.Metric, y, raw)
		}
		rec.Years[y] = v
	}
	return rec
}

// ParseNumber coerces a scraped cell like "4,500", "12.5%" or "123 (est)"
// to a float; empty cells and not-available spellings come back nil
func ParseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || isMissingText(s) {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	if v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err == nil {
		return &v
	}
	if m := numberRe.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return &v
		}
	}
	return nil
}

// NormalizeUnit maps a scraped unit cell onto its canonical spelling; text
// that matches no known family is kept as scraped, trimmed
func NormalizeUnit(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	for _, fam := range unitVariants {
		for _, v := range fam.variants {
			if strings.Contains(lower, v) {
				return fam.canon
			}
		}
	}
	return s
}

func isMissingText(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "-", "–", "—", "n/a", "na", "nan", "..", "...":
		return true
	}
	return false
}
