package models

import "strings"

// Country is one entry in the fixed portal country table
type Country struct {
	Slug   string // path segment under /country/ on the portal
	Name   string // display name stored on records
	Serial int    // stable ordinal, 1-based in canonical portal order
}

// countries lists all 54 African countries the portal publishes, in
// canonical order; serials come from this order and must never be
// reshuffled, stored records reference them
var countries = []Country{
	{Slug: "algeria", Name: "Algeria", Serial: 1},
	{Slug: "angola", Name: "Angola", Serial: 2},
	{Slug: "benin", Name: "Benin", Serial: 3},
	{Slug: "botswana", Name: "Botswana", Serial: 4},
	{Slug: "burkina-faso", Name: "Burkina Faso", Serial: 5},
	{Slug: "burundi", Name: "Burundi", Serial: 6},
	{Slug: "cameroon", Name: "Cameroon", Serial: 7},
	{Slug: "cape-verde", Name: "Cape Verde", Serial: 8},
	{Slug: "central-african-republic", Name: "Central African Republic", Serial: 9},
	{Slug: "chad", Name: "Chad", Serial: 10},
	{Slug: "comoros", Name: "Comoros", Serial: 11},
	{Slug: "congo", Name: "Congo", Serial: 12},
	{Slug: "democratic-republic-of-congo", Name: "Democratic Republic of the Congo", Serial: 13},
	{Slug: "djibouti", Name: "Djibouti", Serial: 14},
	{Slug: "egypt", Name: "Egypt", Serial: 15},
	{Slug: "equatorial-guinea", Name: "Equatorial Guinea", Serial: 16},
	{Slug: "eritrea", Name: "Eritrea", Serial: 17},
	{Slug: "eswatini", Name: "Eswatini", Serial: 18},
	{Slug: "ethiopia", Name: "Ethiopia", Serial: 19},
	{Slug: "gabon", Name: "Gabon", Serial: 20},
	{Slug: "gambia", Name: "Gambia", Serial: 21},
	{Slug: "ghana", Name: "Ghana", Serial: 22},
	{Slug: "guinea", Name: "Guinea", Serial: 23},
	{Slug: "guinea-bissau", Name: "Guinea-Bissau", Serial: 24},
	{Slug: "ivory-coast", Name: "Ivory Coast", Serial: 25},
	{Slug: "kenya", Name: "Kenya", Serial: 26},
	{Slug: "lesotho", Name: "Lesotho", Serial: 27},
	{Slug: "liberia", Name: "Liberia", Serial: 28},
	{Slug: "libya", Name: "Libya", Serial: 29},
	{Slug: "madagascar", Name: "Madagascar", Serial: 30},
	{Slug: "malawi", Name: "Malawi", Serial: 31},
	{Slug: "mali", Name: "Mali", Serial: 32},
	{Slug: "mauritania", Name: "Mauritania", Serial: 33},
	{Slug: "mauritius", Name: "Mauritius", Serial: 34},
	{Slug: "morocco", Name: "Morocco", Serial: 35},
	{Slug: "mozambique", Name: "Mozambique", Serial: 36},
	{Slug: "namibia", Name: "Namibia", Serial: 37},
	{Slug: "niger", Name: "Niger", Serial: 38},
	{Slug: "nigeria", Name: "Nigeria", Serial: 39},
	{Slug: "rwanda", Name: "Rwanda", Serial: 40},
	{Slug: "sao-tome-and-principe", Name: "Sao Tome and Principe", Serial: 41},
	{Slug: "senegal", Name: "Senegal", Serial: 42},
	{Slug: "seychelles", Name: "Seychelles", Serial: 43},
	{Slug: "sierra-leone", Name: "Sierra Leone", Serial: 44},
	{Slug: "somalia", Name: "Somalia", Serial: 45},
	{Slug: "south-africa", Name: "South Africa", Serial: 46},
	{Slug: "south-sudan", Name: "South Sudan", Serial: 47},
	{Slug: "sudan", Name: "Sudan", Serial: 48},
	{Slug: "tanzania", Name: "Tanzania", Serial: 49},
	{Slug: "togo", Name: "Togo", Serial: 50},
	{Slug: "tunisia", Name: "Tunisia", Serial: 51},
	{Slug: "uganda", Name: "Uganda", Serial: 52},
	{Slug: "zambia", Name: "Zambia", Serial: 53},
	{Slug: "zimbabwe", Name: "Zimbabwe", Serial: 54},
}

// Countries returns the full country table in canonical order
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// CountryBySlug looks up a country by its portal path segment
func CountryBySlug(slug string) (Country, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range countries {
		if c.Slug == slug {
			return c, true
		}
	}
	return Country{}, false
}

// CountryByName looks up a country by display name, case-insensitively
func CountryByName(name string) (Country, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range countries {
		if strings.ToLower(c.Name) == name {
			return c, true
		}
	}
	return Country{}, false
}
