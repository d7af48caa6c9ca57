package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountriesTableIsDense(t *testing.T) {
	all := Countries()
	require.Len(t, all, 54)

	seenSlug := make(map[string]bool)
	seenName := make(map[string]bool)
	for i, c := range all {
		require.Equal(t, i+1, c.Serial, "serials must be dense and ordered")
		require.NotEmpty(t, c.Slug)
		require.NotEmpty(t, c.Name)
		require.False(t, seenSlug[c.Slug], "duplicate slug %q", c.Slug)
		require.False(t, seenName[c.Name], "duplicate name %q", c.Name)
		seenSlug[c.Slug] = true
		seenName[c.Name] = true
	}
}

func TestCountryLookups(t *testing.T) {
	c, ok := CountryBySlug("democratic-republic-of-congo")
	require.True(t, ok)
	require.Equal(t, "Democratic Republic of the Congo", c.Name)
	require.Equal(t, 13, c.Serial)

	c, ok = CountryBySlug("  KENYA ")
	require.True(t, ok)
	require.Equal(t, "Kenya", c.Name)

	c, ok = CountryByName("south africa")
	require.True(t, ok)
	require.Equal(t, "south-africa", c.Slug)

	_, ok = CountryBySlug("atlantis")
	require.False(t, ok)
}

func TestCountriesReturnsACopy(t *testing.T) {
	first := Countries()
	first[0].Name = "mutated"

	fresh := Countries()
	require.Equal(t, "Algeria", fresh[0].Name)
}
