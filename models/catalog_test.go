package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogIdentitiesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, sel := range Catalog() {
		key := fmt.Sprintf("%s|%s|%s|%s", sel.Metric, sel.Sector, sel.SubSector, sel.SubSubSector)
		require.False(t, seen[key], "catalog repeats identity %s", key)
		seen[key] = true

		require.NotEmpty(t, sel.Metric)
		require.NotEmpty(t, sel.Unit)
		require.NotEmpty(t, sel.Sector)
		require.NotEmpty(t, sel.Tab)
	}
}

func TestSelectionLabelFallsBackToMetric(t *testing.T) {
	withLabel := Selection{Metric: "Electricity access", RowLabel: "Access to electricity"}
	require.Equal(t, "Access to electricity", withLabel.Label())

	bare := Selection{Metric: "Electricity generation"}
	require.Equal(t, "Electricity generation", bare.Label())
}

func TestSelectionItemNameDisambiguates(t *testing.T) {
	urban := Selection{Metric: "Electricity access", SubSubSector: "Urban"}
	require.Equal(t, "Electricity access (Urban)", urban.ItemName())

	plain := Selection{Metric: "Electricity generation"}
	require.Equal(t, "Electricity generation", plain.ItemName())
}

func TestPortalTabsCoverCatalog(t *testing.T) {
	tabs := PortalTabs()
	require.NotEmpty(t, tabs)

	have := make(map[string]bool)
	for _, tab := range tabs {
		require.False(t, have[tab], "duplicate tab %q", tab)
		have[tab] = true
	}
	for _, sel := range Catalog() {
		require.True(t, have[sel.Tab], "selection %q uses unlisted tab %q", sel.Metric, sel.Tab)
	}
}

func TestYearHelpers(t *testing.T) {
	years := Years()
	require.Len(t, years, YearCount)
	require.Equal(t, FirstYear, years[0])
	require.Equal(t, LastYear, years[len(years)-1])

	keys := YearKeys()
	require.Len(t, keys, YearCount)
	require.Equal(t, "2000", keys[0])
	require.Equal(t, "2024", keys[len(keys)-1])
}
