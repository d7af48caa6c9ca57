package aep

import (
	"fmt"
	"testing"

	"aep-scraper/models"

	"github.com/stretchr/testify/require"
)

const electricityTableHTML = `
<table>
  <caption>Electricity indicators</caption>
  <thead>
    <tr><th>Indicator</th><th>Unit</th><th>2000</th><th>2001 (GWh)</th><th>2024</th></tr>
  </thead>
  <tbody>
    <tr><td>Access to electricity
        (% of population)</td><td>Percent</td><td>45.1</td><td>46.2</td><td>71.9</td></tr>
    <tr><td>Access to electricity, urban (% of population)</td><td>Percent</td><td>60.0</td><td>61.5</td><td>88.2</td></tr>
    <tr><td>Electricity generation</td><td>GWh</td><td>1,200</td><td>1,350</td></tr>
  </tbody>
</table>`

const headerlessTableHTML = `
<table>
  <tr><td>Indicator</td><td>2010</td></tr>
  <tr><td>CO2 emissions</td><td>123</td></tr>
</table>`

func TestParseTablesReadsHeadersAndRows(t *testing.T) {
	tables := ParseTables(models.TabElectricity, []string{electricityTableHTML})
	require.Len(t, tables, 1)

	tbl := tables[0]
	require.Equal(t, models.TabElectricity, tbl.Tab)
	require.Equal(t, "Electricity indicators", tbl.Caption)
	require.Equal(t, []string{"Indicator", "Unit", "2000", "2001 (GWh)", "2024"}, tbl.Headers)
	require.Len(t, tbl.Rows, 3)
	require.Equal(t, "Access to electricity (% of population)", tbl.Rows[0][0],
		"rendered whitespace must collapse to single spaces")
}

func TestParseTablesHeaderlessUsesFirstRow(t *testing.T) {
	tables := ParseTables(models.TabEnergy, []string{headerlessTableHTML})
	require.Len(t, tables, 1)

	tbl := tables[0]
	require.Equal(t, []string{"Indicator", "2010"}, tbl.Headers)
	require.Equal(t, [][]string{{"CO2 emissions", "123"}}, tbl.Rows)
}

func TestParseTablesSkipsUnparseableFragments(t *testing.T) {
	tables := ParseTables(models.TabElectricity, []string{"<div>no table here</div>", "<table></table>"})
	require.Empty(t, tables)
}

func TestFindSeriesPrefersShortestContainingLabel(t *testing.T) {
	tables := ParseTables(models.TabElectricity, []string{electricityTableHTML})

	national := models.Selection{
		Metric: "Electricity access", Tab: models.TabElectricity,
		RowLabel: "Access to electricity",
	}
	values, unit, err := FindSeries(tables, national)
	require.NoError(t, err)
	require.Equal(t, "Percent", unit)
	require.Equal(t, map[int]string{2000: "45.1", 2001: "46.2", 2024: "71.9"}, values)

	urban := models.Selection{
		Metric: "Electricity access", Tab: models.TabElectricity,
		RowLabel: "Access to electricity (urban)",
	}
	values, _, err = FindSeries(tables, urban)
	require.NoError(t, err)
	require.Equal(t, "60.0", values[2000], "urban row must win for the urban selection")
}

func TestFindSeriesToleratesRaggedRows(t *testing.T) {
	tables := ParseTables(models.TabElectricity, []string{electricityTableHTML})

	gen := models.Selection{Metric: "Electricity generation", Tab: models.TabElectricity}
	values, unit, err := FindSeries(tables, gen)
	require.NoError(t, err)
	require.Equal(t, "GWh", unit)
	require.Equal(t, "1,200", values[2000], "cell text stays raw until normalization")
	_, ok := values[2024]
	require.False(t, ok, "column beyond the row's cells must stay absent")
}

func TestFindSeriesPrefersSelectionTab(t *testing.T) {
	shared := `
<table>
  <thead><tr><th>Indicator</th><th>2005</th></tr></thead>
  <tbody><tr><td>Renewable energy share of final consumption</td><td>%s</td></tr></tbody>
</table>`
	tables := append(
		ParseTables(models.TabElectricity, []string{fmt.Sprintf(shared, "11.1")}),
		ParseTables(models.TabEnergy, []string{fmt.Sprintf(shared, "22.2")})...,
	)

	sel := models.Selection{
		Metric: "Renewable energy share", Tab: models.TabEnergy,
		RowLabel: "Renewable energy share of final consumption",
	}
	values, _, err := FindSeries(tables, sel)
	require.NoError(t, err)
	require.Equal(t, "22.2", values[2005])
}

func TestFindSeriesMissingMetric(t *testing.T) {
	tables := ParseTables(models.TabElectricity, []string{electricityTableHTML})

	sel := models.Selection{Metric: "Nuclear capacity", Tab: models.TabElectricity}
	_, _, err := FindSeries(tables, sel)
	require.ErrorIs(t, err, ErrMetricNotFound)
}

func TestFindSeriesIgnoresTablesWithoutYearColumns(t *testing.T) {
	noYears := `
<table>
  <thead><tr><th>Indicator</th><th>Latest</th></tr></thead>
  <tbody><tr><td>Electricity generation</td><td>9999</td></tr></tbody>
</table>`
	tables := ParseTables(models.TabElectricity, []string{noYears})

	sel := models.Selection{Metric: "Electricity generation", Tab: models.TabElectricity}
	_, _, err := FindSeries(tables, sel)
	require.ErrorIs(t, err, ErrMetricNotFound)
}
