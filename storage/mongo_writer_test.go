package storage

import (
	"testing"

	"aep-scraper/models"

	"github.com/stretchr/testify/require"
)

func TestIdentityFilterMatchesKeyFields(t *testing.T) {
	rec := sampleRecord()
	filter := identityFilter(rec)

	require.Len(t, filter, len(identityFields))
	require.Equal(t, "Morocco", filter["country"])
	require.Equal(t, "Electricity generation", filter["metric"])
	require.Equal(t, "Electricity", filter["sector"])
	require.Equal(t, "Supply", filter["sub_sector"])
	require.Equal(t, "", filter["sub_sub_sector"])

	_, hasUnit := filter["unit"]
	require.False(t, hasUnit, "unit is data, not identity")
	_, hasSerial := filter["country_serial"]
	require.False(t, hasSerial, "serials are data, not identity")
}

func TestRecordDocumentShape(t *testing.T) {
	rec := sampleRecord()
	doc := recordDocument(rec)

	require.Len(t, doc, 9+models.YearCount)
	require.Equal(t, "Morocco", doc["country"])
	require.Equal(t, 35, doc["country_serial"])
	require.Equal(t, "Africa Energy Portal", doc["source"])

	require.Equal(t, 12150.0, doc["2000"])
	require.Equal(t, 46013.5, doc["2024"])

	v, present := doc["2010"]
	require.True(t, present, "missing years must still be stored")
	require.Nil(t, v, "missing years are stored as null")
}
