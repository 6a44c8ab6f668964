package resutils

import (
	"encoding/json"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
)

var testRecords = []Indicator{
	{Unit: "GWh/year", Name: "PV total energy production", Value: "1234.5"},
	{Unit: COUNT_UNIT, Name: "Number of installed PV Systems", Value: "1000"},
}

var testSymbology = []ClassificationEntry{
	{Class: 0, Label: NODATA_LABEL},
	{Class: 1, Min: 0, Max: 3, Label: "0.00 < x <= 3.00", Color: color.NRGBA{R: 10, G: 20, B: 30, A: 255}, Opacity: 1},
}

func TestReportJSON(t *testing.T) {
	site := geom.NewPointFlat(geom.XY, []float64{1.7, 48.9}).SetSRID(WGS84_SRID)
	data, err := ReportJSON(testRecords, testSymbology, site)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc["result"], "indicator")
	assert.Contains(t, doc["result"], "raster_symbology")
	assert.JSONEq(t, `{"type":"Point","coordinates":[1.7,48.9]}`, string(doc["result"]["site"]))

	var sym []ClassificationEntry
	require.NoError(t, json.Unmarshal(doc["result"]["raster_symbology"], &sym))
	assert.Equal(t, testSymbology, sym)

	records, err := ParseReportIndicators(data)
	require.NoError(t, err)
	assert.Equal(t, testRecords, records)
}

func TestReportJSONEmpty(t *testing.T) {
	data, err := ReportJSON(nil, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"indicator":[]}}`, string(data))

	_, err = ParseReportIndicators(AnyJson("{"))
	assert.Error(t, err)
}

func TestSaveReportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveReportXLSX(path, testRecords, testSymbology))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet[SHEET_INDICATORS]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "name", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "PV total energy production", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "1234.5", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "GWh/year", sheet.Rows[1].Cells[2].String())
	assert.Equal(t, "1,234.5", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "1,000", sheet.Rows[2].Cells[3].String())

	sheet, ok = f.Sheet[SHEET_SYMBOLOGY]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "0.00 < x <= 3.00", sheet.Rows[2].Cells[1].String())
	assert.Equal(t, "10", sheet.Rows[2].Cells[4].String())
}

func TestDecimalsOf(t *testing.T) {
	assert.Equal(t, 0, decimalsOf("1000"))
	assert.Equal(t, 2, decimalsOf("2.22"))
	assert.Equal(t, 1, decimalsOf("-0.5"))
}
