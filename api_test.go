package resutils

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestClassificationEntryJSON(t *testing.T) {
	e := ClassificationEntry{
		Class:   2,
		Min:     1.5,
		Max:     3,
		Label:   "1.50 < x <= 3.00",
		Color:   color.NRGBA{R: 1, G: 2, B: 3, A: 255},
		Opacity: 0.5,
	}
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":2,"min":1.5,"max":3,"label":"1.50 < x <= 3.00",
		"red":1,"green":2,"blue":3,"alpha":255,"opacity":0.5}`, string(b))

	var got ClassificationEntry
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, e, got)
}

func TestColorEntries(t *testing.T) {
	c := Classification{Symbology: []ClassificationEntry{
		{Class: 0},
		{Class: 2, Color: color.NRGBA{R: 9, G: 8, B: 7, A: 255}},
		{Class: 1, Color: color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
	}}
	assert.Equal(t, [][4]int16{{0, 0, 0, 0}, {1, 2, 3, 255}, {9, 8, 7, 255}}, c.ColorEntries())
	assert.Equal(t, 2, c.Bins())
}

func TestRasterGeometry(t *testing.T) {
	r := NewRaster(2, 3, nil, GeoTransform{100, 10, 0, 50, 0, -5}, "")
	b := r.Bounds()
	assert.Equal(t, geom.XY, b.Layout())
	assert.Equal(t, []float64{100, 40}, []float64{b.Min(0), b.Min(1)})
	assert.Equal(t, []float64{130, 50}, []float64{b.Max(0), b.Max(1)})
	assert.Equal(t, [4]float64{100, 130, 40, 50}, r.Span())

	x, y := r.GeoTransform.PixelToXY(1, 2)
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 45.0, y)

	assert.True(t, isNoData(r.NoDataValue(), r.NoDataValue()))
	r.NoData, r.HasNoData = -9999, true
	assert.Equal(t, -9999.0, r.NoDataValue())

	assert.NoError(t, r.GeoTransform.Validate())
	assert.ErrorIs(t, GeoTransform{0, 1, 0, 0, 0, 0}.Validate(), ErrZeroPixelSize)
}

func TestRasterWithoutData(t *testing.T) {
	r := &Raster{}
	rows, cols := r.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}

func TestSpanToWkt(t *testing.T) {
	assert.Equal(t, "POLYGON((0.000000 1.000000, 0.000000 3.000000, 2.000000 3.000000, 2.000000 1.000000, 0.000000 1.000000))",
		SpanToWkt([4]float64{0, 2, 1, 3}))
}
