package resutils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestResizeRasterUpsample(t *testing.T) {
	src := NewRaster(2, 2, []float64{1, 2, 3, math.NaN()}, GeoTransform{0, 10, 0, 100, 0, -10}, "")
	dst := NewRaster(4, 4, nil, GeoTransform{0, 5, 0, 100, 0, -5}, "")

	ret, err := ResizeRaster(src, dst)
	require.NoError(t, err)
	want := mat.NewDense(4, 4, []float64{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 0, 0,
		3, 3, 0, 0,
	})
	assert.True(t, mat.Equal(want, ret), "got %v", mat.Formatted(ret))
}

func TestResizeRasterOffsetLastWriteWins(t *testing.T) {
	src := NewRaster(2, 2, []float64{1, 2, 3, 4}, GeoTransform{0, 10, 0, 100, 0, -10}, "")
	dst := NewRaster(4, 4, nil, GeoTransform{10, 5, 0, 90, 0, -5}, "")

	ret, err := ResizeRaster(src, dst)
	require.NoError(t, err)
	// 起点被截到0，后写的源像元覆盖先写的
	want := mat.NewDense(4, 4, []float64{
		4, 4, 0, 0,
		4, 4, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	assert.True(t, mat.Equal(want, ret), "got %v", mat.Formatted(ret))
}

func TestResizeRasterPositiveOffset(t *testing.T) {
	src := NewRaster(1, 1, []float64{7}, GeoTransform{10, 10, 0, 90, 0, -10}, "")
	dst := NewRaster(4, 4, nil, GeoTransform{0, 5, 0, 100, 0, -5}, "")

	ret, err := ResizeRaster(src, dst)
	require.NoError(t, err)
	want := mat.NewDense(4, 4, []float64{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 7, 7,
		0, 0, 7, 7,
	})
	assert.True(t, mat.Equal(want, ret), "got %v", mat.Formatted(ret))
}

func TestResizeRasterFinerSourceIsSkipped(t *testing.T) {
	src := NewRaster(4, 4, []float64{
		1, 1, 1, 1,
		1, 1, 1, 1,
		1, 1, 1, 1,
		1, 1, 1, 1,
	}, GeoTransform{0, 5, 0, 100, 0, -5}, "")
	dst := NewRaster(2, 2, nil, GeoTransform{0, 10, 0, 100, 0, -10}, "")

	ret, err := ResizeRaster(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Sum(ret))
}

func TestResizeRasterShape(t *testing.T) {
	cases := []struct {
		name     string
		src, dst GeoTransform
		rows     int
		cols     int
	}{
		{"same grid", GeoTransform{0, 1, 0, 0, 0, -1}, GeoTransform{0, 1, 0, 0, 0, -1}, 3, 5},
		{"no overlap", GeoTransform{-1000, 1, 0, 1000, 0, -1}, GeoTransform{0, 1, 0, 0, 0, -1}, 2, 7},
		{"coarse source", GeoTransform{-3, 3, 0, 4, 0, -3}, GeoTransform{0, 1, 0, 0, 0, -1}, 6, 4},
		{"positive height", GeoTransform{0, 2, 0, 0, 0, 2}, GeoTransform{1, 1, 0, 1, 0, 1}, 5, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := NewRaster(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, tc.src, "")
			dst := NewRaster(tc.rows, tc.cols, nil, tc.dst, "")
			ret, err := ResizeRaster(src, dst)
			require.NoError(t, err)
			r, c := ret.Dims()
			assert.Equal(t, tc.rows, r)
			assert.Equal(t, tc.cols, c)
			if tc.name == "no overlap" {
				assert.Equal(t, 0.0, mat.Sum(ret))
			}
		})
	}
}

func TestResizeRasterNoOverlap(t *testing.T) {
	dst := NewRaster(3, 3, nil, GeoTransform{0, 1, 0, 0, 0, -1}, "")
	cases := []struct {
		name string
		gt   GeoTransform
	}{
		{"north west", GeoTransform{-1000, 1, 0, 1000, 0, -1}},
		{"west", GeoTransform{-1000, 1, 0, 0, 0, -1}},
		{"north", GeoTransform{0, 1, 0, 1000, 0, -1}},
		{"east", GeoTransform{1000, 1, 0, 0, 0, -1}},
		{"south", GeoTransform{0, 1, 0, -1000, 0, -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := NewRaster(2, 2, []float64{1, 2, 3, 4}, tc.gt, "")
			ret, err := ResizeRaster(src, dst)
			require.NoError(t, err)
			r, c := ret.Dims()
			assert.Equal(t, 3, r)
			assert.Equal(t, 3, c)
			assert.Equal(t, 0.0, mat.Sum(ret))
		})
	}
}

func TestResizeRasterWithoutData(t *testing.T) {
	gt := GeoTransform{0, 1, 0, 0, 0, -1}
	dst := NewRaster(2, 2, nil, gt, "")

	_, err := ResizeRaster(&Raster{GeoTransform: gt}, dst)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = ResizeRaster(dst, &Raster{GeoTransform: gt})
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = ResizeRaster(nil, dst)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestResizeRasterZeroPixelSize(t *testing.T) {
	src := NewRaster(1, 1, []float64{1}, GeoTransform{0, 0, 0, 0, 0, -1}, "")
	dst := NewRaster(1, 1, nil, GeoTransform{0, 1, 0, 0, 0, -1}, "")
	_, err := ResizeRaster(src, dst)
	assert.True(t, errors.Is(err, ErrZeroPixelSize))

	_, err = ResizeRaster(dst, src)
	assert.True(t, errors.Is(err, ErrZeroPixelSize))
}

func TestResizeThenDiff(t *testing.T) {
	src := NewRaster(2, 2, []float64{1, 2, 3, 4}, GeoTransform{0, 10, 0, 100, 0, -10}, "")
	dst := NewRaster(2, 2, nil, GeoTransform{0, 10, 0, 100, 0, -10}, "")
	ret, err := ResizeRaster(src, dst)
	require.NoError(t, err)
	e, err := DiffRaster(src.Data, ret)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)
}
