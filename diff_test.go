package resutils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDiffRaster(t *testing.T) {
	in := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	out := mat.NewDense(2, 2, []float64{1, 2, 3, 0})
	e, err := DiffRaster(in, out)
	require.NoError(t, err)
	assert.Equal(t, 0.4, e)
}

func TestDiffRasterIgnoresNaN(t *testing.T) {
	in := mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})
	out := mat.NewDense(1, 3, []float64{4, math.NaN(), 4})
	e, err := DiffRaster(in, out)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)
}

func TestDiffRasterZeroInput(t *testing.T) {
	in := mat.NewDense(1, 2, []float64{0, math.NaN()})
	out := mat.NewDense(1, 2, []float64{1, 1})
	_, err := DiffRaster(in, out)
	assert.True(t, errors.Is(err, ErrArithmetic))
}
