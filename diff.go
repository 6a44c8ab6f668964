package resutils

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"
)

// 重采样前后像元值总和（忽略NaN）的相对误差
func DiffRaster(before, after mat.Matrix) (float64, error) {
	in := nanSum(before)
	if in == 0 {
		return 0, eris.Wrap(ErrArithmetic, "input raster sums to zero")
	}
	return (in - nanSum(after)) / in, nil
}
