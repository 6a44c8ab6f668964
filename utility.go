package resutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var nan = math.NaN()

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

func isNoData(v, noData float64) bool {
	return v == noData || math.IsNaN(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nanToNum(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// 忽略NaN求和
func nanSum(m mat.Matrix) (sum float64) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); !math.IsNaN(v) {
				sum += v
			}
		}
	}
	return
}
