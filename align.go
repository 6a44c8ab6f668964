package resutils

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/wgdzlh/resutils/log"
)

// 将src按块复制重采样到dst的像元网格，输出与dst同形，NaN按0处理
// 源像元覆盖的目标块起点为 偏移 + trunc(下标*分辨率比)，长度为 trunc(分辨率比)，后写覆盖先写
// 分辨率比小于1时块为空，对应源像元被跳过
func ResizeRaster(src, dst *Raster) (ret *mat.Dense, err error) {
	if src == nil || src.Data == nil || dst == nil || dst.Data == nil {
		err = eris.Wrap(ErrShapeMismatch, "raster without data")
		return
	}
	if err = src.GeoTransform.Validate(); err != nil {
		err = eris.Wrap(err, "source raster")
		return
	}
	if err = dst.GeoTransform.Validate(); err != nil {
		err = eris.Wrap(err, "target raster")
		return
	}
	rows, cols := dst.Dims()
	if rows == 0 || cols == 0 {
		err = eris.Wrap(ErrShapeMismatch, "empty target raster")
		return
	}
	var (
		sgt          = src.GeoTransform
		dgt          = dst.GeoTransform
		sRows, sCols = src.Dims()
		// 源原点在目标网格中的像元偏移
		colOff = int((sgt.OriginX() - dgt.OriginX()) / dgt.PixelWidth())
		rowOff = int((sgt.OriginY() - dgt.OriginY()) / dgt.PixelHeight())
		xRatio = sgt.PixelWidth() / dgt.PixelWidth()
		yRatio = sgt.PixelHeight() / dgt.PixelHeight()
	)
	ret = mat.NewDense(rows, cols, nil)
	if sRows == 0 || sCols == 0 {
		return
	}
	if !src.Bounds().Overlaps(geom.XY, dst.Bounds()) {
		log.Warn("ResizeRaster:rasters do not overlap",
			zap.String("src", SpanToWkt(src.Span())), zap.String("dst", SpanToWkt(dst.Span())))
		return
	}
	log.Debug("ResizeRaster:align", zap.Int("colOff", colOff), zap.Int("rowOff", rowOff),
		zap.Float64("xRatio", xRatio), zap.Float64("yRatio", yRatio))
	for y := 0; y < sRows; y++ {
		i0 := max(0, int(float64(y)*yRatio)+rowOff)
		i1 := min(i0+int(yRatio), rows)
		if i0 >= i1 {
			continue
		}
		for x := 0; x < sCols; x++ {
			j0 := max(0, int(float64(x)*xRatio)+colOff)
			j1 := min(j0+int(xRatio), cols)
			if j0 >= j1 {
				continue
			}
			v := nanToNum(src.Data.At(y, x))
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					ret.Set(i, j, v)
				}
			}
		}
	}
	return
}
