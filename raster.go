package resutils

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/wgdzlh/resutils/log"
	"github.com/wgdzlh/resutils/utils"
)

// 读取Tif第一个波段
func (g *ResToolbox) ReadRaster(tif string) (r *Raster, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = eris.Wrap(ErrInvalidTif, err.Error())
		return
	}
	defer sds.Close()
	bands := sds.Bands()
	if len(bands) == 0 {
		log.Error(g.logTag+"tif has no band", zap.String("tif", tif))
		err = ErrWrongTif
		return
	}
	band := bands[0]
	bandStruct := band.Structure()
	x := bandStruct.SizeX
	y := bandStruct.SizeY
	if x == 0 || y == 0 {
		err = eris.Wrapf(ErrWrongTif, "size %dx%d", x, y)
		return
	}
	gt, err := sds.GeoTransform()
	if err != nil {
		log.Error(g.logTag+"tif without geotransform", zap.String("tif", tif), zap.Error(err))
		err = eris.Wrap(ErrWrongTif, err.Error())
		return
	}
	log.Info(g.logTag+"read tif band", zap.String("tif", tif), zap.Int("dt", int(bandStruct.DataType)),
		zap.Int("width", x), zap.Int("height", y), zap.Int("bands", len(bands)))
	buf := make([]float64, x*y)
	if err = band.IO(godal.IORead, 0, 0, buf, x, y); err != nil {
		log.Error(g.logTag+"read tif band failed", zap.Error(err))
		err = eris.Wrap(ErrTifReadFailed, err.Error())
		return
	}
	r = &Raster{
		Data:         mat.NewDense(y, x, buf),
		GeoTransform: GeoTransform(gt),
		Projection:   sds.Projection(),
	}
	r.NoData, r.HasNoData = band.NoData()
	return
}

// 读取Tif第一个波段的调色板
func (g *ResToolbox) ReadColorTable(tif string) (entries [][4]int16, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		err = eris.Wrap(ErrInvalidTif, err.Error())
		return
	}
	defer sds.Close()
	bands := sds.Bands()
	if len(bands) == 0 {
		err = ErrWrongTif
		return
	}
	entries = bands[0].ColorTable().Entries
	return
}

// 对栅格做分位数分级，并输出带调色板的单波段Tif（沿用源栅格的投影与仿射变换）
func (g *ResToolbox) WriteClassifiedRaster(out string, src *Raster, qnumb int) (c *Classification, err error) {
	if c, err = g.classifier.Classify(src.Data, src.NoDataValue(), qnumb); err != nil {
		return
	}
	if err = g.writeClassification(out, src, c); err != nil {
		c = nil
	}
	return
}

// 读取Tif，按配置的分位点数分级后写入outDir（为空时与输入同目录），返回输出路径
func (g *ResToolbox) ClassifyTif(in, outDir string) (out string, c *Classification, err error) {
	src, err := g.ReadRaster(in)
	if err != nil {
		return
	}
	if outDir == "" {
		outDir = filepath.Dir(in)
	}
	out = filepath.Join(outDir, fmt.Sprintf(CLS_TIF, utils.GetFilenameWithoutExt(in), utils.GetNowTimeTag()))
	if c, err = g.WriteClassifiedRaster(out, src, g.cfg.Classify.Quantiles); err != nil {
		out = ""
	}
	return
}

func (g *ResToolbox) writeClassification(out string, src *Raster, c *Classification) (err error) {
	var (
		dt  = godal.Byte
		buf interface{}
	)
	switch n := len(c.Symbology); {
	case n-1 <= MAX_BYTE_CLASSES:
		b := make([]uint8, len(c.Classes))
		for i, v := range c.Classes {
			b[i] = uint8(v)
		}
		buf = b
	case n-1 <= math.MaxUint16:
		dt = godal.UInt16
		buf = c.Classes
	default:
		err = eris.Wrapf(ErrTooManyClasses, "%d classes", n-1)
		return
	}
	dir := g.tmpDir
	if dir == "" {
		dir = filepath.Dir(out)
	}
	tmp := utils.GetUniqTmpPath(dir, TMP_TIF)
	ods, err := godal.Create(godal.GTiff, tmp, 1, dt, c.Cols, c.Rows, godal.CreationOption(g.cfg.Raster.CreationOptions...))
	if err != nil {
		log.Error(g.logTag+"create tif failed", zap.String("tif", tmp), zap.Error(err))
		err = eris.Wrap(ErrGdalDriverCreate, err.Error())
		return
	}
	closed := false
	defer func() {
		if !closed {
			ods.Close()
		}
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if src.Projection != "" {
		if err = ods.SetProjection(src.Projection); err != nil {
			err = eris.Wrap(ErrTifWriteFailed, err.Error())
			return
		}
	}
	if err = ods.SetGeoTransform([6]float64(src.GeoTransform)); err != nil {
		err = eris.Wrap(ErrTifWriteFailed, err.Error())
		return
	}
	band := ods.Bands()[0]
	if err = band.IO(godal.IOWrite, 0, 0, buf, c.Cols, c.Rows); err != nil {
		log.Error(g.logTag+"write tif band failed", zap.Error(err))
		err = eris.Wrap(ErrTifWriteFailed, err.Error())
		return
	}
	if err = band.SetNoData(NODATA_CLASS); err != nil {
		err = eris.Wrap(ErrTifWriteFailed, err.Error())
		return
	}
	ct := godal.ColorTable{
		PaletteInterp: godal.RGBPalette,
		Entries:       c.ColorEntries(),
	}
	if err = band.SetColorTable(ct); err != nil {
		err = eris.Wrap(ErrTifWriteFailed, err.Error())
		return
	}
	closed = true
	if err = ods.Close(); err != nil {
		log.Error(g.logTag+"flush tif failed", zap.String("tif", tmp), zap.Error(err))
		err = eris.Wrap(ErrTifWriteFailed, err.Error())
		return
	}
	if err = os.Rename(tmp, out); err != nil {
		err = eris.Wrap(err, "move classified tif")
		return
	}
	log.Info(g.logTag+"classified tif written", zap.String("out", out), zap.Int("bins", c.Bins()),
		zap.Float64s("breakpoints", c.Breakpoints), zap.String("extent", SpanToWkt(src.Span())))
	return
}
