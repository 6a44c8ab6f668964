package resutils

import (
	"math"
	"strings"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wgdzlh/resutils/config"
	"github.com/wgdzlh/resutils/log"
	"github.com/wgdzlh/resutils/quantity"
)

type ResToolbox struct {
	cfg        *config.Config
	classifier *Classifier
	aggregator *Aggregator
	registry   *quantity.Registry
	refMap     map[string]gdal.SpatialReference
	transMap   map[string]gdal.CoordinateTransform
	wgs84      *gdal.SpatialReference
	rLock      sync.Mutex
	tmpDir     string
	logTag     string
}

// 由GDAL库C语言创建的内存对象，需要手动调用Destroy回收
type destroyable interface {
	Destroy()
}

var registerOnce sync.Once

// 初始化工具箱，cfg为nil时使用默认配置
func NewResToolbox(cfg *config.Config) (g *ResToolbox, err error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err = cfg.Validate(); err != nil {
		return
	}
	cm, err := NewPalette(cfg.Classify.Palette)
	if err != nil {
		return
	}
	registerOnce.Do(godal.RegisterAll)
	reg := quantity.NewRegistry()
	g = &ResToolbox{
		cfg: cfg,
		classifier: NewClassifier(cm, ClassifierOptions{
			Precision:      cfg.Classify.Precision,
			MaxExtraDigits: cfg.Classify.MaxExtraDigits,
			Opacity:        cfg.Classify.Opacity,
		}),
		aggregator: NewAggregator(reg, AggregatorOptions{
			EnergyUnit: cfg.Indicator.EnergyUnit,
			PowerShift: cfg.Indicator.PowerShift,
		}),
		registry: reg,
		refMap:   map[string]gdal.SpatialReference{},
		transMap: map[string]gdal.CoordinateTransform{},
		tmpDir:   cfg.Raster.TmpDir,
		logTag:   "ResToolbox:",
	}
	return
}

func (g *ResToolbox) Classifier() *Classifier {
	return g.classifier
}

func (g *ResToolbox) Aggregator() *Aggregator {
	return g.aggregator
}

func (g *ResToolbox) Registry() *quantity.Registry {
	return g.registry
}

// 回收缓存的坐标系与坐标转换
func (g *ResToolbox) Close() {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	var gc []destroyable
	for k, v := range g.transMap {
		gc = append(gc, v)
		delete(g.transMap, k)
	}
	for k, v := range g.refMap {
		gc = append(gc, v)
		delete(g.refMap, k)
	}
	if g.wgs84 != nil {
		gc = append(gc, *g.wgs84)
		g.wgs84 = nil
	}
	for _, v := range gc {
		v.Destroy()
	}
}

func (g *ResToolbox) parseWktRef(wkt string) (ref gdal.SpatialReference, err error) {
	if strings.TrimSpace(wkt) == "" {
		err = eris.Wrap(ErrReference, "empty projection")
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromWKT(wkt); err != nil {
		log.Error(g.logTag+"parse projection failed", zap.String("wkt", wkt), zap.Error(err))
		ref.Destroy()
		err = eris.Wrap(ErrReference, err.Error())
		return
	}
	// 数据轴次序固定为(经度,纬度)
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	return
}

// 获取WGS84坐标系（只创建一次），调用方须持有rLock
func (g *ResToolbox) getWgs84Ref() (ref gdal.SpatialReference, err error) {
	if g.wgs84 != nil {
		return *g.wgs84, nil
	}
	if ref, err = g.parseWktRef(WGS84_WKT); err != nil {
		return
	}
	g.wgs84 = &ref
	return
}

// 获取源坐标系到WGS84的转换（按WKT缓存），调用方须持有rLock
func (g *ResToolbox) getTransform(wkt string) (trans gdal.CoordinateTransform, err error) {
	trans, ok := g.transMap[wkt]
	if ok {
		return
	}
	tRef, err := g.getWgs84Ref()
	if err != nil {
		return
	}
	ref, ok := g.refMap[wkt]
	if !ok {
		if ref, err = g.parseWktRef(wkt); err != nil {
			return
		}
		g.refMap[wkt] = ref
	}
	trans = gdal.CreateCoordinateTransform(ref, tRef)
	g.transMap[wkt] = trans
	return
}

// 投影坐标转WGS84经纬度
func (g *ResToolbox) XYToLonLat(x, y float64, projection string) (lon, lat float64, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	trans, err := g.getTransform(projection)
	if err != nil {
		return
	}
	xs, ys, zs := []float64{x}, []float64{y}, []float64{0}
	if !trans.Transform(1, xs, ys, zs) {
		log.Error(g.logTag+"point transform failed", zap.Float64("x", x), zap.Float64("y", y))
		err = eris.Wrapf(ErrTransformFailed, "point (%f, %f)", x, y)
		return
	}
	lon, lat = xs[0], ys[0]
	return
}

// 取值最接近正值均值的像元，返回其左上角的WGS84位置
func (g *ResToolbox) GetLatLong(r *Raster, mostSuitable mat.Matrix) (pt *geom.Point, err error) {
	rows, cols := r.Dims()
	if mr, mc := mostSuitable.Dims(); mr != rows || mc != cols {
		err = eris.Wrapf(ErrShapeMismatch, "raster %dx%d, values %dx%d", rows, cols, mr, mc)
		return
	}
	var positive []float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := mostSuitable.At(i, j); v > 0 {
				positive = append(positive, v)
			}
		}
	}
	if len(positive) == 0 {
		err = ErrEmptyRaster
		return
	}
	mean := stat.Mean(positive, nil)
	bestRow, bestCol, bestDiff := 0, 0, math.Inf(1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := mostSuitable.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if d := math.Abs(v - mean); d < bestDiff {
				bestRow, bestCol, bestDiff = i, j, d
			}
		}
	}
	x, y := r.GeoTransform.PixelToXY(bestRow, bestCol)
	lon, lat, err := g.XYToLonLat(x, y, r.Projection)
	if err != nil {
		return
	}
	log.Info(g.logTag+"representative pixel", zap.Int("row", bestRow), zap.Int("col", bestCol),
		zap.Float64("lon", lon), zap.Float64("lat", lat))
	pt = geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(WGS84_SRID)
	return
}
