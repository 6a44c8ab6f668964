package resutils

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/mat"

	"github.com/wgdzlh/resutils/utils"
)

type AnyJson = json.RawMessage

// 仿射变换参数：[原点x, 像元宽, 行旋转, 原点y, 列旋转, 像元高(通常为负)]
type GeoTransform [6]float64

func (gt GeoTransform) OriginX() float64     { return gt[0] }
func (gt GeoTransform) PixelWidth() float64  { return gt[1] }
func (gt GeoTransform) OriginY() float64     { return gt[3] }
func (gt GeoTransform) PixelHeight() float64 { return gt[5] }

func (gt GeoTransform) Validate() error {
	if gt[1] == 0 || gt[5] == 0 {
		return ErrZeroPixelSize
	}
	return nil
}

// 像元(row, col)左上角的投影坐标
func (gt GeoTransform) PixelToXY(row, col int) (x, y float64) {
	x = gt[0] + float64(col)*gt[1] + float64(row)*gt[2]
	y = gt[3] + float64(col)*gt[4] + float64(row)*gt[5]
	return
}

// 单波段栅格
type Raster struct {
	Data         *mat.Dense
	GeoTransform GeoTransform
	Projection   string // WKT
	NoData       float64
	HasNoData    bool
}

func NewRaster(rows, cols int, data []float64, gt GeoTransform, projection string) *Raster {
	return &Raster{
		Data:         mat.NewDense(rows, cols, data),
		GeoTransform: gt,
		Projection:   projection,
	}
}

// 无数据时为0x0
func (r *Raster) Dims() (rows, cols int) {
	if r.Data == nil {
		return
	}
	return r.Data.Dims()
}

// 无效值标记，未设置时为NaN
func (r *Raster) NoDataValue() float64 {
	if r.HasNoData {
		return r.NoData
	}
	return nan
}

// 栅格投影坐标范围（忽略旋转项）
func (r *Raster) Bounds() *geom.Bounds {
	rows, cols := r.Dims()
	x0, y0 := r.GeoTransform.PixelToXY(0, 0)
	x1, y1 := r.GeoTransform.PixelToXY(rows, cols)
	return geom.NewBounds(geom.XY).Set(min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1))
}

// [minX, maxX, minY, maxY]
func (r *Raster) Span() (span [4]float64) {
	b := r.Bounds()
	span[0], span[1] = b.Min(0), b.Max(0)
	span[2], span[3] = b.Min(1), b.Max(1)
	return
}

// 指标输出格式
type Indicator struct {
	Unit  string `json:"unit"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type IndicatorRecord interface {
	Record() Indicator
}

type EnergyIndicator struct {
	Kind  string
	Value float64
	Unit  string
}

func (e EnergyIndicator) Record() Indicator {
	return Indicator{
		Unit:  e.Unit,
		Name:  fmt.Sprintf(ENERGY_NAME_TPL, e.Kind),
		Value: utils.FormatRounded(e.Value, ENERGY_DECIMALS),
	}
}

// 总投资，单位百万
type CostIndicator struct {
	Kind     string
	Millions float64
}

func (c CostIndicator) Record() Indicator {
	return Indicator{
		Unit:  COST_UNIT,
		Name:  fmt.Sprintf(COST_NAME_TPL, c.Kind),
		Value: utils.FormatRounded(c.Millions, COST_DECIMALS),
	}
}

type CountIndicator struct {
	Kind  string
	Count float64
}

func (c CountIndicator) Record() Indicator {
	return Indicator{
		Unit:  COUNT_UNIT,
		Name:  fmt.Sprintf(COUNT_NAME_TPL, c.Kind),
		Value: utils.FormatRounded(c.Count, COUNT_DECIMALS),
	}
}

type LCOEIndicator struct {
	Kind  string
	Value float64
}

func (l LCOEIndicator) Record() Indicator {
	return Indicator{
		Unit:  LCOE_UNIT,
		Name:  fmt.Sprintf(LCOE_NAME_TPL, l.Kind),
		Value: utils.FormatRounded(l.Value, LCOE_DECIMALS),
	}
}

type Indicators struct {
	Energy EnergyIndicator
	Cost   CostIndicator
	Count  CountIndicator
	LCOE   LCOEIndicator
}

// 按固定顺序输出：能量、投资、数量、LCOE
func (in *Indicators) Records() []Indicator {
	return []Indicator{
		in.Energy.Record(),
		in.Cost.Record(),
		in.Count.Record(),
		in.LCOE.Record(),
	}
}

// 图例条目，Class为0表示无效值
type ClassificationEntry struct {
	Class   int
	Min     float64
	Max     float64
	Label   string
	Color   color.NRGBA
	Opacity float64
}

type classificationEntryJson struct {
	Value   int     `json:"value"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Label   string  `json:"label"`
	Red     uint8   `json:"red"`
	Green   uint8   `json:"green"`
	Blue    uint8   `json:"blue"`
	Alpha   uint8   `json:"alpha"`
	Opacity float64 `json:"opacity"`
}

func (e ClassificationEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(classificationEntryJson{
		Value:   e.Class,
		Min:     e.Min,
		Max:     e.Max,
		Label:   e.Label,
		Red:     e.Color.R,
		Green:   e.Color.G,
		Blue:    e.Color.B,
		Alpha:   e.Color.A,
		Opacity: e.Opacity,
	})
}

func (e *ClassificationEntry) UnmarshalJSON(b []byte) (err error) {
	var v classificationEntryJson
	if err = json.Unmarshal(b, &v); err != nil {
		return
	}
	*e = ClassificationEntry{
		Class:   v.Value,
		Min:     v.Min,
		Max:     v.Max,
		Label:   v.Label,
		Color:   color.NRGBA{R: v.Red, G: v.Green, B: v.Blue, A: v.Alpha},
		Opacity: v.Opacity,
	}
	return
}

// 分位数分级结果
type Classification struct {
	Breakpoints []float64
	Fractions   []float64
	Precision   int
	Rows        int
	Cols        int
	Classes     []uint16 // 行优先
	Symbology   []ClassificationEntry
}

func (c *Classification) At(row, col int) int {
	return int(c.Classes[row*c.Cols+col])
}

// 分级数（不含无效值）
func (c *Classification) Bins() int {
	return len(c.Symbology) - 1
}

// GDAL调色板，下标即分级值
func (c *Classification) ColorEntries() [][4]int16 {
	entries := make([][4]int16, len(c.Symbology))
	for _, s := range c.Symbology {
		entries[s.Class] = [4]int16{int16(s.Color.R), int16(s.Color.G), int16(s.Color.B), int16(s.Color.A)}
	}
	return entries
}
