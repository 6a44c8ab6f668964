package resutils

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/palette"

	"github.com/wgdzlh/resutils/log"
	"github.com/wgdzlh/resutils/utils"
)

// 零值按字面生效：Precision为0即从整数开始取整，MaxExtraDigits为0即不追加位数，Opacity为0即全透明
// Precision、MaxExtraDigits为负时取默认值，一般从DefaultClassifierOptions开始修改
type ClassifierOptions struct {
	Precision      int     // 分位点起始小数位数
	MaxExtraDigits int     // 分位点重复时最多追加的小数位数
	Opacity        float64 // 图例不透明度
}

func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		Precision:      DEFAULT_PRECISION,
		MaxExtraDigits: DEFAULT_MAX_EXTRA,
		Opacity:        DEFAULT_OPACITY,
	}
}

// 分位数分级器，色带须覆盖[0,1]
type Classifier struct {
	cm     palette.ColorMap
	opts   ClassifierOptions
	logTag string
}

func NewClassifier(cm palette.ColorMap, opts ClassifierOptions) *Classifier {
	if opts.Precision < 0 {
		opts.Precision = DEFAULT_PRECISION
	}
	if opts.MaxExtraDigits < 0 {
		opts.MaxExtraDigits = DEFAULT_MAX_EXTRA
	}
	return &Classifier{
		cm:     cm,
		opts:   opts,
		logTag: "Classifier:",
	}
}

// 按qnumb个分位点对栅格分级，等于noData或NaN的像元为0级，其余为1..qnumb-1级
func (c *Classifier) Classify(m mat.Matrix, noData float64, qnumb int) (ret *Classification, err error) {
	if qnumb < 2 {
		err = eris.Wrapf(ErrInvalidClassCount, "got %d", qnumb)
		return
	}
	// 分级值以uint16存储
	if qnumb-1 > math.MaxUint16 {
		err = eris.Wrapf(ErrTooManyClasses, "%d classes", qnumb-1)
		return
	}
	rows, cols := m.Dims()
	var (
		masked = make([]bool, rows*cols)
		valid  = make([]float64, 0, rows*cols)
	)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if isNoData(v, noData) {
				masked[i*cols+j] = true
				continue
			}
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		err = ErrEmptyRaster
		return
	}
	sort.Float64s(valid)
	fractions := make([]float64, qnumb)
	raw := make([]float64, qnumb)
	for i := range fractions {
		fractions[i] = float64(i) / float64(qnumb-1)
		raw[i] = stat.Quantile(fractions[i], stat.LinInterp, valid, nil)
	}
	bps, prec, err := c.roundBreakpoints(raw)
	if err != nil {
		return
	}
	classes := make([]uint16, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			if masked[k] {
				continue
			}
			classes[k] = uint16(binOf(bps, m.At(i, j)))
		}
	}
	sym, err := c.symbology(bps, fractions, prec)
	if err != nil {
		return
	}
	log.Debug(c.logTag+"classified raster", zap.Int("rows", rows), zap.Int("cols", cols),
		zap.Int("valid", len(valid)), zap.Float64s("breakpoints", bps), zap.Int("precision", prec))
	ret = &Classification{
		Breakpoints: bps,
		Fractions:   fractions,
		Precision:   prec,
		Rows:        rows,
		Cols:        cols,
		Classes:     classes,
		Symbology:   sym,
	}
	return
}

// 逐位提高精度直到取整后的分位点严格递增
func (c *Classifier) roundBreakpoints(raw []float64) (bps []float64, prec int, err error) {
	bps = make([]float64, len(raw))
	for extra := 0; extra <= c.opts.MaxExtraDigits; extra++ {
		prec = c.opts.Precision + extra
		for i, v := range raw {
			bps[i] = scalar.Round(v, prec)
		}
		if strictlyIncreasing(bps) {
			return
		}
	}
	log.Warn(c.logTag+"breakpoints not distinct", zap.Float64s("quantiles", raw), zap.Int("precision", prec))
	err = eris.Wrapf(ErrClassification, "%d quantiles at precision %d", len(raw), prec)
	bps = nil
	return
}

func (c *Classifier) symbology(bps, fractions []float64, prec int) (sym []ClassificationEntry, err error) {
	sym = make([]ClassificationEntry, 0, len(bps))
	sym = append(sym, ClassificationEntry{
		Class: NODATA_CLASS,
		Label: NODATA_LABEL,
	})
	var col color.Color
	for k := 1; k < len(bps); k++ {
		low, high := bps[k-1], bps[k]
		if k == 1 {
			low -= FIRST_BIN_MARGIN
		}
		if col, err = c.cm.At(fractions[k]); err != nil {
			err = eris.Wrapf(err, "palette at %g", fractions[k])
			return
		}
		sym = append(sym, ClassificationEntry{
			Class:   k,
			Min:     low,
			Max:     high,
			Label:   fmt.Sprintf(CLASS_LABEL_PATTERN, utils.FormatFixed(low, prec), utils.FormatFixed(high, prec)),
			Color:   color.NRGBAModel.Convert(col).(color.NRGBA),
			Opacity: c.opts.Opacity,
		})
	}
	return
}

// bps[i] < v <= bps[i+1] 对应第i+1级，超出首尾的值归入首尾级
func binOf(bps []float64, v float64) int {
	idx := sort.SearchFloat64s(bps, v)
	if idx < 1 {
		return 1
	}
	if idx >= len(bps) {
		return len(bps) - 1
	}
	return idx
}

func strictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return false
		}
	}
	return true
}
