package resutils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ctessum/unit"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/wgdzlh/resutils/log"
	"github.com/wgdzlh/resutils/quantity"
)

// 按名称线性查找第一个匹配的指标，未找到或值无法解析时ok为false
func Search(records []Indicator, name string) (value float64, unitStr string, ok bool) {
	for _, r := range records {
		if r.Name != name {
			continue
		}
		v, err := strconv.ParseFloat(r.Value, 64)
		if err != nil {
			log.Error("Search:malformed indicator value", zap.String("name", name), zap.String("value", r.Value))
			return
		}
		return v, r.Unit, true
	}
	return
}

type AggregatorOptions struct {
	EnergyUnit string // 单站发电量的单位
	PowerShift int    // 展示单位额外提升的千进制级数
}

type Aggregator struct {
	reg    *quantity.Registry
	opts   AggregatorOptions
	logTag string
}

func NewAggregator(reg *quantity.Registry, opts AggregatorOptions) *Aggregator {
	if opts.EnergyUnit == "" {
		opts.EnergyUnit = ENERGY_UNIT
	}
	return &Aggregator{
		reg:    reg,
		opts:   opts,
		logTag: "Aggregator:",
	}
}

// 计算某类电站的总发电量、总投资、安装数量和LCOE，discountRate为百分数
func (a *Aggregator) GetIndicators(kind string, plant Plant, counts mat.Matrix, discountRate float64) (ret *Indicators, err error) {
	nPlants := nanSum(counts)
	totEn, enUnit, _, err := a.reg.BestUnitScalar(plant.EnergyProduction()*plant.NPlants(), a.opts.EnergyUnit, a.opts.PowerShift)
	if err != nil {
		return
	}
	fin := plant.Financial()
	setup := fin.InvestmentCost() * nPlants / COST_SCALE
	lcoe, err := fin.LCOE(plant.EnergyProduction(), discountRate/PERCENT)
	if err != nil {
		return
	}
	for name, v := range map[string]float64{"energy": totEn, "setup": setup, "count": nPlants, "lcoe": lcoe} {
		if !isFinite(v) {
			err = eris.Wrapf(ErrArithmetic, "%s indicator of %s is %g", name, kind, v)
			return
		}
	}
	log.Info(a.logTag+"indicators computed", zap.String("kind", kind), zap.Float64("plants", nPlants),
		zap.Float64("energy", totEn), zap.String("unit", enUnit), zap.Float64("lcoe", lcoe))
	ret = &Indicators{
		Energy: EnergyIndicator{Kind: kind, Value: totEn, Unit: enUnit},
		Cost:   CostIndicator{Kind: kind, Millions: setup},
		Count:  CountIndicator{Kind: kind, Count: nPlants},
		LCOE:   LCOEIndicator{Kind: kind, Value: lcoe},
	}
	return
}

// 由报告中的总发电量和安装数量求单站发电量
func ProductionPerPlant(records []Indicator, kind string, reg *quantity.Registry) (*unit.Unit, error) {
	value, u, ok := Search(records, fmt.Sprintf(ENERGY_NAME_TPL, kind))
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "%s energy production", kind)
	}
	energy, err := reg.Parse(value, u)
	if err != nil {
		return nil, err
	}
	n, _, ok := Search(records, fmt.Sprintf(COUNT_NAME_TPL, kind))
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "%s installed systems", kind)
	}
	if n == 0 {
		return nil, eris.Wrapf(ErrArithmetic, "no installed %s systems", kind)
	}
	return unit.Div(energy, unit.New(n, unit.Dimless)), nil
}

// 逐时出力序列的总量、有效小时数和等效满发小时数，NaN忽略
func HourlyIndicators(series []float64, capacity float64) (total float64, workingHours int, equivalentHours float64, err error) {
	if capacity == 0 {
		err = eris.Wrap(ErrArithmetic, "zero capacity")
		return
	}
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		total += v
		if v > 0 {
			workingHours++
		}
	}
	equivalentHours = total / capacity
	return
}
