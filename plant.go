package resutils

import (
	"math"

	"github.com/rotisserie/eris"
)

type Financial interface {
	// 单个电站投资
	InvestmentCost() float64
	// 平准化度电成本，rate为小数形式的折现率
	LCOE(production, rate float64) (float64, error)
}

type Plant interface {
	// 单个电站年发电量 kWh/year
	EnergyProduction() float64
	NPlants() float64
	Financial() Financial
}

// 投资 + 年运维成本，按寿命期折现
type FinancialParams struct {
	Investment float64 // currency
	OMCost     float64 // currency/year
	Lifetime   int     // year
}

func (f FinancialParams) InvestmentCost() float64 {
	return f.Investment
}

func (f FinancialParams) LCOE(production, rate float64) (lcoe float64, err error) {
	if f.Lifetime <= 0 {
		err = eris.Wrapf(ErrArithmetic, "lifetime %d", f.Lifetime)
		return
	}
	var cost, energy = f.Investment, 0.0
	for t := 1; t <= f.Lifetime; t++ {
		d := math.Pow(1+rate, float64(t))
		cost += f.OMCost / d
		energy += production / d
	}
	if energy == 0 || !isFinite(energy) {
		err = eris.Wrapf(ErrArithmetic, "discounted energy %g", energy)
		return
	}
	lcoe = cost / energy
	return
}

type PlantParams struct {
	Production float64 // kWh/year
	Count      float64
	Fin        FinancialParams
}

func (p PlantParams) EnergyProduction() float64 { return p.Production }
func (p PlantParams) NPlants() float64          { return p.Count }
func (p PlantParams) Financial() Financial      { return p.Fin }
