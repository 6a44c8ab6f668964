// Package quantity parses value/unit-string pairs into dimensioned
// quantities and picks display units with SI prefixes.
package quantity

import (
	"math"
	"strings"

	"github.com/ctessum/unit"
	"github.com/rotisserie/eris"
)

// Currency is the dimension of monetary amounts.
var Currency = unit.NewDimension("currency")

var (
	ErrUnknownUnit       = eris.New("unknown unit")
	ErrDimensionMismatch = eris.New("unit dimension mismatch")
	ErrNotPrefixable     = eris.New("unit does not take an SI prefix")
)

type baseUnit struct {
	dims       unit.Dimensions
	scale      float64 // SI value of one unit
	prefixable bool
}

var prefixes = []struct {
	symbol string
	exp    int
}{
	{"", 0},
	{"k", 3},
	{"M", 6},
	{"G", 9},
	{"T", 12},
	{"P", 15},
}

const maxPrefixExp = 15

// Registry resolves unit strings such as "kWh/year" or "currency/kWh".
type Registry struct {
	bases map[string]baseUnit
}

// NewRegistry returns a registry preloaded with the energy, power, time
// and currency units used by the indicator reports.
func NewRegistry() *Registry {
	r := &Registry{bases: map[string]baseUnit{}}
	r.Define("J", unit.Joule, 1, true)
	r.Define("Wh", unit.Joule, 3600, true)
	r.Define("W", unit.Watt, 1, true)
	r.Define("s", unit.Second, 1, false)
	r.Define("h", unit.Second, 3600, false)
	r.Define("day", unit.Second, 24*3600, false)
	r.Define("year", unit.Second, 8760*3600, false)
	r.Define("currency", unit.Dimensions{Currency: 1}, 1, false)
	r.Define("-", unit.Dimless, 1, false)
	return r
}

// Define registers (or replaces) a base unit.
func (r *Registry) Define(symbol string, dims unit.Dimensions, scale float64, prefixable bool) {
	r.bases[symbol] = baseUnit{dims: dims, scale: scale, prefixable: prefixable}
}

func (r *Registry) term(s string) (b baseUnit, prefix int, base string, err error) {
	s = strings.TrimSpace(s)
	if v, ok := r.bases[s]; ok {
		return v, 0, s, nil
	}
	for _, p := range prefixes[1:] {
		if !strings.HasPrefix(s, p.symbol) {
			continue
		}
		if v, ok := r.bases[s[len(p.symbol):]]; ok && v.prefixable {
			return v, p.exp, s[len(p.symbol):], nil
		}
	}
	err = eris.Wrapf(ErrUnknownUnit, "unit %q", s)
	return
}

// Resolve returns the dimensions of unitStr and the SI value of one unit.
func (r *Registry) Resolve(unitStr string) (dims unit.Dimensions, scale float64, err error) {
	num, den, _ := strings.Cut(unitStr, "/")
	nb, np, _, err := r.term(num)
	if err != nil {
		return
	}
	dims = unit.Dimensions{}
	for k, v := range nb.dims {
		dims[k] = v
	}
	scale = nb.scale * math.Pow10(np)
	if den == "" {
		return
	}
	db, dp, _, err := r.term(den)
	if err != nil {
		return
	}
	for k, v := range db.dims {
		if dims[k] -= v; dims[k] == 0 {
			delete(dims, k)
		}
	}
	scale /= db.scale * math.Pow10(dp)
	return
}

// Parse turns a (value, unit) pair into a quantity stored in SI units.
func (r *Registry) Parse(value float64, unitStr string) (*unit.Unit, error) {
	dims, scale, err := r.Resolve(unitStr)
	if err != nil {
		return nil, err
	}
	return unit.New(value*scale, dims), nil
}

// Format expresses q in unitStr.
func (r *Registry) Format(q *unit.Unit, unitStr string) (float64, error) {
	dims, scale, err := r.Resolve(unitStr)
	if err != nil {
		return 0, err
	}
	if e := q.Check(dims); e != nil {
		return 0, eris.Wrap(ErrDimensionMismatch, e.Error())
	}
	return q.Value() / scale, nil
}

// BestUnit rescales values so that stat over the valid (non noData, non NaN)
// values falls in [1, 1000) of the chosen SI prefix, shifted by powerShift
// thousands. factor is the multiplier applied to the input values.
func (r *Registry) BestUnit(values []float64, current string, noData float64,
	stat func([]float64) float64, powerShift int) (scaled []float64, unitStr string, factor float64, err error) {
	num, den, hasDen := strings.Cut(current, "/")
	nb, exp, base, err := r.term(num)
	if err != nil {
		return
	}
	if !nb.prefixable {
		err = eris.Wrapf(ErrNotPrefixable, "unit %q", num)
		return
	}
	if hasDen {
		if _, _, _, err = r.term(den); err != nil {
			return
		}
	}
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v != noData && !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	target := exp
	if len(valid) > 0 {
		if s := math.Abs(stat(valid)) * math.Pow10(exp); s > 0 {
			target = int(math.Floor(math.Log10(s)/3)) * 3
		}
	}
	target = clampExp(target + 3*powerShift)
	factor = math.Pow10(exp - target)
	scaled = make([]float64, len(values))
	for i, v := range values {
		if v == noData || math.IsNaN(v) {
			scaled[i] = v
			continue
		}
		scaled[i] = v * factor
	}
	unitStr = prefixSymbol(target) + base
	if hasDen {
		unitStr += "/" + den
	}
	return
}

// BestUnitScalar is BestUnit for a single value with 0 as the no-data value.
func (r *Registry) BestUnitScalar(value float64, current string, powerShift int) (float64, string, float64, error) {
	scaled, u, f, err := r.BestUnit([]float64{value}, current, 0, func(x []float64) float64 { return x[0] }, powerShift)
	if err != nil {
		return 0, "", 0, err
	}
	return scaled[0], u, f, nil
}

func clampExp(e int) int {
	if e < 0 {
		return 0
	}
	if e > maxPrefixExp {
		return maxPrefixExp
	}
	return e
}

func prefixSymbol(exp int) string {
	for _, p := range prefixes {
		if p.exp == exp {
			return p.symbol
		}
	}
	return ""
}
