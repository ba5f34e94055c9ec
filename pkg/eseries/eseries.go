// Package eseries builds pools of standard resistor values.
//
// The E series (IEC 60063) define the preferred resistance values that
// component vendors actually stock. Two densities are supported: E24
// (24 values per decade, the common 5%/1% catalog) and E96 (96 values
// per decade, precision 1% parts). A Pool replicates the chosen base
// table across a closed range of decade exponents, so a pool over
// decades [6, 7] covers roughly 1 MOhm to 91 MOhm.
package eseries

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Series identifies a standard value series.
type Series string

const (
	// E24 is the 24-values-per-decade series.
	E24 Series = "E24"
	// E96 is the 96-values-per-decade series.
	E96 Series = "E96"
)

// Base mantissas per IEC 60063, all in [1, 10).
var (
	e24Base = []float64{
		1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
		3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
	}
	e96Base = []float64{
		1.00, 1.02, 1.05, 1.07, 1.10, 1.13, 1.15, 1.18, 1.21, 1.24, 1.27, 1.30, 1.33, 1.37, 1.40, 1.43,
		1.47, 1.50, 1.54, 1.58, 1.62, 1.65, 1.69, 1.74, 1.78, 1.82, 1.87, 1.91, 1.96, 2.00, 2.05, 2.10,
		2.15, 2.21, 2.26, 2.32, 2.37, 2.43, 2.49, 2.55, 2.61, 2.67, 2.74, 2.80, 2.87, 2.94, 3.01, 3.09,
		3.16, 3.24, 3.32, 3.40, 3.48, 3.57, 3.65, 3.74, 3.83, 3.92, 4.02, 4.12, 4.22, 4.32, 4.42, 4.53,
		4.64, 4.75, 4.87, 4.99, 5.11, 5.23, 5.36, 5.49, 5.62, 5.76, 5.90, 6.04, 6.19, 6.34, 6.49, 6.65,
		6.81, 6.98, 7.15, 7.32, 7.50, 7.68, 7.87, 8.06, 8.25, 8.45, 8.66, 8.87, 9.09, 9.31, 9.53, 9.76,
	}
)

// ParseSeries converts a user-supplied series name to a Series.
func ParseSeries(name string) (Series, error) {
	switch strings.ToUpper(name) {
	case "E24":
		return E24, nil
	case "E96":
		return E96, nil
	default:
		return "", fmt.Errorf("unknown resistor series %q (supported: E24, E96)", name)
	}
}

// Base returns the per-decade mantissa table for the series.
func (s Series) Base() []float64 {
	var base []float64
	switch s {
	case E96:
		base = e96Base
	default:
		base = e24Base
	}
	out := make([]float64, len(base))
	copy(out, base)
	return out
}

// Pool is an immutable set of allowed resistance magnitudes: the series
// base table replicated over a closed decade range.
type Pool struct {
	series    Series
	decadeMin int
	decadeMax int
}

// NewPool builds a pool for the given series over decades
// [decadeMin, decadeMax] inclusive. An inverted range is allowed and
// simply yields no values.
func NewPool(series Series, decadeMin, decadeMax int) *Pool {
	return &Pool{series: series, decadeMin: decadeMin, decadeMax: decadeMax}
}

// Series returns the series the pool was built from.
func (p *Pool) Series() Series { return p.series }

// Values returns the pool contents in ascending order. Every element is
// a base mantissa scaled by 10^d for some decade d in range; mantissas
// lie in [1, 10), so decades never collide and the result is strictly
// increasing. The returned slice is freshly allocated on each call.
func (p *Pool) Values() []float64 {
	base := p.series.Base()
	var vals []float64
	for d := p.decadeMin; d <= p.decadeMax; d++ {
		factor := math.Pow(10, float64(d))
		for _, b := range base {
			vals = append(vals, b*factor)
		}
	}
	sort.Float64s(vals)
	return vals
}
