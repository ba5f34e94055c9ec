// Package divider models resistor-divider threshold networks on a
// programmable comparator input.
//
// Every threshold programmed through a VRDIV-style divider follows the
// same algebraic family:
//
//	V = scale * vbias * (1 + (Ru1 + Ru2 + ...) / Rbottom)
//
// where Rbottom is the leg tied to the internal reference node and the
// upper resistors stack toward the sensed input. The package provides
// that one generic transfer function plus worst-case interval bounds
// under component tolerance.
//
// # Monotonicity precondition
//
// All resistances and the bias voltage must be strictly positive. Under
// that precondition the transfer function is monotonically increasing
// in every upper resistor, monotonically decreasing in the bottom
// resistor, and linear in vbias. Bounds exploits this: the extreme
// outputs are reached at the per-argument tolerance corners, so the
// interval is exact without enumerating all 2^k deviation sign
// combinations.
package divider

// Bias describes a comparator reference voltage: the nominal value used
// for candidate scoring plus the worst-case corner pair used for
// interval bounds.
type Bias struct {
	Nom float64
	Min float64
	Max float64
}

// Interval is a closed achievable-voltage range [Lo, Hi].
type Interval struct {
	Lo float64
	Hi float64
}

// Contains reports whether v lies inside the interval.
func (iv Interval) Contains(v float64) bool {
	return iv.Lo <= v && v <= iv.Hi
}

// TwoResFunc is a threshold formula of a bottom and one upper resistor.
type TwoResFunc func(rBottom, rTop, vbias float64) float64

// Threshold evaluates the generic divider transfer function.
func Threshold(rBottom float64, uppers []float64, scale, vbias float64) float64 {
	var sum float64
	for _, r := range uppers {
		sum += r
	}
	return scale * vbias * (1.0 + sum/rBottom)
}

// Bounds computes the achievable output interval for the generic
// transfer function when every resistor may deviate by the fractional
// tolerance tol and the bias voltage sits anywhere in [bias.Min,
// bias.Max]. The minimum pushes the bottom leg high and every upper leg
// low; the maximum is the opposite corner.
func Bounds(rBottom float64, uppers []float64, scale, tol float64, bias Bias) Interval {
	lowUppers := make([]float64, len(uppers))
	highUppers := make([]float64, len(uppers))
	for i, r := range uppers {
		lowUppers[i] = r * (1 - tol)
		highUppers[i] = r * (1 + tol)
	}
	return Interval{
		Lo: Threshold(rBottom*(1+tol), lowUppers, scale, bias.Min),
		Hi: Threshold(rBottom*(1-tol), highUppers, scale, bias.Max),
	}
}

// TwoResBounds computes the achievable interval for an arbitrary
// two-resistor formula by evaluating it at the monotone corners. fn
// must follow the family convention: decreasing in its first argument,
// increasing in its second, linear in vbias.
func TwoResBounds(fn TwoResFunc, rBottom, rTop, tol float64, bias Bias) Interval {
	return Interval{
		Lo: fn(rBottom*(1+tol), rTop*(1-tol), bias.Min),
		Hi: fn(rBottom*(1-tol), rTop*(1+tol), bias.Max),
	}
}
