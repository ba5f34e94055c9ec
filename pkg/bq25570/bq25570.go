// Package bq25570 holds the device model for the TI bq25570 energy
// harvester: datasheet constants, the named threshold formulas for its
// programmable comparators (VOUT, VBAT_OV, VBAT_OK), and the validity
// rules that constrain threshold choices.
//
// The bq25570 programs its thresholds through external high-impedance
// resistor dividers against an internal VBIAS reference. Each formula
// here is a named instance of the generic family in package divider.
package bq25570

import (
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/divider"
)

// VBIAS reference corners from the datasheet Electrical Characteristics
// table.
const (
	VBiasTyp = 1.21
	VBiasMin = 1.205
	VBiasMax = 1.217
)

// DefaultRSumMax is the datasheet guidance for total resistance per
// VRDIV network (about 13 MOhm keeps divider leakage negligible).
const DefaultRSumMax = 13e6

// Programmable output range shared by the VOUT and VBAT_OV targets.
const (
	VTargetMin = 2.0
	VTargetMax = 5.5
)

// Bias returns the VBIAS reference with its worst-case corners.
func Bias() divider.Bias {
	return divider.Bias{Nom: VBiasTyp, Min: VBiasMin, Max: VBiasMax}
}

// VOUT is the regulated output threshold: R1 bottom, R2 top.
func VOUT(r1, r2, vbias float64) float64 {
	return divider.Threshold(r1, []float64{r2}, 1.0, vbias)
}

// VBatOV is the battery overvoltage threshold. The OV comparator adds a
// 3/2 internal scaling factor.
func VBatOV(r1, r2, vbias float64) float64 {
	return divider.Threshold(r1, []float64{r2}, 1.5, vbias)
}

// VBatOKProg is the battery-good falling (programmed) threshold,
// sensed at the R1/R2 tap of the three-resistor VBAT_OK string.
func VBatOKProg(r1, r2, vbias float64) float64 {
	return divider.Threshold(r1, []float64{r2}, 1.0, vbias)
}

// VBatOKHyst is the battery-good rising (hysteresis) threshold, sensed
// with R3 switched into the upper leg.
func VBatOKHyst(r1, r2, r3, vbias float64) float64 {
	return divider.Threshold(r1, []float64{r2, r3}, 1.0, vbias)
}

// OKBounds computes the independent worst-case intervals for the
// VBAT_OK programmed and hysteresis thresholds of one resistor string.
// The two corners differ: R3 does not participate in the programmed
// threshold, so each interval gets its own corner assignment.
func OKBounds(r1, r2, r3, tol float64, bias divider.Bias) (prog, hyst divider.Interval) {
	prog = divider.Bounds(r1, []float64{r2}, 1.0, tol, bias)
	hyst = divider.Bounds(r1, []float64{r2, r3}, 1.0, tol, bias)
	return prog, hyst
}

// Limits encodes the datasheet validity rules for threshold targets.
// VBatOVTarget is nil when no overvoltage ceiling is configured.
type Limits struct {
	VBatUV       float64
	VBatOVTarget *float64
}

// AllowVOUTTarget reports whether a VOUT target is inside the
// programmable output range.
func (l Limits) AllowVOUTTarget(v float64) bool {
	return v >= VTargetMin && v <= VTargetMax
}

// AllowVBatOVTarget reports whether a VBAT_OV target is inside the
// programmable output range.
func (l Limits) AllowVBatOVTarget(v float64) bool {
	return v >= VTargetMin && v <= VTargetMax
}

// OKRelationships reports whether a (programmed, hysteresis) threshold
// pair satisfies the cross-threshold ordering rules: the programmed
// threshold must sit at or above the undervoltage floor, the hysteresis
// threshold must sit at or above the programmed one, and neither may
// exceed a configured overvoltage ceiling.
func (l Limits) OKRelationships(vProg, vHyst float64) bool {
	if vProg < l.VBatUV {
		return false
	}
	if vHyst < vProg {
		return false
	}
	if l.VBatOVTarget != nil && vHyst > *l.VBatOVTarget {
		return false
	}
	return true
}
