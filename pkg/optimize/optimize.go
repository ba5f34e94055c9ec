// Package optimize implements the exhaustive resistor-combination
// search for bq25570 divider networks.
//
// Given a pool of standard values, the engine enumerates every
// candidate pair (or triple), prunes combinations that violate the
// total-resistance ceiling or the datasheet validity rules, scores
// survivors by distance to the requested threshold targets, and
// returns at most a configured number of candidates ranked best first.
//
// Both searches are exhaustive over the pool; ranking is globally
// optimal, not a heuristic. Pruning only skips combinations that could
// never be returned. The outer bottom-resistor loop fans out across
// goroutines, and partial results are merged back in pool order before
// the final stable sort, so the output is identical to sequential
// enumeration regardless of scheduling.
package optimize

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/divider"
)

// boundarySlack absorbs floating-point rounding when a worst-case bound
// sits exactly on a never-exceed ceiling.
const boundarySlack = 1e-12

// TwoResCandidate is one scored divider pair. R1 is the bottom
// (reference-side) leg, R2 the top.
type TwoResCandidate struct {
	Error float64
	VNom  float64
	R1    float64
	R2    float64
	RSum  float64
}

// ThreeResCandidate is one scored VBAT_OK string. R1 is the bottom
// leg, R2 the mid, R3 the top.
type ThreeResCandidate struct {
	Error float64
	VProg float64
	VHyst float64
	R1    float64
	R2    float64
	R3    float64
	RSum  float64
}

// Engine owns the search configuration. It is read-only after
// construction; concurrent searches against one engine are safe.
type Engine struct {
	pool    []float64
	rSumMax float64
	limit   int
	limits  bq25570.Limits
	bias    divider.Bias
}

// NewEngine builds a search engine over the given value pool. The pool
// must be ascending and strictly positive (pools from package eseries
// always are). rSumMax caps the total resistance of any candidate and
// limit caps the number of returned candidates.
func NewEngine(pool []float64, rSumMax float64, limit int, limits bq25570.Limits, bias divider.Bias) *Engine {
	p := make([]float64, len(pool))
	copy(p, pool)
	return &Engine{
		pool:    p,
		rSumMax: rSumMax,
		limit:   limit,
		limits:  limits,
		bias:    bias,
	}
}

// PoolSize returns the number of values the engine searches over.
func (e *Engine) PoolSize() int { return len(e.pool) }

// twoResOptions collects the optional knobs of SearchTwo.
type twoResOptions struct {
	neverExceed    *float64
	neverExceedTol float64
	targetCheck    func(float64) bool
}

// TwoResOption customizes a two-resistor search.
type TwoResOption func(*twoResOptions)

// WithNeverExceed rejects any pair whose worst-case upper bound at the
// given tolerance exceeds ceiling.
func WithNeverExceed(ceiling, tol float64) TwoResOption {
	return func(o *twoResOptions) {
		o.neverExceed = &ceiling
		o.neverExceedTol = tol
	}
}

// WithTargetCheck short-circuits the search to an empty result when
// the target itself is outside the admissible range.
func WithTargetCheck(pred func(float64) bool) TwoResOption {
	return func(o *twoResOptions) {
		o.targetCheck = pred
	}
}

// SearchTwo enumerates every (bottom, top) pair from the pool for the
// given threshold formula and returns the best matches for target,
// ranked by |nominal - target| with lower total resistance breaking
// ties (less static leakage through the divider).
func (e *Engine) SearchTwo(target float64, fn divider.TwoResFunc, opts ...TwoResOption) []TwoResCandidate {
	o := twoResOptions{neverExceedTol: 0.01}
	for _, opt := range opts {
		opt(&o)
	}
	if o.targetCheck != nil && !o.targetCheck(target) {
		return nil
	}

	buckets := make([][]TwoResCandidate, len(e.pool))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r1 := range e.pool {
		i, r1 := i, r1
		g.Go(func() error {
			var local []TwoResCandidate
			for _, r2 := range e.pool {
				sum := r1 + r2
				if sum > e.rSumMax {
					continue
				}
				if o.neverExceed != nil {
					wc := divider.TwoResBounds(fn, r1, r2, o.neverExceedTol, e.bias)
					if wc.Hi > *o.neverExceed+boundarySlack {
						continue
					}
				}
				v := fn(r1, r2, e.bias.Nom)
				local = append(local, TwoResCandidate{
					Error: math.Abs(v - target),
					VNom:  v,
					R1:    r1,
					R2:    r2,
					RSum:  sum,
				})
			}
			buckets[i] = local
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	var cands []TwoResCandidate
	for _, b := range buckets {
		cands = append(cands, b...)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Error != cands[j].Error {
			return cands[i].Error < cands[j].Error
		}
		return cands[i].RSum < cands[j].RSum
	})
	if e.limit >= 0 && len(cands) > e.limit {
		cands = cands[:e.limit]
	}
	return cands
}

// SearchOK enumerates every (bottom, mid, top) triple from the pool for
// the VBAT_OK window. targetProg and targetHyst are optional; the error
// is the sum of the absolute deviations from whichever targets are
// present. With neither target there is nothing to rank against and
// the result is empty.
func (e *Engine) SearchOK(targetProg, targetHyst *float64) []ThreeResCandidate {
	if targetProg == nil && targetHyst == nil {
		return nil
	}

	buckets := make([][]ThreeResCandidate, len(e.pool))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r1 := range e.pool {
		i, r1 := i, r1
		g.Go(func() error {
			var local []ThreeResCandidate
			for _, r2 := range e.pool {
				// The programmed threshold does not depend on R3.
				vp := bq25570.VBatOKProg(r1, r2, e.bias.Nom)
				for _, r3 := range e.pool {
					sum := r1 + r2 + r3
					if sum > e.rSumMax {
						continue
					}
					vh := bq25570.VBatOKHyst(r1, r2, r3, e.bias.Nom)
					if !e.limits.OKRelationships(vp, vh) {
						continue
					}
					var err float64
					if targetProg != nil {
						err += math.Abs(vp - *targetProg)
					}
					if targetHyst != nil {
						err += math.Abs(vh - *targetHyst)
					}
					local = append(local, ThreeResCandidate{
						Error: err,
						VProg: vp,
						VHyst: vh,
						R1:    r1,
						R2:    r2,
						R3:    r3,
						RSum:  sum,
					})
				}
			}
			buckets[i] = local
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	var cands []ThreeResCandidate
	for _, b := range buckets {
		cands = append(cands, b...)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Error != cands[j].Error {
			return cands[i].Error < cands[j].Error
		}
		return cands[i].RSum < cands[j].RSum
	})
	if e.limit >= 0 && len(cands) > e.limit {
		cands = cands[:e.limit]
	}
	return cands
}
