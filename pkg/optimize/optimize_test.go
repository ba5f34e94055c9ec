package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/divider"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/eseries"
)

// noTruncate is a limit large enough that no test search is cut off.
const noTruncate = 1 << 20

func e24Decade6() []float64 {
	return eseries.NewPool(eseries.E24, 6, 6).Values()
}

func requireTwoResRanked(t *testing.T, rows []TwoResCandidate) {
	t.Helper()
	for i := 1; i < len(rows); i++ {
		require.LessOrEqual(t, rows[i-1].Error, rows[i].Error)
		if rows[i-1].Error == rows[i].Error {
			require.LessOrEqual(t, rows[i-1].RSum, rows[i].RSum)
		}
	}
}

func TestSearchTwoExample(t *testing.T) {
	limits := bq25570.Limits{VBatUV: 1.95}
	eng := NewEngine(e24Decade6(), 13e6, 4, limits, bq25570.Bias())

	rows := eng.SearchTwo(3.3, bq25570.VOUT, WithTargetCheck(limits.AllowVOUTTarget))

	require.NotEmpty(t, rows)
	require.LessOrEqual(t, len(rows), 4)
	requireTwoResRanked(t, rows)
	for _, row := range rows {
		assert.LessOrEqual(t, row.RSum, 13e6)
		assert.InDelta(t, row.R1+row.R2, row.RSum, 1e-6)
		assert.InDelta(t, bq25570.VOUT(row.R1, row.R2, bq25570.VBiasTyp), row.VNom, 1e-12)
		assert.InDelta(t, math.Abs(row.VNom-3.3), row.Error, 1e-12)
	}
}

func TestSearchTwoGlobalOptimum(t *testing.T) {
	pool := e24Decade6()
	eng := NewEngine(pool, 13e6, 1, bq25570.Limits{}, bq25570.Bias())

	rows := eng.SearchTwo(3.3, bq25570.VOUT)
	require.Len(t, rows, 1)

	// Brute-force the minimum error over the same pool.
	best := math.Inf(1)
	for _, r1 := range pool {
		for _, r2 := range pool {
			if r1+r2 > 13e6 {
				continue
			}
			if err := math.Abs(bq25570.VOUT(r1, r2, bq25570.VBiasTyp) - 3.3); err < best {
				best = err
			}
		}
	}
	assert.InDelta(t, best, rows[0].Error, 1e-12)
}

func TestSearchTwoRejectedTarget(t *testing.T) {
	limits := bq25570.Limits{VBatUV: 1.95}
	eng := NewEngine(e24Decade6(), 13e6, 4, limits, bq25570.Bias())

	rows := eng.SearchTwo(1.8, bq25570.VOUT, WithTargetCheck(limits.AllowVOUTTarget))
	assert.Empty(t, rows)
}

func TestSearchTwoLimit(t *testing.T) {
	eng := NewEngine(e24Decade6(), 13e6, 2, bq25570.Limits{}, bq25570.Bias())
	rows := eng.SearchTwo(3.3, bq25570.VOUT)
	assert.Len(t, rows, 2)
}

func TestSearchTwoEmptyPool(t *testing.T) {
	eng := NewEngine(nil, 13e6, 4, bq25570.Limits{}, bq25570.Bias())
	assert.Empty(t, eng.SearchTwo(3.3, bq25570.VOUT))
}

func TestNeverExceedShrinksCandidateSet(t *testing.T) {
	eng := NewEngine(e24Decade6(), 13e6, noTruncate, bq25570.Limits{}, bq25570.Bias())

	loose := eng.SearchTwo(4.2, bq25570.VBatOV, WithNeverExceed(4.3, 0.01))
	tight := eng.SearchTwo(4.2, bq25570.VBatOV, WithNeverExceed(4.2, 0.01))

	require.LessOrEqual(t, len(tight), len(loose))

	loosePairs := make(map[[2]float64]bool, len(loose))
	for _, row := range loose {
		loosePairs[[2]float64{row.R1, row.R2}] = true
	}
	bias := bq25570.Bias()
	for _, row := range tight {
		assert.True(t, loosePairs[[2]float64{row.R1, row.R2}],
			"pair (%g, %g) accepted by the tighter ceiling but not the looser one", row.R1, row.R2)
		wc := divider.TwoResBounds(bq25570.VBatOV, row.R1, row.R2, 0.01, bias)
		assert.LessOrEqual(t, wc.Hi, 4.2+1e-12)
	}
}

func TestSearchOK(t *testing.T) {
	ov := 4.2
	limits := bq25570.Limits{VBatUV: 1.95, VBatOVTarget: &ov}
	eng := NewEngine(e24Decade6(), 13e6, noTruncate, limits, bq25570.Bias())

	prog, hyst := 3.5, 3.7
	rows := eng.SearchOK(&prog, &hyst)

	require.NotEmpty(t, rows)
	for i, row := range rows {
		assert.True(t, limits.OKRelationships(row.VProg, row.VHyst))
		assert.LessOrEqual(t, row.RSum, 13e6)
		assert.InDelta(t, row.R1+row.R2+row.R3, row.RSum, 1e-6)
		assert.InDelta(t, bq25570.VBatOKProg(row.R1, row.R2, bq25570.VBiasTyp), row.VProg, 1e-12)
		assert.InDelta(t, bq25570.VBatOKHyst(row.R1, row.R2, row.R3, bq25570.VBiasTyp), row.VHyst, 1e-12)
		assert.InDelta(t, math.Abs(row.VProg-prog)+math.Abs(row.VHyst-hyst), row.Error, 1e-12)
		if i > 0 {
			require.LessOrEqual(t, rows[i-1].Error, rows[i].Error)
			if rows[i-1].Error == rows[i].Error {
				require.LessOrEqual(t, rows[i-1].RSum, rows[i].RSum)
			}
		}
	}
}

func TestSearchOKNoTargets(t *testing.T) {
	eng := NewEngine(e24Decade6(), 13e6, 4, bq25570.Limits{VBatUV: 1.95}, bq25570.Bias())
	assert.Empty(t, eng.SearchOK(nil, nil))
}

func TestSearchOKSingleTarget(t *testing.T) {
	limits := bq25570.Limits{VBatUV: 1.95}
	eng := NewEngine(e24Decade6(), 13e6, 8, limits, bq25570.Bias())

	hyst := 3.7
	rows := eng.SearchOK(nil, &hyst)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.InDelta(t, math.Abs(row.VHyst-hyst), row.Error, 1e-12)
	}
}

func TestSearchesAreDeterministic(t *testing.T) {
	limits := bq25570.Limits{VBatUV: 1.95}
	eng := NewEngine(e24Decade6(), 13e6, 16, limits, bq25570.Bias())

	a := eng.SearchTwo(3.3, bq25570.VOUT)
	b := eng.SearchTwo(3.3, bq25570.VOUT)
	require.Equal(t, a, b)

	prog, hyst := 3.5, 3.7
	x := eng.SearchOK(&prog, &hyst)
	y := eng.SearchOK(&prog, &hyst)
	require.Equal(t, x, y)
}

func TestEngineCopiesPool(t *testing.T) {
	pool := e24Decade6()
	eng := NewEngine(pool, 13e6, 4, bq25570.Limits{}, bq25570.Bias())
	before := eng.SearchTwo(3.3, bq25570.VOUT)

	pool[0] = 1 // mutate the caller's slice
	after := eng.SearchTwo(3.3, bq25570.VOUT)
	require.Equal(t, before, after)
}
