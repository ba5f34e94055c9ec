package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/optimize"
)

func TestOhm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.3e6, "1.30 MΩ"},
		{1e6, "1.00 MΩ"},
		{910e3, "910 kΩ"},
		{4.7e3, "5 kΩ"},
		{47, "47 Ω"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ohm(tt.in))
	}
}

func TestTwoResSection(t *testing.T) {
	rows := []optimize.TwoResCandidate{
		{Error: 0.02, VNom: 2.42, R1: 1e6, R2: 1e6, RSum: 2e6},
	}

	var buf bytes.Buffer
	TwoResSection(&buf, "VOUT = 2.420 V", rows, bq25570.VOUT, 0.01, bq25570.Bias())
	out := buf.String()

	assert.Contains(t, out, "# VOUT = 2.420 V")
	assert.Contains(t, out, "R1(bottom)")
	assert.Contains(t, out, "1%[min..max]")
	assert.Contains(t, out, "10%[min..max]")
	assert.Contains(t, out, "1.00 MΩ")
	assert.Contains(t, out, "2.420 V")

	// Header plus one candidate row under the title line.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
}

func TestOKSection(t *testing.T) {
	rows := []optimize.ThreeResCandidate{
		{Error: 0.01, VProg: 3.5, VHyst: 3.7, R1: 5.6e6, R2: 10e6, R3: 910e3, RSum: 16.51e6},
	}

	var buf bytes.Buffer
	OKSection(&buf, "VBAT_OK PROG=3.500 V HYST=3.700 V", rows, 0.01, bq25570.Bias())
	out := buf.String()

	assert.Contains(t, out, "# VBAT_OK PROG=3.500 V HYST=3.700 V")
	assert.Contains(t, out, "R2(mid)")
	assert.Contains(t, out, "PROG(nom)[1%/10%]")
	assert.Contains(t, out, "3.500 V")
	assert.Contains(t, out, "3.700 V")
	assert.Contains(t, out, "910 kΩ")
}

func TestSectionWithNoRows(t *testing.T) {
	var buf bytes.Buffer
	TwoResSection(&buf, "VOUT = 1.800 V", nil, bq25570.VOUT, 0.01, bq25570.Bias())
	out := buf.String()

	assert.Contains(t, out, "# VOUT = 1.800 V")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2) // title and header only
}
