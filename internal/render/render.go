// Package render turns ranked divider candidates into the text report
// printed by the CLI. Alongside each nominal threshold it re-derives
// the worst-case voltage intervals at the configured display tolerance
// and at 10%, so an engineer can read off the spread of real parts at
// a glance.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/divider"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/optimize"
)

// coarseTol is the second display column: the spread with cheap 10%
// parts, printed next to the configured tolerance for comparison.
const coarseTol = 0.10

// Ohm renders a resistance with the customary magnitude unit.
func Ohm(x float64) string {
	switch {
	case x >= 1e6:
		return fmt.Sprintf("%.2f MΩ", x/1e6)
	case x >= 1e3:
		return fmt.Sprintf("%.0f kΩ", x/1e3)
	default:
		return fmt.Sprintf("%.0f Ω", x)
	}
}

// tolLabel renders a fractional tolerance as a percent label, e.g.
// 0.01 -> "1%".
func tolLabel(tol float64) string {
	return fmt.Sprintf("%g%%", tol*100)
}

// TwoResSection writes a titled report for a two-resistor search
// result. fn must be the same formula the candidates were scored with;
// it is re-evaluated at the tolerance corners for the bound columns.
func TwoResSection(w io.Writer, title string, rows []optimize.TwoResCandidate, fn divider.TwoResFunc, tol float64, bias divider.Bias) {
	fmt.Fprintf(w, "\n# %s\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "R1(bottom)\tR2(top)\tRSUM\tV(nom)\t%s[min..max]\t%s[min..max]\n",
		tolLabel(tol), tolLabel(coarseTol))
	for _, row := range rows {
		fine := divider.TwoResBounds(fn, row.R1, row.R2, tol, bias)
		coarse := divider.TwoResBounds(fn, row.R1, row.R2, coarseTol, bias)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f V\t[%.3f..%.3f]\t[%.3f..%.3f]\n",
			Ohm(row.R1), Ohm(row.R2), Ohm(row.RSum), row.VNom,
			fine.Lo, fine.Hi, coarse.Lo, coarse.Hi)
	}
	tw.Flush()
}

// OKSection writes a titled report for a VBAT_OK search result, with
// independent bound columns for the programmed and hysteresis
// thresholds.
func OKSection(w io.Writer, title string, rows []optimize.ThreeResCandidate, tol float64, bias divider.Bias) {
	fmt.Fprintf(w, "\n# %s\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "R1(bottom)\tR2(mid)\tR3(top)\tRSUM\tPROG(nom)[%s/%s]\tHYST(nom)[%s/%s]\n",
		tolLabel(tol), tolLabel(coarseTol), tolLabel(tol), tolLabel(coarseTol))
	for _, row := range rows {
		progFine, hystFine := bq25570.OKBounds(row.R1, row.R2, row.R3, tol, bias)
		progCoarse, hystCoarse := bq25570.OKBounds(row.R1, row.R2, row.R3, coarseTol, bias)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.3f V [%.3f..%.3f; %.3f..%.3f]\t%.3f V [%.3f..%.3f; %.3f..%.3f]\n",
			Ohm(row.R1), Ohm(row.R2), Ohm(row.R3), Ohm(row.RSum),
			row.VProg, progFine.Lo, progFine.Hi, progCoarse.Lo, progCoarse.Hi,
			row.VHyst, hystFine.Lo, hystFine.Hi, hystCoarse.Lo, hystCoarse.Hi)
	}
	tw.Flush()
}
