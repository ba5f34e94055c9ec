package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceDivider/internal/render"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/optimize"
)

// defaultVOUTTargets are the rails searched when no targets are given.
var defaultVOUTTargets = []float64{1.8, 3.0, 3.3}

var voutCmd = &cobra.Command{
	Use:   "vout [target...]",
	Short: "Find divider pairs for VOUT rail targets",
	Long: `Search the value pool for (bottom, top) divider pairs programming the
regulated VOUT rail, one report section per target voltage.

With no targets the common rails 1.8, 3.0 and 3.3 V are searched.
Explicitly given targets must lie in the programmable 2.0-5.5 V range;
targets outside it (such as the default 1.8 V, which sits below what the
divider can program) produce an empty section.

Examples:
  otdiv vout                          # Common rails
  otdiv vout 3.3                      # Single 3.3 V rail
  otdiv vout 2.5 5.0 --decades 5,6    # Lower-impedance networks`,
	Args: cobra.ArbitraryArgs,
	RunE: runVout,
}

func init() {
	rootCmd.AddCommand(voutCmd)
}

func runVout(cmd *cobra.Command, args []string) error {
	targets := defaultVOUTTargets
	if len(args) > 0 {
		parsed, err := parseVoltages(args)
		if err != nil {
			return err
		}
		for _, v := range parsed {
			if v < bq25570.VTargetMin || v > bq25570.VTargetMax {
				return errors.New("VOUT must be between 2.0 V and 5.5 V.")
			}
		}
		targets = parsed
	}

	limits := bq25570.Limits{VBatUV: vbatUV}
	eng, err := newEngine(limits)
	if err != nil {
		return err
	}

	for _, target := range targets {
		start := time.Now()
		rows := eng.SearchTwo(target, bq25570.VOUT,
			optimize.WithTargetCheck(limits.AllowVOUTTarget))
		logger.Info("vout search finished",
			zap.Float64("target", target),
			zap.Int("candidates", len(rows)),
			zap.Duration("took", time.Since(start)))
		render.TwoResSection(os.Stdout, fmt.Sprintf("VOUT = %.3f V", target),
			rows, bq25570.VOUT, tolerance, bq25570.Bias())
	}
	return nil
}
