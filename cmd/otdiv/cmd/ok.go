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
)

var (
	okProg float64
	okHyst float64
	okOV   float64
)

var okCmd = &cobra.Command{
	Use:   "ok",
	Short: "Find three-resistor strings for the VBAT_OK window",
	Long: `Search the value pool for (bottom, mid, top) resistor strings
programming the VBAT_OK battery-good window: the falling (programmed)
threshold at the R1/R2 tap and the rising (hysteresis) threshold with R3
switched in.

Both thresholds must be given. The programmed threshold must sit at or
above the undervoltage reference (--vbat-uv) and the hysteresis threshold
above the programmed one; with --ov the window must also stay below the
overvoltage target.

Examples:
  otdiv ok --prog 3.5 --hyst 3.7
  otdiv ok --prog 3.5 --hyst 3.7 --ov 4.2`,
	RunE: runOK,
}

func init() {
	rootCmd.AddCommand(okCmd)

	okCmd.Flags().Float64Var(&okProg, "prog", 0, "VBAT_OK falling threshold (V)")
	okCmd.Flags().Float64Var(&okHyst, "hyst", 0, "VBAT_OK rising threshold (V)")
	okCmd.Flags().Float64Var(&okOV, "ov", 0, "VBAT_OV target acting as window ceiling (V)")
}

func runOK(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("prog") || !cmd.Flags().Changed("hyst") {
		return errors.New("Both --prog and --hyst must be provided.")
	}
	if okProg < vbatUV {
		return errors.New("VBAT_OK_PROG must be >= VBAT_UV.")
	}
	if okHyst <= okProg {
		return errors.New("VBAT_OK_HYST must be > VBAT_OK_PROG.")
	}
	var ovTarget *float64
	if cmd.Flags().Changed("ov") {
		if okHyst > okOV {
			return errors.New("VBAT_OK_HYST must be <= VBAT_OV.")
		}
		ovTarget = &okOV
	}

	limits := bq25570.Limits{VBatUV: vbatUV, VBatOVTarget: ovTarget}
	eng, err := newEngine(limits)
	if err != nil {
		return err
	}

	start := time.Now()
	rows := eng.SearchOK(&okProg, &okHyst)
	logger.Info("ok search finished",
		zap.Float64("prog", okProg),
		zap.Float64("hyst", okHyst),
		zap.Int("candidates", len(rows)),
		zap.Duration("took", time.Since(start)))

	title := fmt.Sprintf("VBAT_OK PROG=%.3f V HYST=%.3f V", okProg, okHyst)
	render.OKSection(os.Stdout, title, rows, tolerance, bq25570.Bias())
	return nil
}
