package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceDivider/internal/render"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/optimize"
)

var neverExceedOV bool

var ovCmd = &cobra.Command{
	Use:   "ov <target>",
	Short: "Find divider pairs for the VBAT_OV threshold",
	Long: `Search the value pool for (bottom, top) divider pairs programming the
battery overvoltage threshold. The OV comparator applies a 3/2 internal
scaling factor on top of the divider ratio.

With --never-exceed, any pair whose 1% worst-case upper bound would land
above the target is rejected, so no in-tolerance build of the network can
overshoot the battery's limit.

Examples:
  otdiv ov 4.2                    # LiPo 1-cell
  otdiv ov 4.2 --never-exceed     # Guaranteed not to exceed 4.2 V at 1%`,
	Args: cobra.ExactArgs(1),
	RunE: runOV,
}

func init() {
	rootCmd.AddCommand(ovCmd)

	ovCmd.Flags().BoolVar(&neverExceedOV, "never-exceed", false,
		"reject pairs whose 1% worst-case bound exceeds the target")
}

func runOV(cmd *cobra.Command, args []string) error {
	target, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid voltage %q", args[0])
	}
	if target < 2.2 || target > 5.5 {
		return errors.New("VBAT_OV must be between 2.2 V and 5.5 V.")
	}

	limits := bq25570.Limits{VBatUV: vbatUV, VBatOVTarget: &target}
	eng, err := newEngine(limits)
	if err != nil {
		return err
	}

	opts := []optimize.TwoResOption{
		optimize.WithTargetCheck(limits.AllowVBatOVTarget),
	}
	title := fmt.Sprintf("VBAT_OV = %.3f V", target)
	if neverExceedOV {
		opts = append(opts, optimize.WithNeverExceed(target, 0.01))
		title += " (NEVER-EXCEED@1%)"
	}

	start := time.Now()
	rows := eng.SearchTwo(target, bq25570.VBatOV, opts...)
	logger.Info("ov search finished",
		zap.Float64("target", target),
		zap.Bool("never_exceed", neverExceedOV),
		zap.Int("candidates", len(rows)),
		zap.Duration("took", time.Since(start)))

	render.TwoResSection(os.Stdout, title, rows, bq25570.VBatOV, tolerance, bq25570.Bias())
	return nil
}
