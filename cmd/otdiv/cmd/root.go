package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceDivider/pkg/bq25570"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/eseries"
	"github.com/OpenTraceLab/OpenTraceDivider/pkg/optimize"
)

var (
	// Global flags
	seriesName string
	decades    []int
	rSumMax    float64
	limit      int
	tolerance  float64
	vbatUV     float64
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "otdiv",
	Short: "Resistor divider optimizer for the TI bq25570 energy harvester",
	Long: `OpenTraceDivider (otdiv) picks standard-series resistor pairs and triples
for the bq25570's programmable comparator thresholds: VOUT, VBAT_OV, and
the VBAT_OK battery-good window. Candidates are ranked by distance to the
requested threshold (ties broken toward lower total resistance) and
reported with worst-case voltage bounds at the chosen tolerance and 10%.

Examples:
  otdiv vout 3.3                      # Divider pairs for a 3.3 V rail
  otdiv vout 3.0 3.3 --series E96     # Two rails from the E96 series
  otdiv ov 4.2 --never-exceed         # LiPo 1-cell OV, guaranteed at 1%
  otdiv ok --prog 3.5 --hyst 3.7      # Battery-good window`,
	Version:      "0.9.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = l
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&seriesName, "series", "E24", "resistor series (E24, E96)")
	pf.IntSliceVar(&decades, "decades", []int{6, 7}, "decade range MIN,MAX (6,7 covers ~1-10 MΩ)")
	pf.Float64Var(&rSumMax, "rsum-max", bq25570.DefaultRSumMax, "max total resistance per network (Ω)")
	pf.IntVar(&limit, "limit", 4, "number of candidates to report")
	pf.Float64Var(&tolerance, "tolerance", 0.01, "resistor tolerance for worst-case columns (0.01 = 1%)")
	pf.Float64Var(&vbatUV, "vbat-uv", 1.95, "internal undervoltage reference (V)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newEngine assembles the search engine from the persistent flags.
func newEngine(limits bq25570.Limits) (*optimize.Engine, error) {
	series, err := eseries.ParseSeries(seriesName)
	if err != nil {
		return nil, err
	}
	if len(decades) != 2 {
		return nil, fmt.Errorf("--decades takes exactly MIN,MAX (got %d values)", len(decades))
	}
	pool := eseries.NewPool(series, decades[0], decades[1]).Values()
	eng := optimize.NewEngine(pool, rSumMax, limit, limits, bq25570.Bias())
	logger.Info("value pool built",
		zap.String("series", string(series)),
		zap.Int("decade_min", decades[0]),
		zap.Int("decade_max", decades[1]),
		zap.Int("values", eng.PoolSize()))
	return eng, nil
}

// parseVoltages converts positional args to voltages.
func parseVoltages(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid voltage %q", a)
		}
		out = append(out, v)
	}
	return out, nil
}
