package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cis-mcp/internal/scenario"
	"cis-mcp/internal/simulation"
)

var (
	seekWeeks     int
	seekTargetPct float64
	seekCeiling   int
)

var seekCmd = &cobra.Command{
	Use:   "seek <scenario.yaml>",
	Short: "Find the minimum weekly closure rate that hits the aging target in time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scn, err := scenario.LoadFile(args[0])
		if err != nil {
			return err
		}
		if seekWeeks <= 0 {
			return fmt.Errorf("--weeks must be positive, got %d", seekWeeks)
		}

		targetPct := seekTargetPct
		if targetPct <= 0 {
			targetPct = cfg.Target1GoalPct
		}
		ceiling := seekCeiling
		if ceiling <= 0 {
			ceiling = cfg.SearchCeiling
		}

		rate, found, err := simulation.FindRequiredClosureRate(scn, seekWeeks, targetPct, ceiling)
		if err != nil {
			return err
		}

		out := map[string]interface{}{
			"found":          found,
			"target_weeks":   seekWeeks,
			"target_pct":     targetPct,
			"search_ceiling": ceiling,
		}
		if found {
			out["required_weekly_closed"] = rate
			out["surplus_over_intake"] = rate - scn.WeeklyOpened
		}
		return printJSON(out)
	},
}

func init() {
	seekCmd.Flags().IntVar(&seekWeeks, "weeks", 12, "horizon in weeks within which the goal must be met")
	seekCmd.Flags().Float64Var(&seekTargetPct, "target-pct", 0, "goal percentage for the target-1 metric (default: configured goal)")
	seekCmd.Flags().IntVar(&seekCeiling, "ceiling", 0, "exclusive upper bound for the rate scan (default: configured ceiling)")
	rootCmd.AddCommand(seekCmd)
}
