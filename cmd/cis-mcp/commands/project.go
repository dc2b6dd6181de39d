package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cis-mcp/internal/scenario"
	"cis-mcp/internal/simulation"
	"cis-mcp/internal/stats"
)

var projectCmd = &cobra.Command{
	Use:   "project <scenario.yaml>",
	Short: "Run one backlog projection from a scenario file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scn, err := scenario.LoadFile(args[0])
		if err != nil {
			return err
		}

		rows, err := simulation.Simulate(scn)
		if err != nil {
			return err
		}
		summary := stats.BuildProjectionSummary(rows, cfg.Target1GoalPct, cfg.Target2GoalPct)

		return printJSON(map[string]interface{}{
			"config":  scn.Normalized(),
			"rows":    rows,
			"summary": summary,
		})
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(projectCmd)
}
