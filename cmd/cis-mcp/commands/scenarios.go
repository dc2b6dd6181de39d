package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cis-mcp/internal/scenario"
	"cis-mcp/internal/simulation"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage the saved scenario directory",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scenario.NewStore(cfg.ScenarioDir)
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No saved scenarios.")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var scenariosInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Save the stock demo scenario under a name as a starting point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scenario.NewStore(cfg.ScenarioDir)
		if err != nil {
			return err
		}
		if err := store.Save(args[0], simulation.DefaultScenario()); err != nil {
			return err
		}
		fmt.Printf("Scenario %q written to %s\n", args[0], cfg.ScenarioDir)
		return nil
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosInitCmd)
	rootCmd.AddCommand(scenariosCmd)
}
