package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/batch"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the batches a seed run would execute",
	Long: `
Print the resolved targets and batch windows without touching the database.

Examples:
  shopseed plan --scale dev
  shopseed plan --orders 10 --batch-orders 4`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	bindCountFlags(planCmd)
	planCmd.Flags().Int("show", 5, "Windows listed per table before eliding the rest")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	show, _ := cmd.Flags().GetInt("show")
	out := cmd.OutOrStdout()

	color.Cyan("📋 Plan for %s scale (%s)", cfg.Scale, cfg.Database.Provider)

	phases := []struct {
		table        string
		target, size int
	}{
		{schema.Products, cfg.Targets.Products, cfg.Batches.Products},
		{schema.Customers, cfg.Targets.Customers, cfg.Batches.Customers},
		{schema.Orders, cfg.Targets.Orders, cfg.Batches.Orders},
	}
	for _, p := range phases {
		windows := batch.Windows(p.target, p.size)
		fmt.Fprintf(out, "\n%s: %d rows in %d batches of up to %d\n", p.table, p.target, len(windows), p.size)
		for i, w := range windows {
			if show >= 0 && i >= show {
				fmt.Fprintf(out, "  ... %d more\n", len(windows)-i)
				break
			}
			fmt.Fprintf(out, "  %s\n", w)
		}
	}

	if cfg.Targets.Orders > 0 {
		fmt.Fprintf(out, "\n%s: between %d and %d rows, written with their orders\n",
			schema.OrderItems, cfg.Targets.Orders, cfg.Targets.Orders*seeder.MaxItemsPerOrder)
	}
	return nil
}
