package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/verify"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the seeded data for integrity problems",
	Long: `
Run read-only checks against the seeded tables: row counts, orders or
items pointing at missing rows, orders without items or with too many,
and money or quantity values outside the generated ranges.

Exits non-zero when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		report, err := verify.Run(ctx, adapter)
		if err != nil {
			return err
		}

		for _, c := range report.Checks {
			switch {
			case c.Kind == verify.Count:
				color.White("  📊 %-36s %d", c.Name, c.Value)
			case c.Passed():
				color.Green("  ✅ %s", c.Name)
			default:
				color.Red("  ❌ %-36s %d", c.Name, c.Value)
			}
		}

		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d check(s) failed", len(failed))
		}
		color.Green("\n✅ All checks passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
