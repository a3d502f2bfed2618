package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Empty the seeded tables",
	Long: `
Delete every row from order_items, orders, customers and products and
restart their id sequences, so the next seed starts again at 1.
Lookup tables (currencies, countries) are left alone.

⚠️  WARNING: This permanently deletes the seeded data!

Use --force to skip the confirmation prompt.`,
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

		tables := schema.TruncationOrder()

		force, _ := cmd.Flags().GetBool("force")
		if !force && cmd.InOrStdin() == os.Stdin && !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("stdin is not a terminal; pass --force to reset without a prompt")
		}
		if !force && !askUserConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to empty "+strings.Join(tables, ", ")+"?") {
			color.Yellow("❌ Reset cancelled")
			return nil
		}

		counts, err := adapter.GetAllTableRowCounts(ctx, tables)
		if err != nil {
			return err
		}

		color.Yellow("🗑️  Truncating tables...")
		if err := adapter.TruncateTables(ctx, tables); err != nil {
			return err
		}
		for _, t := range tables {
			color.White("  %s: %d rows removed", t, counts[t])
		}
		color.Green("✅ Tables truncated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
