package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the e-commerce schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply [sql-file]",
	Short: "Execute a SQL script in one transaction",
	Long: `
Execute a schema script against the database. All statements run in a
single transaction; the first failure rolls the whole script back.

Without a file, --builtin applies the bundled schema for the configured
provider, including the currency and country lookup rows.

Examples:
  shopseed schema apply db/schema.sql
  shopseed schema apply --builtin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchemaApply,
}

var schemaPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the bundled schema for the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ddl, err := schema.DDL(cfg.Database.Provider)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ddl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaApplyCmd, schemaPrintCmd)
	schemaApplyCmd.Flags().Bool("builtin", false, "Apply the bundled schema")
}

func runSchemaApply(cmd *cobra.Command, args []string) error {
	builtin, _ := cmd.Flags().GetBool("builtin")
	if builtin == (len(args) == 1) {
		return fmt.Errorf("pass either a SQL file or --builtin")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var script, source string
	if builtin {
		if script, err = schema.DDL(cfg.Database.Provider); err != nil {
			return err
		}
		source = "bundled " + cfg.Database.Provider + " schema"
	} else {
		source = args[0]
		content, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("failed to read SQL file: %w", err)
		}
		script = string(content)
	}
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("SQL file is empty: %s", source)
	}

	ctx := cmd.Context()
	adapter, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	color.Cyan("📄 Executing %s (%d statements)", source, len(common.ParseSQLStatements(script)))
	if err := adapter.ExecuteScript(ctx, script); err != nil {
		return err
	}
	color.Green("✅ Schema applied")
	return nil
}
