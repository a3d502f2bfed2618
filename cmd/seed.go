package cmd

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/datagen"
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products, customers and orders",
	Long: `
Insert synthetic products, then customers, then orders with 1 to 5 line
items each. Every batch runs in its own transaction; a failed batch is
rolled back and stops the run, earlier batches stay committed.

Examples:
  shopseed seed --scale dev
  shopseed seed --products 500 --orders 2000 --batch-orders 250
  SEED_SCALE=dev DATABASE_URL=sqlite://./shop.db shopseed seed --provider sqlite`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	bindCountFlags(seedCmd)

	seedCmd.Flags().Int64("seed", datagen.DefaultSeed, "Random seed")
	seedCmd.Flags().Int("years", 3, "Order dates fall within this many years back")
	seedCmd.Flags().String("relations", config.RelationsQuery, "How order references are resolved: query or assume")
	seedCmd.Flags().Bool("progress", false, "Show progress bars instead of per-batch lines")

	viper.BindPFlag("seed", seedCmd.Flags().Lookup("seed"))
	viper.BindPFlag("years", seedCmd.Flags().Lookup("years"))
	viper.BindPFlag("relations", seedCmd.Flags().Lookup("relations"))
	viper.BindPFlag("progress", seedCmd.Flags().Lookup("progress"))
}

// bindCountFlags adds the scale, target and batch size flags shared by seed and plan.
func bindCountFlags(c *cobra.Command) {
	c.Flags().String("scale", "", "Scale mode: dev or prod")
	c.Flags().Int("products", 0, "Number of products")
	c.Flags().Int("customers", 0, "Number of customers")
	c.Flags().Int("orders", 0, "Number of orders")
	c.Flags().Int("batch-products", 0, "Products per batch")
	c.Flags().Int("batch-customers", 0, "Customers per batch")
	c.Flags().Int("batch-orders", 0, "Orders per batch")

	// Flags only override when given; otherwise the profile of the scale applies.
	c.PreRun = func(cmd *cobra.Command, args []string) {
		for key, name := range map[string]string{
			"scale":             "scale",
			"targets.products":  "products",
			"targets.customers": "customers",
			"targets.orders":    "orders",
			"batches.products":  "batch-products",
			"batches.customers": "batch-customers",
			"batches.orders":    "batch-orders",
		} {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				viper.Set(key, f.Value.String())
			}
		}
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	var reporter seeder.Reporter = seeder.ConsoleReporter{}
	if cfg.Progress {
		reporter = seeder.NewProgressReporter(cmd.ErrOrStderr())
	}

	color.Cyan("🌱 Seeding (%s scale, seed %d)", cfg.Scale, cfg.Seed)
	gen := datagen.New(cfg.Seed, time.Now())
	s := seeder.New(cfg, adapter, gen, reporter)

	sum, err := s.Run(ctx)
	if err != nil {
		color.Yellow("⚠️  Stopped after %d products, %d customers, %d orders, %d order items",
			sum.Products, sum.Customers, sum.Orders, sum.OrderItems)
		return err
	}

	fmt.Println()
	color.Green("✅ Seeding complete in %s", sum.Elapsed.Round(time.Millisecond))
	color.White("   products:    %d", sum.Products)
	color.White("   customers:   %d", sum.Customers)
	color.White("   orders:      %d", sum.Orders)
	color.White("   order items: %d", sum.OrderItems)
	return nil
}
