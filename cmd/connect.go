package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/fatih/color"
)

// connect opens and pings the configured database. Callers close it.
func connect(ctx context.Context, cfg config.Config) (database.DatabaseAdapter, error) {
	adapter, err := database.NewAdapter(cfg.Database.Provider, common.Options{Schema: cfg.Database.Schema})
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	color.Cyan("🎯 Database: %s", adapter.Provider())
	return adapter, nil
}

// askUserConfirmation prompts on out and reads a y/N answer from in.
func askUserConfirmation(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "🤔 %s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
