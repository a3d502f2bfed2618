package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Masterminds/squirrel"
)

// DatabaseAdapter is the provider-specific connection the loaders run on.
// Implementations hold a single connection for the lifetime of a run.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Provider() string

	// Builder returns a squirrel builder with the provider's placeholder format.
	Builder() squirrel.StatementBuilderType
	Begin(ctx context.Context) (common.Tx, error)
	ExecuteScript(ctx context.Context, script string) error

	IDRange(ctx context.Context, table, idColumn string) (common.IDRange, error)
	QueryInt(ctx context.Context, q squirrel.Sqlizer) (int64, error)
	GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int64, error)
	// TruncateTables empties tables in the given order and restarts their identities.
	TruncateTables(ctx context.Context, tableNames []string) error
}
