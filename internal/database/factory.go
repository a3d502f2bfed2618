package database

import (
	"errors"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/sqlite"
)

var ErrUnsupportedProvider = errors.New("unsupported database provider")

var SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

func NewAdapter(provider string, opts common.Options) (DatabaseAdapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(opts), nil
	case "mysql":
		return mysql.New(opts), nil
	case "sqlite", "sqlite3":
		return sqlite.New(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s. Supported providers: %v", ErrUnsupportedProvider, provider, SupportedProviders)
	}
}
