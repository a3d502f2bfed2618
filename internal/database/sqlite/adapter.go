package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

// MaxParams is SQLITE_MAX_VARIABLE_NUMBER for SQLite 3.32 and later.
const MaxParams = 32766

type Adapter struct {
	db   *sql.DB
	qb   squirrel.StatementBuilderType
	opts common.Options
}

func New(opts common.Options) *Adapter {
	return &Adapter{
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		opts: opts,
	}
}

// ToDSN strips the sqlite:// scheme and, when the URL carries no query
// string, turns on foreign key enforcement.
func ToDSN(url string) string {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_foreign_keys=on&_busy_timeout=5000"
	}
	return dbPath
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", ToDSN(url))
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) Provider() string {
	return "sqlite"
}

func (s *Adapter) Builder() squirrel.StatementBuilderType {
	return s.qb
}

func (s *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, s.qb, MaxParams, common.ReturningClause), nil
}

func (s *Adapter) ExecuteScript(ctx context.Context, script string) error {
	return common.ExecuteScript(ctx, s.db, script)
}

func (s *Adapter) IDRange(ctx context.Context, table, idColumn string) (common.IDRange, error) {
	return common.QueryIDRange(ctx, s.db, s.qb, table, idColumn)
}

func (s *Adapter) QueryInt(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	return common.QueryInt(ctx, s.db, q)
}

func (s *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int64, error) {
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(tableNames))
	for _, tableName := range tableNames {
		n, err := common.QueryInt(ctx, s.db, s.qb.Select("COUNT(*)").From(tableName))
		if err != nil {
			return nil, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
		}
		result[tableName] = n
	}
	return result, nil
}

func (s *Adapter) TruncateTables(ctx context.Context, tableNames []string) error {
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+tableName); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", tableName, err)
		}
	}

	// sqlite_sequence only exists once an AUTOINCREMENT table has been written.
	reset, args, err := s.qb.Delete("sqlite_sequence").Where(squirrel.Eq{"name": tableNames}).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, reset, args...); err != nil && !isNoSuchTable(err) {
		return fmt.Errorf("failed to reset id sequences: %w", err)
	}
	return nil
}

func isNoSuchTable(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrError && strings.Contains(se.Error(), "no such table")
}
