package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

// MaxParams is the prepared statement placeholder limit of the MySQL protocol.
const MaxParams = 65535

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

// ToDSN turns a mysql:// URL into a go-sql-driver DSN. Anything else is
// returned unchanged.
func ToDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return fmt.Sprintf("%s@tcp(%s)/", credentials, remainder)
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=VERIFY_CA", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=VERIFY_IDENTITY", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=verify-ca", "tls=true")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=verify-full", "tls=true")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", ToDSN(url))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) Provider() string {
	return "mysql"
}

func (m *Adapter) Builder() squirrel.StatementBuilderType {
	return m.qb
}

// Begin hands out a transaction that reads order ids back from
// LastInsertId, MySQL having no RETURNING clause.
func (m *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, m.qb, MaxParams, common.LastInsertID), nil
}

func (m *Adapter) ExecuteScript(ctx context.Context, script string) error {
	return common.ExecuteScript(ctx, m.db, script)
}

func (m *Adapter) IDRange(ctx context.Context, table, idColumn string) (common.IDRange, error) {
	return common.QueryIDRange(ctx, m.db, m.qb, table, idColumn)
}

func (m *Adapter) QueryInt(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	return common.QueryInt(ctx, m.db, q)
}

func (m *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int64, error) {
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(tableNames))
	for _, tableName := range tableNames {
		n, err := common.QueryInt(ctx, m.db, m.qb.Select("COUNT(*)").From(tableName))
		if err != nil {
			return nil, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
		}
		result[tableName] = n
	}
	return result, nil
}

// TruncateTables runs on one pinned connection so the FOREIGN_KEY_CHECKS
// session variable covers every TRUNCATE.
func (m *Adapter) TruncateTables(ctx context.Context, tableNames []string) error {
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return err
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	defer conn.ExecContext(context.WithoutCancel(ctx), "SET FOREIGN_KEY_CHECKS = 1")

	for _, tableName := range tableNames {
		if _, err := conn.ExecContext(ctx, "TRUNCATE TABLE "+tableName); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", tableName, err)
		}
	}
	return nil
}
