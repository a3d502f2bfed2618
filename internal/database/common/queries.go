package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Options carries provider settings that must be applied per connection.
type Options struct {
	// Schema is the PostgreSQL search_path. Other providers ignore it.
	Schema string
}

type rowScanner interface {
	Scan(dest ...any) error
}

// IDRangeQuery selects MIN and MAX of idColumn, both 0 for an empty table.
func IDRangeQuery(qb squirrel.StatementBuilderType, table, idColumn string) (squirrel.SelectBuilder, error) {
	if err := ValidateIdentifier(table); err != nil {
		return squirrel.SelectBuilder{}, err
	}
	if err := ValidateIdentifier(idColumn); err != nil {
		return squirrel.SelectBuilder{}, err
	}
	return qb.Select(
		fmt.Sprintf("COALESCE(MIN(%s), 0)", idColumn),
		fmt.Sprintf("COALESCE(MAX(%s), 0)", idColumn),
	).From(table), nil
}

func ScanIDRange(row rowScanner) (IDRange, error) {
	var r IDRange
	if err := row.Scan(&r.Min, &r.Max); err != nil {
		return IDRange{}, err
	}
	return r, nil
}

// QueryInt runs a single-value query on a database/sql handle.
func QueryInt(ctx context.Context, db *sql.DB, q squirrel.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var n sql.NullInt64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return n.Int64, nil
}

// QueryIDRange reads the id span of table through a database/sql handle.
func QueryIDRange(ctx context.Context, db *sql.DB, qb squirrel.StatementBuilderType, table, idColumn string) (IDRange, error) {
	q, err := IDRangeQuery(qb, table, idColumn)
	if err != nil {
		return IDRange{}, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return IDRange{}, err
	}
	r, err := ScanIDRange(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return IDRange{}, fmt.Errorf("failed to read id range of %s: %w", table, err)
	}
	return r, nil
}

// ExecuteScript runs every statement of script in one transaction.
func ExecuteScript(ctx context.Context, db *sql.DB, script string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range ParseSQLStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d '%s': %w", i+1, abbreviate(stmt), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit script transaction: %w", err)
	}
	return nil
}

func ValidateIdentifiers(names []string) error {
	for _, name := range names {
		if err := ValidateIdentifier(name); err != nil {
			return err
		}
	}
	return nil
}

func abbreviate(stmt string) string {
	stmt = strings.Join(strings.Fields(stmt), " ")
	if len(stmt) > 80 {
		return stmt[:77] + "..."
	}
	return stmt
}
