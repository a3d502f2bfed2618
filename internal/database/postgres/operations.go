package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

func (p *Adapter) IDRange(ctx context.Context, table, idColumn string) (common.IDRange, error) {
	q, err := common.IDRangeQuery(p.qb, table, idColumn)
	if err != nil {
		return common.IDRange{}, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return common.IDRange{}, err
	}

	r, err := common.ScanIDRange(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return common.IDRange{}, fmt.Errorf("failed to read id range of %s: %w", table, err)
	}
	return r, nil
}

func (p *Adapter) QueryInt(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var n *int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	if n == nil {
		return 0, nil
	}
	return *n, nil
}

func (p *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int64, error) {
	if len(tableNames) == 0 {
		return make(map[string]int64), nil
	}
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return nil, err
	}

	var queryParts []string
	for _, tableName := range tableNames {
		queryParts = append(queryParts, fmt.Sprintf("SELECT '%s' AS table_name, COUNT(*) AS row_count FROM %s", tableName, tableName))
	}

	rows, err := p.pool.Query(ctx, strings.Join(queryParts, " UNION ALL "))
	if err != nil {
		return nil, fmt.Errorf("failed to batch count table rows: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64, len(tableNames))
	for rows.Next() {
		var tableName string
		var count int64
		if err := rows.Scan(&tableName, &count); err != nil {
			return nil, fmt.Errorf("failed to scan batch count result: %w", err)
		}
		result[tableName] = count
	}
	return result, rows.Err()
}

func (p *Adapter) TruncateTables(ctx context.Context, tableNames []string) error {
	if len(tableNames) == 0 {
		return nil
	}
	if err := common.ValidateIdentifiers(tableNames); err != nil {
		return err
	}

	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tableNames, ", "))
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", strings.Join(tableNames, ", "), err)
	}
	return nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
	qb squirrel.StatementBuilderType
}

func (t *Tx) Insert(ctx context.Context, ins common.Insert) (int64, error) {
	if err := ins.Validate(); err != nil {
		return 0, err
	}

	var total int64
	for _, chunk := range ins.Split(MaxParams) {
		query, args, err := chunk.Build(t.qb).ToSql()
		if err != nil {
			return total, fmt.Errorf("failed to build insert into %s: %w", ins.Table, err)
		}
		tag, err := t.tx.Exec(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

func (t *Tx) InsertReturning(ctx context.Context, ins common.Insert, idColumn string) ([]int64, error) {
	if err := ins.Validate(); err != nil {
		return nil, err
	}
	if err := common.ValidateIdentifier(idColumn); err != nil {
		return nil, fmt.Errorf("id column: %w", err)
	}

	ids := make([]int64, 0, len(ins.Rows))
	for _, chunk := range ins.Split(MaxParams) {
		query, args, err := chunk.Build(t.qb).Suffix("RETURNING " + idColumn).ToSql()
		if err != nil {
			return ids, fmt.Errorf("failed to build insert into %s: %w", ins.Table, err)
		}
		rows, err := t.tx.Query(ctx, query, args...)
		if err != nil {
			return ids, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
		}
		chunkIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return ids, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
		}
		ids = append(ids, chunkIDs...)
	}
	return ids, nil
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.Exec(ctx, query, args...)
	return err
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
