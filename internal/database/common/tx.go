package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Tx is a single database transaction used by the loaders.
type Tx interface {
	// Insert executes the insert and returns the number of rows written.
	Insert(ctx context.Context, ins Insert) (int64, error)
	// InsertReturning executes the insert and returns the generated ids in
	// the order the rows were supplied.
	InsertReturning(ctx context.Context, ins Insert, idColumn string) ([]int64, error)
	Exec(ctx context.Context, query string, args ...any) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// IDStrategy selects how generated ids are read back from a database/sql driver.
type IDStrategy int

const (
	// ReturningClause appends RETURNING <id> and scans the result rows.
	ReturningClause IDStrategy = iota
	// LastInsertID derives a contiguous id block from the first generated id
	// and the affected row count.
	LastInsertID
)

// SQLTx implements Tx on top of database/sql.
type SQLTx struct {
	tx        *sql.Tx
	qb        squirrel.StatementBuilderType
	maxParams int
	ids       IDStrategy
}

func NewSQLTx(tx *sql.Tx, qb squirrel.StatementBuilderType, maxParams int, ids IDStrategy) *SQLTx {
	return &SQLTx{tx: tx, qb: qb, maxParams: maxParams, ids: ids}
}

func (t *SQLTx) Insert(ctx context.Context, ins Insert) (int64, error) {
	if err := ins.Validate(); err != nil {
		return 0, err
	}

	var total int64
	for _, chunk := range ins.Split(t.maxParams) {
		query, args, err := chunk.Build(t.qb).ToSql()
		if err != nil {
			return total, fmt.Errorf("failed to build insert into %s: %w", ins.Table, err)
		}
		res, err := t.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (t *SQLTx) InsertReturning(ctx context.Context, ins Insert, idColumn string) ([]int64, error) {
	if err := ins.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateIdentifier(idColumn); err != nil {
		return nil, fmt.Errorf("id column: %w", err)
	}

	ids := make([]int64, 0, len(ins.Rows))
	for _, chunk := range ins.Split(t.maxParams) {
		var (
			chunkIDs []int64
			err      error
		)
		switch t.ids {
		case LastInsertID:
			chunkIDs, err = t.insertLastID(ctx, chunk)
		default:
			chunkIDs, err = t.insertReturning(ctx, chunk, idColumn)
		}
		if err != nil {
			return ids, err
		}
		ids = append(ids, chunkIDs...)
	}
	return ids, nil
}

func (t *SQLTx) insertReturning(ctx context.Context, ins Insert, idColumn string) ([]int64, error) {
	query, args, err := ins.Build(t.qb).Suffix("RETURNING " + idColumn).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert into %s: %w", ins.Table, err)
	}

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(ins.Rows))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s id: %w", ins.Table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
	}
	return ids, nil
}

// insertLastID relies on the server handing a single multi-row INSERT a
// consecutive block of auto-increment values.
func (t *SQLTx) insertLastID(ctx context.Context, ins Insert) ([]int64, error) {
	query, args, err := ins.Build(t.qb).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert into %s: %w", ins.Table, err)
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", ins.Table, err)
	}
	first, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s insert id: %w", ins.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, n)
	for k := range ids {
		ids[k] = first + int64(k)
	}
	return ids, nil
}

func (t *SQLTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}
