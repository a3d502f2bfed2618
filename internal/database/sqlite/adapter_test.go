package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Adapter {
	t.Helper()
	ctx := context.Background()

	a := New(common.Options{})
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "shop.db")))
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.Ping(ctx))

	ddl, err := schema.DDL("sqlite")
	require.NoError(t, err)
	require.NoError(t, a.ExecuteScript(ctx, ddl))
	return a
}

func productInsert(skus ...string) common.Insert {
	ins := common.Insert{Table: schema.Products, Columns: schema.ProductColumns}
	for _, sku := range skus {
		ins.Rows = append(ins.Rows, []any{sku, "Chair", "A chair.", "19.99", 1})
	}
	return ins
}

func TestToDSN(t *testing.T) {
	assert.Equal(t, "./dev.db?_foreign_keys=on&_busy_timeout=5000", ToDSN("sqlite://./dev.db"))
	assert.Equal(t, "dev.db?mode=ro", ToDSN("dev.db?mode=ro"))
}

func TestInsertReturningAndCommit(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert("SKU-1", "SKU-2", "SKU-3"), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, []int64{1, 2, 3}, ids)

	r, err := a.IDRange(ctx, schema.Products, schema.IDColumn)
	require.NoError(t, err)
	assert.Equal(t, common.IDRange{Min: 1, Max: 3}, r)
}

func TestRollbackDiscardsBatch(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	n, err := tx.Insert(ctx, productInsert("SKU-1", "SKU-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, tx.Rollback(ctx))

	counts, err := a.GetAllTableRowCounts(ctx, []string{schema.Products})
	require.NoError(t, err)
	assert.Zero(t, counts[schema.Products])

	r, err := a.IDRange(ctx, schema.Products, schema.IDColumn)
	require.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Insert(ctx, common.Insert{
		Table:   schema.Orders,
		Columns: schema.OrderColumns,
		Rows:    [][]any{{int64(42), "2024-01-01 00:00:00", 0, "20.00", 1}},
	})
	assert.Error(t, err)
}

func TestInsertSplitsLargeBatches(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	skus := make([]string, 0, 7000)
	for i := 1; i <= cap(skus); i++ {
		skus = append(skus, fmt.Sprintf("SKU-%d", i))
	}

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert(skus...), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.Len(t, ids, len(skus))
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, int64(len(skus)), ids[len(ids)-1])
}

func TestTruncateTablesRestartsIdentity(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, productInsert("SKU-1", "SKU-2"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, a.TruncateTables(ctx, schema.TruncationOrder()))

	tx, err = a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert("SKU-1"), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, []int64{1}, ids)

	assert.ErrorIs(t, a.TruncateTables(ctx, []string{"products; --"}), common.ErrInvalidIdentifier)
}

func TestTruncateTablesWithoutSequenceTable(t *testing.T) {
	ctx := context.Background()
	a := New(common.Options{})
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "plain.db")))
	t.Cleanup(func() { a.Close() })

	// No AUTOINCREMENT column, so sqlite_sequence is never created.
	require.NoError(t, a.ExecuteScript(ctx, "CREATE TABLE products (id INTEGER PRIMARY KEY, sku TEXT);"))
	assert.NoError(t, a.TruncateTables(ctx, []string{schema.Products}))
}

func TestIsNoSuchTable(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	_, err := a.db.ExecContext(ctx, "DELETE FROM missing_table")
	require.Error(t, err)
	assert.True(t, isNoSuchTable(err))

	_, err = a.db.ExecContext(ctx, "DELETE FROM products WHERE")
	require.Error(t, err)
	assert.False(t, isNoSuchTable(err), "syntax errors are not swallowed")

	assert.False(t, isNoSuchTable(context.Canceled))
}
