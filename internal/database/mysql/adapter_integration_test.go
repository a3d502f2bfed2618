package mysql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to SHOPSEED_TEST_MYSQL_URL and empties the seeded
// tables before and after the test.
func openTestDB(t *testing.T) *Adapter {
	t.Helper()
	url := os.Getenv("SHOPSEED_TEST_MYSQL_URL")
	if url == "" {
		t.Skip("SHOPSEED_TEST_MYSQL_URL not set")
	}
	ctx := context.Background()

	a := New(common.Options{})
	require.NoError(t, a.Connect(ctx, url))
	t.Cleanup(func() {
		a.TruncateTables(ctx, schema.TruncationOrder())
		a.Close()
	})

	ddl, err := schema.DDL("mysql")
	require.NoError(t, err)
	require.NoError(t, a.ExecuteScript(ctx, ddl))
	require.NoError(t, a.TruncateTables(ctx, schema.TruncationOrder()))
	return a
}

func productInsert(from, to int) common.Insert {
	ins := common.Insert{Table: schema.Products, Columns: schema.ProductColumns}
	for n := from; n <= to; n++ {
		ins.Rows = append(ins.Rows, []any{fmt.Sprintf("SKU-%d", n), "Chair", "A chair.", "19.99", 1})
	}
	return ins
}

func idOf(t *testing.T, a *Adapter, sku string) int64 {
	t.Helper()
	id, err := a.QueryInt(context.Background(), a.Builder().Select("id").From(schema.Products).Where(squirrel.Eq{"sku": sku}))
	require.NoError(t, err)
	return id
}

func count(t *testing.T, a *Adapter, table string) int64 {
	t.Helper()
	n, err := a.QueryInt(context.Background(), a.Builder().Select("COUNT(*)").From(table))
	require.NoError(t, err)
	return n
}

func TestLastInsertIDBlock(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert(1, 5), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
	for i, id := range ids {
		assert.Equal(t, id, idOf(t, a, fmt.Sprintf("SKU-%d", i+1)))
	}
}

func TestLastInsertIDBlockAcrossChunks(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	// 14000 rows of 5 columns exceed 65535 placeholders, so two statements run
	// and each contributes its own id block.
	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert(1, 14000), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.Len(t, ids, 14000)
	for i := 1; i < len(ids); i++ {
		require.Greater(t, ids[i], ids[i-1])
	}
	assert.Equal(t, ids[13106], idOf(t, a, "SKU-13107"))
	assert.Equal(t, ids[13107], idOf(t, a, "SKU-13108"))
	assert.Equal(t, ids[13999], idOf(t, a, "SKU-14000"))
}

func TestRollbackDiscardsOrderWithItems(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, productInsert(1, 2))
	require.NoError(t, err)
	_, err = tx.Insert(ctx, common.Insert{Table: schema.Customers, Columns: schema.CustomerColumns, Rows: [][]any{
		{"Ada", "Lovelace", "ada@example.com", "555-0100", "1 Main St", "London", "N1", 1},
	}})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	tx, err = a.Begin(ctx)
	require.NoError(t, err)
	orderIDs, err := tx.InsertReturning(ctx, common.Insert{Table: schema.Orders, Columns: schema.OrderColumns, Rows: [][]any{
		{1, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 0, "39.98", 1},
		{1, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), 2, "19.99", 1},
	}}, schema.IDColumn)
	require.NoError(t, err)
	require.Len(t, orderIDs, 2)
	n, err := tx.Insert(ctx, common.Insert{Table: schema.OrderItems, Columns: schema.OrderItemColumns, Rows: [][]any{
		{orderIDs[0], 1, 2, "19.99"},
		{orderIDs[1], 2, 1, "19.99"},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, int64(0), count(t, a, schema.Orders))
	assert.Equal(t, int64(0), count(t, a, schema.OrderItems))
	assert.Equal(t, int64(2), count(t, a, schema.Products))
}

func TestTruncateTablesRestartsAutoIncrement(t *testing.T) {
	ctx := context.Background()
	a := openTestDB(t)

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, productInsert(1, 4))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, a.TruncateTables(ctx, schema.TruncationOrder()))
	assert.Equal(t, int64(0), count(t, a, schema.Products))

	tx, err = a.Begin(ctx)
	require.NoError(t, err)
	ids, err := tx.InsertReturning(ctx, productInsert(10, 11), schema.IDColumn)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, []int64{1, 2}, ids)
}
