package common

import (
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQLStatements(t *testing.T) {
	script := `
-- lookup tables
CREATE TABLE currencies (id INTEGER PRIMARY KEY, code TEXT);
INSERT INTO currencies (id, code) VALUES (1, 'USD'), (2, 'E;R');

/* block comment */;
CREATE TABLE countries (id INTEGER PRIMARY KEY, name TEXT)
`
	stmts := ParseSQLStatements(script)

	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE currencies (id INTEGER PRIMARY KEY, code TEXT)", stmts[0])
	assert.Contains(t, stmts[1], "'E;R'")
	assert.Equal(t, "CREATE TABLE countries (id INTEGER PRIMARY KEY, name TEXT)", stmts[2])
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("order_items"))
	assert.NoError(t, ValidateIdentifier("_x1"))

	for _, bad := range []string{"", "1abc", "orders; DROP TABLE x", "a-b", `"quoted"`} {
		err := ValidateIdentifier(bad)
		assert.True(t, errors.Is(err, ErrInvalidIdentifier), bad)
	}
}

func TestIDRange(t *testing.T) {
	assert.True(t, IDRange{}.Empty())
	assert.Zero(t, IDRange{}.Len())
	assert.Equal(t, int64(3), IDRange{Min: 1, Max: 3}.Len())
	assert.Equal(t, "[4, 9]", IDRange{Min: 4, Max: 9}.String())
}

func TestInsertValidate(t *testing.T) {
	ok := Insert{Table: "products", Columns: []string{"sku", "price"}, Rows: [][]any{{"SKU-1", "5.00"}}}
	assert.NoError(t, ok.Validate())

	short := ok
	short.Rows = [][]any{{"SKU-1"}}
	assert.ErrorIs(t, short.Validate(), ErrRowWidth)

	badTable := ok
	badTable.Table = "products p"
	assert.ErrorIs(t, badTable.Validate(), ErrInvalidIdentifier)

	noCols := Insert{Table: "products"}
	assert.Error(t, noCols.Validate())
}

func TestInsertSplitRespectsParamLimit(t *testing.T) {
	ins := Insert{Table: "order_items", Columns: []string{"order_id", "product_id", "quantity", "unit_price"}}
	for k := 0; k < 10; k++ {
		ins.Rows = append(ins.Rows, []any{k, k, 1, "5.00"})
	}

	chunks := ins.Split(12)
	require.Len(t, chunks, 4)

	var flat [][]any
	for _, c := range chunks {
		assert.LessOrEqual(t, c.Params(), 12)
		flat = append(flat, c.Rows...)
	}
	assert.Equal(t, ins.Rows, flat)

	assert.Len(t, ins.Split(0), 1)
	assert.Len(t, ins.Split(1000), 1)
	assert.Len(t, ins.Split(1), 10)
	assert.Nil(t, Insert{Table: "x", Columns: []string{"a"}}.Split(10))
}

func TestInsertBuildBindsParameters(t *testing.T) {
	ins := Insert{
		Table:   "products",
		Columns: []string{"sku", "name"},
		Rows:    [][]any{{"SKU-1", "Robert'); DROP TABLE products;--"}, {"SKU-2", "b"}},
	}

	query, args, err := ins.Build(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO products (sku,name) VALUES ($1,$2),($3,$4)", query)
	assert.Equal(t, []any{"SKU-1", "Robert'); DROP TABLE products;--", "SKU-2", "b"}, args)

	query, _, err = ins.Build(squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO products (sku,name) VALUES (?,?),(?,?)", query)
}
