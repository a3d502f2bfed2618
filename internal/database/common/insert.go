package common

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

var ErrRowWidth = errors.New("row width does not match column count")

// Insert is a multi-row INSERT: one statement, values bound as parameters.
type Insert struct {
	Table   string
	Columns []string
	Rows    [][]any
}

func (i Insert) Validate() error {
	if err := ValidateIdentifier(i.Table); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if len(i.Columns) == 0 {
		return fmt.Errorf("insert into %s: no columns", i.Table)
	}
	for _, col := range i.Columns {
		if err := ValidateIdentifier(col); err != nil {
			return fmt.Errorf("column of %s: %w", i.Table, err)
		}
	}
	for n, row := range i.Rows {
		if len(row) != len(i.Columns) {
			return fmt.Errorf("%s row %d has %d values for %d columns: %w",
				i.Table, n, len(row), len(i.Columns), ErrRowWidth)
		}
	}
	return nil
}

// Params is the number of bind parameters the statement needs.
func (i Insert) Params() int {
	return len(i.Rows) * len(i.Columns)
}

// Split breaks the insert into statements that each stay within maxParams
// bind parameters. Row order is preserved across the pieces.
func (i Insert) Split(maxParams int) []Insert {
	if len(i.Rows) == 0 {
		return nil
	}
	perStmt := len(i.Rows)
	if maxParams > 0 && len(i.Columns) > 0 {
		perStmt = max(1, maxParams/len(i.Columns))
	}
	if perStmt >= len(i.Rows) {
		return []Insert{i}
	}

	chunks := make([]Insert, 0, (len(i.Rows)+perStmt-1)/perStmt)
	for start := 0; start < len(i.Rows); start += perStmt {
		end := min(start+perStmt, len(i.Rows))
		chunks = append(chunks, Insert{Table: i.Table, Columns: i.Columns, Rows: i.Rows[start:end]})
	}
	return chunks
}

// Build renders the insert with the provider's placeholder format.
func (i Insert) Build(qb squirrel.StatementBuilderType) squirrel.InsertBuilder {
	b := qb.Insert(i.Table).Columns(i.Columns...)
	for _, row := range i.Rows {
		b = b.Values(row...)
	}
	return b
}
