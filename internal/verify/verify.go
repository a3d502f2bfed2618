package verify

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/Lumos-Labs-HQ/shopseed/internal/seeder"
	"github.com/Masterminds/squirrel"
)

// Querier runs scalar queries. Every database adapter satisfies it.
type Querier interface {
	Builder() squirrel.StatementBuilderType
	QueryInt(ctx context.Context, q squirrel.Sqlizer) (int64, error)
}

type Kind int

const (
	// Count is informational and always passes.
	Count Kind = iota
	// Violation passes only when no row matches.
	Violation
)

type Check struct {
	Name  string
	Kind  Kind
	Value int64
}

func (c Check) Passed() bool {
	return c.Kind == Count || c.Value == 0
}

type Report struct {
	Checks []Check
}

func (r Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed() {
			return false
		}
	}
	return true
}

func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed() {
			out = append(out, c)
		}
	}
	return out
}

type query struct {
	name string
	kind Kind
	q    squirrel.Sqlizer
}

func queries(qb squirrel.StatementBuilderType) []query {
	count := func(from string) squirrel.SelectBuilder {
		return qb.Select("COUNT(*)").From(from)
	}

	qs := make([]query, 0, 13)
	for _, table := range schema.InsertionOrder() {
		qs = append(qs, query{table + " rows", Count, count(table)})
	}

	perOrder := qb.Select("order_id").From(schema.OrderItems).
		GroupBy("order_id").
		Having("COUNT(*) > ?", seeder.MaxItemsPerOrder)

	return append(qs,
		query{"orders without customer", Violation,
			count("orders o").LeftJoin("customers c ON c.id = o.customer_id").Where("c.id IS NULL")},
		query{"order items without order", Violation,
			count("order_items i").LeftJoin("orders o ON o.id = i.order_id").Where("o.id IS NULL")},
		query{"order items without product", Violation,
			count("order_items i").LeftJoin("products p ON p.id = i.product_id").Where("p.id IS NULL")},
		query{"orders without items", Violation,
			count("orders o").Where("NOT EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id)")},
		query{fmt.Sprintf("orders with more than %d items", seeder.MaxItemsPerOrder), Violation,
			qb.Select("COUNT(*)").FromSelect(perOrder, "busy")},
		query{"products priced out of range", Violation,
			count(schema.Products).Where(squirrel.Or{
				squirrel.Lt{"price": seeder.MinProductPrice},
				squirrel.Gt{"price": seeder.MaxProductPrice},
			})},
		query{"orders totalled out of range", Violation,
			count(schema.Orders).Where(squirrel.Or{
				squirrel.Lt{"total_amount": seeder.MinOrderTotal},
				squirrel.Gt{"total_amount": seeder.MaxOrderTotal},
			})},
		query{"order items priced out of range", Violation,
			count(schema.OrderItems).Where(squirrel.Or{
				squirrel.Lt{"unit_price": seeder.MinProductPrice},
				squirrel.Gt{"unit_price": seeder.MaxProductPrice},
			})},
		query{"order items with bad quantity", Violation,
			count(schema.OrderItems).Where(squirrel.Or{
				squirrel.Lt{"quantity": seeder.MinQuantity},
				squirrel.Gt{"quantity": seeder.MaxQuantity},
			})},
	)
}

// Run executes every check and stops at the first query error.
func Run(ctx context.Context, db Querier) (Report, error) {
	var report Report
	for _, q := range queries(db.Builder()) {
		n, err := db.QueryInt(ctx, q.q)
		if err != nil {
			return report, fmt.Errorf("check %q: %w", q.name, err)
		}
		report.Checks = append(report.Checks, Check{Name: q.name, Kind: q.kind, Value: n})
	}
	return report, nil
}
