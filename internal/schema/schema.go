package schema

import (
	"embed"
	"fmt"
	"slices"
)

//go:embed sql/*.sql
var ddl embed.FS

// Tables the loader writes to.
const (
	Products   = "products"
	Customers  = "customers"
	Orders     = "orders"
	OrderItems = "order_items"
)

// IDColumn is the database-assigned key of every seeded table.
const IDColumn = "id"

var (
	ProductColumns   = []string{"sku", "name", "description", "price", "currency_id"}
	CustomerColumns  = []string{"first_name", "last_name", "email", "phone", "street", "city", "postal_code", "country_id"}
	OrderColumns     = []string{"customer_id", "order_date", "status", "total_amount", "currency_id"}
	OrderItemColumns = []string{"order_id", "product_id", "quantity", "unit_price"}
)

// InsertionOrder lists the seeded tables parents first.
func InsertionOrder() []string {
	return []string{Products, Customers, Orders, OrderItems}
}

// TruncationOrder lists the seeded tables children first.
func TruncationOrder() []string {
	order := InsertionOrder()
	slices.Reverse(order)
	return order
}

// DDL returns the reference schema, lookup rows included, for a provider.
func DDL(provider string) (string, error) {
	var file string
	switch provider {
	case "postgresql", "postgres":
		file = "sql/postgres.sql"
	case "mysql":
		file = "sql/mysql.sql"
	case "sqlite", "sqlite3":
		file = "sql/sqlite.sql"
	default:
		return "", fmt.Errorf("no reference schema for provider %s", provider)
	}

	data, err := ddl.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}
