package seeder

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/shopspring/decimal"
)

// Value bounds of the generated rows, all inclusive.
const (
	MinProductPrice  = 5
	MaxProductPrice  = 2000
	MinOrderTotal    = 20
	MaxOrderTotal    = 5000
	MinItemsPerOrder = 1
	MaxItemsPerOrder = 5
	MinQuantity      = 1
	MaxQuantity      = 10
	MinOrderStatus   = 0
	MaxOrderStatus   = 4
)

// Lookups bounds the currency and country ids rows may reference.
type Lookups struct {
	Currencies int
	Countries  int
}

type Product struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	CurrencyID  int
}

func (p Product) Values() []any {
	return []any{p.SKU, p.Name, p.Description, p.Price.StringFixed(2), p.CurrencyID}
}

type Customer struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Street     string
	City       string
	PostalCode string
	CountryID  int
}

func (c Customer) Values() []any {
	return []any{c.FirstName, c.LastName, c.Email, c.Phone, c.Street, c.City, c.PostalCode, c.CountryID}
}

type Order struct {
	CustomerID  int64
	OrderDate   time.Time
	Status      int
	TotalAmount decimal.Decimal
	CurrencyID  int
}

func (o Order) Values() []any {
	return []any{o.CustomerID, o.OrderDate, o.Status, o.TotalAmount.StringFixed(2), o.CurrencyID}
}

type OrderItem struct {
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

func (i OrderItem) Values() []any {
	return []any{i.OrderID, i.ProductID, i.Quantity, i.UnitPrice.StringFixed(2)}
}

// NewProduct draws the n-th product (1-based). The SKU is derived from n.
func NewProduct(src Source, n int, lookups Lookups) Product {
	return Product{
		SKU:         fmt.Sprintf("SKU-%d", n),
		Name:        src.ProductName(),
		Description: src.ProductDescription(),
		Price:       src.Price(MinProductPrice, MaxProductPrice),
		CurrencyID:  src.IntBetween(1, lookups.Currencies),
	}
}

// NewCustomer draws the n-th customer (1-based). The email is derived from n
// so it stays unique however the names repeat.
func NewCustomer(src Source, n int, lookups Lookups) Customer {
	return Customer{
		FirstName:  src.FirstName(),
		LastName:   src.LastName(),
		Email:      fmt.Sprintf("customer%d@example.com", n),
		Phone:      src.Phone(),
		Street:     src.StreetAddress(),
		City:       src.City(),
		PostalCode: src.PostalCode(),
		CountryID:  src.IntBetween(1, lookups.Countries),
	}
}

// NewOrder draws an order for a customer within customers. The currency is
// drawn before the total; keep that order or seeded runs change.
func NewOrder(src Source, customers common.IDRange, years int, lookups Lookups) Order {
	return Order{
		CustomerID:  pickID(src, customers),
		OrderDate:   src.PastDate(years),
		Status:      src.IntBetween(MinOrderStatus, MaxOrderStatus),
		CurrencyID:  src.IntBetween(1, lookups.Currencies),
		TotalAmount: src.Price(MinOrderTotal, MaxOrderTotal),
	}
}

func NewOrderItem(src Source, orderID int64, products common.IDRange) OrderItem {
	return OrderItem{
		OrderID:   orderID,
		ProductID: pickID(src, products),
		Quantity:  src.IntBetween(MinQuantity, MaxQuantity),
		UnitPrice: src.Price(MinProductPrice, MaxProductPrice),
	}
}

func pickID(src Source, r common.IDRange) int64 {
	return int64(src.IntBetween(int(r.Min), int(r.Max)))
}
