package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/batch"
	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/Lumos-Labs-HQ/shopseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyIDRange = errors.New("no rows to reference")
	ErrReturnedIDs  = errors.New("returned id count does not match inserted rows")
)

// Source supplies the fake field values. *datagen.Generator implements it.
type Source interface {
	IntBetween(min, max int) int
	Price(min, max int) decimal.Decimal
	PastDate(years int) time.Time
	FirstName() string
	LastName() string
	Phone() string
	StreetAddress() string
	City() string
	PostalCode() string
	ProductName() string
	ProductDescription() string
}

// Store is the part of a database adapter the loaders need.
type Store interface {
	Begin(ctx context.Context) (common.Tx, error)
	IDRange(ctx context.Context, table, idColumn string) (common.IDRange, error)
}

type Summary struct {
	Products   int64
	Customers  int64
	Orders     int64
	OrderItems int64
	Elapsed    time.Duration
}

type Seeder struct {
	cfg      config.Config
	store    Store
	src      Source
	reporter Reporter
	lookups  Lookups
}

func New(cfg config.Config, store Store, src Source, reporter Reporter) *Seeder {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Seeder{
		cfg:      cfg,
		store:    store,
		src:      src,
		reporter: reporter,
		lookups:  Lookups{Currencies: cfg.Lookups.Currencies, Countries: cfg.Lookups.Countries},
	}
}

// Run loads products, customers, then orders with their items. The first
// error stops the run; batches committed before it stay in the database.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var sum Summary
	var err error

	if sum.Products, err = s.SeedProducts(ctx); err != nil {
		return sum, fmt.Errorf("failed to seed products: %w", err)
	}
	if sum.Customers, err = s.SeedCustomers(ctx); err != nil {
		return sum, fmt.Errorf("failed to seed customers: %w", err)
	}

	if s.cfg.Targets.Orders > 0 {
		customers, err := s.ResolveIDRange(ctx, schema.Customers, s.cfg.Targets.Customers)
		if err != nil {
			return sum, err
		}
		products, err := s.ResolveIDRange(ctx, schema.Products, s.cfg.Targets.Products)
		if err != nil {
			return sum, err
		}
		if sum.Orders, sum.OrderItems, err = s.SeedOrders(ctx, customers, products); err != nil {
			return sum, fmt.Errorf("failed to seed orders: %w", err)
		}
	}

	sum.Elapsed = time.Since(start)
	return sum, nil
}

// ResolveIDRange returns the ids orders may reference in table.
func (s *Seeder) ResolveIDRange(ctx context.Context, table string, target int) (common.IDRange, error) {
	var r common.IDRange
	if s.cfg.Relations == config.RelationsAssume {
		if target > 0 {
			r = common.IDRange{Min: 1, Max: int64(target)}
		}
	} else {
		var err error
		if r, err = s.store.IDRange(ctx, table, schema.IDColumn); err != nil {
			return r, err
		}
	}

	if r.Empty() {
		return r, fmt.Errorf("%s: %w", table, ErrEmptyIDRange)
	}
	return r, nil
}

// SeedProducts returns the number of rows in committed batches only.
func (s *Seeder) SeedProducts(ctx context.Context) (int64, error) {
	target := s.cfg.Targets.Products
	s.reporter.PhaseStarted(schema.Products, target)

	var total int64
	for w := range batch.Plan(target, s.cfg.Batches.Products) {
		ins := common.Insert{Table: schema.Products, Columns: schema.ProductColumns, Rows: make([][]any, 0, w.Size)}
		for i := 0; i < w.Size; i++ {
			ins.Rows = append(ins.Rows, NewProduct(s.src, w.Offset+i+1, s.lookups).Values())
		}

		var inserted int64
		err := s.withTx(ctx, func(tx common.Tx) error {
			var err error
			inserted, err = tx.Insert(ctx, ins)
			return err
		})
		if err != nil {
			return total, fmt.Errorf("batch %s: %w", w, err)
		}
		total += inserted
		s.reporter.BatchCommitted(schema.Products, w, 0)
	}

	s.reporter.PhaseFinished(schema.Products, total)
	return total, nil
}

func (s *Seeder) SeedCustomers(ctx context.Context) (int64, error) {
	target := s.cfg.Targets.Customers
	s.reporter.PhaseStarted(schema.Customers, target)

	var total int64
	for w := range batch.Plan(target, s.cfg.Batches.Customers) {
		ins := common.Insert{Table: schema.Customers, Columns: schema.CustomerColumns, Rows: make([][]any, 0, w.Size)}
		for i := 0; i < w.Size; i++ {
			ins.Rows = append(ins.Rows, NewCustomer(s.src, w.Offset+i+1, s.lookups).Values())
		}

		var inserted int64
		err := s.withTx(ctx, func(tx common.Tx) error {
			var err error
			inserted, err = tx.Insert(ctx, ins)
			return err
		})
		if err != nil {
			return total, fmt.Errorf("batch %s: %w", w, err)
		}
		total += inserted
		s.reporter.BatchCommitted(schema.Customers, w, 0)
	}

	s.reporter.PhaseFinished(schema.Customers, total)
	return total, nil
}

// SeedOrders inserts each order window and its items in one transaction:
// the orders go first so their ids can be read back, then every id gets
// 1 to 5 items drawn against the products range.
func (s *Seeder) SeedOrders(ctx context.Context, customers, products common.IDRange) (orders, items int64, err error) {
	target := s.cfg.Targets.Orders
	s.reporter.PhaseStarted(schema.Orders, target)

	for w := range batch.Plan(target, s.cfg.Batches.Orders) {
		ins := common.Insert{Table: schema.Orders, Columns: schema.OrderColumns, Rows: make([][]any, 0, w.Size)}
		for i := 0; i < w.Size; i++ {
			ins.Rows = append(ins.Rows, NewOrder(s.src, customers, s.cfg.Years, s.lookups).Values())
		}

		var batchItems int64
		err := s.withTx(ctx, func(tx common.Tx) error {
			ids, err := tx.InsertReturning(ctx, ins, schema.IDColumn)
			if err != nil {
				return err
			}
			if len(ids) != len(ins.Rows) {
				return fmt.Errorf("%w: got %d for %d orders", ErrReturnedIDs, len(ids), len(ins.Rows))
			}

			itemIns := common.Insert{Table: schema.OrderItems, Columns: schema.OrderItemColumns}
			for _, id := range ids {
				count := s.src.IntBetween(MinItemsPerOrder, MaxItemsPerOrder)
				for k := 0; k < count; k++ {
					itemIns.Rows = append(itemIns.Rows, NewOrderItem(s.src, id, products).Values())
				}
			}
			if len(itemIns.Rows) == 0 {
				return nil
			}

			batchItems, err = tx.Insert(ctx, itemIns)
			return err
		})
		if err != nil {
			return orders, items, fmt.Errorf("batch %s: %w", w, err)
		}

		orders += int64(w.Size)
		items += batchItems
		s.reporter.BatchCommitted(schema.Orders, w, batchItems)
	}

	s.reporter.PhaseFinished(schema.Orders, orders)
	return orders, items, nil
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func (s *Seeder) withTx(ctx context.Context, fn func(tx common.Tx) error) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
