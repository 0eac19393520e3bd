package commands_test

import (
	"context"
	"fmt"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// fakeStore is an in-memory stand-in for the postgres adapter. Its AdjustStock
// holds the mutex across the check and the write, giving the same atomicity
// guarantee as the conditional UPDATE, which makes it suitable for exercising
// concurrent reservation scenarios without a database.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]*fakeProductRow
	orders   map[string]*order.Order
}

type fakeProductRow struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	category    string
	active      bool
	stock       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]*fakeProductRow),
		orders:   make(map[string]*order.Order),
	}
}

func (s *fakeStore) seedProduct(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID().String()] = &fakeProductRow{
		id:          p.ID(),
		name:        p.Name(),
		description: p.Description(),
		price:       p.Price(),
		category:    p.Category(),
		active:      p.IsActive(),
		stock:       p.StockQuantity(),
	}
}

func (s *fakeStore) deleteProduct(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id.String())
}

func (s *fakeStore) stockOf(id kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id.String()].stock
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Unit of work surface. The fake has no transactions: every write is final.

func (s *fakeStore) Begin(context.Context) error    { return nil }
func (s *fakeStore) Commit(context.Context) error   { return nil }
func (s *fakeStore) Rollback(context.Context) error { return nil }

func (s *fakeStore) OrderRepository() ports.OrderRepository {
	return fakeOrderRepo{store: s}
}

func (s *fakeStore) ProductRepository() ports.ProductRepository {
	return fakeProductRepo{store: s}
}

type fakeUoWFactory struct{ store *fakeStore }

func (f fakeUoWFactory) Create() commands.UoW { return f.store }

type fakeOrderRepo struct{ store *fakeStore }

func (r fakeOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

// Update applies the same status guard as the conditional UPDATE in the
// postgres adapter: the write lands only while the stored status is one the
// new status may follow, so a writer holding a stale aggregate loses the race
// instead of overwriting the winner.
func (r fakeOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[aggregate.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if !statusIn(stored.Status(), aggregate.Status().PriorStatuses()) {
		return fmt.Errorf("%w: order %s is %s, cannot become %s",
			order.ErrInvalidStateTransition, aggregate.OrderNumber(),
			stored.Status(), aggregate.Status())
	}
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

// Get returns an independent copy, like a row read does: two callers loading
// the same order each hold their own aggregate and their own lifecycle guard.
func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	items := make([]*order.Item, 0, len(stored.Items()))
	for _, item := range stored.Items() {
		restored, err := order.RestoreItem(
			item.ProductID(), item.ProductName(), item.Quantity(), item.UnitPrice())
		if err != nil {
			return nil, err
		}
		items = append(items, restored)
	}

	return order.RestoreOrder(
		stored.ID(),
		stored.OrderNumber(),
		stored.CustomerID(),
		stored.ShippingAddress(),
		stored.BillingAddress(),
		items,
		stored.Status(),
		stored.CreatedAt(),
		stored.UpdatedAt(),
	)
}

func statusIn(status order.Status, set []order.Status) bool {
	for _, candidate := range set {
		if status == candidate {
			return true
		}
	}
	return false
}

func (r fakeOrderRepo) ExistsByNumber(_ context.Context, orderNumber string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, aggregate := range r.store.orders {
		if aggregate.OrderNumber() == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r fakeProductRepo) Add(_ context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.store.seedProduct(aggregate)
	return nil
}

func (r fakeProductRepo) Update(_ context.Context, aggregate *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.products[aggregate.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("product", aggregate.ID().String())
	}
	row.name = aggregate.Name()
	row.description = aggregate.Description()
	row.price = aggregate.Price()
	row.category = aggregate.Category()
	row.active = aggregate.IsActive()
	return nil
}

func (r fakeProductRepo) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.products[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return product.RestoreProduct(
		row.id, row.name, row.description, row.price, row.stock, row.category, row.active)
}

func (r fakeProductRepo) AdjustStock(_ context.Context, id kernel.UUID, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.products[id.String()]
	if !ok {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	if delta == 0 {
		return errs.NewValueIsInvalidError("delta is invalid")
	}
	if row.stock+delta < 0 {
		return fmt.Errorf("%w: product %s has %d units, %d requested",
			product.ErrInsufficientStock, row.name, row.stock, -delta)
	}

	row.stock += delta
	return nil
}
