package product

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInsufficientStock is the unwrap target for rejected stock reservations.
	// The wrapped message names the product and the quantities involved so a
	// caller can retry with an adjusted quantity or a different product.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents a sellable item with the authoritative stock counter for
// that item. It is an aggregate root mutated only through its methods.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and a non-blank name
//   - Price must be a constructed, non-negative Money value
//   - Stock quantity never goes negative
//   - Stock is mutated only via TryReserve and Restore
//
// Every successful reservation is eventually paired with either permanent
// consumption (the order ships) or a compensating Restore (the order is
// cancelled before delivery).
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// name is the display name; order items snapshot it at order time
	name string

	// description is free-form catalog text, may be empty
	description string

	// price is the current unit price; order items snapshot it at order time
	price kernel.Money

	// stockQuantity is the available stock counter (never negative)
	stockQuantity int

	// category groups the product for catalog queries
	category string

	// active marks whether the product can be ordered
	active bool

	// isConstructed ensures the product was created via NewProduct
	isConstructed bool
}

// NewProduct creates a new active Product with validation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must not be blank)
//   - description: free-form catalog text, may be empty
//   - price: unit price (must be constructed Money)
//   - stockQuantity: initial stock (must not be negative)
//   - category: catalog category (must not be blank)
func NewProduct(
	id kernel.UUID,
	name string,
	description string,
	price kernel.Money,
	stockQuantity int,
	category string,
) (*Product, error) {
	product := &Product{
		description:   description,
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		product.setID(id),
		product.setName(name),
		product.setPrice(price),
		product.setStockQuantity(stockQuantity),
		product.setCategory(category),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// RestoreProduct reconstructs a Product aggregate from persistence,
// including its stock counter and active flag.
func RestoreProduct(
	id kernel.UUID,
	name string,
	description string,
	price kernel.Money,
	stockQuantity int,
	category string,
	active bool,
) (*Product, error) {
	product, err := NewProduct(id, name, description, price, stockQuantity, category)
	if err != nil {
		return nil, err
	}

	product.active = active
	return product, nil
}

// Validate ensures the Product was created through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the product's catalog text.
func (p *Product) Description() string {
	return p.description
}

// Price returns the current unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// StockQuantity returns the available stock.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// Category returns the catalog category.
func (p *Product) Category() string {
	return p.category
}

// IsActive reports whether the product can be ordered.
func (p *Product) IsActive() bool {
	return p.active
}

// TryReserve atomically checks availability and decrements the stock counter.
//
// The check and the decrement are a single step with respect to this aggregate
// instance; callers that share a product across goroutines must serialize
// access, which the storage layer does with a conditional update.
//
// Returns an error wrapping ErrInsufficientStock when fewer than quantity
// units are available; the counter is not mutated in that case. A quantity
// below 1 is rejected as invalid input.
func (p *Product) TryReserve(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not at least 1", quantity))
	}

	if p.stockQuantity < quantity {
		return fmt.Errorf("%w: product %s has %d units, %d requested",
			ErrInsufficientStock, p.name, p.stockQuantity, quantity)
	}

	p.stockQuantity -= quantity
	return nil
}

// Restore increments the stock counter by quantity.
//
// Restore always succeeds for a valid quantity: restoring more than was ever
// reserved is a caller bug, not a runtime error. A quantity below 1 is
// rejected as invalid input.
func (p *Product) Restore(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not at least 1", quantity))
	}

	p.stockQuantity += quantity
	return nil
}

// Deactivate removes the product from sale. Existing order items keep their
// snapshots; new reservations against the product are rejected upstream.
func (p *Product) Deactivate() {
	p.active = false
}

// Activate returns the product to sale.
func (p *Product) Activate() {
	p.active = true
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock quantity is invalid",
			fmt.Errorf("%d is negative", stockQuantity),
		)
	}
	p.stockQuantity = stockQuantity
	return nil
}

func (p *Product) setCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValueIsRequiredError("category")
	}
	p.category = category
	return nil
}
