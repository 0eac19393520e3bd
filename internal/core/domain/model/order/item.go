package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line-item snapshot attached to exactly one Order.
//
// Product name and unit price are captured at order time and deliberately do
// not track later changes to the product: renaming or repricing a product must
// not rewrite order history. The product ID is a weak reference used for stock
// accounting only; the referenced product may be deactivated or deleted later
// without the snapshot changing.
//
// Invariants:
//   - quantity >= 1 for the life of the item
//   - subtotal == unit price * quantity, recomputed whenever either is set
//
// Items are exclusively owned by their parent Order and have no independent
// lifecycle.
type Item struct {
	// productID is a weak reference to the ordered product
	productID kernel.UUID

	// productName is the product name snapshot at order time
	productName string

	// quantity is the ordered amount (>= 1)
	quantity int

	// unitPrice is the price snapshot at order time
	unitPrice kernel.Money

	// subtotal is derived: unitPrice * quantity
	subtotal kernel.Money

	// guard ensures the item was created via NewItem
	guard kernel.ConstructorGuard
}

// NewItem creates a line-item snapshot for the given product.
//
// Parameters:
//   - productID: identifier of the ordered product (must be a valid UUID)
//   - productName: product name at order time (must not be blank)
//   - quantity: ordered amount (must be >= 1)
//   - unitPrice: product price at order time (must be constructed Money)
//
// The subtotal is computed on construction and kept consistent by the setters.
func NewItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	item.recomputeSubtotal()
	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
// The subtotal is rederived from the stored quantity and unit price so the
// derivation invariant holds regardless of what was persisted.
func RestoreItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (*Item, error) {
	return NewItem(productID, productName, quantity, unitPrice)
}

// Validate ensures the Item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil || i.guard.Validate(ErrItemIsNotConstructed) != nil {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the weak reference to the ordered product.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot taken at order time.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered amount.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at order time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price * quantity.
func (i *Item) Subtotal() kernel.Money {
	return i.subtotal
}

// SetQuantity changes the ordered amount and recomputes the subtotal.
// Quantity must stay >= 1.
func (i *Item) SetQuantity(quantity int) error {
	if err := i.setQuantity(quantity); err != nil {
		return err
	}
	i.recomputeSubtotal()
	return nil
}

// SetUnitPrice changes the price snapshot and recomputes the subtotal.
func (i *Item) SetUnitPrice(unitPrice kernel.Money) error {
	if err := i.setUnitPrice(unitPrice); err != nil {
		return err
	}
	i.recomputeSubtotal()
	return nil
}

func (i *Item) recomputeSubtotal() {
	i.subtotal = i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not at least 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
