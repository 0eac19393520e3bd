package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// the NewOrder factory method. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from creation through confirmation, shipping and
// delivery, or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-blank order number
//   - Must reference a customer and carry non-blank shipping and billing addresses
//   - Total amount equals the sum of item subtotals whenever items are present
//   - An order without items is not a valid persisted state
//   - Status transitions follow the lifecycle state machine in Status
//   - Can only be created through the NewOrder constructor
//
// Orders are never deleted: cancellation is a terminal status, not a removal.
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the unique human-readable order number, never reused
	orderNumber string

	// customerID references the ordering customer
	customerID kernel.UUID

	// shippingAddress is the delivery destination
	shippingAddress kernel.Address

	// billingAddress is the invoicing destination
	billingAddress kernel.Address

	// items holds the line-item snapshots in insertion order
	items []*Item

	// totalAmount is derived: the sum of item subtotals
	totalAmount kernel.Money

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is set once at construction and never changed
	createdAt time.Time

	// updatedAt is bumped on every mutation
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order shell in Pending status with no items.
// This is the only way to create a valid Order, ensuring all invariants hold.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - orderNumber: unique human-readable number (must not be blank)
//   - customerID: identifier of the ordering customer (must be a valid UUID)
//   - shippingAddress, billingAddress: validated address value objects
//
// Items are attached afterwards with AddItem, and the total is derived with
// RecomputeTotal before the order is persisted.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	shippingAddress kernel.Address,
	billingAddress kernel.Address,
) (*Order, error) {
	now := time.Now()
	order := &Order{
		status:        Pending,
		totalAmount:   kernel.ZeroMoney(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerID(customerID),
		order.setShippingAddress(shippingAddress),
		order.setBillingAddress(billingAddress),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// The status must be a valid lifecycle state and the item list must not be
// empty: an order without items was never a valid persisted state. The total
// is rederived from the restored items.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	shippingAddress kernel.Address,
	billingAddress kernel.Address,
	items []*Item,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order, err := NewOrder(id, orderNumber, customerID, shippingAddress, billingAddress)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	order.items = items
	order.status = status
	order.createdAt = createdAt
	order.updatedAt = updatedAt
	order.recomputeTotal()
	return order, nil
}

// Validate ensures the Order was properly constructed and is in a persistable
// state. An order without items fails validation: repositories call this
// before writing, which keeps partially assembled shells out of storage.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the unique human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ShippingAddress returns the delivery destination.
func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

// BillingAddress returns the invoicing destination.
func (o *Order) BillingAddress() kernel.Address {
	return o.billingAddress
}

// Items returns the line items in insertion order.
// The returned slice is a copy; items themselves are owned by the order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the derived order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the construction timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddItem appends a line item to the order.
//
// Items keep their insertion order; the sequence is not reorderable. Stock is
// deliberately not touched here: reservation is the orchestrator's concern,
// which keeps the aggregate free of external dependencies. Callers must invoke
// RecomputeTotal after all items are attached and before persisting.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	o.items = append(o.items, item)
	o.touch()
	return nil
}

// RecomputeTotal sets the order total to the sum of item subtotals.
// Must be called after all items are attached and before persistence.
func (o *Order) RecomputeTotal() {
	o.recomputeTotal()
	o.touch()
}

// Confirm transitions the order from Pending to Confirmed.
// No mutation occurs when the transition is rejected.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Ship transitions the order from Confirmed to Shipped.
// No mutation occurs when the transition is rejected.
func (o *Order) Ship() error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Deliver transitions the order from Shipped to Delivered.
// Delivered is terminal. No mutation occurs when the transition is rejected.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel transitions the order to Cancelled from any non-terminal status.
// Cancelled is terminal: a second cancel is rejected by the lifecycle guard,
// which keeps the compensating stock restore from running twice.
// No mutation occurs when the transition is rejected.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) recomputeTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalAmount = total
}

func (o *Order) touch() {
	o.updatedAt = time.Now()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShippingAddress(shippingAddress kernel.Address) error {
	if err := shippingAddress.Validate(); err != nil {
		return err
	}
	o.shippingAddress = shippingAddress
	return nil
}

func (o *Order) setBillingAddress(billingAddress kernel.Address) error {
	if err := billingAddress.Validate(); err != nil {
		return err
	}
	o.billingAddress = billingAddress
	return nil
}
