package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one requested item is required")
)

// ItemRequest names a product and a quantity inside a creation request.
// It carries no price or name: those are snapshotted from the live product
// by the handler at reservation time.
type ItemRequest struct {
	productID kernel.UUID
	quantity  int
}

// NewItemRequest creates a validated item request.
// The product ID must be a valid UUID and quantity must be at least 1.
func NewItemRequest(productID kernel.UUID, quantity int) (ItemRequest, error) {
	if err := productID.Validate(); err != nil {
		return ItemRequest{}, err
	}
	if quantity < 1 {
		return ItemRequest{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}
	return ItemRequest{productID: productID, quantity: quantity}, nil
}

// ProductID returns the requested product's identifier.
func (r ItemRequest) ProductID() kernel.UUID {
	return r.productID
}

// Quantity returns the requested amount.
func (r ItemRequest) Quantity() int {
	return r.quantity
}

// CreateOrderCommand represents a request to create a new order from a basket
// of requested line items.
//
// Example:
//
//	item, _ := NewItemRequest(productID, 2)
//	cmd, err := NewCreateOrderCommand(customerID, "Addr A", "Addr B", []ItemRequest{item})
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numberGenerator)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	shippingAddress kernel.Address
	billingAddress  kernel.Address
	items           []ItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the customer ID, both addresses, and that at least one item
// request is present. Item requests are validated at their own construction.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	shippingAddress string,
	billingAddress string,
	items []ItemRequest,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerID(customerID),
		orderCommand.setShippingAddress(shippingAddress),
		orderCommand.setBillingAddress(billingAddress),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ShippingAddress returns the delivery destination.
func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

// BillingAddress returns the invoicing destination.
func (c CreateOrderCommand) BillingAddress() kernel.Address {
	return c.billingAddress
}

// Items returns the requested line items in request order.
func (c CreateOrderCommand) Items() []ItemRequest {
	items := make([]ItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(shippingAddress string) error {
	address, err := kernel.NewAddress(shippingAddress)
	if err != nil {
		return err
	}
	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setBillingAddress(billingAddress string) error {
	address, err := kernel.NewAddress(billingAddress)
	if err != nil {
		return err
	}
	c.billingAddress = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.ProductID().Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
