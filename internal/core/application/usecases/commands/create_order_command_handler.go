package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// maxOrderNumberAttempts bounds collision retries during number generation.
const maxOrderNumberAttempts = 5

// ErrOrderNumberExhausted is returned when order number generation keeps
// colliding with existing orders. Seeing this in practice means the
// generator is broken, not that the caller was unlucky.
var ErrOrderNumberExhausted = errors.New("could not generate a unique order number")

// CreateOrderCommandHandler handles the business logic for order creation.
//
// For every requested item the handler snapshots the live product's name and
// price and reserves stock through the atomic AdjustStock primitive. The
// operation is all-or-nothing: if any reservation fails, every reservation
// already taken for this request is compensated with a restoring adjustment
// and no order is persisted.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderNumberGenerator())
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, product.ErrInsufficientStock):
//	    // retry with an adjusted quantity
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // a requested product does not exist or is inactive
//	case err != nil:
//	    return err
//	}
type CreateOrderCommandHandler struct {
	uowFactory      UoWFactory
	numberGenerator services.OrderNumberGenerator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory for transactional persistence across both aggregates
// and an OrderNumberGenerator for candidate order numbers.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	numberGenerator services.OrderNumberGenerator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		numberGenerator: numberGenerator,
	}
}

// Handle processes the order creation command and returns the persisted order.
//
// Processing steps:
//  1. Generate a unique order number, retrying on collision.
//  2. Construct the Pending order shell.
//  3. For each requested item in request order: load the product (missing or
//     inactive products fail the request), reserve stock atomically, and
//     attach a name/price snapshot item.
//  4. On any reservation failure, restore every earlier reservation of this
//     request before surfacing the error.
//  5. Recompute the total and persist the aggregate.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	orderNumber, err := h.generateOrderNumber(ctx, orderRepo)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		cmd.CustomerID(),
		cmd.ShippingAddress(),
		cmd.BillingAddress(),
	)
	if err != nil {
		return nil, err
	}

	if err = h.reserveAndAttachItems(ctx, productRepo, newOrder, cmd.Items()); err != nil {
		return nil, err
	}

	newOrder.RecomputeTotal()

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// generateOrderNumber returns a number no existing order uses.
func (h CreateOrderCommandHandler) generateOrderNumber(
	ctx context.Context,
	orderRepo ports.OrderRepository,
) (string, error) {
	for range maxOrderNumberAttempts {
		candidate := h.numberGenerator.Generate()

		exists, err := orderRepo.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", ErrOrderNumberExhausted
}

// reserveAndAttachItems reserves stock for each requested item in request
// order and attaches the corresponding snapshots to the order. On failure it
// compensates every reservation already taken for this request, in reverse
// order, so a partially satisfiable basket never leaves stock decremented.
//
// Reservations keep the caller's item order, so two concurrent baskets that
// touch the same products in opposite order can deadlock in the store; the
// database resolves that by aborting one transaction, which surfaces as a
// retryable storage error.
func (h CreateOrderCommandHandler) reserveAndAttachItems(
	ctx context.Context,
	productRepo ports.ProductRepository,
	newOrder *order.Order,
	requests []ItemRequest,
) error {
	reserved := make([]ItemRequest, 0, len(requests))

	rollback := func() {
		for i := len(reserved) - 1; i >= 0; i-- {
			// Best effort: the transaction rollback covers transactional
			// stores; the explicit restore covers stores without one.
			_ = productRepo.AdjustStock(ctx, reserved[i].ProductID(), reserved[i].Quantity())
		}
	}

	for _, request := range requests {
		p, err := productRepo.Get(ctx, request.ProductID())
		if err != nil {
			rollback()
			return err
		}
		if !p.IsActive() {
			rollback()
			return errs.NewObjectNotFoundErrorWithCause(
				"product", request.ProductID().String(),
				fmt.Errorf("product %s is inactive", p.Name()),
			)
		}

		if err = productRepo.AdjustStock(ctx, request.ProductID(), -request.Quantity()); err != nil {
			rollback()
			return err
		}
		reserved = append(reserved, request)

		item, err := order.NewItem(p.ID(), p.Name(), request.Quantity(), p.Price())
		if err != nil {
			rollback()
			return err
		}
		if err = newOrder.AddItem(item); err != nil {
			rollback()
			return err
		}
	}

	return nil
}
