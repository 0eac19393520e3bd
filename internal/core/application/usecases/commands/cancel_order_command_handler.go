package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order and compensates its stock
// reservations.
//
// The lifecycle guard runs first: a Delivered order cannot be cancelled, and
// a second cancel of the same order fails cleanly without restoring stock
// twice. Stock restore is best effort per item — a product deleted since
// order time no longer has a counter to restore and is skipped.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory)
//	cmd, _ := NewCancelOrderCommand(orderID)
//	cancelled, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidStateTransition) {
//	    // the order was already delivered or cancelled
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires a UoWFactory covering both order and product repositories.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command and returns the cancelled order.
// Restores item quantities to the corresponding product stock counters before
// persisting the Cancelled status, all within one unit of work.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	for _, item := range aggregate.Items() {
		restoreErr := productRepo.AdjustStock(ctx, item.ProductID(), item.Quantity())
		if restoreErr != nil && !errors.Is(restoreErr, errs.ErrObjectNotFound) {
			return nil, restoreErr
		}
		// A missing product was deleted after the order was placed; the
		// counter it would have restored no longer exists.
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
