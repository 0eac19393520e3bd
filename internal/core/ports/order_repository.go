// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing and retrieving orders together with their
// line items as one atomic unit.
type OrderRepository interface {
	// Add persists a new order aggregate, including all of its items,
	// as a single write. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Items are immutable after creation; only the order row
	// (status, total, timestamps) changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// with items in their original insertion order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsByNumber reports whether an order with the given order number
	// already exists. Used by order number generation to avoid collisions.
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
}
