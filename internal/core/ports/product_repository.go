package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates,
// including the atomic stock primitive that backs reservation and restore.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	// The product must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	// Stock is excluded: it is mutated only through AdjustStock.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// AdjustStock atomically applies a signed delta to the product's stock
	// counter. The check and the write are a single step with respect to all
	// concurrent callers: a decrement that would drive the counter negative
	// is rejected as a whole with product.ErrInsufficientStock and performs
	// no mutation. A missing product yields errs.ErrObjectNotFound.
	//
	// A negative delta implements reservation; a positive delta implements
	// the compensating restore. A zero delta is rejected as invalid.
	AdjustStock(ctx context.Context, id kernel.UUID, delta int) error
}
