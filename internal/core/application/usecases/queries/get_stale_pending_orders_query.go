package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStalePendingOrdersQueryIsNotConstructed = errors.New(
	"GetStalePendingOrdersQuery must be created via NewGetStalePendingOrdersQuery constructor",
)

// GetStalePendingOrdersQuery finds orders stuck in Pending since before the
// cutoff. The reaper job feeds the result into order cancellation so the
// reserved stock flows back into the catalog.
type GetStalePendingOrdersQuery struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStalePendingOrdersQuery creates a query for pending orders whose last
// update precedes cutoff.
func NewGetStalePendingOrdersQuery(cutoff time.Time) (GetStalePendingOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStalePendingOrdersQuery{}, errs.NewValueIsRequiredError("cutoff")
	}
	return GetStalePendingOrdersQuery{cutoff: cutoff, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalePendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingOrdersQueryIsNotConstructed)
}

// Cutoff returns the staleness threshold.
func (q GetStalePendingOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStalePendingOrdersQueryResponse identifies one stale pending order.
type GetStalePendingOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	UpdatedAt   time.Time
}
