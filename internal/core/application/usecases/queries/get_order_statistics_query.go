package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
)

// GetOrderStatisticsQuery retrieves order counts broken down by lifecycle
// status, for dashboards and monitoring.
type GetOrderStatisticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatisticsQuery creates a query for order statistics.
// This is a parameterless query covering all orders.
func NewGetOrderStatisticsQuery() GetOrderStatisticsQuery {
	return GetOrderStatisticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// GetOrderStatisticsQueryResponse represents order counts per status.
type GetOrderStatisticsQueryResponse struct {
	TotalOrders     int
	PendingOrders   int
	ConfirmedOrders int
	ShippedOrders   int
	DeliveredOrders int
	CancelledOrders int
}
