package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatisticsQueryHandler aggregates order counts per status directly
// in the database.
type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatisticsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

// Handle executes the aggregation and returns counts per lifecycle status.
// Statuses with no orders report zero.
func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}
	defer rows.Close()

	var stats GetOrderStatisticsQueryResponse
	for rows.Next() {
		var status, count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderStatisticsQueryResponse{}, err
		}

		stats.TotalOrders += count
		switch order.Status(status) {
		case order.Pending:
			stats.PendingOrders = count
		case order.Confirmed:
			stats.ConfirmedOrders = count
		case order.Shipped:
			stats.ShippedOrders = count
		case order.Delivered:
			stats.DeliveredOrders = count
		case order.Cancelled:
			stats.CancelledOrders = count
		case order.Unknown:
			// Unreachable for rows written through the domain model.
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	return stats, nil
}
