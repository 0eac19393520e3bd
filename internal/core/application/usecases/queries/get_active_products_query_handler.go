package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveProductsQueryHandler retrieves catalog products from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetActiveProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveProductsQueryHandler creates a handler for catalog queries.
// Requires a GORM database connection for query execution.
func NewGetActiveProductsQueryHandler(db *gorm.DB) GetActiveProductsQueryHandler {
	return GetActiveProductsQueryHandler{db: db}
}

// Handle executes the catalog query. Only active products are returned,
// sorted by name, with at most one filter applied per the query's precedence.
func (h GetActiveProductsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveProductsQuery,
) ([]GetActiveProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "active"
	args := make([]any, 0, 2)

	switch {
	case query.Category() != "":
		where += " AND category = ?"
		args = append(args, query.Category())
	case query.Search() != "":
		where += " AND (name ILIKE ? OR description ILIKE ?)"
		pattern := "%" + query.Search() + "%"
		args = append(args, pattern, pattern)
	case query.MinPrice() != nil || query.MaxPrice() != nil:
		if query.MinPrice() != nil {
			where += " AND price >= ?"
			args = append(args, *query.MinPrice())
		}
		if query.MaxPrice() != nil {
			where += " AND price <= ?"
			args = append(args, *query.MaxPrice())
		}
	case query.InStockOnly():
		where += " AND stock_quantity > 0"
	}

	products := make([]GetActiveProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			price,
			stock_quantity,
			category
		FROM products
		WHERE `+where+`
		ORDER BY name
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productResp GetActiveProductsQueryResponse
		var id uuid.UUID
		var price decimal.Decimal

		err = rows.Scan(
			&id,
			&productResp.Name,
			&productResp.Description,
			&price,
			&productResp.StockQuantity,
			&productResp.Category,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		productResp.ID = productID

		money, priceErr := kernel.MoneyFromDecimal(price)
		if priceErr != nil {
			return nil, priceErr
		}
		productResp.Price = money

		products = append(products, productResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
