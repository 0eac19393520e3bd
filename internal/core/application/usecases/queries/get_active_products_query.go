// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveProductsQueryIsNotConstructed = errors.New(
	"GetActiveProductsQuery must be created via NewGetActiveProductsQuery constructor",
)

// GetActiveProductsQuery retrieves the active product catalog, optionally
// narrowed by one filter. Filters are mutually exclusive by precedence:
// category, then name search, then price range, then in-stock only. Passing
// several still yields one filter, the highest-precedence one.
//
// Example:
//
//	query, err := NewGetActiveProductsQuery("tools", "", "", "", false)
//	handler := NewGetActiveProductsQueryHandler(db)
//
//	products, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve products: %w", err)
//	}
type GetActiveProductsQuery struct { //nolint:recvcheck //using for validation
	category    string
	search      string
	minPrice    *decimal.Decimal
	maxPrice    *decimal.Decimal
	inStockOnly bool

	guard guard.ConstructorGuard
}

// NewGetActiveProductsQuery creates a catalog query. Empty strings mean the
// corresponding filter is unset. Prices are decimal strings; when both bounds
// are set, minPrice must not exceed maxPrice.
func NewGetActiveProductsQuery(
	category string,
	search string,
	minPrice string,
	maxPrice string,
	inStockOnly bool,
) (GetActiveProductsQuery, error) {
	query := GetActiveProductsQuery{
		category:    category,
		search:      search,
		inStockOnly: inStockOnly,
		guard:       guard.NewConstructorGuard(),
	}

	if minPrice != "" {
		parsed, err := decimal.NewFromString(minPrice)
		if err != nil {
			return GetActiveProductsQuery{}, errs.NewValueIsInvalidErrorWithCause("minPrice is invalid", err)
		}
		query.minPrice = &parsed
	}
	if maxPrice != "" {
		parsed, err := decimal.NewFromString(maxPrice)
		if err != nil {
			return GetActiveProductsQuery{}, errs.NewValueIsInvalidErrorWithCause("maxPrice is invalid", err)
		}
		query.maxPrice = &parsed
	}
	if query.minPrice != nil && query.maxPrice != nil && query.minPrice.GreaterThan(*query.maxPrice) {
		return GetActiveProductsQuery{}, errs.NewValueIsOutOfRangeError(
			"minPrice", minPrice, "0", maxPrice)
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveProductsQueryIsNotConstructed)
}

// Category returns the category filter, empty when unset.
func (q GetActiveProductsQuery) Category() string { return q.category }

// Search returns the name search term, empty when unset.
func (q GetActiveProductsQuery) Search() string { return q.search }

// MinPrice returns the lower price bound, nil when unset.
func (q GetActiveProductsQuery) MinPrice() *decimal.Decimal { return q.minPrice }

// MaxPrice returns the upper price bound, nil when unset.
func (q GetActiveProductsQuery) MaxPrice() *decimal.Decimal { return q.maxPrice }

// InStockOnly reports whether only products with stock should be returned.
func (q GetActiveProductsQuery) InStockOnly() bool { return q.inStockOnly }

// GetActiveProductsQueryResponse represents catalog product information.
type GetActiveProductsQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Description   string
	Price         kernel.Money
	StockQuantity int
	Category      string
}
