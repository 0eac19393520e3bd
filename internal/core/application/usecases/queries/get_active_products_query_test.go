package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveProductsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetActiveProductsQuery("", "", "", "", false)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Empty(t, query.Category())
	assert.Empty(t, query.Search())
	assert.Nil(t, query.MinPrice())
	assert.Nil(t, query.MaxPrice())
	assert.False(t, query.InStockOnly())
}

func TestNewGetActiveProductsQuery_WithPriceRange(t *testing.T) {
	query, err := queries.NewGetActiveProductsQuery("", "", "5.00", "20.00", false)
	require.NoError(t, err)

	require.NotNil(t, query.MinPrice())
	require.NotNil(t, query.MaxPrice())
	assert.Equal(t, "5", query.MinPrice().String())
	assert.Equal(t, "20", query.MaxPrice().String())
}

func TestNewGetActiveProductsQuery_InvalidPrices(t *testing.T) {
	tests := []struct {
		name     string
		minPrice string
		maxPrice string
	}{
		{"unparseable min price", "abc", ""},
		{"unparseable max price", "", "12,50"},
		{"min above max", "30.00", "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetActiveProductsQuery("", "", tt.minPrice, tt.maxPrice, false)
			require.Error(t, err)
		})
	}
}

func TestNewGetActiveProductsQuery_MinAboveMaxIsOutOfRange(t *testing.T) {
	_, err := queries.NewGetActiveProductsQuery("", "", "30.00", "20.00", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestGetActiveProductsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveProductsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveProductsQueryIsNotConstructed)
}
