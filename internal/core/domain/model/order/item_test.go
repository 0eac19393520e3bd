package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	validProductID := kernel.NewUUID()
	validPrice, _ := kernel.MoneyFromString("10.00")

	t.Run("should create item and derive subtotal", func(t *testing.T) {
		item, err := order.NewItem(validProductID, "Widget", 2, validPrice)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(validProductID))
		assert.Equal(t, "Widget", item.ProductName())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "20.00", item.Subtotal().String())
	})

	t.Run("should fail with invalid product ID", func(t *testing.T) {
		var invalidID kernel.UUID

		item, err := order.NewItem(invalidID, "Widget", 1, validPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with blank product name", func(t *testing.T) {
		item, err := order.NewItem(validProductID, "   ", 1, validPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "product name")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		item, err := order.NewItem(validProductID, "Widget", 0, validPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		item, err := order.NewItem(validProductID, "Widget", -3, validPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "-3 is not at least 1")
	})

	t.Run("should fail with unconstructed unit price", func(t *testing.T) {
		var invalidPrice kernel.Money

		item, err := order.NewItem(validProductID, "Widget", 1, invalidPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "Money must be created")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var invalidPrice kernel.Money

		item, err := order.NewItem(invalidID, "", 0, invalidPrice)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "product name")
		assert.Contains(t, err.Error(), "quantity is invalid")
		assert.Contains(t, err.Error(), "Money must be created")
	})
}

func TestItem_SubtotalRecomputation(t *testing.T) {
	productID := kernel.NewUUID()
	price, _ := kernel.MoneyFromString("5.00")

	t.Run("changing quantity recomputes subtotal", func(t *testing.T) {
		item, err := order.NewItem(productID, "Widget", 1, price)
		require.NoError(t, err)

		require.NoError(t, item.SetQuantity(4))

		assert.Equal(t, 4, item.Quantity())
		assert.Equal(t, "20.00", item.Subtotal().String())
	})

	t.Run("changing unit price recomputes subtotal", func(t *testing.T) {
		item, err := order.NewItem(productID, "Widget", 3, price)
		require.NoError(t, err)

		newPrice, _ := kernel.MoneyFromString("7.50")
		require.NoError(t, item.SetUnitPrice(newPrice))

		assert.Equal(t, "22.50", item.Subtotal().String())
	})

	t.Run("quantity below one is rejected without mutation", func(t *testing.T) {
		item, err := order.NewItem(productID, "Widget", 2, price)
		require.NoError(t, err)

		require.Error(t, item.SetQuantity(0))

		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "10.00", item.Subtotal().String())
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("nil item fails validation", func(t *testing.T) {
		var item *order.Item

		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})

	t.Run("zero value item fails validation", func(t *testing.T) {
		item := &order.Item{}

		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}
