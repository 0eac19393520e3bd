package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRequest_ValidInput(t *testing.T) {
	// Arrange
	productID := kernel.NewUUID()

	// Act
	request, err := commands.NewItemRequest(productID, 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, productID, request.ProductID())
	assert.Equal(t, 3, request.Quantity())
}

func TestNewItemRequest_InvalidQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
	}{
		{name: "zero quantity", quantity: 0},
		{name: "negative quantity", quantity: -1},
		{name: "very negative quantity", quantity: -100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewItemRequest(kernel.NewUUID(), tc.quantity)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestNewItemRequest_ZeroProductID(t *testing.T) {
	_, err := commands.NewItemRequest(kernel.UUID{}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	// Arrange
	customerID := kernel.NewUUID()
	item, err := commands.NewItemRequest(kernel.NewUUID(), 2)
	require.NoError(t, err)

	// Act
	cmd, err := commands.NewCreateOrderCommand(
		customerID,
		"1 Shipping Lane",
		"2 Billing Road",
		[]commands.ItemRequest{item},
	)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, "1 Shipping Lane", cmd.ShippingAddress().String())
	assert.Equal(t, "2 Billing Road", cmd.BillingAddress().String())
	assert.Len(t, cmd.Items(), 1)
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_ZeroCustomerID(t *testing.T) {
	item, err := commands.NewItemRequest(kernel.NewUUID(), 1)
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommand(
		kernel.UUID{},
		"1 Shipping Lane",
		"2 Billing Road",
		[]commands.ItemRequest{item},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_BlankAddress(t *testing.T) {
	testCases := []struct {
		name     string
		shipping string
		billing  string
	}{
		{name: "blank shipping", shipping: "   ", billing: "2 Billing Road"},
		{name: "blank billing", shipping: "1 Shipping Lane", billing: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := commands.NewItemRequest(kernel.NewUUID(), 1)
			require.NoError(t, err)

			_, err = commands.NewCreateOrderCommand(
				kernel.NewUUID(), tc.shipping, tc.billing, []commands.ItemRequest{item})

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		})
	}
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "1 Shipping Lane", "2 Billing Road", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_ItemsAreCopied(t *testing.T) {
	// Mutating the returned slice must not affect the command.
	item, err := commands.NewItemRequest(kernel.NewUUID(), 1)
	require.NoError(t, err)
	other, err := commands.NewItemRequest(kernel.NewUUID(), 2)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "1 Shipping Lane", "2 Billing Road", []commands.ItemRequest{item})
	require.NoError(t, err)

	items := cmd.Items()
	items[0] = other

	assert.Equal(t, item, cmd.Items()[0])
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
