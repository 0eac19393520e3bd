package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrderInStatus(t, order.Shipped, map[kernel.UUID]int{kernel.NewUUID(): 1})
	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockStatusOrderRepository)
	uow := new(MockStatusUoW)
	expectStatusTransition(ctx, orderRepo, uow, testOrder)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	delivered, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, delivered.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DeliverOrderCommand{} // not constructed properly

	factory := new(MockStatusUoWFactory)
	handler := commands.NewDeliverOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDeliverOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestDeliverOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	testCases := []struct {
		name   string
		status order.Status
	}{
		{name: "still pending", status: order.Pending},
		{name: "only confirmed", status: order.Confirmed},
		{name: "already delivered", status: order.Delivered},
		{name: "cancelled", status: order.Cancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testOrder := testOrderInStatus(t, tc.status, map[kernel.UUID]int{kernel.NewUUID(): 1})
			cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
			require.NoError(t, err)

			orderRepo := new(MockStatusOrderRepository)
			uow := new(MockStatusUoW)

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockStatusUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewDeliverOrderCommandHandler(factory)
			_, err = handler.Handle(ctx, cmd)

			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrInvalidStateTransition)
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}
