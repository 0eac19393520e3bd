package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_MapsOrderAndItems() {
	testOrder := suite.seedOrder("ORD-200-0001", "Widget", "Gadget")

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), result.ID)
	suite.Equal("ORD-200-0001", result.OrderNumber)
	suite.Equal(testOrder.CustomerID(), result.CustomerID)
	suite.Equal("1 Shipping Lane", result.ShippingAddress)
	suite.Equal("2 Billing Road", result.BillingAddress)
	suite.Equal(order.Pending, result.Status)
	suite.True(result.TotalAmount.IsEqual(testOrder.TotalAmount()))

	// Items keep their insertion order and price snapshots.
	suite.Require().Len(result.Items, 2)
	suite.Equal("Widget", result.Items[0].ProductName)
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal("10.00", result.Items[0].UnitPrice.String())
	suite.Equal("20.00", result.Items[0].Subtotal.String())
	suite.Equal("Gadget", result.Items[1].ProductName)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReflectsStatusChanges() {
	testOrder := suite.seedOrder("ORD-200-0002", "Widget")
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, result.Status)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

// seedOrder persists a pending order with one two-unit item per product name.
func (suite *GetOrderQueryHandlerTestSuite) seedOrder(
	orderNumber string, productNames ...string,
) *order.Order {
	shipping, err := kernel.NewAddress("1 Shipping Lane")
	suite.Require().NoError(err)
	billing, err := kernel.NewAddress("2 Billing Road")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, kernel.NewUUID(), shipping, billing)
	suite.Require().NoError(err)

	price, err := kernel.MoneyFromString("10.00")
	suite.Require().NoError(err)

	for _, name := range productNames {
		item, itemErr := order.NewItem(kernel.NewUUID(), name, 2, price)
		suite.Require().NoError(itemErr)
		suite.Require().NoError(testOrder.AddItem(item))
	}
	testOrder.RecomputeTotal()

	err = suite.orderRepo.Add(context.Background(), testOrder)
	suite.Require().NoError(err)

	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
