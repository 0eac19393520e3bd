// Package http exposes the fulfillment use cases over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the fulfillment API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	confirmOrderHandler  commands.ConfirmOrderCommandHandler
	shipOrderHandler     commands.ShipOrderCommandHandler
	deliverOrderHandler  commands.DeliverOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	createProductHandler commands.CreateProductCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getActiveProductsHandler  queries.GetActiveProductsQueryHandler
	getOrderStatisticsHandler queries.GetOrderStatisticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveProductsHandler queries.GetActiveProductsQueryHandler,
	getOrderStatisticsHandler queries.GetOrderStatisticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		confirmOrderHandler:       confirmOrderHandler,
		shipOrderHandler:          shipOrderHandler,
		deliverOrderHandler:       deliverOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		createProductHandler:      createProductHandler,
		getOrderHandler:           getOrderHandler,
		getActiveProductsHandler:  getActiveProductsHandler,
		getOrderStatisticsHandler: getOrderStatisticsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.GetProducts)
	api.GET("/analytics/orders", s.GetOrderStatistics)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one requested line in an order creation request.
type NewOrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	CustomerID      uuid.UUID      `json:"customerId"`
	ShippingAddress string         `json:"shippingAddress"`
	BillingAddress  string         `json:"billingAddress"`
	Items           []NewOrderItem `json:"items"`
}

// OrderItem is one order line in API responses. Name and price are the
// snapshots taken when the order was placed.
type OrderItem struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
	Subtotal    string    `json:"subtotal"`
}

// Order is the order representation in API responses.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CustomerID      uuid.UUID   `json:"customerId"`
	ShippingAddress string      `json:"shippingAddress"`
	BillingAddress  string      `json:"billingAddress"`
	Status          string      `json:"status"`
	TotalAmount     string      `json:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Items           []OrderItem `json:"items"`
}

// NewProduct is the product creation request body.
type NewProduct struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Category      string `json:"category"`
}

// Product is the product representation in API responses.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Category      string    `json:"category"`
}

// OrderStatistics is the per-status order count response.
type OrderStatistics struct {
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	ConfirmedOrders int `json:"confirmedOrders"`
	ShippedOrders   int `json:"shippedOrders"`
	DeliveredOrders int `json:"deliveredOrders"`
	CancelledOrders int `json:"cancelledOrders"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromBytes(newOrder.CustomerID[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	items := make([]commands.ItemRequest, 0, len(newOrder.Items))
	for _, requested := range newOrder.Items {
		productID, idErr := kernel.UUIDFromBytes(requested.ProductID[:])
		if idErr != nil {
			return errorResponse(ctx, idErr)
		}
		item, itemErr := commands.NewItemRequest(productID, requested.Quantity)
		if itemErr != nil {
			return errorResponse(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		customerID, newOrder.ShippingAddress, newOrder.BillingAddress, items)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(result))
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, func(orderID kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewConfirmOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, func(orderID kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewShipOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, func(orderID kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewDeliverOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the order and
// returns its reserved stock to the catalog.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, func(orderID kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CreateProduct handles POST /api/v1/products - registers a catalog product.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var newProduct NewProduct
	if err := ctx.Bind(&newProduct); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateProductCommand(
		newProduct.Name,
		newProduct.Description,
		newProduct.Price,
		newProduct.StockQuantity,
		newProduct.Category,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, productFromAggregate(created))
}

// GetProducts handles GET /api/v1/products - retrieves the active catalog.
// Supports category, search, minPrice, maxPrice and inStock query parameters.
func (s *Server) GetProducts(ctx echo.Context) error {
	query, err := queries.NewGetActiveProductsQuery(
		ctx.QueryParam("category"),
		ctx.QueryParam("search"),
		ctx.QueryParam("minPrice"),
		ctx.QueryParam("maxPrice"),
		ctx.QueryParam("inStock") == "true",
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	products, err := s.getActiveProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Product, len(products))
	for i, p := range products {
		response[i] = Product{
			ID:            p.ID.Bytes(),
			Name:          p.Name,
			Description:   p.Description,
			Price:         p.Price.String(),
			StockQuantity: p.StockQuantity,
			Category:      p.Category,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStatistics handles GET /api/v1/analytics/orders.
func (s *Server) GetOrderStatistics(ctx echo.Context) error {
	query := queries.NewGetOrderStatisticsQuery()

	stats, err := s.getOrderStatisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatistics{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		ConfirmedOrders: stats.ConfirmedOrders,
		ShippedOrders:   stats.ShippedOrders,
		DeliveredOrders: stats.DeliveredOrders,
		CancelledOrders: stats.CancelledOrders,
	})
}

// transitionOrder parses the path parameter, runs the given lifecycle
// transition and renders the updated order.
func (s *Server) transitionOrder(
	ctx echo.Context,
	transition func(orderID kernel.UUID) (*order.Order, error),
) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := transition(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// errorResponse maps application errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidStateTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrItemsAreRequired):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func orderFromAggregate(aggregate *order.Order) Order {
	items := make([]OrderItem, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items[i] = OrderItem{
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			Subtotal:    item.Subtotal().String(),
		}
	}

	return Order{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		ShippingAddress: aggregate.ShippingAddress().String(),
		BillingAddress:  aggregate.BillingAddress().String(),
		Status:          aggregate.Status().String(),
		TotalAmount:     aggregate.TotalAmount().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Items:           items,
	}
}

func orderFromReadModel(model queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = OrderItem{
			ProductID:   item.ProductID.Bytes(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Subtotal:    item.Subtotal.String(),
		}
	}

	return Order{
		ID:              model.ID.Bytes(),
		OrderNumber:     model.OrderNumber,
		CustomerID:      model.CustomerID.Bytes(),
		ShippingAddress: model.ShippingAddress,
		BillingAddress:  model.BillingAddress,
		Status:          model.Status.String(),
		TotalAmount:     model.TotalAmount.String(),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
		Items:           items,
	}
}

func productFromAggregate(aggregate *product.Product) Product {
	return Product{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Description:   aggregate.Description(),
		Price:         aggregate.Price().String(),
		StockQuantity: aggregate.StockQuantity(),
		Category:      aggregate.Category(),
	}
}
