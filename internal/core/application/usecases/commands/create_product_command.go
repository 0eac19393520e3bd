package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a request to add a product to the catalog.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	name          string
	description   string
	price         kernel.Money
	stockQuantity int
	category      string

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a new catalog product.
// The price is parsed from its decimal string representation.
func NewCreateProductCommand(
	name string,
	description string,
	price string,
	stockQuantity int,
	category string,
) (CreateProductCommand, error) {
	productCommand := CreateProductCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productCommand.setName(name),
		productCommand.setPrice(price),
		productCommand.setStockQuantity(stockQuantity),
		productCommand.setCategory(category),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return productCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// Name returns the product display name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Description returns the catalog text, possibly empty.
func (c CreateProductCommand) Description() string {
	return c.description
}

// Price returns the unit price.
func (c CreateProductCommand) Price() kernel.Money {
	return c.price
}

// StockQuantity returns the initial stock.
func (c CreateProductCommand) StockQuantity() int {
	return c.stockQuantity
}

// Category returns the catalog category.
func (c CreateProductCommand) Category() string {
	return c.category
}

func (c *CreateProductCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price string) error {
	money, err := kernel.MoneyFromString(price)
	if err != nil {
		return err
	}
	c.price = money
	return nil
}

func (c *CreateProductCommand) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock quantity is invalid",
			fmt.Errorf("%d is negative", stockQuantity),
		)
	}
	c.stockQuantity = stockQuantity
	return nil
}

func (c *CreateProductCommand) setCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValueIsRequiredError("category")
	}
	c.category = category
	return nil
}
