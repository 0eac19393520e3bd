// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management, line-item snapshots, and derived totals.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, total, and lifecycle
//   - Item: An immutable line-item snapshot owned exclusively by its parent order
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a unique identifier, an order number, a customer, and addresses
//   - Order status follows a defined workflow: Pending -> Confirmed -> Shipped -> Delivered
//   - Orders can be cancelled from any non-terminal status; Delivered orders cannot
//   - The order total always equals the sum of item subtotals
//   - Item snapshots capture product name and unit price at order time
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
