// Package product provides the Product aggregate for the fulfillment system.
//
// The package includes:
//   - Product: A catalog item carrying the authoritative stock counter
//
// Key business rules:
//   - Stock never goes negative; TryReserve checks and decrements as one step
//   - Restore compensates a reservation when an order is cancelled before delivery
//   - Inactive products keep their data but cannot be ordered
//
// Order items reference products weakly: they snapshot name and price at order
// time and tolerate the product being renamed, repriced, or deactivated later.
package product
