// Package services provides domain services for the fulfillment system that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderNumberGenerator: produces candidate order numbers; uniqueness is
//     enforced by the create-order workflow against stored orders
package services
