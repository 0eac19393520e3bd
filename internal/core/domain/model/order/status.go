package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidStateTransition is the unwrap target for every rejected lifecycle
// transition. Callers classify transition failures with errors.Is; the wrapped
// message names the current status and the attempted operation.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal; no transition leaves them.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Stock has been reserved but the order is not yet confirmed.
	Pending

	// Confirmed indicates the order has been accepted for fulfillment.
	Confirmed

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a terminal success state with no further transitions.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal failure state with no further transitions.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer
// and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// PriorStatuses returns the statuses from which s is reachable in one
// transition. Storage adapters use this set to guard status writes: a
// persisted status outside the set means another writer transitioned the
// order first. Pending and Unknown have no predecessors and return nil.
func (s Status) PriorStatuses() []Status {
	switch s {
	case Confirmed:
		return []Status{Pending}
	case Shipped:
		return []Status{Confirmed}
	case Delivered:
		return []Status{Shipped}
	case Cancelled:
		return []Status{Pending, Confirmed, Shipped}
	case Unknown, Pending:
		return nil
	default:
		return nil
	}
}

// invalidTransition builds the rejection error for an operation attempted
// outside its row in the transition table.
func (s Status) invalidTransition(operation string) error {
	return fmt.Errorf("%w: cannot %s order in status %s", ErrInvalidStateTransition, operation, s)
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Returns (Confirmed, nil) on a valid transition, or (0, error) wrapping
// ErrInvalidStateTransition otherwise.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, s.invalidTransition("confirm")
	}
	return Confirmed, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Confirmed -> Shipped
//
// Returns (Shipped, nil) on a valid transition, or (0, error) wrapping
// ErrInvalidStateTransition otherwise.
func (s Status) Ship() (Status, error) {
	if s != Confirmed {
		return 0, s.invalidTransition("ship")
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
//
// Delivered is terminal: no operation leaves it. Returns (Delivered, nil)
// on a valid transition, or (0, error) wrapping ErrInvalidStateTransition.
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, s.invalidTransition("deliver")
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//   - Shipped -> Cancelled
//
// Delivered orders cannot be cancelled, and cancelling twice is rejected:
// Cancelled is terminal. Returns (Cancelled, nil) on a valid transition,
// or (0, error) wrapping ErrInvalidStateTransition.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Confirmed && s != Shipped {
		return 0, s.invalidTransition("cancel")
	}
	return Cancelled, nil
}
