package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// maxAddressLength bounds a single address line, matching the column width
// used by the persistence layer.
const maxAddressLength = 500

// ErrAddressIsNotConstructed indicates that an Address was not created through
// the NewAddress constructor. Returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress")

// Address is a value object holding a single free-form address line used for
// shipping and billing destinations. The line must be non-blank after trimming
// and is stored trimmed.
//
// Address is immutable and safe for concurrent use.
type Address struct {
	line string

	guard ConstructorGuard
}

// NewAddress creates an Address from a free-form line.
// The line is trimmed; a blank result or a line longer than 500 characters
// fails validation.
func NewAddress(line string) (Address, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if len(trimmed) > maxAddressLength {
		return Address{}, errs.NewValueIsInvalidErrorWithCause(
			"address is invalid",
			fmt.Errorf("length %d exceeds %d characters", len(trimmed), maxAddressLength),
		)
	}

	return Address{line: trimmed, guard: NewConstructorGuard()}, nil
}

// String returns the address line.
func (a Address) String() string {
	return a.line
}

// IsEqual compares two addresses by their lines.
func (a Address) IsEqual(other Address) bool {
	return a.line == other.line
}

// Validate checks that the Address was properly constructed.
// Returns ErrAddressIsNotConstructed for a zero-value Address.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
