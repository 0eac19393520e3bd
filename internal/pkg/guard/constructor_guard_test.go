package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("command not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("query not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be used
// in a command to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	// Define a sample command that uses ConstructorGuard
	type ShipOrderCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	var errShipOrderCommandNotConstructed = errors.New("ShipOrderCommand must be created via NewShipOrderCommand")

	newShipOrderCommand := func(orderID string) (ShipOrderCommand, error) {
		if orderID == "" {
			return ShipOrderCommand{}, errors.New("order ID is required")
		}
		return ShipOrderCommand{
			orderID: orderID,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	validateShipOrderCommand := func(c ShipOrderCommand) error {
		return c.guard.Validate(errShipOrderCommandNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		cmd, err := newShipOrderCommand("9b2f8c3e-5a17-4d68-9c0d-2e4f6a8b0c1d")

		// Then
		require.NoError(t, err)
		require.NoError(t, validateShipOrderCommand(cmd))
		assert.Equal(t, "9b2f8c3e-5a17-4d68-9c0d-2e4f6a8b0c1d", cmd.orderID)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var cmd ShipOrderCommand // zero value

		// When
		err := validateShipOrderCommand(cmd)

		// Then
		// Zero value command has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errShipOrderCommandNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		// Test missing order ID
		_, err := newShipOrderCommand("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order ID is required")
	})
}

// TestConstructorGuardRealWorldExample shows a better pattern using embedded types.
func TestConstructorGuardRealWorldExample(t *testing.T) {
	// Define error once
	var errQueryNotConstructed = errors.New("StaleOrdersQuery must be created via NewStaleOrdersQuery")

	// Define a guard-aware base type
	type guardedQuery struct {
		guard guard.ConstructorGuard
	}

	newGuardedQuery := func() guardedQuery {
		return guardedQuery{
			guard: guard.NewConstructorGuard(),
		}
	}

	validateGuardedQuery := func(g guardedQuery) error {
		return g.guard.Validate(errQueryNotConstructed)
	}

	// Define the actual query
	type StaleOrdersQuery struct {
		guardedQuery
		olderThanHours int
		limit          int
	}

	newStaleOrdersQuery := func(olderThanHours, limit int) (StaleOrdersQuery, error) {
		if olderThanHours <= 0 {
			return StaleOrdersQuery{}, errors.New("age threshold must be positive")
		}
		if limit <= 0 {
			return StaleOrdersQuery{}, errors.New("limit must be positive")
		}
		return StaleOrdersQuery{
			guardedQuery:   newGuardedQuery(),
			olderThanHours: olderThanHours,
			limit:          limit,
		}, nil
	}

	t.Run("valid_query_construction", func(t *testing.T) {
		// When
		query, err := newStaleOrdersQuery(24, 100)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateGuardedQuery(query.guardedQuery))
		assert.Equal(t, 24, query.olderThanHours)
		assert.Equal(t, 100, query.limit)
	})

	t.Run("zero_value_query_fails_validation", func(t *testing.T) {
		// Given
		var query StaleOrdersQuery // zero value

		// When
		err := validateGuardedQuery(query.guardedQuery)

		// Then
		// Zero value has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errQueryNotConstructed, err)
	})
}

// TestConstructorGuardWithMultipleErrors demonstrates using ConstructorGuard
// with different error types and messages.
func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "create_order_command_not_constructed_error",
			expectedError: errors.New("CreateOrderCommand must be created via NewCreateOrderCommand"),
		},
		{
			name:          "cancel_order_command_not_constructed_error",
			expectedError: errors.New("CancelOrderCommand must be created via NewCancelOrderCommand factory method"),
		},
		{
			name:          "get_order_query_not_constructed_error",
			expectedError: errors.New("GetOrderQuery requires proper initialization through constructor"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			guard := guard.NewConstructorGuard()

			// When
			err := guard.Validate(tc.expectedError)

			// Then
			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("nil_error_uses_default_for_zero_value", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		// Then
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// BenchmarkConstructorGuard measures the performance overhead of using ConstructorGuard.
func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("NewConstructorGuard", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			_ = guard.NewConstructorGuard()
		}
	})

	b.Run("Validate_Success", func(b *testing.B) {
		guard := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var guard guard.ConstructorGuard
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	guard := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	// Run multiple goroutines that validate the guard concurrently
	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := guard.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for range 100 {
		<-done
	}
}

// TestConstructorGuardImmutability verifies that ConstructorGuard is immutable.
func TestConstructorGuardImmutability(t *testing.T) {
	t.Run("guard_fields_are_not_modifiable", func(t *testing.T) {
		// Given
		originalError := errors.New("original error")
		g := guard.NewConstructorGuard()

		// When
		// Try to create another guard
		anotherError := errors.New("another error")
		_ = guard.NewConstructorGuard()

		// Then
		// Original guard should still validate successfully
		require.NoError(t, g.Validate(originalError))
		require.NoError(t, g.Validate(anotherError))
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		testError := errors.New("test error")

		// When
		guardCopy := guard // Pass by value

		// Then
		require.NoError(t, guard.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}
