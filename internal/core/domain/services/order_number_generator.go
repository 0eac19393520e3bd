package services

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// OrderNumberGenerator produces candidate order numbers for new orders.
//
// Numbers combine a millisecond timestamp with a random suffix, so collisions
// are rare but not impossible; the create-order handler checks each candidate
// against existing orders and asks for another on a collision. Once assigned,
// a number is never reused: cancelled orders keep theirs forever.
//
// Example:
//
//	generator := services.NewOrderNumberGenerator()
//	number := generator.Generate() // e.g. "ORD-1756450800123-4821"
type OrderNumberGenerator struct{}

// NewOrderNumberGenerator creates an order number generator.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Generate returns a candidate order number.
// Uniqueness is probabilistic; callers must verify against stored orders.
func (OrderNumberGenerator) Generate() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
