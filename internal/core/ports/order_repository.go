// Package ports defines repository and messaging interfaces for the counter
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status lifecycle.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, but only if the
	// stored row is still in the expected status. When another writer moved
	// the order first, the update affects no rows and a
	// ConcurrencyConflictError is returned so the caller can re-read and
	// re-evaluate the transition.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no order exists with the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves orders currently in the given status, newest
	// first. A limit of zero means no limit.
	GetAllInStatus(ctx context.Context, status order.Status, limit int) ([]*order.Order, error)

	// GetAll retrieves all orders, newest first. A limit of zero means no limit.
	GetAll(ctx context.Context, limit int) ([]*order.Order, error)

	// GetStalePendingWithFailedPayment retrieves pending orders whose payment
	// is failed and whose creation time is older than the cutoff. Used by the
	// payment sweeper to cancel abandoned orders.
	GetStalePendingWithFailedPayment(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
