// Package queries contains read-only operations for retrieving order state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return flat response models, bypassing the domain
// aggregates used by commands.
package queries

import (
	"errors"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must not be negative")
)

// GetOrdersQuery retrieves order summaries, optionally filtered by status.
//
// Example:
//
//	// All orders
//	query, _ := NewGetOrdersQuery(order.Unknown, 0)
//
//	// Only pending orders, newest fifty
//	query, _ = NewGetOrdersQuery(order.Pending, 50)
//
//	summaries, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	status order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for order summaries.
// Pass order.Unknown as status to fetch orders in every status. A limit of
// zero means no limit.
func NewGetOrdersQuery(status order.Status, limit int) (GetOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	if limit < 0 {
		return GetOrdersQuery{}, ErrLimitIsInvalid
	}

	return GetOrdersQuery{
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or order.Unknown for no filter.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// Limit returns the maximum number of rows, zero for no limit.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummary is a flat read model of one order for lists and the board.
type OrderSummary struct {
	ID           kernel.UUID
	CustomerName string
	Status       order.Status
	Total        int64
	Currency     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
