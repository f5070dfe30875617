package queries

import (
	"errors"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full detail of a single order.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemDetail is one line of an order in the detail response.
type OrderItemDetail struct {
	Name      string
	Quantity  int64
	UnitPrice int64
	ItemTotal int64
}

// GetOrderQueryResponse is the complete read model of a single order,
// including the price breakdown, payment snapshot and every attribution
// field that has been stamped so far.
type GetOrderQueryResponse struct {
	ID    kernel.UUID
	Items []OrderItemDetail

	CustomerName  string
	CustomerEmail string

	Subtotal int64
	Tax      int64
	Total    int64
	Currency string

	Status string

	PaymentStatus string
	PaymentMethod string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time

	AcceptedAt         *time.Time
	AcceptedBy         string
	ReadyAt            *time.Time
	MarkedReadyBy      string
	CompletedAt        *time.Time
	CompletedBy        string
	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
}
