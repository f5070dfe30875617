// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items live in a jsonb column because they are only ever read and
// written together with their order; customer and payment snapshots are
// embedded with column prefixes.
type OrderDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Items    json.RawMessage `gorm:"type:jsonb"`
	Customer CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	Subtotal int64
	Tax      int64
	Total    int64
	Currency string
	Status   int        `gorm:"index"`
	Payment  PaymentDTO `gorm:"embedded;embeddedPrefix:payment_"`
	Notes    string

	CreatedAt time.Time `gorm:"index"`
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

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer columns within the order table.
type CustomerDTO struct {
	Email       string
	DisplayName string
	FirstName   string
	LastName    string
	Phone       string
}

// PaymentDTO represents the embedded payment snapshot columns within the order table.
type PaymentDTO struct {
	Status        int `gorm:"index"`
	Method        string
	TransactionID string
	Amount        int64
	RecordedAt    time.Time
}

// LineItemJSON is the shape of a single line item inside the jsonb items column.
type LineItemJSON struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]LineItemJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemJSON{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	rawItems, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	customer := aggregate.Customer()
	payment := aggregate.Payment()

	return OrderDTO{
		ID:    aggregate.ID().Bytes(),
		Items: rawItems,
		Customer: CustomerDTO{
			Email:       customer.Email(),
			DisplayName: customer.DisplayName(),
			FirstName:   customer.FirstName(),
			LastName:    customer.LastName(),
			Phone:       customer.Phone(),
		},
		Subtotal: aggregate.Subtotal(),
		Tax:      aggregate.Tax(),
		Total:    aggregate.Total(),
		Currency: aggregate.Currency(),
		Status:   int(aggregate.Status()),
		Payment: PaymentDTO{
			Status:        int(payment.Status()),
			Method:        payment.Method(),
			TransactionID: payment.TransactionID(),
			Amount:        payment.Amount(),
			RecordedAt:    payment.RecordedAt(),
		},
		Notes:              aggregate.Notes(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
		AcceptedAt:         aggregate.AcceptedAt(),
		AcceptedBy:         aggregate.AcceptedBy(),
		ReadyAt:            aggregate.ReadyAt(),
		MarkedReadyBy:      aggregate.MarkedReadyBy(),
		CompletedAt:        aggregate.CompletedAt(),
		CompletedBy:        aggregate.CompletedBy(),
		CancelledAt:        aggregate.CancelledAt(),
		CancelledBy:        aggregate.CancelledBy(),
		CancellationReason: aggregate.CancellationReason(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and attribution using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rawItems []LineItemJSON
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := order.NewLineItem(raw.Name, raw.Quantity, raw.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	customer, err := order.NewCustomer(
		dto.Customer.Email,
		dto.Customer.DisplayName,
		dto.Customer.FirstName,
		dto.Customer.LastName,
		dto.Customer.Phone,
	)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPaymentSnapshot(
		order.PaymentStatus(dto.Payment.Status),
		dto.Payment.Method,
		dto.Payment.TransactionID,
		dto.Payment.Amount,
		dto.Payment.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:       id,
		Items:    items,
		Customer: customer,
		Totals: order.Totals{
			Subtotal: dto.Subtotal,
			Tax:      dto.Tax,
			Total:    dto.Total,
			Currency: dto.Currency,
		},
		Status:             order.Status(dto.Status),
		Payment:            payment,
		Notes:              dto.Notes,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		AcceptedAt:         dto.AcceptedAt,
		AcceptedBy:         dto.AcceptedBy,
		ReadyAt:            dto.ReadyAt,
		MarkedReadyBy:      dto.MarkedReadyBy,
		CompletedAt:        dto.CompletedAt,
		CompletedBy:        dto.CompletedBy,
		CancelledAt:        dto.CancelledAt,
		CancelledBy:        dto.CancelledBy,
		CancellationReason: dto.CancellationReason,
	})
}
