package queries

import (
	"context"
	"encoding/json"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves the full detail of a single order from the
// database, including line items, totals, payment and attribution fields.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderDetailRow mirrors the columns selected by the detail query.
type orderDetailRow struct {
	ID                  uuid.UUID
	Items               []byte
	CustomerDisplayName string
	CustomerEmail       string
	Subtotal            int64
	Tax                 int64
	Total               int64
	Currency            string
	Status              int
	PaymentStatus       int
	PaymentMethod       string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	AcceptedAt          *time.Time
	AcceptedBy          string
	ReadyAt             *time.Time
	MarkedReadyBy       string
	CompletedAt         *time.Time
	CompletedBy         string
	CancelledAt         *time.Time
	CancelledBy         string
	CancellationReason  string
}

// Handle executes the query. Returns an ObjectNotFoundError when no order
// exists with the requested id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderDetailRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			items,
			customer_display_name,
			customer_email,
			subtotal,
			tax,
			total,
			currency,
			status,
			payment_status,
			payment_method,
			notes,
			created_at,
			updated_at,
			accepted_at,
			accepted_by,
			ready_at,
			marked_ready_by,
			completed_at,
			completed_by,
			cancelled_at,
			cancelled_by,
			cancellation_reason
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}

	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return rowToResponse(row)
}

func rowToResponse(row orderDetailRow) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var rawItems []struct {
		Name      string `json:"name"`
		Quantity  int64  `json:"quantity"`
		UnitPrice int64  `json:"unit_price"`
	}
	if err = json.Unmarshal(row.Items, &rawItems); err != nil {
		return GetOrderQueryResponse{}, err
	}

	items := make([]OrderItemDetail, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, OrderItemDetail{
			Name:      raw.Name,
			Quantity:  raw.Quantity,
			UnitPrice: raw.UnitPrice,
			ItemTotal: raw.UnitPrice * raw.Quantity,
		})
	}

	return GetOrderQueryResponse{
		ID:                 id,
		Items:              items,
		CustomerName:       row.CustomerDisplayName,
		CustomerEmail:      row.CustomerEmail,
		Subtotal:           row.Subtotal,
		Tax:                row.Tax,
		Total:              row.Total,
		Currency:           row.Currency,
		Status:             order.Status(row.Status).String(),
		PaymentStatus:      order.PaymentStatus(row.PaymentStatus).String(),
		PaymentMethod:      row.PaymentMethod,
		Notes:              row.Notes,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
		AcceptedAt:         row.AcceptedAt,
		AcceptedBy:         row.AcceptedBy,
		ReadyAt:            row.ReadyAt,
		MarkedReadyBy:      row.MarkedReadyBy,
		CompletedAt:        row.CompletedAt,
		CompletedBy:        row.CompletedBy,
		CancelledAt:        row.CancelledAt,
		CancelledBy:        row.CancelledBy,
		CancellationReason: row.CancellationReason,
	}, nil
}
