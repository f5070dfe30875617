package http

import (
	"time"

	"canteen/internal/core/application/usecases/queries"
	"canteen/internal/core/domain/model/order"
)

// Error is the uniform problem payload returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItemRequest is one requested line in an order creation call. Quantity
// accepts fractional values and is floored during pricing.
type LineItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// CustomerRequest carries the customer contact details of a new order.
type CustomerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// PaymentRequest carries the payment outcome reported by the payment
// provider at order creation time.
type PaymentRequest struct {
	Status        string `json:"status"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Items    []LineItemRequest `json:"items"`
	Customer CustomerRequest   `json:"customer"`
	Payment  PaymentRequest    `json:"payment"`
	Notes    string            `json:"notes,omitempty"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
type TransitionOrderRequest struct {
	Target string `json:"target"`
	Actor  string `json:"actor,omitempty"`
	Role   string `json:"role"`
	Reason string `json:"reason,omitempty"`
}

// LineItemResponse is one priced line of an order.
type LineItemResponse struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	ItemTotal int64  `json:"item_total"`
}

// OrderResponse is the full representation of a single order.
type OrderResponse struct {
	ID       string             `json:"id"`
	Items    []LineItemResponse `json:"items"`
	Customer CustomerResponse   `json:"customer"`

	Subtotal int64  `json:"subtotal"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`

	Status string `json:"status"`

	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy         string     `json:"accepted_by,omitempty"`
	ReadyAt            *time.Time `json:"ready_at,omitempty"`
	MarkedReadyBy      string     `json:"marked_ready_by,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CompletedBy        string     `json:"completed_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        string     `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}

// CustomerResponse is the customer block of an order representation.
type CustomerResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Total        int64     `json:"total"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BoardCountsResponse is the per-bucket count summary of the order board.
type BoardCountsResponse struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// OrderBoardResponse groups orders into one bucket per status.
type OrderBoardResponse struct {
	Pending   []OrderSummaryResponse `json:"pending"`
	Accepted  []OrderSummaryResponse `json:"accepted"`
	Ready     []OrderSummaryResponse `json:"ready"`
	Completed []OrderSummaryResponse `json:"completed"`
	Cancelled []OrderSummaryResponse `json:"cancelled"`
	Counts    BoardCountsResponse    `json:"counts"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemResponse{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			ItemTotal: item.ItemTotal(),
		})
	}

	return OrderResponse{
		ID:    aggregate.ID().String(),
		Items: items,
		Customer: CustomerResponse{
			Email:       aggregate.Customer().Email(),
			DisplayName: aggregate.Customer().DisplayName(),
		},
		Subtotal:           aggregate.Subtotal(),
		Tax:                aggregate.Tax(),
		Total:              aggregate.Total(),
		Currency:           aggregate.Currency(),
		Status:             aggregate.Status().String(),
		PaymentStatus:      aggregate.Payment().Status().String(),
		PaymentMethod:      aggregate.Payment().Method(),
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
	}
}

func detailToResponse(detail queries.GetOrderQueryResponse) OrderResponse {
	items := make([]LineItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, LineItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ItemTotal: item.ItemTotal,
		})
	}

	return OrderResponse{
		ID:    detail.ID.String(),
		Items: items,
		Customer: CustomerResponse{
			Email:       detail.CustomerEmail,
			DisplayName: detail.CustomerName,
		},
		Subtotal:           detail.Subtotal,
		Tax:                detail.Tax,
		Total:              detail.Total,
		Currency:           detail.Currency,
		Status:             detail.Status,
		PaymentStatus:      detail.PaymentStatus,
		PaymentMethod:      detail.PaymentMethod,
		Notes:              detail.Notes,
		CreatedAt:          detail.CreatedAt,
		UpdatedAt:          detail.UpdatedAt,
		AcceptedAt:         detail.AcceptedAt,
		AcceptedBy:         detail.AcceptedBy,
		ReadyAt:            detail.ReadyAt,
		MarkedReadyBy:      detail.MarkedReadyBy,
		CompletedAt:        detail.CompletedAt,
		CompletedBy:        detail.CompletedBy,
		CancelledAt:        detail.CancelledAt,
		CancelledBy:        detail.CancelledBy,
		CancellationReason: detail.CancellationReason,
	}
}

func summariesToResponse(summaries []queries.OrderSummary) []OrderSummaryResponse {
	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, OrderSummaryResponse{
			ID:           summary.ID.String(),
			CustomerName: summary.CustomerName,
			Status:       summary.Status.String(),
			Total:        summary.Total,
			Currency:     summary.Currency,
			CreatedAt:    summary.CreatedAt,
			UpdatedAt:    summary.UpdatedAt,
		})
	}

	return response
}
