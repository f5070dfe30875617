package ports

import (
	"context"
	"time"
)

// StatusChange describes a single order status transition for downstream
// consumers such as the kitchen display.
type StatusChange struct {
	OrderID    string    `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatusChangePublisher pushes status change notifications to interested
// consumers. Publishing is best effort: a failed publish must not roll back
// the transition that already committed.
type StatusChangePublisher interface {
	// Publish sends a status change notification.
	Publish(ctx context.Context, change StatusChange) error
}
