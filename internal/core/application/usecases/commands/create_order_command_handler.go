package commands

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// Prices the requested items against the menu, builds the order aggregate in
// "pending" status and persists it transactionally.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created is pending and waiting for the counter to accept it
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingService
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and a
// PricingService for menu lookups and money arithmetic.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingService,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the order placement command.
// Pricing failures are returned as aggregated validation errors naming every
// offending line. On success the returned order carries the server-computed
// subtotal, tax and total; caller-supplied prices are never trusted.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	priced, err := h.pricing.Price(cmd.Items(), now)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPaymentSnapshot(
		cmd.PaymentStatus(),
		cmd.PaymentMethod(),
		cmd.PaymentTransactionID(),
		priced.Total,
		now,
	)
	if err != nil {
		return nil, err
	}

	totals := order.Totals{
		Subtotal: priced.Subtotal,
		Tax:      priced.Tax,
		Total:    priced.Total,
		Currency: priced.Currency,
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), priced.Items, cmd.Customer(), totals, payment, cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
