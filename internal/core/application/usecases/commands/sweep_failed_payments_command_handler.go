package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"
)

// SweeperActor is the name stamped on orders cancelled by the payment sweeper.
const SweeperActor = "system"

// SweepFailedPaymentsCommandHandler cancels stale pending orders whose payment
// failed. Runs as a background job so abandoned orders do not clog the
// counter's pending queue.
//
// Each order is cancelled in its own transaction. An order that a staff member
// touches while the sweep is running simply loses the compare-and-swap and is
// skipped; the sweep carries on with the rest.
type SweepFailedPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

// NewSweepFailedPaymentsCommandHandler creates a handler for payment sweeps.
// The publisher is optional; when nil, no change notifications are sent.
func NewSweepFailedPaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) SweepFailedPaymentsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return SweepFailedPaymentsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle finds stale pending orders with failed payment and cancels them with
// the default reason. Returns the number of orders actually cancelled.
func (h *SweepFailedPaymentsCommandHandler) Handle(
	ctx context.Context,
	cmd SweepFailedPaymentsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.OlderThan())

	stale, err := h.findStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, aggregate := range stale {
		swept, err := h.sweep(ctx, aggregate, now)
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			// Someone moved the order while we were sweeping. Leave it alone.
			continue
		}
		if err != nil {
			return cancelled, err
		}

		if swept {
			cancelled++
		}
	}

	return cancelled, nil
}

func (h *SweepFailedPaymentsCommandHandler) findStale(
	ctx context.Context,
	cutoff time.Time,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetStalePendingWithFailedPayment(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stale, nil
}

// sweep cancels one order in its own transaction.
func (h *SweepFailedPaymentsCommandHandler) sweep(
	ctx context.Context,
	aggregate *order.Order,
	now time.Time,
) (bool, error) {
	previous := aggregate.Status()

	if err := aggregate.Cancel(SweeperActor, "", now); err != nil {
		// The snapshot went stale between the read and the cancel.
		if errors.Is(err, order.ErrIllegalTransition) {
			return false, nil
		}
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, aggregate, previous); err != nil {
		return false, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publish(ctx, aggregate, previous)

	return true, nil
}

func (h *SweepFailedPaymentsCommandHandler) publish(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
) {
	if h.publisher == nil {
		return
	}

	change := ports.StatusChange{
		OrderID:    aggregate.ID().String(),
		From:       previous.String(),
		To:         aggregate.Status().String(),
		Actor:      SweeperActor,
		Reason:     aggregate.CancellationReason(),
		OccurredAt: aggregate.UpdatedAt(),
	}

	if err := h.publisher.Publish(ctx, change); err != nil {
		h.logger.Warn("status change publish failed",
			"order_id", change.OrderID,
			"to", change.To,
			"error", err)
	}
}
