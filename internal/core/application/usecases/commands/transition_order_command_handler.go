package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"
)

// ErrTransitionNotPermitted is returned when the transition policy forbids the
// actor's role from requesting the target status, regardless of whether the
// lifecycle graph would allow the move.
var ErrTransitionNotPermitted = errors.New("actor is not permitted to perform this transition")

// TransitionOrderCommandHandler handles order status transitions.
// Enforces the role policy, delegates lifecycle rules to the aggregate, and
// serializes concurrent writers per order with a compare-and-swap update on
// the stored status.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, policy, publisher, logger)
//	updated, err := handler.Handle(ctx, cmd)
//	var illegal *order.IllegalTransitionError
//	if errors.As(err, &illegal) {
//	    // reject with the order's actual current status
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
// The publisher is optional; when nil, no change notifications are sent.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.TransitionPolicy,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition command.
//
// When two writers race on the same order, the compare-and-swap update lets
// exactly one commit; the loser re-reads the order and is rejected with an
// IllegalTransitionError carrying the refreshed status, exactly as if it had
// arrived second. A successful transition is followed by a best-effort
// notification; publish failures are logged and never undo the transition.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.policy.Allows(cmd.Actor(), cmd.Target()) {
		return nil, ErrTransitionNotPermitted
	}

	now := time.Now().UTC()

	aggregate, previous, err := h.transition(ctx, cmd, now)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		return nil, h.conflictToIllegalTransition(ctx, cmd, err)
	}
	if err != nil {
		return nil, err
	}

	h.publish(ctx, aggregate, previous, cmd)

	return aggregate, nil
}

// transition runs the read-modify-CAS-write cycle in one unit of work.
func (h *TransitionOrderCommandHandler) transition(
	ctx context.Context,
	cmd TransitionOrderCommand,
	now time.Time,
) (*order.Order, order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.Unknown, err
	}

	previous := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor().Name, cmd.Reason(), now); err != nil {
		return nil, order.Unknown, err
	}

	if err = orderRepo.Update(ctx, aggregate, previous); err != nil {
		return nil, order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Unknown, err
	}

	return aggregate, previous, nil
}

// conflictToIllegalTransition re-reads the order after a lost race and rejects
// the command against the status the winner left behind.
func (h *TransitionOrderCommandHandler) conflictToIllegalTransition(
	ctx context.Context,
	cmd TransitionOrderCommand,
	conflict error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return conflict
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	refreshed, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return conflict
	}

	if refreshed.Status().CanTransitionTo(cmd.Target()) {
		// The winner moved the order somewhere the request is still legal
		// from. Surface the conflict so the caller can retry.
		return conflict
	}

	return order.NewIllegalTransitionError(refreshed.Status(), cmd.Target())
}

func (h *TransitionOrderCommandHandler) publish(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
	cmd TransitionOrderCommand,
) {
	if h.publisher == nil {
		return
	}

	change := ports.StatusChange{
		OrderID:    aggregate.ID().String(),
		From:       previous.String(),
		To:         aggregate.Status().String(),
		Actor:      cmd.Actor().Name,
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
