package commands

import (
	"errors"
	"strings"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"
	"canteen/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrActorRoleIsInvalid = errors.New("actor role must be staff, admin or system")
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status on behalf of an actor.
//
// Example:
//
//	actor := services.NewActor("ravi", services.RoleStaff)
//	cmd, err := NewTransitionOrderCommand(orderID, order.Accepted, actor, "")
//	if err != nil {
//	    return err
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrIllegalTransition) {
//	    // the lifecycle graph forbids this move from the current status
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   services.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// The target must be a valid status and the actor must carry a known role.
// Reason is optional and only meaningful for cancellations; when empty the
// aggregate applies its default.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor services.Actor,
	reason string,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	transitionCommand.reason = strings.TrimSpace(reason)

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who is requesting the transition.
func (c TransitionOrderCommand) Actor() services.Actor {
	return c.actor
}

// Reason returns the optional cancellation reason.
func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor services.Actor) error {
	switch actor.Role {
	case services.RoleStaff, services.RoleAdmin, services.RoleSystem:
	default:
		return ErrActorRoleIsInvalid
	}

	c.actor = actor
	return nil
}
