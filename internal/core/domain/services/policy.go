package services

import (
	"strings"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"
)

// Role identifies the kind of actor requesting a status transition.
type Role int

const (
	RoleUnknown Role = iota
	RoleStaff
	RoleAdmin
	RoleSystem
)

// ParseRole converts a role string to a Role.
//
// Parameters:
//   - value: One of "staff", "admin" or "system" (exact, lowercase)
//
// Returns:
//   - Role: The parsed role
//   - error: Validation error for any other input
func ParseRole(value string) (Role, error) {
	switch value {
	case "staff":
		return RoleStaff, nil
	case "admin":
		return RoleAdmin, nil
	case "system":
		return RoleSystem, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidError("role")
	}
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "staff"
	case RoleAdmin:
		return "admin"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Actor is the identity performing a transition, recorded in the order's
// attribution fields and checked against the transition policy.
type Actor struct {
	Name string
	Role Role
}

// NewActor creates an actor with a trimmed name. An empty name falls back to
// the order package default so attribution fields are never blank.
func NewActor(name string, role Role) Actor {
	name = strings.TrimSpace(name)
	if name == "" {
		name = order.DefaultActor
	}
	return Actor{Name: name, Role: role}
}

// TransitionPolicy decides whether an actor may move an order into a target
// status. The policy rules on roles only; the lifecycle graph itself is
// enforced separately by the order aggregate.
type TransitionPolicy interface {
	// Allows reports whether the actor may request the given target status.
	Allows(actor Actor, target order.Status) bool
}

// RolePolicy is the default policy for the counter.
//
// Rules:
//   - Staff may accept, mark ready, complete and cancel
//   - Admin may do everything staff can
//   - System actors (background jobs) may only cancel
type RolePolicy struct{}

// NewRolePolicy creates the default role based transition policy.
func NewRolePolicy() RolePolicy {
	return RolePolicy{}
}

// Allows implements TransitionPolicy.
func (RolePolicy) Allows(actor Actor, target order.Status) bool {
	switch actor.Role {
	case RoleStaff, RoleAdmin:
		switch target {
		case order.Accepted, order.Ready, order.Completed, order.Cancelled:
			return true
		}
		return false
	case RoleSystem:
		return target == order.Cancelled
	default:
		return false
	}
}
