package order

import (
	"errors"
	"fmt"

	"canteen/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct counter workflow.
//
// State transitions:
//
//	pending ──> accepted ──> ready ──> completed
//	   │            │          │
//	   └────────────┴──────────┴────> cancelled
//
// completed and cancelled are terminal: no further transitions are allowed.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status, entered when an order is created.
	// Orders in this status are waiting to be accepted by staff.
	Pending

	// Accepted indicates staff has accepted the order and started preparing it.
	Accepted

	// Ready indicates the order is prepared and waiting for pickup.
	Ready

	// Completed indicates the order has been handed to the customer.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled before completion.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// ErrIllegalTransition is the sentinel for rejected status transitions.
var ErrIllegalTransition = errors.New("illegal transition")

// IllegalTransitionError reports a rejected status transition, naming both the
// current and the requested status so callers can decide whether to retry
// against a refreshed view or treat the rejection as "already done".
type IllegalTransitionError struct {
	Current   Status
	Requested Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given edge.
func NewIllegalTransitionError(current, requested Status) *IllegalTransitionError {
	return &IllegalTransitionError{Current: current, Requested: requested}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: current status is %s, requested status is %s",
		ErrIllegalTransition, e.Current, e.Requested)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// transitionTable encodes the full lifecycle graph: for each valid status, the
// set of statuses it may move to. Terminal statuses map to an empty slice.
// Every transition rule in the domain flows through this single table.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Cancelled},
		Accepted:  {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// ParseStatus converts one of the five canonical status strings into a Status.
// Any other string is a validation error, never a silent default.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: pending, accepted, ready, completed, cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lowercase name of the status.
// Returns "unknown" for invalid status values.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Only completed and cancelled are terminal; invalid statuses are not
// considered terminal (they are simply invalid).
func (s Status) IsTerminal() bool {
	successors, ok := transitionTable()[s]
	return ok && len(successors) == 0
}

// CanTransitionTo reports whether the lifecycle graph contains an edge from
// the current status to target. It performs no side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, successor := range transitionTable()[s] {
		if successor == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested edge against the lifecycle graph and
// returns the new status.
//
// Returns:
//   - (target, nil) when the edge exists
//   - (Unknown, *IllegalTransitionError) for any other edge, including
//     transitions out of a terminal status and repeats of an already-applied
//     transition (re-sending "accepted" to an accepted order is rejected,
//     never treated as a no-op success)
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, NewIllegalTransitionError(s, target)
	}

	return target, nil
}
