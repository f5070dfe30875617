package commands

import (
	"errors"
	"time"

	"canteen/internal/pkg/guard"
)

var (
	ErrSweepFailedPaymentsCommandIsNotConstructed = errors.New(
		"SweepFailedPaymentsCommand must be created via NewSweepFailedPaymentsCommand constructor",
	)
	ErrOlderThanIsInvalid = errors.New("olderThan must be greater than 0")
)

// SweepFailedPaymentsCommand represents a request to cancel pending orders
// whose payment failed and that have been sitting longer than the given age.
type SweepFailedPaymentsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewSweepFailedPaymentsCommand creates a sweep command.
// olderThan is the minimum age a pending failed-payment order must reach
// before the sweeper cancels it.
func NewSweepFailedPaymentsCommand(olderThan time.Duration) (SweepFailedPaymentsCommand, error) {
	if olderThan <= 0 {
		return SweepFailedPaymentsCommand{}, ErrOlderThanIsInvalid
	}

	return SweepFailedPaymentsCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepFailedPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrSweepFailedPaymentsCommandIsNotConstructed)
}

// OlderThan returns the minimum age before a stale order is swept.
func (c SweepFailedPaymentsCommand) OlderThan() time.Duration {
	return c.olderThan
}
