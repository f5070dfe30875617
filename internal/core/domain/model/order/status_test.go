package order_test

import (
	"testing"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Accepted, order.Ready, order.Completed, order.Cancelled,
		} {
			require.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("unknown and out-of-range statuses fail validation", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(42), order.Status(-1)} {
			require.ErrorIs(t, s.Validate(), errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:    "unknown",
		order.Pending:    "pending",
		order.Accepted:   "accepted",
		order.Ready:      "ready",
		order.Completed:  "completed",
		order.Cancelled:  "cancelled",
		order.Status(42): "unknown",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("parses the five canonical strings", func(t *testing.T) {
		cases := map[string]order.Status{
			"pending":   order.Pending,
			"accepted":  order.Accepted,
			"ready":     order.Ready,
			"completed": order.Completed,
			"cancelled": order.Cancelled,
		}

		for input, expected := range cases {
			status, err := order.ParseStatus(input)
			require.NoError(t, err)
			assert.Equal(t, expected, status)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, input := range []string{"", "unknown", "Pending", "ACCEPTED", "done", "canceled"} {
			_, err := order.ParseStatus(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input %q should be rejected", input)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Accepted.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Unknown.IsTerminal())
}

// TestStatus_TransitionTo exhaustively checks every edge of the lifecycle graph:
// the allowed edges succeed and every other pair is rejected.
func TestStatus_TransitionTo(t *testing.T) {
	all := []order.Status{order.Pending, order.Accepted, order.Ready, order.Completed, order.Cancelled}

	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Accepted, order.Cancelled},
		order.Accepted:  {order.Ready, order.Cancelled},
		order.Ready:     {order.Completed, order.Cancelled},
		order.Completed: {},
		order.Cancelled: {},
	}

	isAllowed := func(from, to order.Status) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range all {
		for _, to := range all {
			got, err := from.TransitionTo(to)

			if isAllowed(from, to) {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, got)
				assert.True(t, from.CanTransitionTo(to))
			} else {
				require.Error(t, err, "%s -> %s should be rejected", from, to)
				require.ErrorIs(t, err, order.ErrIllegalTransition)
				assert.Equal(t, order.Unknown, got)
				assert.False(t, from.CanTransitionTo(to))

				var illegal *order.IllegalTransitionError
				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, from, illegal.Current)
				assert.Equal(t, to, illegal.Requested)
			}
		}
	}
}

func TestStatus_TransitionTo_InvalidStatuses(t *testing.T) {
	t.Run("unknown source is invalid, not illegal", func(t *testing.T) {
		_, err := order.Unknown.TransitionTo(order.Accepted)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown target is invalid, not illegal", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestIllegalTransitionError_Message(t *testing.T) {
	err := order.NewIllegalTransitionError(order.Pending, order.Ready)

	assert.Equal(t, "illegal transition: current status is pending, requested status is ready", err.Error())
	assert.Equal(t, order.ErrIllegalTransition, err.Unwrap())
}
