package commands_test

import (
	"testing"

	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	id := kernel.NewUUID()
	staff := services.NewActor("ravi", services.RoleStaff)

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewTransitionOrderCommand(id, order.Accepted, staff, "")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, order.Accepted, cmd.Target())
		assert.Equal(t, staff, cmd.Actor())
		assert.Empty(t, cmd.Reason())
	})

	t.Run("trims the reason", func(t *testing.T) {
		cmd, err := commands.NewTransitionOrderCommand(id, order.Cancelled, staff, "  out of stock  ")

		require.NoError(t, err)
		assert.Equal(t, "out of stock", cmd.Reason())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(kernel.UUID{}, order.Accepted, staff, "")

		require.Error(t, err)
	})

	t.Run("should fail with unknown target status", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(id, order.Unknown, staff, "")

		require.Error(t, err)
	})

	t.Run("should fail with unknown actor role", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(id, order.Accepted, services.Actor{Name: "ghost"}, "")

		require.ErrorIs(t, err, commands.ErrActorRoleIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.TransitionOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
