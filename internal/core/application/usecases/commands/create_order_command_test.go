package commands_test

import (
	"strings"
	"testing"

	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer(t *testing.T) order.Customer {
	t.Helper()

	customer, err := order.NewCustomer("asha@example.com", "Asha", "Asha", "Rao", "")
	require.NoError(t, err)
	return customer
}

func testItems() []services.LineItemRequest {
	return []services.LineItemRequest{
		{Name: "Plain Maggi", Quantity: 2},
		{Name: "Coca Cola", Quantity: 1},
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			id, testItems(), testCustomer(t), order.PaymentSuccess, "upi", " txn-1 ", " less spicy ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, id, cmd.OrderID())
		assert.Len(t, cmd.Items(), 2)
		assert.Equal(t, order.PaymentSuccess, cmd.PaymentStatus())
		assert.Equal(t, "upi", cmd.PaymentMethod())
		assert.Equal(t, "txn-1", cmd.PaymentTransactionID())
		assert.Equal(t, "less spicy", cmd.Notes())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, testItems(), testCustomer(t), order.PaymentSuccess, "upi", "", "")

		require.Error(t, err)
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			id, nil, testCustomer(t), order.PaymentSuccess, "upi", "", "")

		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("should fail with unconstructed customer", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			id, testItems(), order.Customer{}, order.PaymentSuccess, "upi", "", "")

		require.Error(t, err)
	})

	t.Run("should fail with unknown payment status", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			id, testItems(), testCustomer(t), order.PaymentUnknown, "upi", "", "")

		require.ErrorIs(t, err, commands.ErrPaymentStatusIsInvalid)
	})

	t.Run("should fail with blank payment method", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			id, testItems(), testCustomer(t), order.PaymentSuccess, "  ", "", "")

		require.ErrorIs(t, err, commands.ErrPaymentMethodIsRequired)
	})

	t.Run("should fail with oversized notes", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			id, testItems(), testCustomer(t), order.PaymentSuccess, "upi", "",
			strings.Repeat("x", order.NotesMaxLength+1))

		require.ErrorIs(t, err, commands.ErrNotesAreTooLong)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
