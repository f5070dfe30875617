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
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired         = errors.New("at least one line item is required")
	ErrPaymentMethodIsRequired  = errors.New("payment method is required")
	ErrPaymentStatusIsInvalid   = errors.New("payment status must be success, pending or failed")
	ErrNotesAreTooLong          = errors.New("notes must not exceed 500 characters")
)

// CreateOrderCommand represents a request to place a new counter order.
// Carries the raw line items, the customer and the payment details exactly as
// submitted; pricing and menu validation happen in the handler.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	customer, _ := order.NewCustomer("asha@example.com", "Asha", "", "", "")
//	cmd, err := NewCreateOrderCommand(orderID,
//	    []services.LineItemRequest{{Name: "Plain Maggi", Quantity: 2}},
//	    customer, order.PaymentSuccess, "upi", "txn-123", "less spicy")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed, total %d", created.ID(), created.Total())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	items                []services.LineItemRequest
	customer             order.Customer
	paymentStatus        order.PaymentStatus
	paymentMethod        string
	paymentTransactionID string
	notes                string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID, customer and payment status are valid, that at
// least one line item is present and that notes fit the length limit.
// Item names and quantities are only checked against the menu later, by the
// pricing service.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	items []services.LineItemRequest,
	customer order.Customer,
	paymentStatus order.PaymentStatus,
	paymentMethod string,
	paymentTransactionID string,
	notes string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setItems(items),
		orderCommand.setCustomer(customer),
		orderCommand.setPayment(paymentStatus, paymentMethod, paymentTransactionID),
		orderCommand.setNotes(notes),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the raw line item requests as submitted.
func (c CreateOrderCommand) Items() []services.LineItemRequest {
	return c.items
}

// Customer returns the customer placing the order.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// PaymentStatus returns the reported payment outcome.
func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

// PaymentMethod returns the payment method, for example "upi" or "cash".
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// PaymentTransactionID returns the external transaction reference, if any.
func (c CreateOrderCommand) PaymentTransactionID() string {
	return c.paymentTransactionID
}

// Notes returns free-form preparation notes for the kitchen.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.LineItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setPayment(status order.PaymentStatus, method, transactionID string) error {
	if err := status.Validate(); err != nil {
		return ErrPaymentStatusIsInvalid
	}

	method = strings.TrimSpace(method)
	if method == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentStatus = status
	c.paymentMethod = method
	c.paymentTransactionID = strings.TrimSpace(transactionID)
	return nil
}

func (c *CreateOrderCommand) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) > order.NotesMaxLength {
		return ErrNotesAreTooLong
	}

	c.notes = notes
	return nil
}
