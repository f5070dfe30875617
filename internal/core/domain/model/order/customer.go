package order

import (
	"errors"
	"fmt"
	"strings"

	"canteen/internal/pkg/errs"
	"canteen/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created via NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer identifies who placed an order.
// Email is the primary identity and is lowercase-normalized at construction;
// first name, last name, and phone are optional.
type Customer struct { //nolint:recvcheck //using for validation
	email       string
	displayName string
	firstName   string
	lastName    string
	phone       string

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer value object.
// Email is required and normalized to lowercase; displayName is required.
func NewCustomer(email, displayName, firstName, lastName, phone string) (Customer, error) {
	customer := Customer{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		phone:     strings.TrimSpace(phone),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setEmail(email),
		customer.setDisplayName(displayName),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the customer was created via NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Email returns the lowercase-normalized customer email.
func (c Customer) Email() string {
	return c.email
}

// DisplayName returns the name shown on order tickets.
func (c Customer) DisplayName() string {
	return c.displayName
}

// FirstName returns the optional first name, empty when not provided.
func (c Customer) FirstName() string {
	return c.firstName
}

// LastName returns the optional last name, empty when not provided.
func (c Customer) LastName() string {
	return c.lastName
}

// Phone returns the optional phone number, empty when not provided.
func (c Customer) Phone() string {
	return c.phone
}

func (c *Customer) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not an email address", email))
	}

	c.email = email
	return nil
}

func (c *Customer) setDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return errs.NewValueIsRequiredError("displayName")
	}

	c.displayName = displayName
	return nil
}
