// Package guard provides the constructor guard pattern used by value objects,
// commands, and queries throughout the application.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not created through its constructor and no specific error was provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures domain objects are only created through their
// designated constructor functions. A zero-value struct embedding a guard
// fails validation, which prevents bypassing constructor invariants.
//
// Example:
//
//	var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer")
//
//	type Customer struct {
//	    email string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCustomer(email string) (Customer, error) {
//	    if email == "" {
//	        return Customer{}, errors.New("email is required")
//	    }
//	    return Customer{email: email, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Customer) Validate() error {
//	    return c.guard.Validate(ErrCustomerIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it from the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor.
// For zero-value guards it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
