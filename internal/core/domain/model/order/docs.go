// Package order provides domain entities and business logic for order management
// at the canteen counter. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns identity, line items, monetary snapshot, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - LineItem, Customer, PaymentSnapshot: value objects persisted as part of an order
//
// Key business rules:
//   - Orders must have a valid unique identifier and a non-empty, priced item list
//   - Order status follows a defined workflow: pending -> accepted -> ready -> completed
//   - Cancellation is allowed from any non-terminal status
//   - completed and cancelled are terminal; no further transitions are accepted
//   - Each transition stamps actor and timestamp attribution exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
