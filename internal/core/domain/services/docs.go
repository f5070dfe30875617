// Package services provides domain services that orchestrate business
// operations across the counter's domain entities. It implements logic that
// does not naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingService: Prices raw line item requests against the menu,
//     computing subtotal, tax and total in whole rupees
//   - TransitionPolicy / RolePolicy: Role based authorization for order
//     status transitions
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
