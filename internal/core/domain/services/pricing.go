package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"canteen/internal/core/domain/model/menu"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"
)

// TaxRatePercent is the flat tax rate applied to every order subtotal.
const TaxRatePercent = 5

// LineItemRequest is a raw order line as submitted by a caller, before any
// validation or menu lookup has happened. Quantity arrives as a float because
// upstream request formats allow fractional values; pricing floors it to a
// whole number of units.
type LineItemRequest struct {
	Name     string
	Quantity float64
}

// PricedOrder is the result of pricing a set of requested line items against
// the menu. All monetary amounts are whole rupees.
//
// Invariants:
//   - Subtotal is the sum of ItemTotal over Items
//   - Tax is Subtotal x 5% rounded half away from zero
//   - Total is (Subtotal + tax) rounded as a single expression, so it may
//     differ from Subtotal + Tax by at most one rupee
type PricedOrder struct {
	Items      []order.LineItem
	Subtotal   int64
	Tax        int64
	Total      int64
	Currency   string
	ComputedAt time.Time
}

// PricingService is a domain service that turns raw line item requests into a
// fully priced order using the counter's menu as the single source of prices.
//
// Key responsibilities:
//   - Validating every requested line against the menu
//   - Flooring fractional quantities to whole units
//   - Computing subtotal, tax and total with integer rupee arithmetic
//
// Business rules:
//   - Prices always come from the menu, never from the caller
//   - An order must contain at least one line item
//   - Validation is aggregated: every failing line is reported, not just the first
//
// Example usage:
//
//	pricing, _ := services.NewPricingService(menu.Default())
//	priced, err := pricing.Price([]services.LineItemRequest{
//	    {Name: "Plain Maggi", Quantity: 2},
//	    {Name: "Coca Cola", Quantity: 1},
//	}, time.Now())
//	if err != nil {
//	    // one or more lines failed validation
//	    return
//	}
//	// priced.Subtotal == 135, priced.Tax == 7, priced.Total == 142
type PricingService struct {
	catalog *menu.Catalog

	isConstructed bool
}

// NewPricingService creates a PricingService backed by the given catalog.
//
// Parameters:
//   - catalog: The menu used to resolve item names to unit prices (required)
//
// Returns:
//   - PricingService: A service ready to price orders
//   - error: Validation error when the catalog is missing or invalid
func NewPricingService(catalog *menu.Catalog) (PricingService, error) {
	if catalog == nil {
		return PricingService{}, errs.NewValueIsRequiredError("catalog")
	}
	if err := catalog.Validate(); err != nil {
		return PricingService{}, err
	}

	return PricingService{catalog: catalog, isConstructed: true}, nil
}

// Price validates the requested lines against the menu and computes the full
// price breakdown.
//
// Parameters:
//   - requests: The raw line items to price (at least one required)
//   - now: The timestamp recorded as ComputedAt
//
// Returns:
//   - PricedOrder: The priced lines with subtotal, tax and total
//   - error: An aggregated error naming every failing line, or nil
//
// Pricing rules:
//   - Fractional quantities are floored; a line that floors to zero is rejected
//   - Unknown item names are rejected with the offending name
//   - Tax is 5% of the subtotal, rounded half away from zero
//   - Total is computed as round(subtotal x 1.05) in integer arithmetic
func (p PricingService) Price(requests []LineItemRequest, now time.Time) (PricedOrder, error) {
	if err := p.Validate(); err != nil {
		return PricedOrder{}, err
	}

	if len(requests) == 0 {
		return PricedOrder{}, errs.NewValueIsRequiredError("items")
	}

	var (
		items      = make([]order.LineItem, 0, len(requests))
		lineErrors []error
		subtotal   int64
	)

	for i, request := range requests {
		item, err := p.priceLine(request)
		if err != nil {
			lineErrors = append(lineErrors, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}

		items = append(items, item)
		subtotal += item.ItemTotal()
	}

	if len(lineErrors) > 0 {
		return PricedOrder{}, errors.Join(lineErrors...)
	}

	return PricedOrder{
		Items:      items,
		Subtotal:   subtotal,
		Tax:        taxOn(subtotal),
		Total:      totalOn(subtotal),
		Currency:   menu.Currency,
		ComputedAt: now,
	}, nil
}

// priceLine resolves a single request against the menu and builds the line item.
func (p PricingService) priceLine(request LineItemRequest) (order.LineItem, error) {
	if math.IsNaN(request.Quantity) || math.IsInf(request.Quantity, 0) {
		return order.LineItem{}, errs.NewValueIsInvalidError("quantity")
	}

	quantity := int64(math.Floor(request.Quantity))
	if quantity < 1 {
		return order.LineItem{}, errs.NewValueIsInvalidError("quantity")
	}

	entry, err := p.catalog.Lookup(request.Name)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(entry.Name(), quantity, entry.UnitPrice())
}

// Validate checks that the service was created through NewPricingService.
func (p PricingService) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("pricing service")
	}
	return nil
}

// taxOn computes 5% of the subtotal, rounded half away from zero, using
// integer arithmetic only. Subtotals are never negative.
func taxOn(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

// totalOn computes subtotal plus tax as a single rounded expression. The
// result may differ from subtotal+taxOn(subtotal) by one rupee, which is the
// accepted behavior for receipts.
func totalOn(subtotal int64) int64 {
	return (subtotal*(100+TaxRatePercent) + 50) / 100
}
