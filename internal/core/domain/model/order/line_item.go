package order

import (
	"fmt"
	"strings"

	"canteen/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("LineItem must be created via NewLineItem")

// LineItem is one priced row of an order: a menu item name, the quantity
// ordered, and the unit price captured from the catalog at pricing time.
//
// The line total is never stored; ItemTotal always recomputes
// unitPrice × quantity so the two can never drift apart.
type LineItem struct {
	name      string
	quantity  int64
	unitPrice int64

	isConstructed bool
}

// NewLineItem creates a priced line item.
// The name must be non-empty after trimming, quantity must be at least 1,
// and unitPrice must be non-negative.
func NewLineItem(name string, quantity int64, unitPrice int64) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return LineItem{
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the line item was created via NewLineItem.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// Name returns the menu item name.
func (li LineItem) Name() string {
	return li.name
}

// Quantity returns the number of units ordered.
func (li LineItem) Quantity() int64 {
	return li.quantity
}

// UnitPrice returns the per-unit price captured at pricing time.
func (li LineItem) UnitPrice() int64 {
	return li.unitPrice
}

// ItemTotal returns unitPrice × quantity, recomputed on every call.
func (li LineItem) ItemTotal() int64 {
	return li.unitPrice * li.quantity
}
