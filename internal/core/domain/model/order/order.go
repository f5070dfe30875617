package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/errs"
)

const (
	// DefaultActor is attributed to a transition when no actor is supplied.
	DefaultActor = "staff"

	// DefaultCancellationReason is recorded when an order is cancelled
	// without an explicit reason.
	DefaultCancellationReason = "Payment failed"

	// NotesMaxLength bounds the free-text notes field.
	NotesMaxLength = 500
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Totals is the monetary snapshot persisted on an order.
// Subtotal must equal the sum of line item totals; tax and total are computed
// from the subtotal by the pricing engine and stored as given.
type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
	Currency string
}

// Order represents one customer order at the counter. It is the aggregate root
// that owns identity, the priced line items, the monetary snapshot, and the
// fulfillment status with its per-transition attribution metadata.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a non-empty item list
//   - Subtotal equals the sum of line item totals
//   - Status only moves along the lifecycle graph; terminal statuses are final
//   - Attribution fields for a status are set exactly once, when it is entered
//   - updatedAt advances on every transition
//
// The struct uses private fields to ensure encapsulation and can only be
// created through NewOrder (fresh orders) or RestoreOrder (persistence).
type Order struct {
	id       kernel.UUID
	items    []LineItem
	customer Customer

	subtotal int64
	tax      int64
	total    int64
	currency string

	status  Status
	payment PaymentSnapshot
	notes   string

	createdAt time.Time
	updatedAt time.Time

	acceptedAt *time.Time
	acceptedBy string

	readyAt       *time.Time
	markedReadyBy string

	completedAt *time.Time
	completedBy string

	cancelledAt        *time.Time
	cancelledBy        string
	cancellationReason string

	isConstructed bool
}

// NewOrder creates a new Order in pending status.
//
// Parameters:
//   - id: unique identifier assigned by the caller (must be a valid UUID)
//   - items: priced line items, non-empty, insertion order preserved
//   - customer: who placed the order
//   - totals: the monetary snapshot produced by the pricing engine
//   - payment: payment outcome captured at creation, never recomputed
//   - notes: optional free text, at most NotesMaxLength characters
//   - now: creation timestamp, stamped on createdAt and updatedAt
//
// All inputs are validated; on any failure the order is not created and the
// returned error joins every individual validation failure.
func NewOrder(
	id kernel.UUID,
	items []LineItem,
	customer Customer,
	totals Totals,
	payment PaymentSnapshot,
	notes string,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(items),
		order.setCustomer(customer),
		order.setTotals(items, totals),
		order.setPayment(payment),
		order.setNotes(notes),
		order.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrderParams carries the full persisted state of an order,
// including status and attribution metadata.
type RestoreOrderParams struct {
	ID       kernel.UUID
	Items    []LineItem
	Customer Customer
	Totals   Totals
	Status   Status
	Payment  PaymentSnapshot
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time

	AcceptedAt *time.Time
	AcceptedBy string

	ReadyAt       *time.Time
	MarkedReadyBy string

	CompletedAt *time.Time
	CompletedBy string

	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
}

// RestoreOrder reconstructs an order from persistence, including its current
// status and attribution fields. Used by repository implementations only;
// new orders must go through NewOrder.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setItems(params.Items),
		order.setCustomer(params.Customer),
		order.setTotals(params.Items, params.Totals),
		order.setPayment(params.Payment),
		order.setNotes(params.Notes),
		order.setCreatedAt(params.CreatedAt),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = params.Status
	if !params.UpdatedAt.IsZero() {
		order.updatedAt = params.UpdatedAt
	}

	order.acceptedAt = params.AcceptedAt
	order.acceptedBy = params.AcceptedBy
	order.readyAt = params.ReadyAt
	order.markedReadyBy = params.MarkedReadyBy
	order.completedAt = params.CompletedAt
	order.completedBy = params.CompletedBy
	order.cancelledAt = params.CancelledAt
	order.cancelledBy = params.CancelledBy
	order.cancellationReason = params.CancellationReason

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns the priced line items in insertion order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Customer returns the customer who placed the order.
func (o *Order) Customer() Customer {
	return o.customer
}

// Subtotal returns the sum of line item totals.
func (o *Order) Subtotal() int64 {
	return o.subtotal
}

// Tax returns the tax computed on the subtotal.
func (o *Order) Tax() int64 {
	return o.tax
}

// Total returns the order total.
func (o *Order) Total() int64 {
	return o.total
}

// Currency returns the currency tag for the monetary snapshot.
func (o *Order) Currency() string {
	return o.currency
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// Payment returns the payment snapshot captured at creation.
func (o *Order) Payment() PaymentSnapshot {
	return o.payment
}

// Notes returns the optional free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed. Advances on every transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AcceptedAt returns when the order was accepted, nil if it never was.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// AcceptedBy returns who accepted the order, empty if it never was.
func (o *Order) AcceptedBy() string {
	return o.acceptedBy
}

// ReadyAt returns when the order was marked ready, nil if it never was.
func (o *Order) ReadyAt() *time.Time {
	return o.readyAt
}

// MarkedReadyBy returns who marked the order ready, empty if nobody did.
func (o *Order) MarkedReadyBy() string {
	return o.markedReadyBy
}

// CompletedAt returns when the order was completed, nil if it never was.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// CompletedBy returns who completed the order, empty if nobody did.
func (o *Order) CompletedBy() string {
	return o.completedBy
}

// CancelledAt returns when the order was cancelled, nil if it never was.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancelledBy returns who cancelled the order, empty if nobody did.
func (o *Order) CancelledBy() string {
	return o.cancelledBy
}

// CancellationReason returns why the order was cancelled, empty if it never was.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// Accept moves the order from pending to accepted and stamps
// acceptedAt/acceptedBy. The actor defaults to DefaultActor when empty.
//
// Returns an *IllegalTransitionError and leaves the order unmodified when the
// order is not pending.
func (o *Order) Accept(actor string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	at := now
	o.acceptedAt = &at
	o.acceptedBy = actorOrDefault(actor)
	o.touch(now)
	return nil
}

// MarkReady moves the order from accepted to ready and stamps
// readyAt/markedReadyBy. The actor defaults to DefaultActor when empty.
func (o *Order) MarkReady(actor string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(Ready)
	if err != nil {
		return err
	}

	o.status = newStatus
	at := now
	o.readyAt = &at
	o.markedReadyBy = actorOrDefault(actor)
	o.touch(now)
	return nil
}

// Complete moves the order from ready to completed and stamps
// completedAt/completedBy. Completed is terminal.
func (o *Order) Complete(actor string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(Completed)
	if err != nil {
		return err
	}

	o.status = newStatus
	at := now
	o.completedAt = &at
	o.completedBy = actorOrDefault(actor)
	o.touch(now)
	return nil
}

// Cancel moves the order into cancelled from any non-terminal status and
// stamps cancelledAt/cancelledBy/cancellationReason. The reason defaults to
// DefaultCancellationReason when empty. Cancelled is terminal.
func (o *Order) Cancel(actor, reason string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}

	o.status = newStatus
	at := now
	o.cancelledAt = &at
	o.cancelledBy = actorOrDefault(actor)
	o.cancellationReason = reason
	o.touch(now)
	return nil
}

// TransitionTo applies the requested target status, dispatching to the
// specific transition method. The reason parameter is only used for
// cancellations. Any illegal edge is rejected with an *IllegalTransitionError
// naming the current and requested status, leaving the order unmodified.
func (o *Order) TransitionTo(target Status, actor, reason string, now time.Time) error {
	switch target {
	case Accepted:
		return o.Accept(actor, now)
	case Ready:
		return o.MarkReady(actor, now)
	case Completed:
		return o.Complete(actor, now)
	case Cancelled:
		return o.Cancel(actor, reason, now)
	default:
		// Pending is never a legal target and Unknown never a valid status;
		// the status table produces the precise rejection.
		_, err := o.status.TransitionTo(target)
		if err != nil {
			return err
		}
		return NewIllegalTransitionError(o.status, target)
	}
}

// touch advances updatedAt. Every transition calls it unconditionally.
func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func actorOrDefault(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return DefaultActor
	}
	return actor
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setItems validates and copies the line items.
// The item list must be non-empty and every item properly constructed.
func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

// setTotals validates the monetary snapshot against the line items.
// Subtotal must equal the sum of line item totals exactly.
func (o *Order) setTotals(items []LineItem, totals Totals) error {
	if totals.Subtotal < 0 || totals.Tax < 0 || totals.Total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totals",
			fmt.Errorf("subtotal %d, tax %d, total %d must be non-negative",
				totals.Subtotal, totals.Tax, totals.Total))
	}
	if totals.Currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	var sum int64
	for _, item := range items {
		sum += item.ItemTotal()
	}
	if sum != totals.Subtotal {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%d does not equal the sum of line item totals %d", totals.Subtotal, sum))
	}

	o.subtotal = totals.Subtotal
	o.tax = totals.Tax
	o.total = totals.Total
	o.currency = totals.Currency
	return nil
}

func (o *Order) setPayment(payment PaymentSnapshot) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > NotesMaxLength {
		return errs.NewValueIsOutOfRangeError("notes", utf8.RuneCountInString(notes), 0, NotesMaxLength)
	}
	o.notes = notes
	return nil
}

func (o *Order) setCreatedAt(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = now
	o.updatedAt = now
	return nil
}
