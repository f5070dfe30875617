package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"canteen/internal/pkg/errs"
	"canteen/internal/pkg/guard"
)

// PaymentStatus is the outcome of a payment attempt as reported by the
// payment provider. It is an input to order creation, never computed here.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentSuccess indicates the payment went through.
	PaymentSuccess

	// PaymentPending indicates the payment is still being processed.
	PaymentPending

	// PaymentFailed indicates the payment attempt failed.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentSuccess: "success",
		PaymentPending: "pending",
		PaymentFailed:  "failed",
	}
}

// ParsePaymentStatus converts one of the canonical payment status strings
// (success, pending, failed) into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentSuccess && s != PaymentPending && s != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the canonical lowercase name of the payment status.
// This method implements the fmt.Stringer interface.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ErrPaymentSnapshotIsNotConstructed is returned when a PaymentSnapshot was
// not created via NewPaymentSnapshot.
var ErrPaymentSnapshotIsNotConstructed = errors.New(
	"PaymentSnapshot must be created via NewPaymentSnapshot constructor",
)

// PaymentSnapshot captures the state of an order's payment at creation time.
// It is immutable and never recomputed; later payment events do not change it.
type PaymentSnapshot struct { //nolint:recvcheck //using for validation
	status        PaymentStatus
	method        string
	transactionID string
	amount        int64
	recordedAt    time.Time

	guard guard.ConstructorGuard
}

// NewPaymentSnapshot creates a payment snapshot.
// The status must be one of success/pending/failed, method is required,
// amount must be non-negative, and recordedAt must be set.
func NewPaymentSnapshot(
	status PaymentStatus,
	method string,
	transactionID string,
	amount int64,
	recordedAt time.Time,
) (PaymentSnapshot, error) {
	snapshot := PaymentSnapshot{
		transactionID: strings.TrimSpace(transactionID),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		snapshot.setStatus(status),
		snapshot.setMethod(method),
		snapshot.setAmount(amount),
		snapshot.setRecordedAt(recordedAt),
	); err != nil {
		return PaymentSnapshot{}, err
	}

	return snapshot, nil
}

// Validate ensures the snapshot was created via NewPaymentSnapshot.
func (p PaymentSnapshot) Validate() error {
	return p.guard.Validate(ErrPaymentSnapshotIsNotConstructed)
}

// Status returns the payment outcome.
func (p PaymentSnapshot) Status() PaymentStatus {
	return p.status
}

// Method returns the payment method, e.g. "upi" or "cash".
func (p PaymentSnapshot) Method() string {
	return p.method
}

// TransactionID returns the provider transaction id, empty for cash payments.
func (p PaymentSnapshot) TransactionID() string {
	return p.transactionID
}

// Amount returns the paid amount in whole currency units.
func (p PaymentSnapshot) Amount() int64 {
	return p.amount
}

// RecordedAt returns when the payment outcome was recorded.
func (p PaymentSnapshot) RecordedAt() time.Time {
	return p.recordedAt
}

func (p *PaymentSnapshot) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *PaymentSnapshot) setMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}
	p.method = method
	return nil
}

func (p *PaymentSnapshot) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	p.amount = amount
	return nil
}

func (p *PaymentSnapshot) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	p.recordedAt = recordedAt
	return nil
}
