package types

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrQuoteNotFound = errors.New("quote not found")
)

// ValidationError rejects a malformed request before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// RiskViolationError rejects a submission before persistence; the order
// is never created.
type RiskViolationError struct {
	Rule   string
	Detail string
}

func (e *RiskViolationError) Error() string {
	return fmt.Sprintf("risk violation (%s): %s", e.Rule, e.Detail)
}

// InternalInvariantError signals an engine defect such as an overfill.
// It must never be swallowed: the enclosing operation aborts without
// persisting the corrupted order.
type InternalInvariantError struct {
	OrderID string
	Detail  string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated on order %s: %s", e.OrderID, e.Detail)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsRiskViolation(err error) bool {
	var re *RiskViolationError
	return errors.As(err, &re)
}

func IsInternalInvariant(err error) bool {
	var ie *InternalInvariantError
	return errors.As(err, &ie)
}
