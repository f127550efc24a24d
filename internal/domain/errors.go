package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Conflict reasons used by the seat inventory.
const (
	ReasonSeatUnavailable   = "seat_unavailable"
	ReasonSeatCountMismatch = "seat_count_mismatch"
	ReasonHoldNotFound      = "hold_not_found"
)

// Verification failure reasons.
const (
	ReasonInvalidDocument  = "invalid_document"
	ReasonCodeMismatch     = "code_mismatch"
	ReasonChallengeExpired = "challenge_expired"
	ReasonNotVerified      = "not_verified"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InventoryConflictError covers unavailable seats, count mismatches and
// unknown holds. Seats carries the offending seat codes when known.
type InventoryConflictError struct {
	Reason string
	Seats  []string
	Err    error
}

func (e InventoryConflictError) Error() string {
	if len(e.Seats) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Seats, ","))
	}
	if e.Reason != "" {
		return e.Reason
	}
	return "inventory conflict"
}

func (e InventoryConflictError) Unwrap() error { return e.Err }

type VerificationError struct {
	Reason string
	Err    error
}

func (e VerificationError) Error() string {
	if e.Reason != "" {
		return "verification failed: " + e.Reason
	}
	return "verification failed"
}

func (e VerificationError) Unwrap() error { return e.Err }

type PaymentError struct {
	Reason string
	Err    error
}

func (e PaymentError) Error() string {
	if e.Reason != "" {
		return "payment failed: " + e.Reason
	}
	return "payment failed"
}

func (e PaymentError) Unwrap() error { return e.Err }

// ExpiredError marks a reservation whose seat hold lapsed before
// confirmation. Terminal for that reservation.
type ExpiredError struct {
	Msg string
	Err error
}

func (e ExpiredError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "reservation expired"
}

func (e ExpiredError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInventoryConflict(err error) bool {
	var target InventoryConflictError
	return errors.As(err, &target)
}

// ConflictReason returns the inventory conflict reason, or "" when err
// is not an inventory conflict.
func ConflictReason(err error) string {
	var target InventoryConflictError
	if errors.As(err, &target) {
		return target.Reason
	}
	return ""
}

func IsVerification(err error) bool {
	var target VerificationError
	return errors.As(err, &target)
}

func VerificationReason(err error) string {
	var target VerificationError
	if errors.As(err, &target) {
		return target.Reason
	}
	return ""
}

func IsPayment(err error) bool {
	var target PaymentError
	return errors.As(err, &target)
}

func IsExpired(err error) bool {
	var target ExpiredError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
