// Package errs defines the domain error taxonomy shared by services and
// handlers. Every error a service returns is one of these types (possibly
// wrapped), so handlers can map them to HTTP status codes with errors.As
// instead of matching on message strings.
package errs

import "fmt"

// ValidationError signals missing or malformed input. Field identifies the
// offending field when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Validation builds a ValidationError for the given field.
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and identifier.
func NotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// CouponRejectedError signals that a coupon exists but failed evaluation
// (inactive, expired, exhausted, or below the order minimum). It is fatal to
// a standalone validate call but absorbed during checkout.
type CouponRejectedError struct {
	Code   string
	Reason string
}

func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("coupon %s rejected: %s", e.Code, e.Reason)
}

// CouponRejected builds a CouponRejectedError.
func CouponRejected(code, reason string) error {
	return &CouponRejectedError{Code: code, Reason: reason}
}

// ConflictError signals a concurrent-mutation race, such as a coupon usage
// increment losing to another checkout. Callers may retry or surface it;
// it must never be silently dropped.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict builds a ConflictError.
func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
