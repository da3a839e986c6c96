// Package apierror provides the error taxonomy used across services and the
// standardized response envelopes returned to API clients. Internal details
// (stack traces, raw DB errors) never reach the response body.
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps multiple field-level validation failures.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "erro de validação", Fields: fields}
}

// ─── Service-level error taxonomy ────────────────────────────────────────────
//
// Services return these typed errors; handlers translate them to HTTP status
// codes. Reads that hit an unavailable store degrade to empty results instead
// of returning Unavailable — only writes surface it.

// ValidationError: malformed or missing input, rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError: a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " não encontrado" }

func NotFound(entity string) error { return &NotFoundError{Entity: entity} }

// ConstraintError: a storage uniqueness constraint was violated. Retryable
// from the caller's point of view; the core performs no automatic retry.
type ConstraintError struct {
	Msg string
}

func (e *ConstraintError) Error() string { return e.Msg }

func Constraint(msg string) error { return &ConstraintError{Msg: msg} }

// UnavailableError: the backing store is unreachable for a write.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("armazenamento indisponível em %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
