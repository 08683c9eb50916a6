// Package apperr holds the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is wrapped by validation errors for non-positive amounts.
var ErrInvalidAmount = errors.New("invalid amount")

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return "validation failed: " + e.Msg
	default:
		return "validation failed"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError reports a write that lost against a concurrent change or an
// illegal state transition.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string { return e.Msg }

// RemoteError wraps a failure returned by the store.
type RemoteError struct {
	Op  string
	Err error
}

func (e RemoteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e RemoteError) Unwrap() error { return e.Err }

// PartialFailureError means an earlier step committed and a later one failed.
// The committed effect is not rolled back.
type PartialFailureError struct {
	Step string
	Err  error
}

func (e PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure at %s: %v", e.Step, e.Err)
}

func (e PartialFailureError) Unwrap() error { return e.Err }

func NotFound(resource, id string) error {
	return NotFoundError{Resource: resource, ID: id}
}

func Validation(field, msg string) error {
	return ValidationError{Field: field, Msg: msg}
}

func InvalidAmount(field string) error {
	return ValidationError{Field: field, Msg: "must be greater than zero", Err: ErrInvalidAmount}
}

func Conflict(format string, args ...any) error {
	return ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	return RemoteError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsPartialFailure(err error) bool {
	var target PartialFailureError
	return errors.As(err, &target)
}
