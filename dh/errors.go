// Copyright © 2021 Io FinNet Group, Inc.

package dh

import (
	"errors"
	"fmt"
)

// ErrorKind classifies caller-correctable input errors.
type ErrorKind string

const (
	KindInvalidFormat   ErrorKind = "invalid_format"
	KindTooLarge        ErrorKind = "too_large"
	KindInvalidGroup    ErrorKind = "invalid_group"
	KindModulusTooLarge ErrorKind = "modulus_too_large"
	KindNoSolutionFound ErrorKind = "no_solution_found"
)

var (
	ErrInvalidFormat   = errors.New("invalid format")
	ErrTooLarge        = errors.New("number too large")
	ErrInvalidGroup    = errors.New("invalid group")
	ErrModulusTooLarge = errors.New("modulus too large for brute force")
	ErrNoSolutionFound = errors.New("no solution found")
)

var sentinels = map[ErrorKind]error{
	KindInvalidFormat:   ErrInvalidFormat,
	KindTooLarge:        ErrTooLarge,
	KindInvalidGroup:    ErrInvalidGroup,
	KindModulusTooLarge: ErrModulusTooLarge,
	KindNoSolutionFound: ErrNoSolutionFound,
}

type Error struct {
	Kind  ErrorKind
	Field string // the input field at fault, empty when the error concerns the whole request
	Value string
	cause error
}

func NewError(kind ErrorKind, field, value string, cause error) *Error {
	return &Error{Kind: kind, Field: field, Value: value, cause: cause}
}

func (err *Error) Error() string {
	if err == nil {
		return "<nil>"
	}
	msg := sentinels[err.Kind].Error()
	if err.Field != "" {
		msg = fmt.Sprintf("%s: %s", err.Field, msg)
	}
	if err.cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.cause)
	}
	return msg
}

func (err *Error) Cause() error {
	return err.cause
}

func (err *Error) Unwrap() error {
	return err.cause
}

// Is matches the sentinel of the error's kind, so errors.Is(err, ErrInvalidGroup) works
// without exposing the concrete type.
func (err *Error) Is(target error) bool {
	s, ok := sentinels[err.Kind]
	return ok && s == target
}

// KindOf returns the taxonomy kind of err, or "" when err is not an input error.
// Anything that yields "" must be treated as an internal fault.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
