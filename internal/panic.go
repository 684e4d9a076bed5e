// Copyright © 2021 Io FinNet Group, Inc.

// Package internal holds test helpers shared across packages.
package internal

import (
	"errors"
	"fmt"
)

var (
	ErrNoPanic      = errors.New("function returned without panicking")
	ErrPanicMissing = errors.New("panicked with a nil value")
)

// Recover runs f and returns the value it panicked with, if any.
func Recover(f func()) (value interface{}, panicked bool) {
	defer func() {
		if value = recover(); value != nil {
			panicked = true
		}
	}()
	f()
	return nil, false
}

// ExpectPanic runs f and checks that it panics. When want is non-nil the panic value
// must render to the same message as want.
func ExpectPanic(want error, f func()) (bool, error) {
	value, panicked := Recover(f)
	if !panicked {
		return false, ErrNoPanic
	}
	if want == nil {
		return true, nil
	}
	if value == nil {
		return false, ErrPanicMissing
	}
	if got := fmt.Sprint(value); got != want.Error() {
		return false, fmt.Errorf("expected panic %q, got %q", want, got)
	}
	return true, nil
}
