package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("not authorized")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrDelivery          = errors.New("notification delivery failed")
	ErrSinkUnavailable   = errors.New("notification sink unavailable")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// StoreError wraps a driver failure so callers can match it with ErrStoreUnavailable
// while the original gorm error stays reachable through Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
