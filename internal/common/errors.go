// Package common defines shared constants and errors used across the store,
// the transfer engine and the transport layers. Callers should use errors.Is
// and errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation addresses a row that does not
	// exist (e.g. updating an entry by an unknown id).
	ErrNotFound = errors.New("not found")

	// ErrValidation and ErrStorage let callers test the error kind with
	// errors.Is without unpacking the typed errors below.
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
)

// ValidationError reports missing or malformed caller input. It is produced
// before anything reaches the storage engine.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// StorageError wraps a failure of the underlying engine: driver errors,
// constraint violations, connection loss, begin/commit failures.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) true for any *StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError for operation op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// AsStorageError returns err unchanged when it already carries a kind
// (validation, storage, not found) and wraps it as a StorageError otherwise.
// A nil err stays nil.
func AsStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrStorage) || errors.Is(err, ErrNotFound) {
		return err
	}
	return NewStorageError(op, err)
}
