package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPersistence         = errors.New("persistence failed")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// PersistenceError reports a store that rejected or could not serve an operation.
// Op names the repository operation, for example "save order".
type PersistenceError struct {
	Op    string
	Cause error
}

func NewPersistenceError(op string) *PersistenceError {
	return &PersistenceError{Op: op}
}

func NewPersistenceErrorWithCause(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Op), e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Cause}
}

// ConcurrencyConflictError reports a write against a stale concurrency token.
// It matches both ErrConcurrencyConflict and ErrPersistence.
type ConcurrencyConflictError struct {
	Entity          string
	ID              any
	ExpectedVersion int64
}

func NewConcurrencyConflictError(entity string, id any, expectedVersion int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity, ID: id, ExpectedVersion: expectedVersion}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s is not at version %d", ErrConcurrencyConflict, e.Entity, e.ID, e.ExpectedVersion)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

func (e *ConcurrencyConflictError) Is(target error) bool {
	return target == ErrPersistence
}
