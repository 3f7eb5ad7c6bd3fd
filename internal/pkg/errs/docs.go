// Package errs provides the error taxonomy shared by the orchestrator.
//
// Every error type follows the same shape: a sentinel variable, a struct carrying
// the details, New…/New…WithCause constructors, Error() and Unwrap(). Callers
// classify with errors.Is against the sentinels and extract details with errors.As.
//
// Families:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError.
//     Bad input that is never persisted. ValidationFields flattens them for the ingress.
//   - ObjectNotFoundError: a read miss, mapped to "not found" at the boundary.
//   - PersistenceError and ConcurrencyConflictError: the store rejected a write.
//     A conflict also matches ErrPersistence.
//   - PublishError: the notification transport failed. Recovered by the caller.
//   - IllegalTransitionError: state machine misuse, a programming error.
package errs
