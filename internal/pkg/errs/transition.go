package errs

import (
	"errors"
	"fmt"
)

var ErrIllegalTransition = errors.New("illegal transition")

// IllegalTransitionError reports a state machine misuse. It signals a workflow
// bug rather than an expected runtime condition.
type IllegalTransitionError struct {
	From string
	To   string
}

func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
