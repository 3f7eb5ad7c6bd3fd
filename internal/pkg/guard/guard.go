// Package guard detects values that bypassed their constructor.
//
// Embed a ConstructorGuard in a struct with unexported fields, set it with
// NewConstructorGuard inside the constructor and call Validate before use.
// A zero-value struct carries a zero-value guard and fails validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns notConstructed (or ErrDefaultConstructorGuard when it is nil)
// unless the guard was produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
