package kernel

import (
	"orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating the zero (nil) UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id")

// UUID is an immutable identifier value object wrapping github.com/google/uuid.
// The zero value is the "absent" identity: an aggregate carries it until the
// persistence layer assigns a real one.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. Only repositories call it;
// aggregates never mint their own identity.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// ParseUUID parses the canonical, braced, urn or hyphen-less text forms.
// The nil UUID is rejected so a parsed identity is always usable as a key.
func ParseUUID(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes rebuilds an identifier from its 16 byte form, as stored by the repositories.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether no identity has been assigned yet.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
