package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"
)

var (
	// ErrProductionOrderIsNotConstructed is returned when a ProductionOrder instance was
	// not created through NewProductionOrder or RestoreProductionOrder.
	ErrProductionOrderIsNotConstructed = errors.New("ProductionOrder must be created via NewProductionOrder constructor")
)

// now is the aggregate clock. Timestamps are UTC with microsecond precision so
// they survive a round trip through every supported store unchanged.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ProductionOrder is the aggregate root for one book run. It owns the
// BookSpecification and enforces the lifecycle defined by State.
//
// ProductionOrder follows these invariants:
//   - Identity is absent (zero) until a repository assigns one on first save
//   - The specification never changes after construction
//   - createdAt <= orchestratedAt whenever orchestratedAt is present
//   - rejectionReason is present if and only if the state is Rejected
//   - version is 0 before the first save and is advanced only by repositories
//
// Repositories never mutate the instance they are given; they return a fresh
// aggregate carrying the stored identity and version.
type ProductionOrder struct {
	// id is assigned by the store
	id kernel.UUID

	spec  BookSpecification
	state State

	createdAt      time.Time
	orchestratedAt *time.Time

	rejectionReason *string

	// version is the optimistic concurrency token
	version int64

	isConstructed bool
}

// NewProductionOrder creates a Pending order for spec. It performs no I/O and
// assigns no identity.
//
// Parameters:
//   - spec: a BookSpecification built by NewBookSpecification
//
// Returns:
//   - *ProductionOrder: the new order, state Pending, createdAt set to now
//   - error: ErrBookSpecificationIsNotConstructed for a zero-value specification
//
// Example:
//
//	spec, _ := NewBookSpecification("Dune", "Frank Herbert", 100, Hardcover, Glossy, 2)
//	o, err := NewProductionOrder(spec)
//	// o.State() == Pending, o.IsPersisted() == false
func NewProductionOrder(spec BookSpecification) (*ProductionOrder, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &ProductionOrder{
		spec:          spec,
		state:         Pending,
		createdAt:     now(),
		isConstructed: true,
	}, nil
}

// RestoreProductionOrder rehydrates an order from storage. Every field is
// checked against the aggregate invariants; a row that violates them is
// reported instead of being loaded.
func RestoreProductionOrder(
	id kernel.UUID,
	spec BookSpecification,
	state State,
	createdAt time.Time,
	orchestratedAt *time.Time,
	rejectionReason *string,
	version int64,
) (*ProductionOrder, error) {
	if err := errors.Join(
		id.Validate(),
		spec.Validate(),
		state.Validate(),
		validateCreatedAt(createdAt),
		validateVersion(version),
	); err != nil {
		return nil, err
	}

	o := &ProductionOrder{
		id:            id,
		spec:          spec,
		state:         state,
		createdAt:     createdAt.UTC(),
		version:       version,
		isConstructed: true,
	}

	if orchestratedAt != nil {
		at := orchestratedAt.UTC()
		if at.Before(o.createdAt) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"orchestratedAt",
				fmt.Errorf("%s is before createdAt %s", at.Format(time.RFC3339Nano), o.createdAt.Format(time.RFC3339Nano)),
			)
		}
		o.orchestratedAt = &at
	}

	switch {
	case state == Pending && o.orchestratedAt != nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("orchestratedAt", errors.New("a pending order has not been orchestrated"))
	case state == Orchestrated && o.orchestratedAt == nil:
		return nil, errs.NewValueIsRequiredError("orchestratedAt")
	}

	switch {
	case state == Rejected && (rejectionReason == nil || strings.TrimSpace(*rejectionReason) == ""):
		return nil, errs.NewValueIsRequiredError("rejectionReason")
	case state != Rejected && rejectionReason != nil:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"rejectionReason",
			fmt.Errorf("an order in state %s carries no rejection reason", state),
		)
	case rejectionReason != nil:
		reason := *rejectionReason
		o.rejectionReason = &reason
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *ProductionOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrProductionOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two persisted orders by identity. Orders without an
// identity are never equal to anything.
func (o *ProductionOrder) IsEqual(other *ProductionOrder) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

// ID returns the store-assigned identity, or the zero UUID before the first save.
func (o *ProductionOrder) ID() kernel.UUID {
	return o.id
}

func (o *ProductionOrder) Specification() BookSpecification {
	return o.spec
}

func (o *ProductionOrder) State() State {
	return o.state
}

func (o *ProductionOrder) CreatedAt() time.Time {
	return o.createdAt
}

// OrchestratedAt returns the orchestration time and whether it is set.
func (o *ProductionOrder) OrchestratedAt() (time.Time, bool) {
	if o.orchestratedAt == nil {
		return time.Time{}, false
	}
	return *o.orchestratedAt, true
}

// RejectionReason returns the operator supplied reason and whether it is set.
func (o *ProductionOrder) RejectionReason() (string, bool) {
	if o.rejectionReason == nil {
		return "", false
	}
	return *o.rejectionReason, true
}

// Version returns the concurrency token the order was loaded or saved with.
func (o *ProductionOrder) Version() int64 {
	return o.version
}

// IsPersisted reports whether a repository has stored the order at least once.
func (o *ProductionOrder) IsPersisted() bool {
	return !o.id.IsZero()
}

// MarkOrchestrated moves a Pending order to Orchestrated and records when.
//
// This method enforces the following business rules:
//   - The order must be Pending
//   - It succeeds at most once; a second call returns *errs.IllegalTransitionError
//
// Returns:
//   - nil on success
//   - *errs.IllegalTransitionError if the order is not Pending
//
// orchestratedAt is never earlier than createdAt, even if the wall clock
// stepped backwards in between.
func (o *ProductionOrder) MarkOrchestrated() error {
	next, err := o.state.Orchestrate()
	if err != nil {
		return err
	}

	at := now()
	if at.Before(o.createdAt) {
		at = o.createdAt
	}

	o.state = next
	o.orchestratedAt = &at
	return nil
}

// Reject moves the order to Rejected from any state, replacing any earlier
// reason. It is an operator override and is not part of the creation workflow.
//
// Returns:
//   - nil on success
//   - *errs.ValueIsRequiredError if reason is blank
func (o *ProductionOrder) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	o.state = o.state.Reject()
	o.rejectionReason = &reason
	return nil
}

func validateCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	return nil
}

func validateVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, nil)
	}
	return nil
}
