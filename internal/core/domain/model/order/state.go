package order

import (
	"fmt"
	"strings"

	"orchestrator/internal/pkg/errs"
)

// State represents the lifecycle state of a production order.
//
// State transitions driven by this service:
//
//	Pending ──> Orchestrated ──> (Scheduled ──> InProgress ──> Completed)
//	   │             │                 downstream only
//	   └─────────────┴──────> Rejected  (from any state)
//
// Scheduled, InProgress and Completed belong to the downstream scheduler.
// They are recognised when reading stored orders but never entered here.
type State int

const (
	// Unknown is the zero value and is never valid.
	Unknown State = iota

	// Pending is the initial state of a freshly created order.
	Pending

	// Orchestrated means the order was persisted and a notification was attempted.
	Orchestrated

	Scheduled
	InProgress
	Completed

	// Rejected is an operator override reachable from any state.
	Rejected
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:      "UNKNOWN",
		Pending:      "PENDING",
		Orchestrated: "ORCHESTRATED",
		Scheduled:    "SCHEDULED",
		InProgress:   "IN_PROGRESS",
		Completed:    "COMPLETED",
		Rejected:     "REJECTED",
	}
}

// String returns the upper-case wire name used for persistence and HTTP responses.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Lower returns the lower-case name carried in notification payloads.
func (s State) Lower() string {
	return strings.ToLower(s.String())
}

// ParseState maps a stored name back to a State. Matching is case-insensitive.
func ParseState(s string) (State, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for state, str := range getStateStrings() {
		if state != Unknown && str == name {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// Validate checks that s is one of the defined states.
func (s State) Validate() error {
	if _, ok := getStateStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether no further lifecycle transition is expected.
func (s State) IsTerminal() bool {
	return s == Completed || s == Rejected
}

// Orchestrate returns the state that follows a successful orchestration.
// Only Pending may be orchestrated; any other state yields an
// *errs.IllegalTransitionError, including Orchestrated itself.
func (s State) Orchestrate() (State, error) {
	if s != Pending {
		return s, errs.NewIllegalTransitionError(s.String(), Orchestrated.String())
	}
	return Orchestrated, nil
}

// Reject returns Rejected. The override is unconditional.
func (s State) Reject() State {
	return Rejected
}
