package services

import (
	"fmt"
	"strings"

	"orchestrator/internal/pkg/errs"
)

// NotifyMode decides what a failed OrderCreated publish does to CreateOrder.
type NotifyMode int

const (
	// NotifyBestEffort logs the publish failure and completes the workflow.
	// The order reaches Orchestrated although no consumer was told about it.
	NotifyBestEffort NotifyMode = iota

	// NotifyRequired aborts the workflow with the *errs.PublishError. The
	// order stays durably Pending.
	NotifyRequired
)

func (m NotifyMode) String() string {
	switch m {
	case NotifyBestEffort:
		return "best-effort"
	case NotifyRequired:
		return "required"
	}
	return fmt.Sprintf("NotifyMode(%d)", int(m))
}

// ParseNotifyMode accepts "best-effort" or "required".
func ParseNotifyMode(s string) (NotifyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-effort", "besteffort":
		return NotifyBestEffort, nil
	case "required":
		return NotifyRequired, nil
	}
	return NotifyBestEffort, errs.NewValueIsInvalidErrorWithCause(
		"notifyMode",
		fmt.Errorf("%q is not one of best-effort, required", s),
	)
}
