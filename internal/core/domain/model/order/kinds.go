package order

import (
	"fmt"
	"strings"

	"orchestrator/internal/pkg/errs"
)

// CoverKind is the binding style of a book run.
type CoverKind int

const (
	CoverUnknown CoverKind = iota
	Hardcover
	Softcover
)

// FinishKind is the paper finish of a book run.
type FinishKind int

const (
	FinishUnknown FinishKind = iota
	Glossy
	Matte
)

func (c CoverKind) String() string {
	switch c {
	case Hardcover:
		return "HARDCOVER"
	case Softcover:
		return "SOFTCOVER"
	case CoverUnknown:
	}
	return "UNKNOWN"
}

func (c CoverKind) Validate() error {
	if c != Hardcover && c != Softcover {
		return errs.NewValueIsInvalidErrorWithCause("coverKind", fmt.Errorf("%d is not a valid cover kind", c))
	}
	return nil
}

// ParseCoverKind accepts HARDCOVER or SOFTCOVER in any letter case.
func ParseCoverKind(s string) (CoverKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HARDCOVER":
		return Hardcover, nil
	case "SOFTCOVER":
		return Softcover, nil
	case "":
		return CoverUnknown, errs.NewValueIsRequiredError("coverKind")
	}
	return CoverUnknown, errs.NewValueIsInvalidErrorWithCause(
		"coverKind",
		fmt.Errorf("coverKind must be one of HARDCOVER, SOFTCOVER, got %q", s),
	)
}

func (f FinishKind) String() string {
	switch f {
	case Glossy:
		return "GLOSSY"
	case Matte:
		return "MATTE"
	case FinishUnknown:
	}
	return "UNKNOWN"
}

func (f FinishKind) Validate() error {
	if f != Glossy && f != Matte {
		return errs.NewValueIsInvalidErrorWithCause("finishKind", fmt.Errorf("%d is not a valid finish kind", f))
	}
	return nil
}

// ParseFinishKind accepts GLOSSY or MATTE in any letter case.
func ParseFinishKind(s string) (FinishKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GLOSSY":
		return Glossy, nil
	case "MATTE":
		return Matte, nil
	case "":
		return FinishUnknown, errs.NewValueIsRequiredError("finishKind")
	}
	return FinishUnknown, errs.NewValueIsInvalidErrorWithCause(
		"finishKind",
		fmt.Errorf("finishKind must be one of GLOSSY, MATTE, got %q", s),
	)
}
