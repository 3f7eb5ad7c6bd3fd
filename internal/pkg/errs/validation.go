package errs

import (
	"errors"
	"fmt"
)

// IsValidation reports whether err carries bad input anywhere in its tree.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// ValidationFields flattens the validation errors found in err into a
// field -> message map. Joined errors are walked; the first message per field wins.
func ValidationFields(err error) map[string]string {
	fields := make(map[string]string)
	collectFields(err, fields)
	return fields
}

func collectFields(err error, fields map[string]string) {
	if err == nil {
		return
	}

	field, msg, ok := fieldMessage(err)
	if ok {
		if _, seen := fields[field]; !seen {
			fields[field] = msg
		}
		return
	}

	switch u := err.(type) { //nolint:errorlint // walking the tree by hand
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			collectFields(inner, fields)
		}
	case interface{ Unwrap() error }:
		collectFields(u.Unwrap(), fields)
	}
}

func fieldMessage(err error) (string, string, bool) {
	switch e := err.(type) { //nolint:errorlint // leaf types only
	case *ValueIsRequiredError:
		return e.ParamName, e.ParamName + " is required", true
	case *ValueIsOutOfRangeError:
		if e.Max == nil {
			return e.ParamName, fmt.Sprintf("%s must be >= %v", e.ParamName, e.Min), true
		}
		return e.ParamName, fmt.Sprintf("%s must be between %v and %v", e.ParamName, e.Min, e.Max), true
	case *ValueIsInvalidError:
		if e.Cause != nil {
			return e.ParamName, e.Cause.Error(), true
		}
		return e.ParamName, e.ParamName + " is invalid", true
	}
	return "", "", false
}
