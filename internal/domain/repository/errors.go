package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrConstraint marks a write rejected because of the data itself
	// (unique/foreign key/check violation or a malformed batch). Safe to report.
	ErrConstraint = errors.New("storage constraint violated")
	// ErrUnavailable marks every other write failure: connectivity, cancellation, unknown.
	ErrUnavailable = errors.New("storage unavailable")
)

// StorageError classifies a failed commit. Kind is ErrConstraint or ErrUnavailable.
type StorageError struct {
	Kind       error
	Table      string
	Constraint string
	Err        error
}

func (e *StorageError) Error() string {
	msg := e.Kind.Error()
	if e.Table != "" {
		msg += " on " + e.Table
	}
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsConstraint reports whether err is a constraint failure, optionally on the named constraint.
func IsConstraint(err error, constraint string) bool {
	var se *StorageError
	if !errors.As(err, &se) || !errors.Is(se.Kind, ErrConstraint) {
		return false
	}
	return constraint == "" || se.Constraint == constraint
}
