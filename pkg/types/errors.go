package types

import (
	"errors"
	"fmt"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat     ErrKind = iota // size mismatch, out-of-bounds offset, malformed input
	ErrKindCapacity                  // region data buffer exhausted
	ErrKindNotFound                  // name absent (or creation declined)
	ErrKindPermission                // cannot open for write, caller not elevated
	ErrKindValidation                // bad name syntax, oversize value
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCapacity:
		return "capacity"
	case ErrKindNotFound:
		return "not found"
	case ErrKindPermission:
		return "permission"
	case ErrKindValidation:
		return "validation"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrFormat indicates a region or input that does not match the expected layout.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed property area"}
	// ErrCapacity indicates the region has no room left for another record.
	ErrCapacity = &Error{Kind: ErrKindCapacity, Msg: "property area full"}
	// ErrNotFound indicates a missing name.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrPermission indicates the caller may not perform the operation.
	ErrPermission = &Error{Kind: ErrKindPermission, Msg: "permission denied"}
	// ErrValidation indicates a rejected name or value.
	ErrValidation = &Error{Kind: ErrKindValidation, Msg: "invalid argument"}
)

// Errorf builds a typed error of kind k, wrapping cause when it is non-nil.
func Errorf(k ErrKind, cause error, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// IsKind reports whether err, or anything it wraps, is an *Error of kind k.
func IsKind(err error, k ErrKind) bool {
	var te *Error
	for err != nil {
		if errors.As(err, &te) {
			if te.Kind == k {
				return true
			}
			err = te.Err
			continue
		}
		return false
	}
	return false
}
