// Package errors defines the structured error type used for contract
// violations across the simulation and lifecycle packages.
package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	KindOutOfBounds     Kind = "out_of_bounds"
	KindNilHandle       Kind = "nil_handle"
	KindDoubleRelease   Kind = "double_release"
	KindUseAfterReclaim Kind = "use_after_reclaim"
	KindForeignObject   Kind = "foreign_object"
	KindAllocation      Kind = "allocation"
	KindInvalidInput    Kind = "invalid_input"
	KindCancelled       Kind = "cancelled"
)

// Sentinels for use with errors.Is. They match any *Error of the same kind.
var (
	ErrOutOfBounds     = &Error{Kind: KindOutOfBounds}
	ErrNilHandle       = &Error{Kind: KindNilHandle}
	ErrDoubleRelease   = &Error{Kind: KindDoubleRelease}
	ErrUseAfterReclaim = &Error{Kind: KindUseAfterReclaim}
	ErrForeignObject   = &Error{Kind: KindForeignObject}
	ErrAllocation      = &Error{Kind: KindAllocation}
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrCancelled       = &Error{Kind: KindCancelled}
)

// Error is the structured error type returned for contract violations.
type Error struct {
	Value  any
	Cause  error
	Op     string
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(e.Op)
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must match; the
// operation only has to match when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// OutOfBounds creates an error for a linear index outside [0, length).
func OutOfBounds(op string, index, length int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// CoordOutOfBounds creates an error for a (row, col) pair outside a grid.
func CoordOutOfBounds(op string, row, col, rows, cols int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("cell (%d,%d) outside %dx%d grid", row, col, rows, cols),
		Value:  [2]int{row, col},
	}
}

// NilHandle creates an error for dereferencing an empty handle.
func NilHandle(op, typeName string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNilHandle,
		Detail: fmt.Sprintf("empty handle to %s dereferenced", typeName),
	}
}

// DoubleRelease creates an error for releasing an object with no references left.
func DoubleRelease(op string, id uint64) *Error {
	return &Error{
		Op:     op,
		Kind:   KindDoubleRelease,
		Detail: fmt.Sprintf("object %d has no references to release", id),
		Value:  id,
	}
}

// UseAfterReclaim creates an error for touching an object that was reclaimed.
func UseAfterReclaim(op string, id uint64) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUseAfterReclaim,
		Detail: fmt.Sprintf("object %d already reclaimed", id),
		Value:  id,
	}
}

// ForeignObject creates an error for an object not owned by the registry.
func ForeignObject(op string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindForeignObject,
		Detail: "object does not belong to this registry",
	}
}

// Allocation creates an allocation failure error.
func Allocation(op, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Op:     op,
		Kind:   KindAllocation,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error.
func InvalidInput(op, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Op:     op,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Cancelled wraps a context error observed between units of work.
func Cancelled(op string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindCancelled,
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(op string, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
