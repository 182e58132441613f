package daogen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("daogen: row not found")

	// ErrNotSingular is returned when a fetch that expects exactly one row
	// returns several.
	ErrNotSingular = errors.New("daogen: row not singular")

	// ErrNoIdentity is returned when an update or a delete is attempted on an
	// object whose identity is not set, or on a table without a single-column
	// primary key.
	ErrNoIdentity = errors.New("daogen: identity not set")

	// ErrNoIDGenerator is returned when a DAO generating identities saves a
	// new object but its configuration has no identifier generator.
	ErrNoIDGenerator = errors.New("daogen: no identifier generator configured")

	// ErrUnsupportedIDType is returned by identifier generators asked for a
	// type they cannot produce.
	ErrUnsupportedIDType = errors.New("daogen: unsupported identity type")
)

// NotFoundError represents an error when a row is not found.
type NotFoundError struct {
	label string
	value any // Optional: the key value that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.value != nil {
		return fmt.Sprintf("daogen: %s not found (value=%v)", e.label, e.value)
	}
	return fmt.Sprintf("daogen: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the table label.
func (e *NotFoundError) Label() string {
	return e.label
}

// Value returns the key value that was searched for, if available.
func (e *NotFoundError) Value() any {
	return e.value
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(label string, value any) *NotFoundError {
	return &NotFoundError{label: label, value: value}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError represents an error when a fetch expects a single row
// but receives several.
type NotSingularError struct {
	label string
	count int
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	return fmt.Sprintf("daogen: %s not singular (got %d rows, expected 1)", e.label, e.count)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Label returns the table label.
func (e *NotSingularError) Label() string {
	return e.label
}

// Count returns the number of rows.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError with the row count.
func NewNotSingularError(label string, count int) *NotSingularError {
	return &NotSingularError{label: label, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// QueryError wraps a query error with the table and operation.
type QueryError struct {
	Table string // Table being queried
	Op    string // Operation (e.g., "fetch", "count")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("daogen: querying %s (%s): %v", e.Table, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MutationError wraps a mutation error with the table and operation.
type MutationError struct {
	Table string // Table being mutated
	Op    string // Operation (e.g., "insert", "update", "delete")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("daogen: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
