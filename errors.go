package sqlqb

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionRequired is returned by Commit, Get, First, Exec, GetRow
	// and GetAll when the statement has no connection to run on.
	ErrConnectionRequired = errors.New("a connection is required to execute statements")

	// ErrStatementPreparation indicates the connection could not prepare
	// the rendered SQL (malformed SQL, unknown table, etc.)
	ErrStatementPreparation = errors.New("failed preparing statement")

	// ErrFocusUndefined indicates that a comparison or column method was
	// called without a preceding Where/OrWhere or Field call.
	ErrFocusUndefined = errors.New("no field in focus")

	// ErrNegativeValue indicates a negative LIMIT or OFFSET
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrUnsupportedDefault indicates a column default that can't be
	// written as an SQL literal, which CREATE TABLE statements need when
	// executed
	ErrUnsupportedDefault = errors.New("unsupported column default")
)

// QueryError is returned when a rendered statement fails at the connection
// layer. It unwraps to both its Kind (one of the sentinel errors above) and
// the underlying driver error.
type QueryError struct {
	Query string
	Kind  error
	Err   error
}

// Error returns the error message
func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (query: %s)", e.Kind, e.Err, e.Query)
	}
	return fmt.Sprintf("%s (query: %s)", e.Kind, e.Query)
}

// Unwrap returns the error kind and the underlying error
func (e *QueryError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newPrepareError(query string, err error) *QueryError {
	return &QueryError{Query: query, Kind: ErrStatementPreparation, Err: err}
}

func focusError(method string) error {
	return fmt.Errorf("%s: %w", method, ErrFocusUndefined)
}
