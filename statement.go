package sqlqb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStmt is an interface representing a positional-style SQL statement.
// All statement types implement it.
type SQLStmt interface {
	ToSQL() (asSQL string, bindings []interface{})
}

// Statement is a base struct for all statement types in the library.
type Statement struct {
	// ErrHandlers is a list of error handler functions, called with every
	// error a statement's execution fails with
	ErrHandlers []func(err error)
}

// HandleError receives an error value, and executes all of the statements
// error handlers with it.
func (stmt *Statement) HandleError(err error) {
	if stmt == nil || err == nil {
		return
	}
	for _, handler := range stmt.ErrHandlers {
		handler(err)
	}
}

// stmt is what all positional-style statements share: the clause state
// every step writes to, and the runner executing the rendered result.
type stmt struct {
	runner
	state *state
	errs  []error
}

func newStmt(r runner, kind Kind) *stmt {
	s := &stmt{runner: r, state: newState()}
	s.state.kind = kind
	return s
}

func (s *stmt) where(field, operator string, value interface{}, joiner Joiner) {
	s.state.conditions = s.state.conditions.add(field, operator, value, joiner)
}

func (s *stmt) limit(method string, target *optionalInt, value int64) {
	if value < 0 {
		s.errs = append(s.errs, fmt.Errorf("%s(%d): %w", method, value, ErrNegativeValue))
		return
	}
	target.to(value)
}

// ToSQL generates the statement's SQL and returns the list of bindings
// matching its "?" placeholders. It is used internally by Exec, GetRow
// and GetAll, but is exported if you wish to use it directly.
func (s *stmt) ToSQL() (asSQL string, bindings []interface{}) {
	q := s.GetQuery()
	return q.SQL(), q.Args()
}

// GetQuery renders the statement into a Query
func (s *stmt) GetQuery() *Query {
	return s.state.render(positionalStyle)
}

// Err returns the errors recorded by invalid steps (e.g. a negative
// limit), joined, or nil if there are none
func (s *stmt) Err() error {
	return errors.Join(s.errs...)
}

// Exec executes the statement, returning the standard sql.Result struct
// and an error if the query failed.
func (s *stmt) Exec(ctx context.Context) (sql.Result, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.exec(ctx, s.GetQuery())
}

// GetRow executes the statement and loads the first resulting row into
// the provided variable (which may be a simple variable if only one
// column is returned, or a struct if multiple columns are returned)
func (s *stmt) GetRow(ctx context.Context, into interface{}) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.fetch(ctx, s.GetQuery(), into, true)
}

// GetAll executes the statement and loads all resulting rows into the
// provided slice variable
func (s *stmt) GetAll(ctx context.Context, into interface{}) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.fetch(ctx, s.GetQuery(), into, false)
}

// GetMaps executes the statement and returns all resulting rows as maps
// of column names to values
func (s *stmt) GetMaps(ctx context.Context) ([]map[string]interface{}, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.fetchMaps(ctx, s.GetQuery())
}

func (s *stmt) check() error {
	err := s.Err()
	if err != nil {
		s.HandleError(err)
	}
	return err
}
