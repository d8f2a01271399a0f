package sqlqb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type focusKind int

const (
	focusNone focusKind = iota
	focusField
	focusColumn
)

// focus is what comparison and column methods apply to: the field of the
// last Where/OrWhere call, or the column of the last Field/Column call
type focus struct {
	kind   focusKind
	name   string
	joiner Joiner
	column *Column
}

// Builder is the named-style statement builder. Its methods mutate the
// builder and return it, so calls can be chained; statement kind, target
// and clauses may be given in any order. Values are bound to named
// placeholders: ":<field>" for INSERT/UPDATE payloads and column defaults,
// ":c<field>" for conditions.
//
// A Builder holds one statement at a time. Call Reset (or create a new
// Builder) before starting an unrelated statement. Builders are not safe
// for concurrent use.
type Builder struct {
	runner
	state *state
	focus focus
	errs  []error
}

// NewBuilder creates a Builder executing statements on the provided
// connection. conn may be nil when statements are only rendered.
func NewBuilder(conn Connection) *Builder {
	return &Builder{
		runner: newRunner(conn),
		state:  newState(),
	}
}

// SetConnection attaches a connection to the builder, or detaches the
// current one when conn is nil
func (b *Builder) SetConnection(conn Connection) *Builder {
	b.conn = conn
	return b
}

// SetLogger sets the logger statements are logged to when executed
func (b *Builder) SetLogger(logger logrus.FieldLogger) *Builder {
	if logger == nil {
		logger = NopLogger()
	}
	b.logger = logger
	return b
}

// Select makes the statement a SELECT of the provided fields. Without
// fields, all columns are selected.
func (b *Builder) Select(fields ...string) *Builder {
	b.state.kind = KindSelect
	b.state.fields = append([]string{}, fields...)
	return b
}

// Everything selects all columns ("*"), dropping fields provided to
// Select
func (b *Builder) Everything() *Builder {
	b.state.fields = nil
	return b
}

// Insert makes the statement an INSERT of the provided payload. Columns
// are rendered in the payload's order.
func (b *Builder) Insert(payload *Params) *Builder {
	b.state.kind = KindInsert
	b.state.setPayload(payload)
	return b
}

// Update makes the statement an UPDATE setting the columns of the payload
func (b *Builder) Update(payload *Params) *Builder {
	b.state.kind = KindUpdate
	b.state.setPayload(payload)
	return b
}

// Delete makes the statement a DELETE
func (b *Builder) Delete() *Builder {
	b.state.kind = KindDelete
	return b
}

// Create makes the statement a CREATE TABLE. Columns are defined with
// Field or Column.
func (b *Builder) Create() *Builder {
	b.state.kind = KindCreateTable
	return b
}

// Drop makes the statement a DROP TABLE, or a DROP DATABASE if the target
// is set with Database
func (b *Builder) Drop() *Builder {
	b.state.kind = KindDropTable
	return b
}

// From sets the table the statement operates on
func (b *Builder) From(table string) *Builder {
	b.state.table = table
	b.state.database = false
	return b
}

// Into is the same as From, reading better for INSERT statements
func (b *Builder) Into(table string) *Builder {
	return b.From(table)
}

// Table is the same as From, reading better for CREATE and DROP statements
func (b *Builder) Table(name string) *Builder {
	return b.From(name)
}

// Database sets a database as the target of a DROP statement
func (b *Builder) Database(name string) *Builder {
	b.state.table = name
	b.state.database = true
	return b
}

// Where focuses a field for the comparison method that follows, which adds
// a condition joined to the previous ones with AND
func (b *Builder) Where(field string) *Builder {
	b.focus = focus{kind: focusField, name: field, joiner: And}
	return b
}

// OrWhere is the same as Where, but the condition is joined with OR
func (b *Builder) OrWhere(field string) *Builder {
	b.focus = focus{kind: focusField, name: field, joiner: Or}
	return b
}

// Equal adds a condition requiring the focused field to equal value
func (b *Builder) Equal(value interface{}) *Builder {
	return b.compare("Equal", OpEq, value)
}

// Different adds a condition requiring the focused field to differ from
// value
func (b *Builder) Different(value interface{}) *Builder {
	return b.compare("Different", OpNe, value)
}

// GreaterThan adds a condition requiring the focused field to be greater
// than value
func (b *Builder) GreaterThan(value interface{}) *Builder {
	return b.compare("GreaterThan", OpGt, value)
}

// LowerThan adds a condition requiring the focused field to be lower than
// value
func (b *Builder) LowerThan(value interface{}) *Builder {
	return b.compare("LowerThan", OpLt, value)
}

// GreaterThanAndEqualTo adds a condition requiring the focused field to be
// greater than or equal to value
func (b *Builder) GreaterThanAndEqualTo(value interface{}) *Builder {
	return b.compare("GreaterThanAndEqualTo", OpGte, value)
}

// LowerThanAndEqualTo adds a condition requiring the focused field to be
// lower than or equal to value
func (b *Builder) LowerThanAndEqualTo(value interface{}) *Builder {
	return b.compare("LowerThanAndEqualTo", OpLte, value)
}

// Compare adds a condition comparing the focused field with value using
// the provided operator. The operator is rendered verbatim.
//
// The field stays in focus, so comparisons can be chained for range
// conditions:
//
//	b.Where("age").GreaterThanAndEqualTo(18).LowerThan(65)
func (b *Builder) Compare(operator string, value interface{}) *Builder {
	return b.compare("Compare", operator, value)
}

func (b *Builder) compare(method, operator string, value interface{}) *Builder {
	if b.focus.kind != focusField {
		b.errs = append(b.errs, focusError(method))
		return b
	}

	b.state.conditions = b.state.conditions.add(b.focus.name, operator, value, b.focus.joiner)
	return b
}

// Limit sets a LIMIT clause. Zero is a valid limit.
func (b *Builder) Limit(limit int64) *Builder {
	if limit < 0 {
		b.errs = append(b.errs, fmt.Errorf("Limit(%d): %w", limit, ErrNegativeValue))
		return b
	}
	b.state.limit.to(limit)
	return b
}

// Offset sets an OFFSET clause
func (b *Builder) Offset(offset int64) *Builder {
	if offset < 0 {
		b.errs = append(b.errs, fmt.Errorf("Offset(%d): %w", offset, ErrNegativeValue))
		return b
	}
	b.state.offset.to(offset)
	return b
}

// Kind returns the kind of statement the builder currently produces
func (b *Builder) Kind() Kind {
	return b.state.resolveKind()
}

// Err returns the errors recorded by misused builder methods (e.g. a
// comparison without a focused field), joined, or nil if there are none
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// GetQuery renders the statement. The returned error is the same as Err();
// the query is rendered from the valid calls even when it is not nil.
func (b *Builder) GetQuery() (*Query, error) {
	return b.state.render(namedStyle), b.Err()
}

// GetSQL renders the statement and returns its SQL. It does not report
// misused builder methods: a comparison called without a focused field is
// left out of the SQL, so a DELETE may render without its WHERE clause.
// Check Err, or use GetQuery, before running the SQL elsewhere.
func (b *Builder) GetSQL() string {
	return b.state.render(namedStyle).SQL()
}

// GetParameters renders the statement and returns its named parameters:
// the payload (or column defaults) followed by the condition values. Like
// GetSQL, it does not report recorded errors.
func (b *Builder) GetParameters() *Params {
	return b.state.render(namedStyle).Params()
}

// Reset clears the statement so the builder can be reused. The connection,
// logger and error handlers are kept.
func (b *Builder) Reset() *Builder {
	b.state = newState()
	b.focus = focus{}
	b.errs = nil
	return b
}

// Commit executes the statement, returning the result of the execution.
// It does not reset the builder.
func (b *Builder) Commit(ctx context.Context) (sql.Result, error) {
	q, err := b.executable()
	if err != nil {
		return nil, err
	}

	return b.exec(ctx, q)
}

// Get executes the statement and loads all resulting rows into dest, which
// must be a pointer to a slice. The builder is reset after rows were
// loaded successfully, so capture GetQuery() beforehand if needed.
func (b *Builder) Get(ctx context.Context, dest interface{}) error {
	return b.get(ctx, dest, false)
}

// First executes the statement and loads the first resulting row into
// dest. Like Get, it resets the builder on success. If there are no rows,
// sql.ErrNoRows is returned.
func (b *Builder) First(ctx context.Context, dest interface{}) error {
	return b.get(ctx, dest, true)
}

// GetMaps executes the statement and returns all resulting rows as maps
// of column names to values. Like Get, it resets the builder on success.
func (b *Builder) GetMaps(ctx context.Context) ([]map[string]interface{}, error) {
	q, err := b.executable()
	if err != nil {
		return nil, err
	}

	rows, err := b.fetchMaps(ctx, q)
	if err != nil {
		return nil, err
	}

	b.Reset()
	return rows, nil
}

func (b *Builder) get(ctx context.Context, dest interface{}, one bool) error {
	q, err := b.executable()
	if err != nil {
		return err
	}

	if err := b.fetch(ctx, q, dest, one); err != nil {
		return err
	}

	b.Reset()
	return nil
}

// executable renders the statement for execution, failing if there's no
// connection or builder methods were misused
func (b *Builder) executable() (*Query, error) {
	err := b.Err()
	if b.conn == nil {
		err = ErrConnectionRequired
	}

	if err != nil {
		b.logger.WithError(err).Error("statement not executed")
		b.HandleError(err)
		return nil, err
	}

	return b.state.render(namedStyle), nil
}
