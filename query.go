package sqlqb

// Query is the result of rendering a statement: its final SQL text and the
// parameters bound to its placeholders. A Query does not change after it
// is created, and can be handed to code that executes it on its own terms.
type Query struct {
	sql    string
	args   []interface{}
	params *Params

	// inline is the SQL with its values written as literals, for
	// statements whose placeholders no driver can prepare (column defaults
	// of CREATE TABLE). It is empty when the query binds normally.
	inline    string
	inlineErr error
}

// NewQuery creates a positional-style Query from SQL text and arguments
func NewQuery(sql string, args ...interface{}) *Query {
	return &Query{sql: sql, args: append([]interface{}{}, args...)}
}

// NewNamedQuery creates a named-style Query from SQL text and parameters
func NewNamedQuery(sql string, params *Params) *Query {
	params = params.Clone()
	return &Query{sql: sql, args: params.Values(), params: params}
}

// SQL returns the query's SQL text
func (q *Query) SQL() string {
	return q.sql
}

// Args returns the query's parameter values in order. For positional-style
// queries this is the order of "?" placeholders in the SQL.
func (q *Query) Args() []interface{} {
	return append([]interface{}{}, q.args...)
}

// Params returns a copy of the named parameters of a named-style query,
// or nil for positional-style queries.
func (q *Query) Params() *Params {
	if q.params == nil {
		return nil
	}
	return q.params.Clone()
}

// Named reports whether the query uses named (":name") placeholders
func (q *Query) Named() bool {
	return q.params != nil
}

// String implements fmt.Stringer, returning the SQL text
func (q *Query) String() string {
	return q.sql
}

// inlined reports whether the query must run with its values inlined
func (q *Query) inlined() bool {
	return q.inline != "" || q.inlineErr != nil
}
