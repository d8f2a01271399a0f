package sqlqb

// SelectStmt represents a positional-style SELECT statement
type SelectStmt struct {
	*stmt
}

// Select creates a new SelectStmt object, selecting the provided columns.
// Plain column names are quoted; expressions such as "COUNT(*) total" are
// used as-is. Without columns, all columns are selected. The statement has
// no connection; use DB.Select to create one that can be executed.
func Select(cols ...string) *SelectStmt {
	return newSelect(newRunner(nil), cols)
}

// Select creates a new SelectStmt object bound to the database
func (db *DB) Select(cols ...string) *SelectStmt {
	return newSelect(db.runner(), cols)
}

func newSelect(r runner, cols []string) *SelectStmt {
	stmt := &SelectStmt{newStmt(r, KindSelect)}
	stmt.state.fields = append([]string{}, cols...)
	return stmt
}

// Everything selects all columns ("*"), dropping columns provided to
// Select
func (stmt *SelectStmt) Everything() *SelectStmt {
	stmt.state.fields = nil
	return stmt
}

// From sets the table to select from
func (stmt *SelectStmt) From(table string) *SelectStmt {
	stmt.state.table = table
	return stmt
}

// Where adds a condition comparing field with value, joined to previous
// conditions with AND. The operator is rendered verbatim.
func (stmt *SelectStmt) Where(field, operator string, value interface{}) *SelectStmt {
	stmt.where(field, operator, value, And)
	return stmt
}

// OrWhere adds a condition joined to previous conditions with OR
func (stmt *SelectStmt) OrWhere(field, operator string, value interface{}) *SelectStmt {
	stmt.where(field, operator, value, Or)
	return stmt
}

// Limit sets a limit on the number of rows returned
func (stmt *SelectStmt) Limit(limit int64) *SelectStmt {
	stmt.limit("Limit", &stmt.state.limit, limit)
	return stmt
}

// Offset sets an OFFSET clause for the query
func (stmt *SelectStmt) Offset(offset int64) *SelectStmt {
	stmt.limit("Offset", &stmt.state.offset, offset)
	return stmt
}
