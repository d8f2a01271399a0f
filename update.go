package sqlqb

// UpdateStmt represents a positional-style UPDATE statement
type UpdateStmt struct {
	*stmt
}

// Update creates a new UpdateStmt object setting the provided values. The
// statement has no connection; use DB.Update to create one that can be
// executed.
func Update(values *Params) *UpdateStmt {
	return newUpdate(newRunner(nil), values)
}

// Update creates a new UpdateStmt object bound to the database
func (db *DB) Update(values *Params) *UpdateStmt {
	return newUpdate(db.runner(), values)
}

func newUpdate(r runner, values *Params) *UpdateStmt {
	stmt := &UpdateStmt{newStmt(r, KindUpdate)}
	stmt.state.setPayload(values)
	return stmt
}

// From sets the table to update
func (stmt *UpdateStmt) From(table string) *UpdateStmt {
	stmt.state.table = table
	return stmt
}

// Table is the same as From
func (stmt *UpdateStmt) Table(table string) *UpdateStmt {
	return stmt.From(table)
}

// Set receives the name of a column and a new value. Multiple calls to Set
// can be chained together to modify multiple columns. Set can also be chained
// with calls to SetMap
func (stmt *UpdateStmt) Set(col string, value interface{}) *UpdateStmt {
	stmt.state.setPayload(stmt.state.payload.Set(col, value))
	return stmt
}

// SetMap receives a map of columns and values. Multiple calls to both Set and
// SetMap can be chained to modify multiple columns. Since maps are unordered,
// the map's columns are added in alphabetical order.
func (stmt *UpdateStmt) SetMap(updates map[string]interface{}) *UpdateStmt {
	stmt.state.setPayload(stmt.state.payload.merge(MapParams(updates)))
	return stmt
}

// Where adds a condition comparing field with value, joined to previous
// conditions with AND
func (stmt *UpdateStmt) Where(field, operator string, value interface{}) *UpdateStmt {
	stmt.where(field, operator, value, And)
	return stmt
}

// OrWhere adds a condition joined to previous conditions with OR
func (stmt *UpdateStmt) OrWhere(field, operator string, value interface{}) *UpdateStmt {
	stmt.where(field, operator, value, Or)
	return stmt
}

// Limit sets a limit on the number of rows updated
func (stmt *UpdateStmt) Limit(limit int64) *UpdateStmt {
	stmt.limit("Limit", &stmt.state.limit, limit)
	return stmt
}
