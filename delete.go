package sqlqb

// DeleteStmt represents a positional-style DELETE statement
type DeleteStmt struct {
	*stmt
}

// Delete creates a new DeleteStmt object. The statement has no connection;
// use DB.Delete to create one that can be executed.
func Delete() *DeleteStmt {
	return &DeleteStmt{newStmt(newRunner(nil), KindDelete)}
}

// Delete creates a new DeleteStmt object bound to the database
func (db *DB) Delete() *DeleteStmt {
	return &DeleteStmt{newStmt(db.runner(), KindDelete)}
}

// DeleteFrom creates a new DeleteStmt object bound to the database, for
// the provided table
func (db *DB) DeleteFrom(table string) *DeleteStmt {
	return db.Delete().From(table)
}

// From sets the table to delete from
func (stmt *DeleteStmt) From(table string) *DeleteStmt {
	stmt.state.table = table
	return stmt
}

// Where adds a condition comparing field with value, joined to previous
// conditions with AND
func (stmt *DeleteStmt) Where(field, operator string, value interface{}) *DeleteStmt {
	stmt.where(field, operator, value, And)
	return stmt
}

// OrWhere adds a condition joined to previous conditions with OR
func (stmt *DeleteStmt) OrWhere(field, operator string, value interface{}) *DeleteStmt {
	stmt.where(field, operator, value, Or)
	return stmt
}

// Limit sets a limit on the number of rows deleted
func (stmt *DeleteStmt) Limit(limit int64) *DeleteStmt {
	stmt.limit("Limit", &stmt.state.limit, limit)
	return stmt
}
