package sqlqb

// InsertStmt represents a positional-style INSERT statement
type InsertStmt struct {
	*stmt
}

// Insert creates a new InsertStmt object inserting the provided values.
// Columns are rendered in the order of the payload. The statement has no
// connection; use DB.Insert to create one that can be executed.
func Insert(values *Params) *InsertStmt {
	return newInsert(newRunner(nil), values)
}

// Insert creates a new InsertStmt object bound to the database
func (db *DB) Insert(values *Params) *InsertStmt {
	return newInsert(db.runner(), values)
}

// InsertInto creates a new InsertStmt object bound to the database, for
// the provided table. Values are added with Set or ValueMap.
func (db *DB) InsertInto(table string) *InsertStmt {
	return db.Insert(nil).Into(table)
}

func newInsert(r runner, values *Params) *InsertStmt {
	stmt := &InsertStmt{newStmt(r, KindInsert)}
	stmt.state.setPayload(values)
	return stmt
}

// Into sets the table to insert into
func (stmt *InsertStmt) Into(table string) *InsertStmt {
	stmt.state.table = table
	return stmt
}

// Set adds a column and its value to the insert. Setting a column twice
// replaces its value.
func (stmt *InsertStmt) Set(col string, value interface{}) *InsertStmt {
	stmt.state.setPayload(stmt.state.payload.Set(col, value))
	return stmt
}

// ValueMap receives a map of columns and values to insert. Since maps
// are unordered, its columns are added in alphabetical order.
func (stmt *InsertStmt) ValueMap(vals map[string]interface{}) *InsertStmt {
	stmt.state.setPayload(stmt.state.payload.merge(MapParams(vals)))
	return stmt
}
