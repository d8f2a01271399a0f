// Package sqlqb is a fluent SQL statement builder for Go projects, based
// on github.com/jmoiron/sqlx. It renders MySQL-flavored SQL (identifiers
// are quoted with backticks) for SELECT, INSERT, UPDATE, DELETE,
// CREATE TABLE and DROP statements, along with the parameters bound to
// the statement's placeholders.
//
// Two builder styles share the same rendering engine. The named style,
// Builder, accumulates one statement at a time and binds values to named
// placeholders (":name" for values, ":cname" for conditions):
//
//	q, err := sqlqb.NewBuilder(nil).
//		From("user").
//		Where("id").GreaterThan(10).
//		OrWhere("name").Equal("Mamadou").
//		Select().
//		GetQuery()
//	// q.SQL():    SELECT * FROM `user` WHERE id > :cid OR name = :cname;
//	// q.Params(): cid=10, cname="Mamadou"
//
// The positional style creates a statement object per statement, and binds
// values to "?" placeholders in the order they appear:
//
//	asSQL, bindings := sqlqb.Delete().
//		From("users").
//		Where("id", sqlqb.OpEq, 5).
//		OrWhere("id", sqlqb.OpEq, 6).
//		ToSQL()
//	// asSQL:    DELETE FROM `users` WHERE id = ? OR id = ?;
//	// bindings: [5 6]
//
// Rendering never requires a database connection. To execute statements,
// create builders from a *DB, which wraps an existing *sql.DB or *sqlx.DB
// connection pool:
//
//	import (
//		"context"
//		"database/sql"
//		"github.com/ido50/sqlqb"
//		_ "sql driver of choice"
//	)
//
//	func main() {
//		db, err := sql.Open(driver, "dsn")
//		if err != nil {
//			panic(err)
//		}
//
//		// find one row in the database and load it
//		// into a struct variable
//		var row someStruct
//		err = sqlqb.New(db, driver). // if using sqlx: sqlqb.Newx(dbx)
//			Builder().
//			Select().
//			From("some-table").
//			Where("id").Equal(1).
//			First(context.Background(), &row)
//		if err != nil {
//			panic(err)
//		}
//
//		fmt.Printf("%+v\n", row)
//	}
//
// sqlqb leverages sqlx for loading query results. Please make sure you
// are familiar with how sqlx works in order to understand how row scanning
// is performed. You may need to add `db` struct tags to your Go structures.
package sqlqb
