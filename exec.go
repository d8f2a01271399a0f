package sqlqb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// runner executes rendered queries on a connection
type runner struct {
	*Statement
	conn   Connection
	logger logrus.FieldLogger
}

func newRunner(conn Connection) runner {
	return runner{
		Statement: &Statement{},
		conn:      conn,
		logger:    NopLogger(),
	}
}

// exec prepares and executes a query that returns no rows. Queries that
// must run with their values inlined are executed directly, unprepared.
func (r *runner) exec(ctx context.Context, q *Query) (res sql.Result, err error) {
	if q.inlined() {
		err = r.withHandle(ctx, q, func(handle Handle) (err error) {
			if q.inlineErr != nil {
				return q.inlineErr
			}

			r.logger.WithField("sql", q.inline).Debug("executing statement")

			res, err = handle.ExecContext(ctx, q.inline)
			return err
		})
		return res, err
	}

	err = r.withStmt(ctx, q, func(prepared *sqlx.Stmt, args []interface{}) (err error) {
		res, err = prepared.ExecContext(ctx, args...)
		return err
	})
	return res, err
}

// fetch prepares and executes a query, loading the first row into dest
// if one is true, or all rows (into a slice) otherwise
func (r *runner) fetch(ctx context.Context, q *Query, dest interface{}, one bool) error {
	return r.withStmt(ctx, q, func(prepared *sqlx.Stmt, args []interface{}) error {
		if one {
			return prepared.GetContext(ctx, dest, args...)
		}
		return prepared.SelectContext(ctx, dest, args...)
	})
}

// fetchMaps prepares and executes a query, loading every row as a map
// of column names to values
func (r *runner) fetchMaps(ctx context.Context, q *Query) (rows []map[string]interface{}, err error) {
	err = r.withStmt(ctx, q, func(prepared *sqlx.Stmt, args []interface{}) error {
		result, err := prepared.QueryxContext(ctx, args...)
		if err != nil {
			return err
		}
		defer result.Close()

		for result.Next() {
			row := make(map[string]interface{})
			if err := result.MapScan(row); err != nil {
				return err
			}
			rows = append(rows, row)
		}

		return result.Err()
	})
	return rows, err
}

// withHandle opens a handle for f. Errors are logged and passed to the
// error handlers.
func (r *runner) withHandle(ctx context.Context, q *Query, f func(Handle) error) (err error) {
	defer func() {
		if err != nil {
			r.logger.WithField("sql", q.SQL()).WithError(err).Error("statement failed")
			r.HandleError(err)
		}
	}()

	if r.conn == nil {
		return ErrConnectionRequired
	}

	handle, err := r.conn.Open(ctx)
	if err != nil {
		return err
	}
	defer handle.Close()

	return f(handle)
}

func (r *runner) withStmt(ctx context.Context, q *Query, f func(*sqlx.Stmt, []interface{}) error) error {
	return r.withHandle(ctx, q, func(handle Handle) error {
		prepared, asSQL, args, err := prepare(ctx, handle, q)
		if err != nil {
			return err
		}
		defer prepared.Close()

		r.logger.WithFields(logrus.Fields{"sql": asSQL, "args": args}).Debug("executing statement")

		return f(prepared, args)
	})
}

// prepare converts named placeholders into the driver's bindvars (when the
// query is named-style), and prepares the result on the handle
func prepare(ctx context.Context, handle Handle, q *Query) (prepared *sqlx.Stmt, asSQL string, args []interface{}, err error) {
	asSQL, args = q.SQL(), q.Args()

	if q.Named() {
		asSQL, args, err = sqlx.Named(asSQL, q.params.Map())
		if err != nil {
			return nil, "", nil, newPrepareError(q.SQL(), err)
		}
	}

	asSQL = handle.Rebind(asSQL)

	prepared, err = handle.PreparexContext(ctx, asSQL)
	if err != nil {
		return nil, "", nil, newPrepareError(asSQL, err)
	}

	return prepared, asSQL, args, nil
}
