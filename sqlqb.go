package sqlqb

import (
	"context"
	"database/sql"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Handle is a live database connection statements are prepared and
// executed on. Both *sqlx.Conn and *sqlx.DB satisfy it.
type Handle interface {
	PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
	Close() error
}

// Connection opens handles for executing statements. sqlqb opens a handle
// for every execution and closes it right after; it never keeps one open
// between calls.
type Connection interface {
	Open(ctx context.Context) (Handle, error)
}

// DB is a wrapper around sqlx.DB (which is a wrapper around sql.DB). It
// implements Connection, and creates builders bound to itself.
type DB struct {
	*sqlx.DB

	// Logger receives debug output for every executed statement, and
	// errors for failed ones. Defaults to a logger that discards everything.
	Logger logrus.FieldLogger

	// ErrHandlers is a list of error handler functions given to every
	// statement created from the DB
	ErrHandlers []func(err error)
}

// New creates a new DB instance from an underlying sql.DB object.
// It requires the name of the SQL driver in order to use the correct
// placeholders when executing statements
func New(db *sql.DB, driverName string) *DB {
	return Newx(sqlx.NewDb(db, driverName))
}

// Newx creates a new DB instance from an underlying sqlx.DB object
func Newx(db *sqlx.DB) *DB {
	return &DB{DB: db, Logger: NopLogger()}
}

// Open connects to a database using the provided driver and data source
// name, verifying the connection with a ping
func Open(ctx context.Context, driverName, dsn string) (*DB, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, err
	}
	return Newx(db), nil
}

// Open implements Connection by checking a single connection out of the
// pool. Closing the handle returns the connection to the pool.
func (db *DB) Open(ctx context.Context) (Handle, error) {
	if db == nil || db.DB == nil {
		return nil, ErrConnectionRequired
	}
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Builder creates a new named-style Builder bound to the DB
func (db *DB) Builder() *Builder {
	b := NewBuilder(db)
	b.logger = db.logger()
	b.ErrHandlers = db.ErrHandlers
	return b
}

func (db *DB) logger() logrus.FieldLogger {
	if db.Logger == nil {
		return NopLogger()
	}
	return db.Logger
}

// NopLogger returns a logger that discards everything
func NopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func (db *DB) runner() runner {
	return runner{
		Statement: &Statement{ErrHandlers: db.ErrHandlers},
		conn:      db,
		logger:    db.logger(),
	}
}
