package sqlqb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type test struct {
	name             string
	stmt             SQLStmt
	expectedSQL      string
	expectedBindings []interface{}
}

func runTests(t *testing.T, source func(dbz *DB) []test) {
	dbz, _ := newMock(t)

	for _, tst := range source(dbz) {
		t.Run(tst.name, func(t *testing.T) {
			resultingSQL, resultingBindings := tst.stmt.ToSQL()
			assert.Equal(t, tst.expectedSQL, resultingSQL)
			assert.Equal(t, tst.expectedBindings, resultingBindings)
		})
	}
}

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err, "Failed creating mock database")

	return New(db, "sqlmock"), mock
}

func TestOpenWithoutDB(t *testing.T) {
	var dbz *DB

	_, err := dbz.Open(context.Background())
	assert.ErrorIs(t, err, ErrConnectionRequired)

	_, err = (&DB{}).Open(context.Background())
	assert.ErrorIs(t, err, ErrConnectionRequired)
}
