//go:build cgo

package sqlqb

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return Newx(db)
}

func TestSQLiteRoundTrip(t *testing.T) {
	dbz := newSQLite(t)
	ctx := context.Background()
	b := dbz.Builder()

	_, err := b.Create().Table("user").
		Field("id").Type("INTEGER", "").PrimaryKey().
		Field("name").String().NotNull().
		Field("role").String(32).Default("it's a member").
		Commit(ctx)
	require.NoError(t, err)

	_, err = b.Reset().Insert(NewParams().Set("id", 1).Set("name", "Mamadou")).Into("user").Commit(ctx)
	require.NoError(t, err)

	_, err = dbz.InsertInto("user").Set("id", 2).Set("name", "Aly").Exec(ctx)
	require.NoError(t, err)

	var role string
	require.NoError(t, dbz.Select("role").From("user").Where("id", OpEq, 2).GetRow(ctx, &role))
	assert.Equal(t, "it's a member", role)

	var users []user
	require.NoError(t, b.Select("id", "name").From("user").Where("id").GreaterThanAndEqualTo(1).Get(ctx, &users))
	assert.Equal(t, []user{{1, "Mamadou"}, {2, "Aly"}}, users)

	res, err := b.Update(NewParams().Set("name", "Aly B.")).Table("user").Where("id").Equal(2).Commit(ctx)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var found user
	require.NoError(t, b.Reset().Select().From("user").Where("name").Equal("Aly B.").First(ctx, &found))
	assert.Equal(t, user{2, "Aly B."}, found)

	_, err = dbz.DeleteFrom("user").Where("id", OpEq, 1).Exec(ctx)
	require.NoError(t, err)

	var total int
	require.NoError(t, dbz.Select("COUNT(*)").From("user").GetRow(ctx, &total))
	assert.Equal(t, 1, total)

	_, err = b.Reset().Drop().Table("user").Commit(ctx)
	require.NoError(t, err)

	err = dbz.Select().From("user").GetAll(ctx, &users)
	assert.ErrorIs(t, err, ErrStatementPreparation)
}
