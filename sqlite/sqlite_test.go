package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlchain"
	"github.com/zoobzio/sqlchain/exec"
)

type user struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Age    int    `db:"age"`
	Active bool   `db:"active"`
}

func setup(t *testing.T) *exec.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, ":memory:", exec.PoolSettings{MaxOpen: 10})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, ddl := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INTEGER, active INTEGER)",
		"CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER, total REAL, status TEXT)",
	} {
		_, err := db.Exec(ctx, ddl, nil)
		require.NoError(t, err)
	}

	n, err := exec.Execute(ctx, db, sqlchain.Insert("users").ValuesMany(
		sqlchain.Row{"id": 1, "name": "Ann", "age": 34, "active": true},
		sqlchain.Row{"id": 2, "name": "Bob", "age": 17, "active": false},
		sqlchain.Row{"id": 3, "name": "Cid", "age": 52, "active": true},
	))
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	_, err = exec.Execute(ctx, db, sqlchain.Insert("orders").ValuesMany(
		sqlchain.Row{"id": 1, "user_id": 1, "total": 20.5, "status": "completed"},
		sqlchain.Row{"id": 2, "user_id": 1, "total": 10.0, "status": "completed"},
		sqlchain.Row{"id": 3, "user_id": 3, "total": 99.0, "status": "pending"},
	))
	require.NoError(t, err)
	return db
}

func TestOpenPinsMemoryPool(t *testing.T) {
	db := setup(t)
	assert.Equal(t, 1, db.Unwrap().Stats().MaxOpenConnections)
}

func TestSelectWhere(t *testing.T) {
	db := setup(t)

	got, err := exec.FetchAll[user](context.Background(), db,
		sqlchain.From("users").Select("id", "name", "age", "active").
			Where("age", sqlchain.GT, 18).
			OrderByAsc("id"))
	require.NoError(t, err)
	assert.Equal(t, []user{
		{ID: 1, Name: "Ann", Age: 34, Active: true},
		{ID: 3, Name: "Cid", Age: 52, Active: true},
	}, got)
}

func TestSelectWhereInSubquery(t *testing.T) {
	db := setup(t)
	completed := sqlchain.From("orders").Select("user_id").Where("status", "completed")

	names, err := exec.FetchAll[string](context.Background(), db,
		sqlchain.From("users").Select("name").WhereIn("id", completed))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, names)
}

func TestSelectArrayParam(t *testing.T) {
	db := setup(t)

	names, err := exec.FetchAll[string](context.Background(), db,
		sqlchain.From("users").Select("name").
			Where("id", sqlchain.IN, sqlchain.Array(sqlchain.I64(2), sqlchain.I64(3))).
			OrderByDesc("name"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cid", "Bob"}, names)

	none, err := exec.FetchAll[string](context.Background(), db,
		sqlchain.From("users").Select("name").Where("id", sqlchain.IN, sqlchain.Array()))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGroupByHaving(t *testing.T) {
	db := setup(t)

	type spend struct {
		UserID int64   `db:"user_id"`
		Spent  float64 `db:"spent"`
	}
	got, err := exec.FetchAll[spend](context.Background(), db,
		sqlchain.From("orders").
			SelectColumns(sqlchain.Col("user_id"), sqlchain.Sum("total").WithAlias("spent")).
			GroupBy("user_id").
			Having("SUM(total)", sqlchain.GT, 50).
			OrderByAsc("user_id"))
	require.NoError(t, err)
	assert.Equal(t, []spend{{UserID: 3, Spent: 99}}, got)
}

func TestCount(t *testing.T) {
	db := setup(t)

	n, err := exec.FetchOne[int64](context.Background(), db,
		sqlchain.From("users").SelectColumns(sqlchain.CountAs("n")).Where("active", true))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUpdateAndDelete(t *testing.T) {
	db := setup(t)
	ctx := context.Background()

	n, err := exec.Execute(ctx, db, sqlchain.Update("users").SetColumn("active", false).Where("age", sqlchain.GE, 50))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = exec.Execute(ctx, db, sqlchain.Delete("users").Where("active", false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := exec.FetchOptional[user](ctx, db, sqlchain.From("users").SelectAll().Where("id", 3))
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestTransactionRollback(t *testing.T) {
	db := setup(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := exec.Transaction(ctx, db, func(ctx context.Context, tx exec.Tx) error {
		if _, err := exec.Execute(ctx, tx, sqlchain.Delete("orders").Where("user_id", 1)); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	n, err := exec.FetchOne[int64](ctx, db, sqlchain.From("orders").SelectColumns(sqlchain.Count()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTransactionSavepoint(t *testing.T) {
	db := setup(t)
	ctx := context.Background()

	err := exec.Transaction(ctx, db, func(ctx context.Context, tx exec.Tx) error {
		if _, err := exec.Execute(ctx, tx, sqlchain.Update("users").SetColumn("name", "Ada").Where("id", 1)); err != nil {
			return err
		}
		if err := tx.Savepoint(ctx, "before_delete"); err != nil {
			return err
		}
		if _, err := exec.Execute(ctx, tx, sqlchain.Delete("users").Where("id", 1)); err != nil {
			return err
		}
		if err := tx.RollbackToSavepoint(ctx, "before_delete"); err != nil {
			return err
		}
		return tx.ReleaseSavepoint(ctx, "before_delete")
	})
	require.NoError(t, err)

	got, err := exec.FetchOne[user](ctx, db, sqlchain.From("users").Select("id", "name").Where("id", 1))
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestUnsupportedILIKE(t *testing.T) {
	db := setup(t)

	_, err := exec.FetchAll[user](context.Background(), db,
		sqlchain.From("users").SelectAll().Where("name", sqlchain.ILIKE, "a%"))
	var unsupported exec.UnsupportedFeatureError
	assert.True(t, errors.As(err, &unsupported))
}
