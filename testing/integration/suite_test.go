package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlchain"
	"github.com/zoobzio/sqlchain/exec"
	sqltest "github.com/zoobzio/sqlchain/testing"
)

// Schema holds the DDL for one database.
type Schema struct {
	Users  string
	Posts  string
	Orders string
}

// fixture describes the tables created by reset.
func fixture() *dbml.Project {
	project := dbml.NewProject("integration")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	project.AddTable(posts)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "float"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	return project
}

type userRow struct {
	ID       int64   `db:"id"`
	Username string  `db:"username"`
	Email    *string `db:"email"`
	Age      int     `db:"age"`
	Active   bool    `db:"active"`
}

// reset drops, recreates and seeds the test tables.
func reset(ctx context.Context, t *testing.T, pool exec.Pool, schema Schema) {
	t.Helper()

	for _, table := range []string{"orders", "posts", "users"} {
		_, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table, nil)
		require.NoError(t, err)
	}
	for _, ddl := range []string{schema.Users, schema.Posts, schema.Orders} {
		_, err := pool.Exec(ctx, ddl, nil)
		require.NoError(t, err, ddl)
	}

	_, err := exec.Execute(ctx, pool, sqlchain.Insert("users").ValuesMany(
		sqlchain.Row{"id": 1, "username": "alice", "email": "alice@example.com", "age": 30, "active": true},
		sqlchain.Row{"id": 2, "username": "bob", "email": "bob@example.com", "age": 25, "active": true},
		sqlchain.Row{"id": 3, "username": "charlie", "email": "charlie@example.com", "age": 35, "active": false},
		sqlchain.Row{"id": 4, "username": "diana", "email": "diana@example.com", "age": 28, "active": true},
	))
	require.NoError(t, err)

	_, err = exec.Execute(ctx, pool, sqlchain.Insert("posts").ValuesMany(
		sqlchain.Row{"id": 1, "user_id": 1, "title": "First Post", "views": 100, "published": true},
		sqlchain.Row{"id": 2, "user_id": 1, "title": "Second Post", "views": 50, "published": true},
		sqlchain.Row{"id": 3, "user_id": 2, "title": "Bob's Post", "views": 75, "published": true},
		sqlchain.Row{"id": 4, "user_id": 3, "title": "Draft Post", "views": 0, "published": false},
	))
	require.NoError(t, err)

	_, err = exec.Execute(ctx, pool, sqlchain.Insert("orders").ValuesMany(
		sqlchain.Row{"id": 1, "user_id": 1, "total": 99.99, "status": "completed"},
		sqlchain.Row{"id": 2, "user_id": 1, "total": 149.99, "status": "completed"},
		sqlchain.Row{"id": 3, "user_id": 2, "total": 49.99, "status": "pending"},
		sqlchain.Row{"id": 4, "user_id": 4, "total": 199.99, "status": "completed"},
	))
	require.NoError(t, err)
}

func fetchIDs(ctx context.Context, t *testing.T, r exec.Runner, q sqlchain.SelectQuery) []int64 {
	t.Helper()
	ids, err := exec.FetchAll[int64](ctx, r, q)
	require.NoError(t, err)
	return ids
}

// runSuite runs the shared statement scenarios against pool.
func runSuite(t *testing.T, pool exec.Pool, d exec.Dialect, schema Schema) {
	ctx := context.Background()
	project := fixture()

	t.Run("SelectWhere", func(t *testing.T) {
		reset(ctx, t, pool, schema)
		sqltest.AssertColumnsExist(t, project, "users", "id", "username", "email", "age", "active")
		sqltest.AssertColumnsExist(t, project, "posts", "id", "user_id", "title", "views", "published")
		sqltest.AssertColumnsExist(t, project, "orders", "id", "user_id", "total", "status")

		got, err := exec.FetchAll[userRow](ctx, pool,
			sqlchain.From("users").Select("id", "username", "email", "age", "active").
				Where("age", sqlchain.GT, 26).
				OrderByAsc("id"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, "alice@example.com", *got[0].Email)
		assert.Equal(t, 30, got[0].Age)
		assert.True(t, got[0].Active)
		assert.False(t, got[1].Active)
		assert.Equal(t, int64(4), got[2].ID)
	})

	t.Run("MixedConnectors", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		ids := fetchIDs(ctx, t, pool, sqlchain.From("users").Select("id").
			Where("active", true).
			AndWhere("age", sqlchain.LT, 29).
			OrWhere("username", "charlie").
			OrderByAsc("id"))
		assert.Equal(t, []int64{2, 3, 4}, ids)
	})

	t.Run("InsertAndFetchOne", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		n, err := exec.Execute(ctx, pool, sqlchain.Insert("users").Values(
			sqlchain.Row{"id": 5, "username": "eve", "email": nil, "age": 22, "active": true}))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := exec.FetchOne[userRow](ctx, pool,
			sqlchain.From("users").Select("id", "username", "email").Where("id", 5))
		require.NoError(t, err)
		assert.Equal(t, "eve", got.Username)
		assert.Nil(t, got.Email)

		_, err = exec.FetchOne[userRow](ctx, pool, sqlchain.From("users").SelectAll().Where("id", 99))
		assert.ErrorIs(t, err, exec.ErrNoRows)
	})

	t.Run("IsNull", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		_, err := exec.Execute(ctx, pool, sqlchain.Update("users").SetColumn("email", nil).Where("id", 2))
		require.NoError(t, err)

		assert.Equal(t, []int64{2}, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").Where("email", sqlchain.IsNull)))
		assert.Equal(t, []int64{1, 3, 4}, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").Where("email", sqlchain.IsNotNull).OrderByAsc("id")))
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		n, err := exec.Execute(ctx, pool, sqlchain.Update("users").
			Set(sqlchain.Row{"active": false, "age": 40}).
			Where("active", true).
			AndWhere("age", sqlchain.GE, 28))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = exec.Execute(ctx, pool, sqlchain.Delete("orders").Where("status", "pending"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Join", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		type post struct {
			Username string `db:"username"`
			Title    string `db:"title"`
		}
		got, err := exec.FetchAll[post](ctx, pool, sqlchain.From("users").
			InnerJoin("posts", "users.id", "posts.user_id").
			Select("users.username", "posts.title").
			Where("posts.published", true).
			OrderByAsc("posts.id"))
		require.NoError(t, err)
		assert.Equal(t, []post{
			{"alice", "First Post"},
			{"alice", "Second Post"},
			{"bob", "Bob's Post"},
		}, got)
	})

	t.Run("GroupByHaving", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		type count struct {
			UserID int64 `db:"user_id"`
			Orders int64 `db:"order_count"`
		}
		got, err := exec.FetchAll[count](ctx, pool, sqlchain.From("orders").
			SelectColumns(sqlchain.Col("user_id"), sqlchain.CountAs("order_count")).
			GroupBy("user_id").
			Having("COUNT(*)", sqlchain.GT, 1))
		require.NoError(t, err)
		assert.Equal(t, []count{{UserID: 1, Orders: 2}}, got)
	})

	t.Run("Subqueries", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		completed := sqlchain.From("orders").Select("user_id").Where("status", "completed")
		assert.Equal(t, []int64{1, 4}, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").
				Where("active", true).
				WhereIn("id", completed).
				OrderByAsc("id")))

		authors := sqlchain.From("posts").Select("user_id")
		assert.Equal(t, []int64{4}, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").WhereNotIn("id", authors)))
	})

	t.Run("ArrayParameter", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		assert.Equal(t, []int64{2, 3}, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").
				Where("id", sqlchain.IN, sqlchain.Array(sqlchain.I64(2), sqlchain.I64(3))).
				OrderByAsc("id")))
		assert.Empty(t, fetchIDs(ctx, t, pool,
			sqlchain.From("users").Select("id").Where("id", sqlchain.IN, sqlchain.Array())))
	})

	t.Run("Count", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		n, err := exec.FetchOne[int64](ctx, pool,
			sqlchain.From("users").SelectColumns(sqlchain.Count()).Where("active", true))
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("LimitOffset", func(t *testing.T) {
		reset(ctx, t, pool, schema)
		q := sqlchain.From("users").Select("id").OrderByAsc("id").Limit(2).Offset(1)

		if !d.Capabilities.LimitOffset {
			_, err := exec.FetchAll[int64](ctx, pool, q)
			var unsupported exec.UnsupportedFeatureError
			assert.True(t, errors.As(err, &unsupported))
			return
		}
		assert.Equal(t, []int64{2, 3}, fetchIDs(ctx, t, pool, q))
	})

	t.Run("TransactionRollback", func(t *testing.T) {
		reset(ctx, t, pool, schema)
		boom := errors.New("boom")

		err := exec.Transaction(ctx, pool, func(ctx context.Context, tx exec.Tx) error {
			if _, err := exec.Execute(ctx, tx, sqlchain.Delete("orders").Where("user_id", 1)); err != nil {
				return err
			}
			return boom
		}, exec.WithIsolation(exec.IsolationReadCommitted))
		assert.Equal(t, boom, err)

		n, err := exec.FetchOne[int64](ctx, pool, sqlchain.From("orders").SelectColumns(sqlchain.Count()))
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("Savepoint", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		err := exec.Transaction(ctx, pool, func(ctx context.Context, tx exec.Tx) error {
			if err := tx.Savepoint(ctx, "before_delete"); err != nil {
				return err
			}
			if _, err := exec.Execute(ctx, tx, sqlchain.Delete("orders").Where("user_id", 2)); err != nil {
				return err
			}
			if err := tx.RollbackToSavepoint(ctx, "before_delete"); err != nil {
				return err
			}
			if err := tx.ReleaseSavepoint(ctx, "before_delete"); err != nil {
				return err
			}
			_, err := exec.Execute(ctx, tx, sqlchain.Delete("orders").Where("user_id", 4))
			return err
		})
		require.NoError(t, err)

		assert.Equal(t, []int64{1, 2, 3}, fetchIDs(ctx, t, pool,
			sqlchain.From("orders").Select("id").OrderByAsc("id")))
	})

	t.Run("AcquiredConnection", func(t *testing.T) {
		reset(ctx, t, pool, schema)

		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		defer conn.Release()

		assert.Equal(t, []int64{1, 2, 3, 4}, fetchIDs(ctx, t, conn,
			sqlchain.From("users").Select("id").OrderByAsc("id")))
	})
}
