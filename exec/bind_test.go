package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlchain"
)

func TestBindPlaceholderStyles(t *testing.T) {
	params := sqlchain.Values("Jane", 1)
	query := "UPDATE users SET name = ? WHERE id = ?"

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Postgres, "UPDATE users SET name = $1 WHERE id = $2"},
		{MySQL, "UPDATE users SET name = ? WHERE id = ?"},
		{SQLite, "UPDATE users SET name = ? WHERE id = ?"},
		{SQLServer, "UPDATE users SET name = @p1 WHERE id = @p2"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			got, args, err := Bind(tt.dialect, query, params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []any{"Jane", int64(1)}, args)
		})
	}
}

func TestBindExpandsArrays(t *testing.T) {
	params := []sqlchain.Value{
		sqlchain.Array(sqlchain.I64(1), sqlchain.I64(2), sqlchain.I64(3)),
		sqlchain.String("active"),
	}

	got, args, err := Bind(Postgres, "SELECT * FROM users WHERE id IN ? AND status = ?", params)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id IN ($1, $2, $3) AND status = $4", got)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), "active"}, args)
}

func TestBindEmptyArray(t *testing.T) {
	got, args, err := Bind(MySQL, "SELECT * FROM users WHERE id IN ?", []sqlchain.Value{sqlchain.Array()})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id IN (NULL)", got)
	assert.Empty(t, args)
}

func TestBindSkipsQuotesAndComments(t *testing.T) {
	query := "SELECT '?', \"a?b\", 'it''s ?' -- trailing ?\nFROM t /* ? */ WHERE x = ?"

	got, args, err := Bind(Postgres, query, sqlchain.Values(5))
	require.NoError(t, err)
	assert.Equal(t, "SELECT '?', \"a?b\", 'it''s ?' -- trailing ?\nFROM t /* ? */ WHERE x = $1", got)
	assert.Equal(t, []any{int64(5)}, args)
}

func TestBindCountMismatch(t *testing.T) {
	_, _, err := Bind(Postgres, "SELECT * FROM t WHERE a = ? AND b = ?", sqlchain.Values(1))
	assert.True(t, errors.Is(err, ErrParamMismatch))

	_, _, err = Bind(Postgres, "SELECT * FROM t WHERE a = ?", sqlchain.Values(1, 2))
	assert.True(t, errors.Is(err, ErrParamMismatch))
}

func TestBindRejectsSubqueryPlaceholder(t *testing.T) {
	_, _, err := Bind(Postgres, "SELECT ?", []sqlchain.Value{sqlchain.SubqueryPlaceholder()})
	assert.ErrorIs(t, err, sqlchain.ErrUnbindable)
}

func TestBindNullAndJSON(t *testing.T) {
	params := []sqlchain.Value{sqlchain.Null(), sqlchain.JSON([]byte(`{"a":1}`))}

	_, args, err := Bind(SQLite, "INSERT INTO t (a, b) VALUES (?, ?)", params)
	require.NoError(t, err)
	assert.Equal(t, []any{nil, `{"a":1}`}, args)
}

func TestBindRejectsUnsupportedKeywords(t *testing.T) {
	_, _, err := Bind(MySQL, "SELECT * FROM users WHERE name ILIKE ?", sqlchain.Values("%j%"))
	var unsupported UnsupportedFeatureError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "ILIKE", unsupported.Feature)
	assert.Equal(t, "mysql", unsupported.Dialect)

	_, _, err = Bind(SQLServer, "SELECT * FROM users LIMIT 10", nil)
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "LIMIT", unsupported.Feature)

	got, _, err := Bind(Postgres, "SELECT * FROM users WHERE name ILIKE ? LIMIT 10", sqlchain.Values("%j%"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE name ILIKE $1 LIMIT 10", got)
}

func TestBindIgnoresKeywordsInIdentifiersAndStrings(t *testing.T) {
	got, _, err := Bind(SQLServer, "SELECT limit_count, 'LIMIT' FROM ilike_rules WHERE x = ?", sqlchain.Values(1))
	require.NoError(t, err)
	assert.Equal(t, "SELECT limit_count, 'LIMIT' FROM ilike_rules WHERE x = @p1", got)
}

func TestUnsupportedFeatureErrorMessage(t *testing.T) {
	err := UnsupportedFeatureError{Feature: "ILIKE", Dialect: "mysql"}
	assert.Equal(t, "mysql: ILIKE is not supported", err.Error())

	err.Hint = "use LIKE"
	assert.Equal(t, "mysql: ILIKE is not supported: use LIKE", err.Error())
}
