package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// DeleteInitial is a DELETE without a WHERE condition. It cannot render.
type DeleteInitial struct {
	stmt types.Delete
}

// DeleteQuery is a DELETE with at least one condition.
type DeleteQuery struct {
	stmt types.Delete
}

// Delete starts a DELETE from table.
func Delete(table string) DeleteInitial {
	return DeleteInitial{stmt: types.Delete{Table: table}}
}

// Where adds the first condition, making the DELETE renderable.
func (q DeleteInitial) Where(column string, args ...any) DeleteQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.AND, args)
	return DeleteQuery{stmt: s}
}

// AndWhere is an alias for Where.
func (q DeleteInitial) AndWhere(column string, args ...any) DeleteQuery {
	return q.Where(column, args...)
}

// WhereCond adds a prebuilt condition.
func (q DeleteInitial) WhereCond(c Condition) DeleteQuery {
	s := q.stmt
	s.Where = types.AppendCopy(s.Where, c)
	return DeleteQuery{stmt: s}
}

// WhereIn adds column IN (subquery).
func (q DeleteInitial) WhereIn(column string, sub SelectQuery) DeleteQuery {
	return q.WhereCond(subqueryCondition(column, types.IN, sub))
}

// ToSQL always fails: a DELETE needs a WHERE condition.
func (q DeleteInitial) ToSQL() (string, error) {
	_, err := q.Render()
	return "", err
}

// Parameters returns nil for an incomplete DELETE.
func (DeleteInitial) Parameters() []Value {
	return nil
}

// Render always fails with IncompleteQueryError.
func (DeleteInitial) Render() (*QueryResult, error) {
	return nil, types.IncompleteQueryError{Statement: "DELETE", Missing: "WHERE condition", Hint: "unconditional DELETE is not allowed"}
}

// MustRender always panics for an incomplete DELETE.
func (q DeleteInitial) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// Where adds an AND-connected condition.
func (q DeleteQuery) Where(column string, args ...any) DeleteQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.AND, args)
	return DeleteQuery{stmt: s}
}

// AndWhere is an alias for Where.
func (q DeleteQuery) AndWhere(column string, args ...any) DeleteQuery {
	return q.Where(column, args...)
}

// OrWhere adds an OR-connected condition.
func (q DeleteQuery) OrWhere(column string, args ...any) DeleteQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.OR, args)
	return DeleteQuery{stmt: s}
}

// WhereCond adds a prebuilt condition.
func (q DeleteQuery) WhereCond(c Condition) DeleteQuery {
	s := q.stmt
	s.Where = types.AppendCopy(s.Where, c)
	return DeleteQuery{stmt: s}
}

// WhereIn adds column IN (subquery).
func (q DeleteQuery) WhereIn(column string, sub SelectQuery) DeleteQuery {
	return q.WhereCond(subqueryCondition(column, types.IN, sub))
}

// ToSQL renders the statement.
func (q DeleteQuery) ToSQL() (string, error) {
	res, err := q.Render()
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}

// Parameters returns the WHERE values in placeholder order.
func (q DeleteQuery) Parameters() []Value {
	r := &renderer{}
	r.deleteStmt(&q.stmt)
	return r.params
}

// Render validates the statement and returns its SQL and parameters.
func (q DeleteQuery) Render() (*QueryResult, error) {
	if q.stmt.Err != nil {
		return nil, q.stmt.Err
	}
	if len(q.stmt.Where) == 0 {
		return nil, types.IncompleteQueryError{Statement: "DELETE", Missing: "WHERE condition", Hint: "unconditional DELETE is not allowed"}
	}
	if err := validateConditions(q.stmt.Where); err != nil {
		return nil, err
	}
	r := &renderer{}
	r.deleteStmt(&q.stmt)
	return r.result(), nil
}

// MustRender is like Render but panics on error.
func (q DeleteQuery) MustRender() *QueryResult {
	return mustRender(q.Render())
}
