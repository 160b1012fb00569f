package sqlchain

import (
	"github.com/zoobzio/sqlchain/internal/types"
)

// SelectInitial is a SELECT whose column list has not been declared yet.
// It accepts WHERE, JOIN, GROUP BY and HAVING clauses but cannot render.
type SelectInitial struct {
	stmt types.Select
}

// SelectQuery is a SELECT with a column list. It is the only SELECT state
// that renders.
type SelectQuery struct {
	stmt types.Select
}

// From starts a SELECT against table.
func From(table string) SelectInitial {
	return SelectInitial{stmt: types.Select{Table: table}}
}

// Select declares plain output columns.
func (q SelectInitial) Select(columns ...string) SelectQuery {
	return q.SelectColumns(plainColumns(columns)...)
}

// SelectColumns declares output columns built with Col, ColAs, aggregate
// helpers or SubqueryAs.
func (q SelectInitial) SelectColumns(selectors ...ColumnSelector) SelectQuery {
	s := q.stmt
	s.Columns = types.AppendCopy(s.Columns, selectors...)
	return SelectQuery{stmt: s}
}

// SelectAll declares SELECT *.
func (q SelectInitial) SelectAll() SelectQuery {
	return q.Select("*")
}

// Where adds an AND-connected condition. See Cond for the accepted forms.
func (q SelectInitial) Where(column string, args ...any) SelectInitial {
	return SelectInitial{stmt: selectWhere(q.stmt, types.AND, column, args)}
}

// AndWhere is an alias for Where.
func (q SelectInitial) AndWhere(column string, args ...any) SelectInitial {
	return q.Where(column, args...)
}

// OrWhere adds an OR-connected condition.
func (q SelectInitial) OrWhere(column string, args ...any) SelectInitial {
	return SelectInitial{stmt: selectWhere(q.stmt, types.OR, column, args)}
}

// WhereCond adds a prebuilt condition.
func (q SelectInitial) WhereCond(c Condition) SelectInitial {
	return SelectInitial{stmt: selectWhereCond(q.stmt, c)}
}

// WhereIn adds column IN (subquery).
func (q SelectInitial) WhereIn(column string, sub SelectQuery) SelectInitial {
	return q.WhereCond(subqueryCondition(column, types.IN, sub))
}

// WhereNotIn adds column NOT IN (subquery).
func (q SelectInitial) WhereNotIn(column string, sub SelectQuery) SelectInitial {
	return q.WhereCond(subqueryCondition(column, types.NotIn, sub))
}

// WhereExists adds EXISTS (subquery).
func (q SelectInitial) WhereExists(sub SelectQuery) SelectInitial {
	return q.WhereCond(subqueryCondition("", types.EXISTS, sub))
}

// WhereNotExists adds NOT EXISTS (subquery).
func (q SelectInitial) WhereNotExists(sub SelectQuery) SelectInitial {
	return q.WhereCond(subqueryCondition("", types.NotExists, sub))
}

// InnerJoin adds INNER JOIN table ON left = right.
func (q SelectInitial) InnerJoin(table, left, right string) SelectInitial {
	return q.Join(types.InnerJoin, table, left, types.EQ, right)
}

// LeftJoin adds LEFT JOIN table ON left = right.
func (q SelectInitial) LeftJoin(table, left, right string) SelectInitial {
	return q.Join(types.LeftJoin, table, left, types.EQ, right)
}

// RightJoin adds RIGHT JOIN table ON left = right.
func (q SelectInitial) RightJoin(table, left, right string) SelectInitial {
	return q.Join(types.RightJoin, table, left, types.EQ, right)
}

// FullOuterJoin adds FULL OUTER JOIN table ON left = right.
func (q SelectInitial) FullOuterJoin(table, left, right string) SelectInitial {
	return q.Join(types.FullJoin, table, left, types.EQ, right)
}

// CrossJoin adds CROSS JOIN table.
func (q SelectInitial) CrossJoin(table string) SelectInitial {
	return SelectInitial{stmt: selectJoin(q.stmt, types.CrossJoin, table, nil)}
}

// Join adds a join with a single ON comparison. op is an Operator or a
// string spelling.
func (q SelectInitial) Join(kind JoinKind, table, left string, op any, right string) SelectInitial {
	return q.JoinOn(kind, table, On(left, op, right))
}

// JoinOn adds a join with any number of ON comparisons built with On and OrOn.
func (q SelectInitial) JoinOn(kind JoinKind, table string, on ...JoinCondition) SelectInitial {
	return SelectInitial{stmt: selectJoin(q.stmt, kind, table, on)}
}

// GroupBy appends GROUP BY columns.
func (q SelectInitial) GroupBy(columns ...string) SelectInitial {
	return SelectInitial{stmt: selectGroupBy(q.stmt, columns)}
}

// Having adds an AND-connected HAVING condition on expr, for example "COUNT(*)".
func (q SelectInitial) Having(expr string, args ...any) SelectInitial {
	return SelectInitial{stmt: selectHaving(q.stmt, types.AND, expr, args)}
}

// AndHaving is an alias for Having.
func (q SelectInitial) AndHaving(expr string, args ...any) SelectInitial {
	return q.Having(expr, args...)
}

// OrHaving adds an OR-connected HAVING condition.
func (q SelectInitial) OrHaving(expr string, args ...any) SelectInitial {
	return SelectInitial{stmt: selectHaving(q.stmt, types.OR, expr, args)}
}

// ToSQL always fails: a SELECT needs its columns before it can render.
func (q SelectInitial) ToSQL() (string, error) {
	_, err := q.Render()
	return "", err
}

// Parameters returns nil for an incomplete SELECT.
func (SelectInitial) Parameters() []Value {
	return nil
}

// Render always fails with IncompleteQueryError.
func (SelectInitial) Render() (*QueryResult, error) {
	return nil, types.IncompleteQueryError{Statement: "SELECT", Missing: "columns", Hint: "call Select, SelectColumns or SelectAll"}
}

// Where adds an AND-connected condition. See Cond for the accepted forms.
func (q SelectQuery) Where(column string, args ...any) SelectQuery {
	return SelectQuery{stmt: selectWhere(q.stmt, types.AND, column, args)}
}

// AndWhere is an alias for Where.
func (q SelectQuery) AndWhere(column string, args ...any) SelectQuery {
	return q.Where(column, args...)
}

// OrWhere adds an OR-connected condition.
func (q SelectQuery) OrWhere(column string, args ...any) SelectQuery {
	return SelectQuery{stmt: selectWhere(q.stmt, types.OR, column, args)}
}

// WhereCond adds a prebuilt condition.
func (q SelectQuery) WhereCond(c Condition) SelectQuery {
	return SelectQuery{stmt: selectWhereCond(q.stmt, c)}
}

// WhereIn adds column IN (subquery).
func (q SelectQuery) WhereIn(column string, sub SelectQuery) SelectQuery {
	return q.WhereCond(subqueryCondition(column, types.IN, sub))
}

// WhereNotIn adds column NOT IN (subquery).
func (q SelectQuery) WhereNotIn(column string, sub SelectQuery) SelectQuery {
	return q.WhereCond(subqueryCondition(column, types.NotIn, sub))
}

// WhereExists adds EXISTS (subquery).
func (q SelectQuery) WhereExists(sub SelectQuery) SelectQuery {
	return q.WhereCond(subqueryCondition("", types.EXISTS, sub))
}

// WhereNotExists adds NOT EXISTS (subquery).
func (q SelectQuery) WhereNotExists(sub SelectQuery) SelectQuery {
	return q.WhereCond(subqueryCondition("", types.NotExists, sub))
}

// InnerJoin adds INNER JOIN table ON left = right.
func (q SelectQuery) InnerJoin(table, left, right string) SelectQuery {
	return q.Join(types.InnerJoin, table, left, types.EQ, right)
}

// LeftJoin adds LEFT JOIN table ON left = right.
func (q SelectQuery) LeftJoin(table, left, right string) SelectQuery {
	return q.Join(types.LeftJoin, table, left, types.EQ, right)
}

// RightJoin adds RIGHT JOIN table ON left = right.
func (q SelectQuery) RightJoin(table, left, right string) SelectQuery {
	return q.Join(types.RightJoin, table, left, types.EQ, right)
}

// FullOuterJoin adds FULL OUTER JOIN table ON left = right.
func (q SelectQuery) FullOuterJoin(table, left, right string) SelectQuery {
	return q.Join(types.FullJoin, table, left, types.EQ, right)
}

// CrossJoin adds CROSS JOIN table.
func (q SelectQuery) CrossJoin(table string) SelectQuery {
	return SelectQuery{stmt: selectJoin(q.stmt, types.CrossJoin, table, nil)}
}

// Join adds a join with a single ON comparison.
func (q SelectQuery) Join(kind JoinKind, table, left string, op any, right string) SelectQuery {
	return q.JoinOn(kind, table, On(left, op, right))
}

// JoinOn adds a join with any number of ON comparisons.
func (q SelectQuery) JoinOn(kind JoinKind, table string, on ...JoinCondition) SelectQuery {
	return SelectQuery{stmt: selectJoin(q.stmt, kind, table, on)}
}

// GroupBy appends GROUP BY columns.
func (q SelectQuery) GroupBy(columns ...string) SelectQuery {
	return SelectQuery{stmt: selectGroupBy(q.stmt, columns)}
}

// Having adds an AND-connected HAVING condition.
func (q SelectQuery) Having(expr string, args ...any) SelectQuery {
	return SelectQuery{stmt: selectHaving(q.stmt, types.AND, expr, args)}
}

// AndHaving is an alias for Having.
func (q SelectQuery) AndHaving(expr string, args ...any) SelectQuery {
	return q.Having(expr, args...)
}

// OrHaving adds an OR-connected HAVING condition.
func (q SelectQuery) OrHaving(expr string, args ...any) SelectQuery {
	return SelectQuery{stmt: selectHaving(q.stmt, types.OR, expr, args)}
}

// OrderBy appends an ORDER BY term.
func (q SelectQuery) OrderBy(column string, dir Direction) SelectQuery {
	s := q.stmt
	s.OrderBy = types.AppendCopy(s.OrderBy, types.OrderBy{Column: column, Direction: dir})
	return SelectQuery{stmt: s}
}

// OrderByAsc appends column ASC.
func (q SelectQuery) OrderByAsc(column string) SelectQuery {
	return q.OrderBy(column, types.ASC)
}

// OrderByDesc appends column DESC.
func (q SelectQuery) OrderByDesc(column string) SelectQuery {
	return q.OrderBy(column, types.DESC)
}

// Limit sets LIMIT n.
func (q SelectQuery) Limit(n uint64) SelectQuery {
	s := q.stmt
	s.Limit = &n
	return SelectQuery{stmt: s}
}

// Offset sets OFFSET n.
func (q SelectQuery) Offset(n uint64) SelectQuery {
	s := q.stmt
	s.Offset = &n
	return SelectQuery{stmt: s}
}

// Distinct switches to SELECT DISTINCT.
func (q SelectQuery) Distinct() SelectQuery {
	s := q.stmt
	s.Distinct = true
	return SelectQuery{stmt: s}
}

// ToSQL renders the statement.
func (q SelectQuery) ToSQL() (string, error) {
	res, err := q.Render()
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}

// Parameters returns every bound value in placeholder order, including
// values owned by nested subqueries.
func (q SelectQuery) Parameters() []Value {
	r := &renderer{}
	r.selectStmt(&q.stmt)
	return r.params
}

// Render validates the statement and returns its SQL with the flattened
// parameter list.
func (q SelectQuery) Render() (*QueryResult, error) {
	if err := validateSelect(&q.stmt); err != nil {
		return nil, err
	}
	r := &renderer{}
	r.selectStmt(&q.stmt)
	return r.result(), nil
}

// MustRender is like Render but panics on error.
func (q SelectQuery) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// MustRender always panics for an incomplete SELECT.
func (q SelectInitial) MustRender() *QueryResult {
	return mustRender(q.Render())
}
