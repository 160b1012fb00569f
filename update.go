package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// UpdateInitial is an UPDATE without SET assignments. It cannot render.
type UpdateInitial struct {
	stmt types.Update
}

// UpdateWithSet is an UPDATE with assignments but no WHERE. It cannot
// render: unconditional updates are not allowed.
type UpdateWithSet struct {
	stmt types.Update
}

// UpdateQuery is an UPDATE with assignments and at least one condition.
type UpdateQuery struct {
	stmt types.Update
}

// Update starts an UPDATE of table.
func Update(table string) UpdateInitial {
	return UpdateInitial{stmt: types.Update{Table: table}}
}

// Set adds assignments in ascending column order.
func (q UpdateInitial) Set(assignments Row) UpdateWithSet {
	s := q.stmt
	s.Assignments = types.AppendCopy(s.Assignments, sortedAssignments(assignments)...)
	return UpdateWithSet{stmt: s}
}

// SetColumn adds a single assignment.
func (q UpdateInitial) SetColumn(column string, value any) UpdateWithSet {
	s := q.stmt
	s.Assignments = types.AppendCopy(s.Assignments, types.Assignment{Column: column, Value: types.ValueOf(value)})
	return UpdateWithSet{stmt: s}
}

// ToSQL always fails: an UPDATE needs SET clauses.
func (q UpdateInitial) ToSQL() (string, error) {
	_, err := q.Render()
	return "", err
}

// Parameters returns nil for an incomplete UPDATE.
func (UpdateInitial) Parameters() []Value {
	return nil
}

// Render always fails with IncompleteQueryError.
func (UpdateInitial) Render() (*QueryResult, error) {
	return nil, types.IncompleteQueryError{Statement: "UPDATE", Missing: "SET clauses", Hint: "call Set"}
}

// MustRender always panics for an incomplete UPDATE.
func (q UpdateInitial) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// Set adds more assignments.
func (q UpdateWithSet) Set(assignments Row) UpdateWithSet {
	s := q.stmt
	s.Assignments = types.AppendCopy(s.Assignments, sortedAssignments(assignments)...)
	return UpdateWithSet{stmt: s}
}

// SetColumn adds a single assignment.
func (q UpdateWithSet) SetColumn(column string, value any) UpdateWithSet {
	s := q.stmt
	s.Assignments = types.AppendCopy(s.Assignments, types.Assignment{Column: column, Value: types.ValueOf(value)})
	return UpdateWithSet{stmt: s}
}

// Where adds the first condition, making the UPDATE renderable.
func (q UpdateWithSet) Where(column string, args ...any) UpdateQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.AND, args)
	return UpdateQuery{stmt: s}
}

// AndWhere is an alias for Where.
func (q UpdateWithSet) AndWhere(column string, args ...any) UpdateQuery {
	return q.Where(column, args...)
}

// WhereCond adds a prebuilt condition.
func (q UpdateWithSet) WhereCond(c Condition) UpdateQuery {
	s := q.stmt
	s.Where = types.AppendCopy(s.Where, c)
	return UpdateQuery{stmt: s}
}

// ToSQL always fails: an UPDATE needs a WHERE condition.
func (q UpdateWithSet) ToSQL() (string, error) {
	_, err := q.Render()
	return "", err
}

// Parameters returns nil for an incomplete UPDATE.
func (UpdateWithSet) Parameters() []Value {
	return nil
}

// Render always fails with IncompleteQueryError.
func (UpdateWithSet) Render() (*QueryResult, error) {
	return nil, types.IncompleteQueryError{Statement: "UPDATE", Missing: "WHERE condition", Hint: "unconditional UPDATE is not allowed"}
}

// MustRender always panics for an incomplete UPDATE.
func (q UpdateWithSet) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// Where adds an AND-connected condition.
func (q UpdateQuery) Where(column string, args ...any) UpdateQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.AND, args)
	return UpdateQuery{stmt: s}
}

// AndWhere is an alias for Where.
func (q UpdateQuery) AndWhere(column string, args ...any) UpdateQuery {
	return q.Where(column, args...)
}

// OrWhere adds an OR-connected condition.
func (q UpdateQuery) OrWhere(column string, args ...any) UpdateQuery {
	s := q.stmt
	s.Where, s.Err = withCondition(s.Where, s.Err, column, types.OR, args)
	return UpdateQuery{stmt: s}
}

// WhereCond adds a prebuilt condition.
func (q UpdateQuery) WhereCond(c Condition) UpdateQuery {
	s := q.stmt
	s.Where = types.AppendCopy(s.Where, c)
	return UpdateQuery{stmt: s}
}

// WhereIn adds column IN (subquery).
func (q UpdateQuery) WhereIn(column string, sub SelectQuery) UpdateQuery {
	return q.WhereCond(subqueryCondition(column, types.IN, sub))
}

// ToSQL renders the statement.
func (q UpdateQuery) ToSQL() (string, error) {
	res, err := q.Render()
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}

// Parameters returns SET values followed by WHERE values.
func (q UpdateQuery) Parameters() []Value {
	r := &renderer{}
	r.updateStmt(&q.stmt)
	return r.params
}

// Render validates the statement and returns its SQL and parameters.
func (q UpdateQuery) Render() (*QueryResult, error) {
	if len(q.stmt.Assignments) == 0 {
		return nil, types.EmptyUpdateSetError{Table: q.stmt.Table}
	}
	if q.stmt.Err != nil {
		return nil, q.stmt.Err
	}
	if err := validateConditions(q.stmt.Where); err != nil {
		return nil, err
	}
	r := &renderer{}
	r.updateStmt(&q.stmt)
	return r.result(), nil
}

// MustRender is like Render but panics on error.
func (q UpdateQuery) MustRender() *QueryResult {
	return mustRender(q.Render())
}
