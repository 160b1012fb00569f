package sqlchain

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sqlchain/internal/types"
)

// renderer assembles SQL and collects parameters as placeholders are
// written, so parameter order always matches placeholder order.
// Assembly never fails; validation runs first.
type renderer struct {
	sql    strings.Builder
	params []Value
}

func (r *renderer) write(s string) {
	r.sql.WriteString(s)
}

func (r *renderer) bind(v Value) {
	r.sql.WriteByte('?')
	r.params = append(r.params, v)
}

func (r *renderer) result() *QueryResult {
	return &QueryResult{SQL: r.sql.String(), Params: r.params}
}

func (r *renderer) selectStmt(s *types.Select) {
	r.write("SELECT ")
	if s.Distinct {
		r.write("DISTINCT ")
	}
	for i, col := range s.Columns {
		if i > 0 {
			r.write(", ")
		}
		r.selector(col)
	}
	r.write(" FROM ")
	r.write(s.Table)

	for _, j := range s.Joins {
		r.join(j)
	}

	if len(s.Where) > 0 {
		r.write(" WHERE ")
		r.conditions(s.Where)
	}

	if len(s.GroupBy) > 0 {
		r.write(" GROUP BY ")
		r.write(strings.Join(s.GroupBy, ", "))
		if len(s.Having) > 0 {
			r.write(" HAVING ")
			r.conditions(s.Having)
		}
	}

	if len(s.OrderBy) > 0 {
		r.write(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				r.write(", ")
			}
			r.write(o.Column)
			r.write(" ")
			r.write(string(o.Direction))
		}
	}

	if s.Limit != nil {
		fmt.Fprintf(&r.sql, " LIMIT %d", *s.Limit)
	}
	if s.Offset != nil {
		fmt.Fprintf(&r.sql, " OFFSET %d", *s.Offset)
	}
}

func (r *renderer) selector(col types.ColumnSelector) {
	switch col.Kind {
	case types.AggregateSelectorKind:
		if col.Func == types.AggCountDistinct {
			r.write("COUNT(DISTINCT " + col.Name + ")")
		} else {
			r.write(string(col.Func) + "(" + col.Name + ")")
		}
	case types.CountAllSelectorKind:
		r.write("COUNT(*)")
	case types.SubquerySelectorKind:
		r.write("(")
		if col.Subquery != nil {
			r.selectStmt(col.Subquery)
		}
		r.write(")")
	default:
		r.write(col.Name)
	}
	if col.Alias != "" && col.Kind != types.ColumnSelectorKind {
		r.write(" AS " + col.Alias)
	}
}

func (r *renderer) join(j types.Join) {
	r.write(" ")
	r.write(string(j.Kind))
	r.write(" JOIN ")
	r.write(j.Table)
	if j.Kind == types.CrossJoin || len(j.On) == 0 {
		return
	}
	r.write(" ON ")
	for i, on := range j.On {
		if i > 0 {
			r.write(" " + string(on.Connector) + " ")
		}
		r.write(on.Left + " " + on.Operator.String() + " " + on.Right)
	}
}

func (r *renderer) conditions(conds []types.Condition) {
	for i, c := range conds {
		if i > 0 {
			r.write(" " + string(connectorOf(c)) + " ")
		}
		r.condition(c)
	}
}

func (r *renderer) condition(c types.Condition) {
	switch {
	case c.Subquery != nil:
		if !c.Operator.OmitsColumn() {
			r.write(c.Column + " ")
		}
		r.write(c.Operator.String() + " (")
		r.selectStmt(c.Subquery)
		r.write(")")
	case c.Operator.IsNullary():
		r.write(c.Column + " " + c.Operator.String())
	default:
		r.write(c.Column + " " + c.Operator.String() + " ")
		r.bind(c.Value)
	}
}

func (r *renderer) insertStmt(s *types.Insert) {
	r.write("INSERT INTO " + s.Table + " (")
	r.write(strings.Join(s.Columns, ", "))
	r.write(") VALUES ")
	for i, row := range s.Rows {
		if i > 0 {
			r.write(", ")
		}
		r.write("(")
		for j, v := range row {
			if j > 0 {
				r.write(", ")
			}
			r.bind(v)
		}
		r.write(")")
	}
}

func (r *renderer) updateStmt(s *types.Update) {
	r.write("UPDATE " + s.Table + " SET ")
	for i, a := range s.Assignments {
		if i > 0 {
			r.write(", ")
		}
		r.write(a.Column + " = ")
		r.bind(a.Value)
	}
	if len(s.Where) > 0 {
		r.write(" WHERE ")
		r.conditions(s.Where)
	}
}

func (r *renderer) deleteStmt(s *types.Delete) {
	r.write("DELETE FROM " + s.Table)
	if len(s.Where) > 0 {
		r.write(" WHERE ")
		r.conditions(s.Where)
	}
}

// connectorOf treats a zero connector, as found on hand-built conditions,
// as AND.
func connectorOf(c types.Condition) Connector {
	if c.Connector == "" {
		return types.AND
	}
	return c.Connector
}

// validateSelect checks every rule that would make a SELECT unrenderable,
// recursing into subqueries, before any SQL is assembled.
func validateSelect(s *types.Select) error {
	if len(s.Columns) == 0 {
		return types.IncompleteQueryError{Statement: "SELECT", Missing: "columns", Hint: "call Select, SelectColumns or SelectAll"}
	}
	if s.Err != nil {
		return s.Err
	}
	if len(s.Having) > 0 && len(s.GroupBy) == 0 {
		return types.IncompleteQueryError{Statement: "HAVING", Missing: "GROUP BY"}
	}
	for _, col := range s.Columns {
		if col.Kind != types.SubquerySelectorKind {
			continue
		}
		if col.Subquery == nil {
			return types.IncompleteQueryError{Statement: "subquery", Missing: "a SELECT"}
		}
		if err := validateSelect(col.Subquery); err != nil {
			return err
		}
	}
	for _, j := range s.Joins {
		if j.Kind == types.CrossJoin {
			continue
		}
		for _, on := range j.On {
			if err := on.Operator.Validate(); err != nil {
				return err
			}
		}
	}
	if err := validateConditions(s.Where); err != nil {
		return err
	}
	return validateConditions(s.Having)
}

func validateConditions(conds []types.Condition) error {
	for _, c := range conds {
		if err := c.Operator.Validate(); err != nil {
			return err
		}
		if c.Subquery != nil {
			if err := validateSelect(c.Subquery); err != nil {
				return err
			}
		} else if c.Value.Kind() == types.KindSubquery {
			return errSubqueryNoColumns(c.Column)
		}
	}
	return nil
}
