package sqlchain

import (
	"slices"

	"github.com/zoobzio/sqlchain/internal/types"
)

// The helpers below operate on copies of statement state. Callers pass
// values, append through types.AppendCopy, and hand the result to a new
// builder, so no builder ever observes another's mutation.

// withCondition appends a parsed condition, or records the first parse
// error and leaves the list unchanged.
func withCondition(list []types.Condition, err error, column string, conn Connector, args []any) ([]types.Condition, error) {
	c, cerr := newCondition(column, conn, args)
	if cerr != nil {
		if err == nil {
			err = cerr
		}
		return list, err
	}
	return types.AppendCopy(list, c), err
}

func subqueryCondition(column string, op Operator, q SelectQuery) types.Condition {
	stmt := q.stmt
	return types.Condition{
		Column:    column,
		Operator:  op,
		Value:     types.SubqueryPlaceholderValue(),
		Subquery:  &stmt,
		Connector: types.AND,
	}
}

func selectWhere(s types.Select, conn Connector, column string, args []any) types.Select {
	s.Where, s.Err = withCondition(s.Where, s.Err, column, conn, args)
	return s
}

func selectWhereCond(s types.Select, c Condition) types.Select {
	s.Where = types.AppendCopy(s.Where, c)
	return s
}

func selectHaving(s types.Select, conn Connector, expr string, args []any) types.Select {
	s.Having, s.Err = withCondition(s.Having, s.Err, expr, conn, args)
	return s
}

func selectJoin(s types.Select, kind JoinKind, table string, on []JoinCondition) types.Select {
	s.Joins = types.AppendCopy(s.Joins, types.Join{Kind: kind, Table: table, On: slices.Clone(on)})
	return s
}

func selectGroupBy(s types.Select, columns []string) types.Select {
	s.GroupBy = types.AppendCopy(s.GroupBy, columns...)
	return s
}

func plainColumns(names []string) []ColumnSelector {
	cols := make([]ColumnSelector, len(names))
	for i, n := range names {
		cols[i] = Col(n)
	}
	return cols
}
