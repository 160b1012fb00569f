package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// Col selects a plain column. Plain columns cannot be aliased with
// WithAlias; use ColAs.
func Col(name string) ColumnSelector {
	return types.ColumnSelector{Kind: types.ColumnSelectorKind, Name: name}
}

// ColAs selects a column under an alias: name AS alias.
func ColAs(name, alias string) ColumnSelector {
	return types.ColumnSelector{Kind: types.AliasedColumnSelectorKind, Name: name, Alias: alias}
}

// Count selects COUNT(*).
func Count() ColumnSelector {
	return types.ColumnSelector{Kind: types.CountAllSelectorKind}
}

// CountAs selects COUNT(*) AS alias.
func CountAs(alias string) ColumnSelector {
	return Count().WithAlias(alias)
}

// CountColumn selects COUNT(name).
func CountColumn(name string) ColumnSelector {
	return aggregate(types.AggCount, name)
}

// CountDistinct selects COUNT(DISTINCT name).
func CountDistinct(name string) ColumnSelector {
	return aggregate(types.AggCountDistinct, name)
}

// Sum selects SUM(name).
func Sum(name string) ColumnSelector {
	return aggregate(types.AggSum, name)
}

// Avg selects AVG(name).
func Avg(name string) ColumnSelector {
	return aggregate(types.AggAvg, name)
}

// Min selects MIN(name).
func Min(name string) ColumnSelector {
	return aggregate(types.AggMin, name)
}

// Max selects MAX(name).
func Max(name string) ColumnSelector {
	return aggregate(types.AggMax, name)
}

// SubqueryAs selects a scalar subquery: (SELECT ...) AS alias.
func SubqueryAs(q SelectQuery, alias string) ColumnSelector {
	stmt := q.stmt
	return types.ColumnSelector{Kind: types.SubquerySelectorKind, Subquery: &stmt, Alias: alias}
}

func aggregate(fn types.AggregateFunc, name string) ColumnSelector {
	return types.ColumnSelector{Kind: types.AggregateSelectorKind, Func: fn, Name: name}
}
