package types

// SelectorKind identifies the variant held by a ColumnSelector.
type SelectorKind string

const (
	ColumnSelectorKind        SelectorKind = "column"
	AliasedColumnSelectorKind SelectorKind = "aliased_column"
	AggregateSelectorKind     SelectorKind = "aggregate"
	CountAllSelectorKind      SelectorKind = "count_all"
	SubquerySelectorKind      SelectorKind = "subquery"
)

// AggregateFunc is an aggregate function applied to a single column.
type AggregateFunc string

const (
	AggCount         AggregateFunc = "COUNT"
	AggCountDistinct AggregateFunc = "COUNT_DISTINCT"
	AggSum           AggregateFunc = "SUM"
	AggAvg           AggregateFunc = "AVG"
	AggMin           AggregateFunc = "MIN"
	AggMax           AggregateFunc = "MAX"
)

// ColumnSelector is one projected output column.
type ColumnSelector struct {
	Kind     SelectorKind
	Name     string
	Func     AggregateFunc
	Alias    string
	Subquery *Select
}

// WithAlias returns a copy with the alias replaced. Plain columns carry no
// alias slot, so the call leaves them unchanged.
func (s ColumnSelector) WithAlias(alias string) ColumnSelector {
	if s.Kind == ColumnSelectorKind {
		return s
	}
	s.Alias = alias
	return s
}
