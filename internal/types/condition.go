package types

// Connector joins a condition to the one before it.
type Connector string

const (
	AND Connector = "AND"
	OR  Connector = "OR"
)

// Condition is a single WHERE or HAVING predicate.
// Values are always bound as parameters, never inlined.
// When Subquery is set, Value holds a subquery placeholder and the nested
// statement renders in place of the parameter.
type Condition struct {
	Column    string
	Operator  Operator
	Value     Value
	Subquery  *Select
	Connector Connector
}

// JoinKind is the kind of a JOIN clause.
type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	FullJoin  JoinKind = "FULL OUTER"
	CrossJoin JoinKind = "CROSS"
)

// JoinCondition compares two columns in an ON clause.
type JoinCondition struct {
	Left      string
	Operator  Operator
	Right     string
	Connector Connector
}

// Join is a JOIN clause. CROSS joins never render their On list.
type Join struct {
	Kind  JoinKind
	Table string
	On    []JoinCondition
}

// Direction is a sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderBy is one ORDER BY term.
type OrderBy struct {
	Column    string
	Direction Direction
}
