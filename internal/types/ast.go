package types

// Select holds the accumulated state of a SELECT statement.
// Builders copy slices before appending so a Select value can be shared
// between forked chains.
type Select struct {
	Table    string
	Columns  []ColumnSelector
	Distinct bool
	Joins    []Join
	Where    []Condition
	GroupBy  []string
	Having   []Condition
	OrderBy  []OrderBy
	Limit    *uint64
	Offset   *uint64
	Err      error
}

// Insert holds the accumulated state of an INSERT statement.
// Every row has one value per column, in column order.
type Insert struct {
	Table   string
	Columns []string
	Rows    [][]Value
}

// Assignment is one SET term of an UPDATE.
type Assignment struct {
	Column string
	Value  Value
}

// Update holds the accumulated state of an UPDATE statement.
type Update struct {
	Table       string
	Assignments []Assignment
	Where       []Condition
	Err         error
}

// Delete holds the accumulated state of a DELETE statement.
type Delete struct {
	Table string
	Where []Condition
	Err   error
}

// AppendCopy appends to a copy of s, leaving s's backing array untouched.
func AppendCopy[T any](s []T, v ...T) []T {
	return append(s[:len(s):len(s)], v...)
}
