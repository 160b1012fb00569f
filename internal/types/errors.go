package types

import "fmt"

// IncompleteQueryError is returned when a statement is rendered before it
// reached a renderable state.
type IncompleteQueryError struct {
	Statement string
	Missing   string
	Hint      string
}

func (e IncompleteQueryError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("incomplete query: %s requires %s: %s", e.Statement, e.Missing, e.Hint)
	}
	return fmt.Sprintf("incomplete query: %s requires %s", e.Statement, e.Missing)
}

// UnknownOperatorError is returned when a statement references an operator
// that matched no known token and was not marked custom.
type UnknownOperatorError struct {
	Token string
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q: use a known operator or CustomOp", e.Token)
}

// EmptyInsertDataError is returned when an INSERT has no columns or no rows.
type EmptyInsertDataError struct {
	Table string
}

func (e EmptyInsertDataError) Error() string {
	return fmt.Sprintf("INSERT INTO %s requires columns and values", e.Table)
}

// EmptyUpdateSetError is returned when an UPDATE has no SET assignments.
type EmptyUpdateSetError struct {
	Table string
}

func (e EmptyUpdateSetError) Error() string {
	return fmt.Sprintf("UPDATE %s requires SET clauses", e.Table)
}

// InvalidConditionError records a malformed condition. Builders hold it
// until render time.
type InvalidConditionError struct {
	Column string
	Reason string
}

func (e InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition on %q: %s", e.Column, e.Reason)
}
