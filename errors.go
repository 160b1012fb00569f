package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// IncompleteQueryError is returned when a statement is rendered before it
// reached a renderable state.
type IncompleteQueryError = types.IncompleteQueryError

// UnknownOperatorError is returned when a statement references an operator
// that is neither known nor custom.
type UnknownOperatorError = types.UnknownOperatorError

// EmptyInsertDataError is returned when an INSERT has no columns or rows.
type EmptyInsertDataError = types.EmptyInsertDataError

// EmptyUpdateSetError is returned when an UPDATE has no assignments.
type EmptyUpdateSetError = types.EmptyUpdateSetError

// InvalidConditionError is returned when a condition was built with the
// wrong number or kind of arguments.
type InvalidConditionError = types.InvalidConditionError

// ErrUnbindable is returned by Value.Value for arrays and subquery placeholders.
var ErrUnbindable = types.ErrUnbindable
