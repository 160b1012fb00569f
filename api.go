// Package sqlchain provides an immutable, typestate-driven SQL query builder.
//
// Each statement kind moves through distinct Go types, and only the final
// type of a chain can render. A SELECT needs its column list, an UPDATE
// needs SET and WHERE, a DELETE needs WHERE, and an INSERT needs values.
// Rendering any earlier state fails with an IncompleteQueryError.
//
// # Basic Usage
//
//	query := sqlchain.From("users").
//		Select("id", "name").
//		Where("age", sqlchain.GT, 18).
//		OrderByAsc("name").
//		Limit(10)
//
//	sql, err := query.ToSQL()
//	// SELECT id, name FROM users WHERE age > ? ORDER BY name ASC LIMIT 10
//	params := query.Parameters()
//	// [18]
//
// # Immutability
//
// Every method returns a new builder value. Forking a chain is safe:
//
//	base := sqlchain.From("users").Where("active", true)
//	admins := base.Where("role", "admin").SelectAll()
//	guests := base.Where("role", "guest").SelectAll()
//
// # Operators
//
// Operators given as strings are parsed with Op. Unknown spellings are
// carried through the chain and rejected at render time with an
// UnknownOperatorError, so building a query never fails. CustomOp marks a
// dialect-specific operator that should render verbatim.
//
// # Output Format
//
// All values are bound with ? placeholders in left-to-right order, and
// Parameters returns them in that same order, including values owned by
// nested subqueries. Identifiers are emitted verbatim: no quoting or
// escaping is performed. The exec package rebinds placeholders for a
// specific driver.
package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// Value is a bindable SQL parameter.
type Value = types.Value

// ValueKind identifies the variant held by a Value.
type ValueKind = types.ValueKind

// Operator is a SQL comparison or membership operator.
type Operator = types.Operator

// Connector joins a condition to the one before it.
type Connector = types.Connector

// Condition is a single WHERE or HAVING predicate.
type Condition = types.Condition

// JoinKind is the kind of a JOIN clause.
type JoinKind = types.JoinKind

// JoinCondition compares two columns in an ON clause.
type JoinCondition = types.JoinCondition

// Direction is a sort direction.
type Direction = types.Direction

// ColumnSelector is one projected output column.
type ColumnSelector = types.ColumnSelector

// Value kinds.
const (
	KindNull     = types.KindNull
	KindBool     = types.KindBool
	KindI32      = types.KindI32
	KindI64      = types.KindI64
	KindF32      = types.KindF32
	KindF64      = types.KindF64
	KindString   = types.KindString
	KindBytes    = types.KindBytes
	KindJSON     = types.KindJSON
	KindArray    = types.KindArray
	KindSubquery = types.KindSubquery
)

// Connectors.
const (
	AND = types.AND
	OR  = types.OR
)

// Join kinds.
const (
	InnerJoin = types.InnerJoin
	LeftJoin  = types.LeftJoin
	RightJoin = types.RightJoin
	FullJoin  = types.FullJoin
	CrossJoin = types.CrossJoin
)

// Sort directions.
const (
	ASC  = types.ASC
	DESC = types.DESC
)
