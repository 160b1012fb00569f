package types

import "strings"

// Operator is a SQL comparison or membership operator.
//
// Known operators come from a fixed table. Anything else is kept as an
// unknown token and only rejected when the statement is rendered, so
// building a condition never fails.
type Operator struct {
	token string
	known bool
}

// Known operators.
var (
	EQ        = Operator{token: "=", known: true}
	NE        = Operator{token: "!=", known: true}
	GT        = Operator{token: ">", known: true}
	LT        = Operator{token: "<", known: true}
	GE        = Operator{token: ">=", known: true}
	LE        = Operator{token: "<=", known: true}
	LIKE      = Operator{token: "LIKE", known: true}
	ILIKE     = Operator{token: "ILIKE", known: true}
	IN        = Operator{token: "IN", known: true}
	NotIn     = Operator{token: "NOT IN", known: true}
	IsNull    = Operator{token: "IS NULL", known: true}
	IsNotNull = Operator{token: "IS NOT NULL", known: true}
	EXISTS    = Operator{token: "EXISTS", known: true}
	NotExists = Operator{token: "NOT EXISTS", known: true}
)

var knownOperators = map[string]Operator{
	"=":           EQ,
	"!=":          NE,
	">":           GT,
	"<":           LT,
	">=":          GE,
	"<=":          LE,
	"LIKE":        LIKE,
	"ILIKE":       ILIKE,
	"IN":          IN,
	"NOT IN":      NotIn,
	"IS NULL":     IsNull,
	"IS NOT NULL": IsNotNull,
	"EXISTS":      EXISTS,
	"NOT EXISTS":  NotExists,
}

// ParseOperator maps s onto a known operator, ignoring case and runs of
// whitespace. Unmatched input becomes an unknown operator carrying s verbatim.
func ParseOperator(s string) Operator {
	key := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if op, ok := knownOperators[key]; ok {
		return op
	}
	return Operator{token: s}
}

// CustomOperator marks token as a deliberately custom operator. It renders
// verbatim and always validates.
func CustomOperator(token string) Operator {
	return Operator{token: token, known: true}
}

// String returns the SQL token.
func (o Operator) String() string {
	return o.token
}

// Known reports whether the operator will pass validation.
func (o Operator) Known() bool {
	return o.known
}

// IsNullary reports whether the operator takes no right-hand value.
func (o Operator) IsNullary() bool {
	return o == IsNull || o == IsNotNull
}

// OmitsColumn reports whether the operator is rendered without a left-hand column.
func (o Operator) OmitsColumn() bool {
	return o == EXISTS || o == NotExists
}

// Validate fails with UnknownOperatorError for unknown operators.
func (o Operator) Validate() error {
	if !o.known {
		return UnknownOperatorError{Token: o.token}
	}
	return nil
}
