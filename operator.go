package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// Known operators.
var (
	EQ        = types.EQ
	NE        = types.NE
	GT        = types.GT
	LT        = types.LT
	GE        = types.GE
	LE        = types.LE
	LIKE      = types.LIKE
	ILIKE     = types.ILIKE
	IN        = types.IN
	NotIn     = types.NotIn
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull
	EXISTS    = types.EXISTS
	NotExists = types.NotExists
)

// Op parses an operator spelling such as "like" or "NOT IN".
// Spellings outside the known set are kept and fail at render time.
func Op(s string) Operator {
	return types.ParseOperator(s)
}

// CustomOp returns an operator that renders token verbatim and always
// validates, for dialect operators such as "@>" or "~*".
func CustomOp(token string) Operator {
	return types.CustomOperator(token)
}
