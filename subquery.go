package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// Subquery is a complete SELECT boxed for embedding in another statement.
type Subquery struct {
	stmt *types.Select
}

// NewSubquery boxes q.
func NewSubquery(q SelectQuery) Subquery {
	stmt := q.stmt
	return Subquery{stmt: &stmt}
}

// ToSQL renders the nested statement in parentheses.
func (s Subquery) ToSQL() (string, error) {
	sql, err := s.Query().ToSQL()
	if err != nil {
		return "", err
	}
	return "(" + sql + ")", nil
}

// Parameters returns the nested statement's own parameters.
func (s Subquery) Parameters() []Value {
	return s.Query().Parameters()
}

// Query returns the nested statement.
func (s Subquery) Query() SelectQuery {
	if s.stmt == nil {
		return SelectQuery{}
	}
	return SelectQuery{stmt: *s.stmt}
}
