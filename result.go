package sqlchain

// Statement is anything that renders to SQL with positional parameters.
// Every builder state implements it.
type Statement interface {
	ToSQL() (string, error)
	Parameters() []Value
}

// QueryResult contains the rendered SQL and its parameters in placeholder order.
type QueryResult struct {
	SQL    string
	Params []Value
}

// Args returns the parameters as native Go values.
func (r *QueryResult) Args() []any {
	args := make([]any, len(r.Params))
	for i, p := range r.Params {
		args[i] = p.Any()
	}
	return args
}

// Render renders any statement into a QueryResult.
func Render(stmt Statement) (*QueryResult, error) {
	if r, ok := stmt.(interface{ Render() (*QueryResult, error) }); ok {
		return r.Render()
	}
	sql, err := stmt.ToSQL()
	if err != nil {
		return nil, err
	}
	return &QueryResult{SQL: sql, Params: stmt.Parameters()}, nil
}

func mustRender(res *QueryResult, err error) *QueryResult {
	if err != nil {
		panic(err)
	}
	return res
}
