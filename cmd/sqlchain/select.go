package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlchain"
)

// selectFlags describe a SELECT built from the command line.
type selectFlags struct {
	table   string
	columns []string
	where   []string
	orderBy []string
	limit   uint64
	offset  uint64
}

func (f *selectFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.table, "table", "", "table to select from")
	fs.StringSliceVar(&f.columns, "columns", nil, "columns to select (default: *)")
	fs.StringArrayVar(&f.where, "where", nil, "condition as column<op>value, op one of = != > >= < <= (repeatable)")
	fs.StringSliceVar(&f.orderBy, "order-by", nil, "order by column[:desc]")
	fs.Uint64Var(&f.limit, "limit", 0, "maximum number of rows")
	fs.Uint64Var(&f.offset, "offset", 0, "number of rows to skip")
	_ = cmd.MarkFlagRequired("table")
}

func (f *selectFlags) build() (sqlchain.SelectQuery, error) {
	from := sqlchain.From(f.table)
	for _, w := range f.where {
		column, op, value, err := parseWhere(w)
		if err != nil {
			return sqlchain.SelectQuery{}, err
		}
		switch {
		case value.IsNull() && op == sqlchain.EQ:
			from = from.Where(column, sqlchain.IsNull)
		case value.IsNull() && op == sqlchain.NE:
			from = from.Where(column, sqlchain.IsNotNull)
		default:
			from = from.Where(column, op, value)
		}
	}

	var q sqlchain.SelectQuery
	if len(f.columns) == 0 {
		q = from.SelectAll()
	} else {
		q = from.Select(f.columns...)
	}

	for _, o := range f.orderBy {
		column, dir, _ := strings.Cut(o, ":")
		switch strings.ToLower(dir) {
		case "", "asc":
			q = q.OrderByAsc(column)
		case "desc":
			q = q.OrderByDesc(column)
		default:
			return sqlchain.SelectQuery{}, fmt.Errorf("invalid order direction %q", dir)
		}
	}
	if f.limit > 0 {
		q = q.Limit(f.limit)
	}
	if f.offset > 0 {
		q = q.Offset(f.offset)
	}
	return q, nil
}

// whereOps maps operator tokens, longest first.
var whereOps = []struct {
	token string
	op    sqlchain.Operator
}{
	{">=", sqlchain.GE},
	{"<=", sqlchain.LE},
	{"!=", sqlchain.NE},
	{"<>", sqlchain.NE},
	{"=", sqlchain.EQ},
	{">", sqlchain.GT},
	{"<", sqlchain.LT},
}

// parseWhere splits "age>=18" into column, operator and a typed value at
// the first operator character.
func parseWhere(s string) (string, sqlchain.Operator, sqlchain.Value, error) {
	if i := strings.IndexAny(s, "=!<>"); i > 0 {
		for _, o := range whereOps {
			if strings.HasPrefix(s[i:], o.token) {
				column := strings.TrimSpace(s[:i])
				return column, o.op, parseValue(strings.TrimSpace(s[i+len(o.token):])), nil
			}
		}
	}
	return "", sqlchain.Operator{}, sqlchain.Value{}, fmt.Errorf("invalid condition %q: expected column<op>value", s)
}

// parseValue types a flag value: integers, floats and booleans are
// recognized, null is SQL NULL, and anything else is a string. Quoting
// with single quotes forces a string.
func parseValue(s string) sqlchain.Value {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return sqlchain.String(s[1 : len(s)-1])
	}
	if strings.EqualFold(s, "null") {
		return sqlchain.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sqlchain.I64(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return sqlchain.F64(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return sqlchain.Bool(b)
	}
	return sqlchain.String(s)
}
