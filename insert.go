package sqlchain

import (
	"slices"
	"sort"

	"github.com/zoobzio/sqlchain/internal/types"
)

// Row maps column names to values for INSERT rows and UPDATE assignments.
// Columns render in ascending name order.
type Row map[string]any

// InsertInitial is an INSERT without values. It cannot render.
type InsertInitial struct {
	stmt types.Insert
}

// InsertQuery is an INSERT with at least one call to Values.
type InsertQuery struct {
	stmt types.Insert
}

// Insert starts an INSERT into table.
func Insert(table string) InsertInitial {
	return InsertInitial{stmt: types.Insert{Table: table}}
}

// Values adds one row.
func (q InsertInitial) Values(row Row) InsertQuery {
	return InsertQuery{stmt: insertRows(q.stmt, []Row{row})}
}

// ValuesMany adds several rows. Columns are the union of every row's keys;
// a row missing a column binds NULL for it.
func (q InsertInitial) ValuesMany(rows ...Row) InsertQuery {
	return InsertQuery{stmt: insertRows(q.stmt, rows)}
}

// ToSQL always fails: an INSERT needs values before it can render.
func (q InsertInitial) ToSQL() (string, error) {
	_, err := q.Render()
	return "", err
}

// Parameters returns nil for an incomplete INSERT.
func (InsertInitial) Parameters() []Value {
	return nil
}

// Render always fails with IncompleteQueryError.
func (InsertInitial) Render() (*QueryResult, error) {
	return nil, types.IncompleteQueryError{Statement: "INSERT", Missing: "values", Hint: "call Values or ValuesMany"}
}

// MustRender always panics for an incomplete INSERT.
func (q InsertInitial) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// Values adds another row.
func (q InsertQuery) Values(row Row) InsertQuery {
	return InsertQuery{stmt: insertRows(q.stmt, []Row{row})}
}

// ValuesMany adds several rows.
func (q InsertQuery) ValuesMany(rows ...Row) InsertQuery {
	return InsertQuery{stmt: insertRows(q.stmt, rows)}
}

// ToSQL renders the statement.
func (q InsertQuery) ToSQL() (string, error) {
	res, err := q.Render()
	if err != nil {
		return "", err
	}
	return res.SQL, nil
}

// Parameters returns the row values, row by row, in column order.
func (q InsertQuery) Parameters() []Value {
	r := &renderer{}
	r.insertStmt(&q.stmt)
	return r.params
}

// Render validates the statement and returns its SQL and parameters.
func (q InsertQuery) Render() (*QueryResult, error) {
	if len(q.stmt.Columns) == 0 || len(q.stmt.Rows) == 0 {
		return nil, types.EmptyInsertDataError{Table: q.stmt.Table}
	}
	r := &renderer{}
	r.insertStmt(&q.stmt)
	return r.result(), nil
}

// MustRender is like Render but panics on error.
func (q InsertQuery) MustRender() *QueryResult {
	return mustRender(q.Render())
}

// insertRows widens the column list with any new keys, pads existing rows
// with NULL for them, and appends the new rows.
func insertRows(s types.Insert, rows []Row) types.Insert {
	known := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		known[c] = true
	}
	var added []string
	for _, row := range rows {
		for col := range row {
			if !known[col] {
				known[col] = true
				added = append(added, col)
			}
		}
	}
	sort.Strings(added)
	columns := types.AppendCopy(s.Columns, added...)

	out := make([][]Value, 0, len(s.Rows)+len(rows))
	for _, old := range s.Rows {
		padded := slices.Clone(old)
		for range added {
			padded = append(padded, types.NullValue())
		}
		out = append(out, padded)
	}
	for _, row := range rows {
		values := make([]Value, len(columns))
		for i, col := range columns {
			values[i] = types.ValueOf(row[col])
		}
		out = append(out, values)
	}

	s.Columns = columns
	s.Rows = out
	return s
}

// sortedAssignments turns a Row into assignments ordered by column name.
func sortedAssignments(row Row) []types.Assignment {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	out := make([]types.Assignment, len(cols))
	for i, col := range cols {
		out[i] = types.Assignment{Column: col, Value: types.ValueOf(row[col])}
	}
	return out
}
