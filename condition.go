package sqlchain

import "github.com/zoobzio/sqlchain/internal/types"

// Cond builds a condition with an explicit operator. A SelectQuery or
// Subquery value becomes a nested statement.
func Cond(column string, op Operator, value any) Condition {
	c := types.Condition{Column: column, Operator: op, Connector: types.AND}
	if op.IsNullary() && value == nil {
		c.Value = types.NullValue()
		return c
	}
	setConditionValue(&c, value)
	return c
}

// Eq builds a column = value condition.
func Eq(column string, value any) Condition {
	return Cond(column, types.EQ, value)
}

// On builds an AND-connected join condition.
func On(left string, op any, right string) JoinCondition {
	return types.JoinCondition{Left: left, Operator: toOperator(op), Right: right, Connector: types.AND}
}

// OrOn builds an OR-connected join condition.
func OrOn(left string, op any, right string) JoinCondition {
	c := On(left, op, right)
	c.Connector = types.OR
	return c
}

func setConditionValue(c *types.Condition, value any) {
	switch v := value.(type) {
	case SelectQuery:
		stmt := v.stmt
		c.Subquery = &stmt
		c.Value = types.SubqueryPlaceholderValue()
	case Subquery:
		c.Subquery = v.stmt
		c.Value = types.SubqueryPlaceholderValue()
	case SelectInitial:
		// No columns yet; rejected at render time.
		c.Subquery = nil
		c.Value = types.SubqueryPlaceholderValue()
	default:
		c.Value = types.ValueOf(value)
	}
}

// toOperator accepts an Operator or a string spelling. Anything else becomes
// an unknown operator carrying its fmt text.
func toOperator(op any) Operator {
	switch v := op.(type) {
	case Operator:
		return v
	case string:
		return types.ParseOperator(v)
	default:
		return types.ParseOperator(types.ValueOf(op).String())
	}
}

// newCondition interprets the variadic arguments accepted by Where and
// Having:
//
//	Where("age", 18)               age = ?
//	Where("age", sqlchain.GT, 18)  age > ?
//	Where("age", ">", 18)          age > ?
//	Where("deleted_at", IsNull)    deleted_at IS NULL
func newCondition(column string, connector Connector, args []any) (types.Condition, error) {
	c := types.Condition{Column: column, Connector: connector}

	switch len(args) {
	case 1:
		if op, ok := args[0].(Operator); ok {
			if !op.IsNullary() {
				return c, types.InvalidConditionError{Column: column, Reason: "operator " + op.String() + " requires a value"}
			}
			c.Operator = op
			c.Value = types.NullValue()
			return c, nil
		}
		c.Operator = types.EQ
		if _, ok := args[0].(SelectInitial); ok {
			return c, errSubqueryNoColumns(column)
		}
		setConditionValue(&c, args[0])
		return c, nil
	case 2:
		switch args[0].(type) {
		case Operator, string:
		default:
			return c, types.InvalidConditionError{Column: column, Reason: "operator must be an Operator or a string"}
		}
		c.Operator = toOperator(args[0])
		if c.Operator.IsNullary() {
			if args[1] != nil {
				return c, types.InvalidConditionError{Column: column, Reason: "operator " + c.Operator.String() + " takes no value"}
			}
			c.Value = types.NullValue()
			return c, nil
		}
		if _, ok := args[1].(SelectInitial); ok {
			return c, errSubqueryNoColumns(column)
		}
		setConditionValue(&c, args[1])
		return c, nil
	case 0:
		return c, types.InvalidConditionError{Column: column, Reason: "missing value"}
	default:
		return c, types.InvalidConditionError{Column: column, Reason: "too many arguments"}
	}
}

func errSubqueryNoColumns(column string) error {
	return types.InvalidConditionError{Column: column, Reason: "subquery has no columns"}
}
