package sqlchain

import (
	"encoding/json"

	"github.com/zoobzio/sqlchain/internal/types"
)

// Null returns SQL NULL.
func Null() Value { return types.NullValue() }

// Bool wraps a boolean.
func Bool(v bool) Value { return types.BoolValue(v) }

// I32 wraps a 32-bit integer.
func I32(v int32) Value { return types.I32Value(v) }

// I64 wraps a 64-bit integer.
func I64(v int64) Value { return types.I64Value(v) }

// F32 wraps a 32-bit float.
func F32(v float32) Value { return types.F32Value(v) }

// F64 wraps a 64-bit float.
func F64(v float64) Value { return types.F64Value(v) }

// String wraps a string.
func String(v string) Value { return types.StringValue(v) }

// Bytes wraps a byte slice.
func Bytes(v []byte) Value { return types.BytesValue(v) }

// JSON wraps an encoded JSON document.
func JSON(v json.RawMessage) Value { return types.JSONValue(v) }

// Array wraps a list of values.
func Array(v ...Value) Value { return types.ArrayValue(v...) }

// SubqueryPlaceholder marks a position filled by a nested statement.
func SubqueryPlaceholder() Value { return types.SubqueryPlaceholderValue() }

// ValueOf converts any Go value into a Value. It never fails.
func ValueOf(v any) Value { return types.ValueOf(v) }

// Values converts each argument with ValueOf.
func Values(v ...any) []Value {
	out := make([]Value, len(v))
	for i, x := range v {
		out[i] = types.ValueOf(x)
	}
	return out
}
