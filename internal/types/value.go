package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind string

const (
	KindNull     ValueKind = "null"
	KindBool     ValueKind = "bool"
	KindI32      ValueKind = "i32"
	KindI64      ValueKind = "i64"
	KindF32      ValueKind = "f32"
	KindF64      ValueKind = "f64"
	KindString   ValueKind = "string"
	KindBytes    ValueKind = "bytes"
	KindJSON     ValueKind = "json"
	KindArray    ValueKind = "array"
	KindSubquery ValueKind = "subquery"
)

// ErrUnbindable is returned when a value has no single driver representation.
var ErrUnbindable = errors.New("value cannot be bound as a single driver argument")

// Value is a bindable SQL parameter. The zero Value is NULL.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	arr  []Value
}

// NullValue returns SQL NULL.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// I32Value wraps a 32-bit integer.
func I32Value(v int32) Value { return Value{kind: KindI32, i: int64(v)} }

// I64Value wraps a 64-bit integer.
func I64Value(v int64) Value { return Value{kind: KindI64, i: v} }

// F32Value wraps a 32-bit float.
func F32Value(v float32) Value { return Value{kind: KindF32, f: float64(v)} }

// F64Value wraps a 64-bit float.
func F64Value(v float64) Value { return Value{kind: KindF64, f: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// BytesValue wraps a byte slice. The slice is copied.
func BytesValue(v []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(v)}
}

// JSONValue wraps an encoded JSON document. The document is copied.
func JSONValue(v json.RawMessage) Value {
	return Value{kind: KindJSON, raw: bytes.Clone(v)}
}

// ArrayValue wraps a list of values. The list is copied.
func ArrayValue(v ...Value) Value {
	arr := make([]Value, len(v))
	copy(arr, v)
	return Value{kind: KindArray, arr: arr}
}

// SubqueryPlaceholderValue marks a position filled by a nested statement.
func SubqueryPlaceholderValue() Value { return Value{kind: KindSubquery} }

// Kind returns the variant. The zero Value reports KindNull.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.Kind() == KindNull }

// TypeName returns the SQL type name for the variant.
func (v Value) TypeName() string {
	switch v.Kind() {
	case KindBool:
		return "BOOLEAN"
	case KindI32:
		return "INTEGER"
	case KindI64:
		return "BIGINT"
	case KindF32:
		return "REAL"
	case KindF64:
		return "DOUBLE PRECISION"
	case KindString:
		return "TEXT"
	case KindBytes:
		return "BYTEA"
	case KindJSON:
		return "JSON"
	case KindArray:
		return "ARRAY"
	case KindSubquery:
		return "SUBQUERY"
	default:
		return "NULL"
	}
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer held by an I32 or I64 value.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindI32 || v.kind == KindI64
}

// AsFloat returns the float held by an F32 or F64 value.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindF32 || v.kind == KindF64
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsBytes returns a copy of the bytes held by v.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.raw), true
}

// AsJSON returns a copy of the JSON document held by v.
func (v Value) AsJSON() (json.RawMessage, bool) {
	if v.kind != KindJSON {
		return nil, false
	}
	return bytes.Clone(v.raw), true
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	arr := make([]Value, len(v.arr))
	copy(arr, v.arr)
	return arr, true
}

// Len returns the number of array elements, or zero for other kinds.
func (v Value) Len() int { return len(v.arr) }

// Any returns the native Go representation of v.
// Arrays become []any and subquery placeholders become nil.
func (v Value) Any() any {
	switch v.Kind() {
	case KindBool:
		return v.b
	case KindI32:
		return int32(v.i)
	case KindI64:
		return v.i
	case KindF32:
		return float32(v.f)
	case KindF64:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return bytes.Clone(v.raw)
	case KindJSON:
		return json.RawMessage(bytes.Clone(v.raw))
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Any()
		}
		return out
	default:
		return nil
	}
}

// Value implements driver.Valuer. JSON documents bind as text. Arrays and
// subquery placeholders have no single driver form and fail with ErrUnbindable.
func (v Value) Value() (driver.Value, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindI32, KindI64:
		return v.i, nil
	case KindF32, KindF64:
		return v.f, nil
	case KindString:
		return v.s, nil
	case KindBytes:
		return bytes.Clone(v.raw), nil
	case KindJSON:
		return string(v.raw), nil
	default:
		return nil, fmt.Errorf("%s: %w", v.TypeName(), ErrUnbindable)
	}
}

// Equal reports whether v and o hold the same variant and payload.
// NaN equals NaN so that values compare equal after a JSON round trip.
func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindBool:
		return v.b == o.b
	case KindI32, KindI64:
		return v.i == o.i
	case KindF32, KindF64:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBytes, KindJSON:
		return bytes.Equal(v.raw, o.raw)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders v for logs and diagnostics. It is not SQL.
func (v Value) String() string {
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindI32, KindI64:
		return strconv.FormatInt(v.i, 10)
	case KindF32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindF64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindBytes:
		return fmt.Sprintf("0x%x", v.raw)
	case KindJSON:
		return string(v.raw)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindSubquery:
		return "<subquery>"
	default:
		return "NULL"
	}
}

type taggedValue struct {
	Type  ValueKind       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes v as {"type": kind, "value": payload}.
// Non-finite floats are encoded as the strings "NaN", "+Inf" and "-Inf".
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.Kind() {
	case KindBool:
		payload = v.b
	case KindI32, KindI64:
		payload = v.i
	case KindF32, KindF64:
		switch {
		case math.IsNaN(v.f):
			payload = "NaN"
		case math.IsInf(v.f, 1):
			payload = "+Inf"
		case math.IsInf(v.f, -1):
			payload = "-Inf"
		default:
			payload = v.f
		}
	case KindString:
		payload = v.s
	case KindBytes:
		payload = v.raw
	case KindJSON:
		if len(v.raw) == 0 {
			payload = json.RawMessage("null")
		} else {
			payload = json.RawMessage(v.raw)
		}
	case KindArray:
		payload = v.arr
	}

	tv := taggedValue{Type: v.Kind()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s value: %w", v.Kind(), err)
		}
		tv.Value = raw
	}
	return json.Marshal(tv)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}

	var err error
	switch tv.Type {
	case KindNull, "":
		*v = NullValue()
	case KindSubquery:
		*v = SubqueryPlaceholderValue()
	case KindBool:
		var b bool
		err = json.Unmarshal(tv.Value, &b)
		*v = BoolValue(b)
	case KindI32:
		var i int32
		err = json.Unmarshal(tv.Value, &i)
		*v = I32Value(i)
	case KindI64:
		var i int64
		err = json.Unmarshal(tv.Value, &i)
		*v = I64Value(i)
	case KindF32, KindF64:
		var f float64
		f, err = decodeFloat(tv.Value)
		if tv.Type == KindF32 {
			*v = F32Value(float32(f))
		} else {
			*v = F64Value(f)
		}
	case KindString:
		var s string
		err = json.Unmarshal(tv.Value, &s)
		*v = StringValue(s)
	case KindBytes:
		var b []byte
		err = json.Unmarshal(tv.Value, &b)
		*v = Value{kind: KindBytes, raw: b}
	case KindJSON:
		*v = JSONValue(tv.Value)
	case KindArray:
		var arr []Value
		err = json.Unmarshal(tv.Value, &arr)
		*v = Value{kind: KindArray, arr: arr}
	default:
		return fmt.Errorf("unknown value type %q", tv.Type)
	}
	if err != nil {
		return fmt.Errorf("decoding %s value: %w", tv.Type, err)
	}
	return nil
}

func decodeFloat(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid float literal %q", s)
	}
	var f float64
	err := json.Unmarshal(raw, &f)
	return f, err
}
